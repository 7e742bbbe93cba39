package domain_test

import (
	"testing"

	"groupcore/testutil"
)

func TestDomainDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "domain is the shared contract")
}

func TestDomainHasNoDriverDependencies(t *testing.T) {
	if testing.Short() {
		t.Skip("runs go list")
	}
	testutil.AssertNoTransitiveDependency(t, ".", testutil.DriverImportForbidden, "domain must stay storage agnostic")
}
