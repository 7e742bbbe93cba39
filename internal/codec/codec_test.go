package codec

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"groupcore/pkg/domain"
)

func TestDecodePolycyclicKnownValues(t *testing.T) {
	orders := []int{2, 3}
	got, err := DecodePolycyclic(0, orders)
	if err != nil {
		t.Fatalf("decode 0: %v", err)
	}
	if diff := cmp.Diff(Exponents{0, 0}, got); diff != "" {
		t.Fatalf("decode 0 mismatch (-want +got):\n%s", diff)
	}
	got, err = DecodePolycyclic(5, orders)
	if err != nil {
		t.Fatalf("decode 5: %v", err)
	}
	if diff := cmp.Diff(Exponents{1, 2}, got); diff != "" {
		t.Fatalf("decode 5 mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePolycyclicIsBijection(t *testing.T) {
	orders := []int{2, 3, 2, 5}
	seen := make(map[string]bool)
	for code := int64(0); code < 60; code++ {
		vec, err := DecodePolycyclic(code, orders)
		if err != nil {
			t.Fatalf("decode %d: %v", code, err)
		}
		for i, e := range vec {
			if e < 0 || e >= orders[i] {
				t.Fatalf("code %d: exponent %d out of bounds for generator %d", code, e, i)
			}
		}
		key := fmt.Sprint(vec)
		if seen[key] {
			t.Fatalf("code %d decodes to duplicate vector %v", code, vec)
		}
		seen[key] = true
		back, err := EncodePolycyclic(vec, orders)
		if err != nil {
			t.Fatalf("encode %v: %v", vec, err)
		}
		if back != code {
			t.Fatalf("round trip %d -> %v -> %d", code, vec, back)
		}
	}
}

func TestDecodePolycyclicRange(t *testing.T) {
	for _, code := range []int64{-1, 6, 100} {
		if _, err := DecodePolycyclic(code, []int{2, 3}); !errors.Is(err, domain.ErrRange) {
			t.Fatalf("code %d: expected ErrRange, got %v", code, err)
		}
	}
	if _, err := EncodePolycyclic(Exponents{2, 0}, []int{2, 3}); !errors.Is(err, domain.ErrRange) {
		t.Fatalf("expected ErrRange for out-of-bounds exponent, got %v", err)
	}
}

func TestDecodePermutationIdentityAndOrder(t *testing.T) {
	for n := 0; n <= 6; n++ {
		p, err := DecodePermutation(0, n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !p.IsIdentity() {
			t.Fatalf("n=%d: code 0 decoded to %v", n, p)
		}
	}
	want := []string{"()", "(2,3)", "(1,2)", "(1,2,3)", "(1,3,2)", "(1,3)"}
	for code, w := range want {
		p, err := DecodePermutation(int64(code), 3)
		if err != nil {
			t.Fatalf("code %d: %v", code, err)
		}
		if p.String() != w {
			t.Fatalf("code %d: expected %s, got %s", code, w, p.String())
		}
	}
}

func TestDecodePermutationIsBijection(t *testing.T) {
	const n = 5
	seen := make(map[string]bool)
	for code := int64(0); code < 120; code++ {
		p, err := DecodePermutation(code, n)
		if err != nil {
			t.Fatalf("decode %d: %v", code, err)
		}
		if seen[p.Key()] {
			t.Fatalf("duplicate permutation for code %d", code)
		}
		seen[p.Key()] = true
		back, err := EncodePermutation(p)
		if err != nil || back != code {
			t.Fatalf("round trip %d -> %v -> %d (%v)", code, p, back, err)
		}
	}
	if _, err := DecodePermutation(120, n); !errors.Is(err, domain.ErrRange) {
		t.Fatalf("expected ErrRange for 5!, got %v", err)
	}
	if _, err := DecodePermutation(-3, n); !errors.Is(err, domain.ErrRange) {
		t.Fatalf("expected ErrRange for negative code, got %v", err)
	}
}

func TestDecodePermutationLargeDegree(t *testing.T) {
	p, err := DecodePermutation(1, 25)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.String() != "(24,25)" {
		t.Fatalf("expected (24,25), got %s", p)
	}
}

func TestPermutationAlgebra(t *testing.T) {
	a := Permutation{1, 0, 2} // (1,2)
	b := Permutation{1, 2, 0} // (1,2,3)
	ab := a.Compose(b)
	if ab.String() != "(1,3)" {
		t.Fatalf("expected (1,2)(1,2,3) = (1,3), got %s", ab)
	}
	if !b.Compose(b.Inverse()).IsIdentity() {
		t.Fatalf("b * b^-1 should be the identity")
	}
	if _, err := Factorial(21); !errors.Is(err, domain.ErrRange) {
		t.Fatalf("expected ErrRange for 21!, got %v", err)
	}
}
