package domain

import (
	"context"
	"sort"
)

// SubgroupFilter selects subgroup records. Empty string fields and nil
// pointers are unconstrained; Limit <= 0 means no limit.
type SubgroupFilter struct {
	Ambient       string
	Subgroup      string
	Quotient      string
	Maximal       *bool
	MinimalNormal *bool
	Limit         int
}

// Match reports whether rec satisfies the filter (Limit is not considered).
func (f SubgroupFilter) Match(rec SubgroupRecord) bool {
	if f.Ambient != "" && rec.Ambient != f.Ambient {
		return false
	}
	if f.Subgroup != "" && rec.Subgroup != f.Subgroup {
		return false
	}
	if f.Quotient != "" && rec.Quotient != f.Quotient {
		return false
	}
	if f.Maximal != nil && rec.Maximal != *f.Maximal {
		return false
	}
	if f.MinimalNormal != nil && rec.MinimalNormal != *f.MinimalNormal {
		return false
	}
	return true
}

// Apply filters, orders and truncates recs in place of a repository query.
// Results are ordered by (ambient_order, ambient, label).
func (f SubgroupFilter) Apply(recs []SubgroupRecord) []SubgroupRecord {
	out := make([]SubgroupRecord, 0, len(recs))
	for _, rec := range recs {
		if f.Match(rec) {
			out = append(out, rec.Clone())
		}
	}
	SortSubgroups(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// SortSubgroups orders records by (ambient_order, ambient, label) using the
// natural label ordering.
func SortSubgroups(recs []SubgroupRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.AmbientOrder != b.AmbientOrder {
			return a.AmbientOrder < b.AmbientOrder
		}
		if a.Ambient != b.Ambient {
			return CompareLabels(a.Ambient, b.Ambient) < 0
		}
		return CompareLabels(a.Label, b.Label) < 0
	})
}

// Bool is a helper for building filters.
func Bool(v bool) *bool { return &v }

// Repository is the read contract of the groups database.
type Repository interface {
	// LookupGroup returns the group record or an ErrNotFound error.
	LookupGroup(ctx context.Context, label string) (GroupRecord, error)
	// SearchSubgroups returns the matching subgroup records.
	SearchSubgroups(ctx context.Context, filter SubgroupFilter) ([]SubgroupRecord, error)
	// ListConjugacyClasses returns the classes stored for a group.
	ListConjugacyClasses(ctx context.Context, group string) ([]ConjugacyClassRecord, error)
	// ListCharacters returns the characters stored for a group.
	ListCharacters(ctx context.Context, group string) ([]CharacterRecord, error)
}

// Writer loads bundles into a repository backend.
type Writer interface {
	ImportBundles(ctx context.Context, bundles ...Bundle) error
}

// Store is a repository that can also be written to.
type Store interface {
	Repository
	Writer
}
