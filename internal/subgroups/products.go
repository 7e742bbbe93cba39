package subgroups

import "groupcore/pkg/domain"

func filter(s Set, keep func(rec *domain.SubgroupRecord) bool) []domain.SubgroupRecord {
	var out []domain.SubgroupRecord
	s.each(func(rec *domain.SubgroupRecord) bool {
		if keep(rec) {
			out = append(out, rec.Clone())
		}
		return true
	})
	return out
}

// DirectProducts lists the proper non-trivial normal subgroups with a normal
// complement, one per decomposition G = N x Q.
func DirectProducts(s Set) []domain.SubgroupRecord {
	return filter(s, func(rec *domain.SubgroupRecord) bool {
		return rec.Normal && rec.Direct && rec.SubgroupOrder != 1 && rec.QuotientOrder != 1
	})
}

// SemidirectProducts lists the complemented normal subgroups whose
// complement is not normal.
func SemidirectProducts(s Set) []domain.SubgroupRecord {
	return filter(s, func(rec *domain.SubgroupRecord) bool {
		return rec.Normal && rec.Split && !rec.Direct
	})
}

// NonsplitProducts lists the normal subgroups without a complement.
func NonsplitProducts(s Set) []domain.SubgroupRecord {
	return filter(s, func(rec *domain.SubgroupRecord) bool {
		return rec.Normal && !rec.Split
	})
}

// MostProductExpressions is the length of the longest of the three product
// lists, which sizes the product table.
func MostProductExpressions(s Set) int {
	return max(len(DirectProducts(s)), len(SemidirectProducts(s)), len(NonsplitProducts(s)))
}

// SpanClass is the CSS class of a subgroup in the lattice diagram.
func SpanClass(rec domain.SubgroupRecord) string {
	switch {
	case rec.Characteristic:
		return "subgp chargp"
	case rec.Normal:
		return "subgp normgp"
	}
	return "subgp"
}
