package subgroups

import (
	"groupcore/internal/group"
	"groupcore/pkg/domain"
)

// Sylow pairs a prime with a subgroup record tagged as its Sylow subgroup.
type Sylow struct {
	Prime int64  `json:"prime"`
	Label string `json:"label"`
}

// SylowSubgroups walks the primes of order in ascending order and picks the
// first record, in label order, tagged with each. Primes without a tagged
// record are left out.
func SylowSubgroups(order int64, s Set) ([]Sylow, error) {
	terms, err := group.Factorization(order)
	if err != nil {
		return nil, err
	}
	byPrime := make(map[int64]string)
	s.each(func(rec *domain.SubgroupRecord) bool {
		if rec.Sylow > 0 {
			if _, ok := byPrime[rec.Sylow]; !ok {
				byPrime[rec.Sylow] = rec.Label
			}
		}
		return true
	})
	var out []Sylow
	for _, t := range terms {
		if label, ok := byPrime[t.Prime]; ok {
			out = append(out, Sylow{Prime: t.Prime, Label: label})
		}
	}
	return out, nil
}
