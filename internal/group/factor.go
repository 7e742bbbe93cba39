package group

import (
	"math"
	"sort"

	"modernc.org/mathutil"

	"groupcore/pkg/domain"
)

// PrimePower is one term p^k of an order factorization.
type PrimePower struct {
	Prime    int64 `json:"prime"`
	Exponent int   `json:"exponent"`
}

// Factorization returns the prime factorization of order with primes in
// ascending order. Order 1 has an empty factorization.
func Factorization(order int64) ([]PrimePower, error) {
	if order <= 0 {
		return nil, domain.Errorf(domain.ErrRange, "factorize", "order %d must be positive", order)
	}
	if order > math.MaxUint32 {
		return nil, domain.Errorf(domain.ErrNotSupported, "factorize", "order %d exceeds 32 bits", order)
	}
	if order == 1 {
		return nil, nil
	}
	terms := mathutil.FactorInt(uint32(order))
	out := make([]PrimePower, 0, len(terms))
	for _, t := range terms {
		out = append(out, PrimePower{Prime: int64(t.Prime), Exponent: int(t.Power)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prime < out[j].Prime })
	return out, nil
}

// primeFactors lists the prime divisors of order with multiplicity.
func primeFactors(order int64) ([]int, error) {
	terms, err := Factorization(order)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, t := range terms {
		for k := 0; k < t.Exponent; k++ {
			out = append(out, int(t.Prime))
		}
	}
	return out, nil
}
