package group

import (
	"math/big"
	"slices"

	"groupcore/internal/codec"
	"groupcore/pkg/domain"
)

// PcPresentation is a power-commutator presentation over a pcgs g_1..g_n,
// indexed from 0. Every right-hand side is a normal-form exponent vector of
// full length whose entries at positions <= i are zero.
type PcPresentation struct {
	RelativeOrders []int
	// Powers[i] is g_i^{r_i}.
	Powers []codec.Exponents
	// Commutators[j][i], for i < j, is [g_j, g_i] = g_j^-1 g_i^-1 g_j g_i.
	Commutators [][]codec.Exponents
}

// NewPcPresentation returns the presentation with the given relative orders
// and all power and commutator relations trivial.
func NewPcPresentation(relativeOrders []int) PcPresentation {
	n := len(relativeOrders)
	p := PcPresentation{
		RelativeOrders: append([]int(nil), relativeOrders...),
		Powers:         make([]codec.Exponents, n),
		Commutators:    make([][]codec.Exponents, n),
	}
	for j := 0; j < n; j++ {
		p.Powers[j] = make(codec.Exponents, n)
		p.Commutators[j] = make([]codec.Exponents, j)
		for i := 0; i < j; i++ {
			p.Commutators[j][i] = make(codec.Exponents, n)
		}
	}
	return p
}

// Len is the length of the pcgs.
func (p PcPresentation) Len() int { return len(p.RelativeOrders) }

// pcRelation addresses one relation of the code layout: the power of g_i, or
// the commutator [g_j, g_i] when power is false.
type pcRelation struct {
	power bool
	i, j  int
}

// pcRelations lists the relations in code order: powers of g_1..g_{n-1},
// then commutators [g_j, g_i] for i < j with i the outer index.
func pcRelations(n int) []pcRelation {
	var out []pcRelation
	for i := 0; i < n-1; i++ {
		out = append(out, pcRelation{power: true, i: i})
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, pcRelation{i: i, j: j})
		}
	}
	return out
}

func (p PcPresentation) rhs(rel pcRelation) codec.Exponents {
	if rel.power {
		return p.Powers[rel.i]
	}
	return p.Commutators[rel.j][rel.i]
}

// DecodePcCode expands the stored integer code of a group of the given order
// into its pc presentation.
//
// With f the prime factors of order (with multiplicity), l = |f| and
// m = max(f)-1, the code is
//
//	sum (r_i - 2) m^i  +  m^l (B + 2^L E)
//
// where L is the number of relations, B flags the non-trivial relations with
// the first relation as the most significant bit, and E holds the exponents
// of each non-trivial relation's right-hand side over g_{i+1}..g_l as mixed
// radix digits, first relation least significant.
func DecodePcCode(code *big.Int, order int64) (PcPresentation, error) {
	const op = "decode pc code"
	if code.Sign() < 0 {
		return PcPresentation{}, domain.Errorf(domain.ErrRange, op, "negative code %s", code)
	}
	f, err := primeFactors(order)
	if err != nil {
		return PcPresentation{}, err
	}
	l := len(f)
	if l == 0 {
		if code.Sign() != 0 {
			return PcPresentation{}, domain.Errorf(domain.ErrDataCorruption, op, "non-zero code %s for the trivial group", code)
		}
		return NewPcPresentation(nil), nil
	}

	rest := new(big.Int).Set(code)
	digit := new(big.Int)
	radix := big.NewInt(int64(slices.Max(f) - 1))
	orders := make([]int, l)
	for i := range orders {
		rest.QuoRem(rest, radix, digit)
		orders[i] = int(digit.Int64()) + 2
	}
	if got, err := codec.OrderOf(orders); err != nil || got != order {
		return PcPresentation{}, domain.Errorf(domain.ErrDataCorruption, op, "relative orders %v do not multiply to %d", orders, order)
	}

	p := NewPcPresentation(orders)
	rels := pcRelations(l)
	flags := new(big.Int).And(rest, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(len(rels))), big.NewInt(1)))
	rest.Rsh(rest, uint(len(rels)))
	for k, rel := range rels {
		if flags.Bit(len(rels)-1-k) == 0 {
			continue
		}
		vec := p.rhs(rel)
		for t := rel.i + 1; t < l; t++ {
			rest.QuoRem(rest, big.NewInt(int64(orders[t])), digit)
			vec[t] = int(digit.Int64())
		}
	}
	if rest.Sign() != 0 {
		return PcPresentation{}, domain.Errorf(domain.ErrDataCorruption, op, "trailing digits in code %s", code)
	}
	return p, nil
}

// EncodePcCode is the inverse of DecodePcCode. Relations whose right-hand
// side is the identity are encoded as trivial.
func EncodePcCode(p PcPresentation) (*big.Int, error) {
	const op = "encode pc code"
	order, err := codec.OrderOf(p.RelativeOrders)
	if err != nil {
		return nil, err
	}
	f, err := primeFactors(order)
	if err != nil {
		return nil, err
	}
	l := len(f)
	if l != p.Len() {
		return nil, domain.Errorf(domain.ErrRange, op, "relative orders %v are not all prime", p.RelativeOrders)
	}
	if l == 0 {
		return new(big.Int), nil
	}
	rels := pcRelations(l)
	exps := new(big.Int)
	for k := len(rels) - 1; k >= 0; k-- {
		vec := p.rhs(rels[k])
		if vec.IsIdentity() {
			continue
		}
		for t := l - 1; t > rels[k].i; t-- {
			if vec[t] < 0 || vec[t] >= p.RelativeOrders[t] {
				return nil, domain.Errorf(domain.ErrRange, op, "exponent %d of g_%d outside [0, %d)", vec[t], t+1, p.RelativeOrders[t])
			}
			exps.Mul(exps, big.NewInt(int64(p.RelativeOrders[t])))
			exps.Add(exps, big.NewInt(int64(vec[t])))
		}
	}
	code := new(big.Int).Lsh(exps, uint(len(rels)))
	for k, rel := range rels {
		if !p.rhs(rel).IsIdentity() {
			code.SetBit(code, len(rels)-1-k, 1)
		}
	}
	radix := big.NewInt(int64(slices.Max(f) - 1))
	for i := l - 1; i >= 0; i-- {
		code.Mul(code, radix)
		code.Add(code, big.NewInt(int64(p.RelativeOrders[i]-2)))
	}
	return code, nil
}

// ParsePcCode reads the decimal code stored on a group record.
func ParsePcCode(s string) (*big.Int, error) {
	code, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, domain.Errorf(domain.ErrInvalidRecord, "parse pc code", "%q is not a decimal integer", s)
	}
	return code, nil
}
