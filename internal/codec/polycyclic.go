// Package codec decodes the integer element codes stored for abstract groups.
//
// Polycyclic elements are indexed by a mixed-radix code whose most significant
// digit belongs to the first pcgs generator. Permutation elements are indexed
// by their lexicographic rank in S_n.
package codec

import (
	"math"

	"groupcore/pkg/domain"
)

// Exponents is a normal-form exponent vector g_1^e_1 ... g_n^e_n with
// 0 <= e_i < r_i.
type Exponents []int

// Clone returns an independent copy.
func (e Exponents) Clone() Exponents { return append(Exponents(nil), e...) }

// IsIdentity reports whether every exponent is zero.
func (e Exponents) IsIdentity() bool {
	for _, x := range e {
		if x != 0 {
			return false
		}
	}
	return true
}

// OrderOf returns the product of the relative orders, failing with ErrRange
// when it does not fit in an int64.
func OrderOf(relativeOrders []int) (int64, error) {
	order := int64(1)
	for _, r := range relativeOrders {
		if r < 2 {
			return 0, domain.Errorf(domain.ErrRange, "order", "relative order %d < 2", r)
		}
		if order > math.MaxInt64/int64(r) {
			return 0, domain.Errorf(domain.ErrRange, "order", "product of relative orders overflows")
		}
		order *= int64(r)
	}
	return order, nil
}

// DecodePolycyclic turns code into the exponent vector of the element with
// that index. Relative orders are consumed from the last generator to the
// first, each digit being inserted at the front.
func DecodePolycyclic(code int64, relativeOrders []int) (Exponents, error) {
	order, err := OrderOf(relativeOrders)
	if err != nil {
		return nil, err
	}
	if code < 0 || code >= order {
		return nil, domain.Errorf(domain.ErrRange, "decode polycyclic", "code %d outside [0, %d)", code, order)
	}
	vec := make(Exponents, len(relativeOrders))
	for i := len(relativeOrders) - 1; i >= 0; i-- {
		m := int64(relativeOrders[i])
		vec[i] = int(code % m)
		code /= m
	}
	return vec, nil
}

// EncodePolycyclic is the inverse of DecodePolycyclic.
func EncodePolycyclic(vec Exponents, relativeOrders []int) (int64, error) {
	if len(vec) != len(relativeOrders) {
		return 0, domain.Errorf(domain.ErrRange, "encode polycyclic", "%d exponents for %d generators", len(vec), len(relativeOrders))
	}
	if _, err := OrderOf(relativeOrders); err != nil {
		return 0, err
	}
	var code int64
	for i, e := range vec {
		if e < 0 || e >= relativeOrders[i] {
			return 0, domain.Errorf(domain.ErrRange, "encode polycyclic", "exponent %d of generator %d outside [0, %d)", e, i+1, relativeOrders[i])
		}
		code = code*int64(relativeOrders[i]) + int64(e)
	}
	return code, nil
}
