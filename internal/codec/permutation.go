package codec

import (
	"math"
	"strconv"
	"strings"

	"groupcore/pkg/domain"
)

// maxExactFactorial is the largest n with n! <= math.MaxInt64.
const maxExactFactorial = 20

// Permutation of the points 0..n-1; p[i] is the image of point i. Points are
// printed 1-based.
type Permutation []int

// Identity returns the identity permutation on n points.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Degree returns the number of points.
func (p Permutation) Degree() int { return len(p) }

// Image returns the image of the 0-based point i.
func (p Permutation) Image(i int) int { return p[i] }

// Compose applies p first, then q (right action, x^(pq) = (x^p)^q).
func (p Permutation) Compose(q Permutation) Permutation {
	out := make(Permutation, len(p))
	for i, x := range p {
		out[i] = q[x]
	}
	return out
}

// Inverse returns p^-1.
func (p Permutation) Inverse() Permutation {
	out := make(Permutation, len(p))
	for i, x := range p {
		out[x] = i
	}
	return out
}

// IsIdentity reports whether p fixes every point.
func (p Permutation) IsIdentity() bool {
	for i, x := range p {
		if i != x {
			return false
		}
	}
	return true
}

// Equal reports whether p and q are the same permutation.
func (p Permutation) Equal(q Permutation) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Key is a compact map key for p.
func (p Permutation) Key() string {
	var b strings.Builder
	for i, x := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}

// String renders p in disjoint cycle notation on points 1..n; the identity
// renders as "()".
func (p Permutation) String() string {
	seen := make([]bool, len(p))
	var b strings.Builder
	for start := range p {
		if seen[start] || p[start] == start {
			continue
		}
		b.WriteByte('(')
		for x := start; !seen[x]; x = p[x] {
			if x != start {
				b.WriteByte(',')
			}
			seen[x] = true
			b.WriteString(strconv.Itoa(x + 1))
		}
		b.WriteByte(')')
	}
	if b.Len() == 0 {
		return "()"
	}
	return b.String()
}

// Factorial returns n!, failing with ErrRange when it overflows int64.
func Factorial(n int) (int64, error) {
	if n < 0 {
		return 0, domain.Errorf(domain.ErrRange, "factorial", "negative degree %d", n)
	}
	if n > maxExactFactorial {
		return 0, domain.Errorf(domain.ErrRange, "factorial", "%d! overflows int64", n)
	}
	f := int64(1)
	for i := int64(2); i <= int64(n); i++ {
		f *= i
	}
	return f, nil
}

// DecodePermutation unranks code in lexicographic order of the permutations
// of n points (Lehmer code). Code 0 is the identity.
func DecodePermutation(code int64, n int) (Permutation, error) {
	if n < 0 {
		return nil, domain.Errorf(domain.ErrRange, "decode permutation", "negative degree %d", n)
	}
	if code < 0 {
		return nil, domain.Errorf(domain.ErrRange, "decode permutation", "code %d < 0", code)
	}
	if n <= maxExactFactorial {
		total, _ := Factorial(n)
		if code >= total {
			return nil, domain.Errorf(domain.ErrRange, "decode permutation", "code %d outside [0, %d!)", code, n)
		}
	}
	remaining := Identity(n)
	out := make(Permutation, 0, n)
	for i := 0; i < n; i++ {
		digit := 0
		if k := n - 1 - i; k <= maxExactFactorial {
			f, _ := Factorial(k)
			digit = int(code / f)
			code %= f
		}
		out = append(out, remaining[digit])
		remaining = append(remaining[:digit], remaining[digit+1:]...)
	}
	return out, nil
}

// EncodePermutation returns the lexicographic rank of p. It fails with
// ErrRange when the rank does not fit in an int64.
func EncodePermutation(p Permutation) (int64, error) {
	n := len(p)
	var code int64
	for i := 0; i < n; i++ {
		smaller := 0
		for j := i + 1; j < n; j++ {
			if p[j] < p[i] {
				smaller++
			}
		}
		if smaller == 0 {
			continue
		}
		f, err := Factorial(n - 1 - i)
		if err != nil {
			return 0, err
		}
		if f > (math.MaxInt64-code)/int64(smaller) {
			return 0, domain.Errorf(domain.ErrRange, "encode permutation", "rank overflows int64")
		}
		code += int64(smaller) * f
	}
	return code, nil
}
