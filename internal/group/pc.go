package group

import (
	"groupcore/internal/codec"
	"groupcore/internal/freegroup"
	"groupcore/pkg/domain"
)

// PcGroup is a finite polycyclic group given by a pc presentation. Elements
// are normal-form exponent vectors g_1^e_1 ... g_n^e_n and products are
// computed by collection from the left.
type PcGroup struct {
	pres  PcPresentation
	order int64
	// conj[j][i] = g_j^{g_i} for i < j.
	conj [][]codec.Exponents
}

// NewPcGroup prepares the collector for p. Consistency of p is assumed.
func NewPcGroup(p PcPresentation) (*PcGroup, error) {
	order, err := codec.OrderOf(p.RelativeOrders)
	if err != nil {
		return nil, err
	}
	n := p.Len()
	g := &PcGroup{pres: p, order: order, conj: make([][]codec.Exponents, n)}
	for j := range g.conj {
		g.conj[j] = make([]codec.Exponents, j)
	}
	// g_j^{g_i} = g_j [g_j, g_i] lives in <g_{i+1}, ...>, so collecting it
	// only needs conjugates with a larger conjugator.
	for i := n - 1; i >= 0; i-- {
		for j := i + 1; j < n; j++ {
			v := make(codec.Exponents, n)
			g.mulGen(v, j)
			g.mulVec(v, p.Commutators[j][i])
			g.conj[j][i] = v
		}
	}
	return g, nil
}

// Presentation returns the underlying pc presentation.
func (g *PcGroup) Presentation() PcPresentation { return g.pres }

// RelativeOrders returns r_1..r_n.
func (g *PcGroup) RelativeOrders() []int { return append([]int(nil), g.pres.RelativeOrders...) }

// Len is the length of the pcgs.
func (g *PcGroup) Len() int { return g.pres.Len() }

// Order is the product of the relative orders.
func (g *PcGroup) Order() int64 { return g.order }

// Identity returns the all-zero exponent vector.
func (g *PcGroup) Identity() codec.Exponents { return make(codec.Exponents, g.Len()) }

// Generator returns g_i for 1 <= i <= Len().
func (g *PcGroup) Generator(i int) codec.Exponents {
	v := g.Identity()
	v[i-1] = 1
	return v
}

// ElementByCode decodes the element with index code.
func (g *PcGroup) ElementByCode(code int64) (codec.Exponents, error) {
	return codec.DecodePolycyclic(code, g.pres.RelativeOrders)
}

// Code returns the index of a normal-form element.
func (g *PcGroup) Code(x codec.Exponents) (int64, error) {
	return codec.EncodePolycyclic(x, g.pres.RelativeOrders)
}

// Multiply returns x*y in normal form.
func (g *PcGroup) Multiply(x, y codec.Exponents) codec.Exponents {
	v := x.Clone()
	g.mulVec(v, y)
	return v
}

// Power returns x^k; negative k raises the inverse.
func (g *PcGroup) Power(x codec.Exponents, k int64) (codec.Exponents, error) {
	base := x.Clone()
	if k < 0 {
		inv, err := g.Inverse(x)
		if err != nil {
			return nil, err
		}
		base, k = inv, -k
	}
	out := g.Identity()
	for ; k > 0; k >>= 1 {
		if k&1 == 1 {
			out = g.Multiply(out, base)
		}
		base = g.Multiply(base, base)
	}
	return out, nil
}

// ElementOrder returns the least k > 0 with x^k = 1.
func (g *PcGroup) ElementOrder(x codec.Exponents) (int64, error) {
	v := x.Clone()
	for k := int64(1); k <= g.order; k++ {
		if v.IsIdentity() {
			return k, nil
		}
		g.mulVec(v, x)
	}
	return 0, domain.Errorf(domain.ErrDataCorruption, "element order", "%v has no order dividing %d", x, g.order)
}

// Inverse returns x^-1.
func (g *PcGroup) Inverse(x codec.Exponents) (codec.Exponents, error) {
	k, err := g.ElementOrder(x)
	if err != nil {
		return nil, err
	}
	return g.Power(x, k-1)
}

// Word renders a normal-form element as a free-group word in f_1..f_n.
func (g *PcGroup) Word(x codec.Exponents) freegroup.Word {
	syls := make([]freegroup.Syllable, 0, len(x))
	for i, e := range x {
		syls = append(syls, freegroup.Syllable{Gen: i + 1, Exp: e})
	}
	return freegroup.NewWord(syls...)
}

// Relators returns the defining relators of the isomorphic finitely
// presented group on f_1..f_n: f_i^{r_i} w_i^-1 for each power relation,
// then Comm(f_i, f_j) c_ij for i < j where c_ij is the normal form of
// [g_j, g_i]. Trivial commutators yield bare commutator relators.
func (g *PcGroup) Relators() []freegroup.Word {
	n := g.Len()
	out := make([]freegroup.Word, 0, n+n*(n-1)/2)
	for i := 0; i < n; i++ {
		lhs := freegroup.GenPow(i+1, g.pres.RelativeOrders[i])
		out = append(out, lhs.Mul(g.Word(g.pres.Powers[i]).Inverse()))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := freegroup.Comm(freegroup.Gen(i+1), freegroup.Gen(j+1))
			out = append(out, c.Mul(g.Word(g.pres.Commutators[j][i])))
		}
	}
	return out
}

// mulVec multiplies v in place by the normal-form element w.
func (g *PcGroup) mulVec(v, w codec.Exponents) {
	for k, e := range w {
		for ; e > 0; e-- {
			g.mulGen(v, k)
		}
	}
}

// mulGen multiplies v in place by g_k:
//
//	g_1^v_1..g_k^v_k T g_k = g_1^v_1..g_k^{v_k+1} T^{g_k}
//
// with an overflowing g_k^{r_k} replaced by its power relation.
func (g *PcGroup) mulGen(v codec.Exponents, k int) {
	tail := append(codec.Exponents(nil), v[k+1:]...)
	for m := k + 1; m < len(v); m++ {
		v[m] = 0
	}
	v[k]++
	if v[k] == g.pres.RelativeOrders[k] {
		v[k] = 0
		g.mulVec(v, g.pres.Powers[k])
	}
	for off, e := range tail {
		for ; e > 0; e-- {
			g.mulVec(v, g.conj[k+1+off][k])
		}
	}
}
