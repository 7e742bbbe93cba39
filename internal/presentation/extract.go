// Package presentation derives human-readable presentations from
// reconstructed groups.
//
// For polycyclic groups the relators of the pc presentation are classified
// by syllable shape into power relations, relative power relations and
// conjugation relations; generators that are powers of their predecessor
// are then folded away so that only the generators listed in gens_used
// survive.
package presentation

import (
	"sort"
	"strings"

	"groupcore/internal/freegroup"
	"groupcore/pkg/domain"
)

type conjKey struct {
	conjugatee, conjugator int
}

type classification struct {
	powerExp map[int]int
	powerRHS map[int]freegroup.Word
	conj     map[conjKey]freegroup.Word
}

// classify sorts relators on f_1..f_n into power and conjugation relations.
// used is the set of surviving generator indices.
func classify(relators []freegroup.Word, n int, used map[int]bool) (classification, error) {
	const op = "classify relators"
	c := classification{
		powerExp: make(map[int]int),
		powerRHS: make(map[int]freegroup.Word),
		conj:     make(map[conjKey]freegroup.Word),
	}
	for _, rel := range relators {
		m := rel.NumberSyllables()
		if m == 0 {
			continue
		}
		g := rel.GeneratorSyllable(1)
		e := rel.ExponentSyllable(1)
		switch {
		case m == 1:
			if _, dup := c.powerExp[g]; dup {
				return c, domain.Errorf(domain.ErrInconsistentPresentation, op, "two values for f%d^p", g)
			}
			c.powerExp[g] = e
			c.powerRHS[g] = freegroup.One()
		case m >= 4 && e == -1 && rel.ExponentSyllable(2) == -1 &&
			rel.ExponentSyllable(3) == 1 && rel.GeneratorSyllable(3) == g:
			// a^-1 b^-1 a b X = 1 reads b^a = b X.
			b := rel.GeneratorSyllable(2)
			if m == 4 && rel.GeneratorSyllable(4) == b && rel.ExponentSyllable(4) == 1 {
				continue
			}
			key := conjKey{conjugatee: b, conjugator: g}
			if _, dup := c.conj[key]; dup {
				return c, domain.Errorf(domain.ErrInconsistentPresentation, op, "two values for f%d^f%d", b, g)
			}
			c.conj[key] = rel.SubSyllables(4, m)
		default:
			if _, dup := c.powerExp[g]; dup {
				return c, domain.Errorf(domain.ErrInconsistentPresentation, op, "two values for f%d^p", g)
			}
			rhs := rel.SubSyllables(2, m).Inverse()
			if g < n && !used[g+1] && !rhs.Equal(freegroup.Gen(g+1)) {
				return c, domain.Errorf(domain.ErrDataCorruption, op, "f%d^%d != f%d", g, e, g+1)
			}
			c.powerExp[g] = e
			c.powerRHS[g] = rhs
		}
	}
	return c, nil
}

// block is one surviving generator: the run of pcgs generators folded into
// it, its effective order and the right-hand side of its power relation.
type block struct {
	exp int
	rhs freegroup.Word
}

// Extract derives the presentation on ngens letters from the relators of a
// pc presentation on n generators. gensUsed lists the 1-based pcgs indices
// that survive elimination.
func Extract(relators []freegroup.Word, n int, gensUsed []int, ngens int) (Result, error) {
	const op = "extract presentation"
	if ngens > freegroup.MaxLetters {
		return Result{}, domain.Errorf(domain.ErrNotSupported, op, "%d generators exceed the %d letter names", ngens, freegroup.MaxLetters)
	}
	used := make(map[int]bool, len(gensUsed))
	order := append([]int(nil), gensUsed...)
	sort.Ints(order)
	position := make(map[int]int, len(order))
	for i, g := range order {
		used[g] = true
		position[g] = i + 1
	}

	c, err := classify(relators, n, used)
	if err != nil {
		return Result{}, err
	}

	// Rewrite f_i onto the letter of its block: a run f_i, f_{i+1}, ...
	// of eliminated generators becomes a, a^{r_i}, a^{r_i r_{i+1}}, ...
	images := make([]freegroup.Word, n)
	var blocks []block
	letter, curpow := 1, 1
	for i := 1; i <= n; i++ {
		e, ok := c.powerExp[i]
		if !ok {
			return Result{}, domain.Errorf(domain.ErrInconsistentPresentation, op, "no value given for %s^p", freegroup.Letters(i))
		}
		images[i-1] = freegroup.GenPow(letter, curpow)
		curpow *= e
		if i == n || used[i+1] {
			blocks = append(blocks, block{exp: curpow, rhs: c.powerRHS[i]})
			letter++
			curpow = 1
		}
	}
	if len(blocks) != ngens {
		return Result{}, domain.Errorf(domain.ErrInconsistentPresentation, op, "number of generators %d vs %d", len(blocks), ngens)
	}
	hom := freegroup.Hom{Images: images}
	format := func(w freegroup.Word) string { return freegroup.Format(w, freegroup.Letters) }

	var res Result
	for i := 1; i <= ngens; i++ {
		res.Generators = append(res.Generators, freegroup.Letters(i))
	}
	var pure []string
	for i, b := range blocks {
		if b.rhs.IsOne() {
			pure = append(pure, freegroup.Letters(i+1)+freegroup.FormatExponent(b.exp))
		}
	}
	if len(pure) > 0 {
		res.Relators = append(res.Relators, strings.Join(pure, "=")+"=1")
	}
	for i, b := range blocks {
		if !b.rhs.IsOne() {
			res.Relators = append(res.Relators, freegroup.Letters(i+1)+freegroup.FormatExponent(b.exp)+"="+format(hom.Image(b.rhs)))
		}
	}

	keys := make([]conjKey, 0, len(c.conj))
	for k := range c.conj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].conjugatee != keys[j].conjugatee {
			return keys[i].conjugatee < keys[j].conjugatee
		}
		return keys[i].conjugator < keys[j].conjugator
	})
	for _, k := range keys {
		if !used[k.conjugatee] || !used[k.conjugator] {
			continue
		}
		lhs := freegroup.Letters(position[k.conjugatee]) + "^" + freegroup.Letters(position[k.conjugator])
		res.Relators = append(res.Relators, lhs+"="+format(hom.Image(c.conj[k])))
	}
	return res, nil
}
