package group

import (
	"sync"

	"groupcore/internal/codec"
)

// PermGroup is the subgroup of S_n generated by a list of permutations.
// The element list is computed on first use and shared afterwards.
type PermGroup struct {
	degree int
	gens   []codec.Permutation

	once  sync.Once
	elems []codec.Permutation
}

// NewPermGroup returns the group generated by gens on degree points.
func NewPermGroup(degree int, gens []codec.Permutation) *PermGroup {
	cp := make([]codec.Permutation, len(gens))
	for i, p := range gens {
		cp[i] = append(codec.Permutation(nil), p...)
	}
	return &PermGroup{degree: degree, gens: cp}
}

// Degree is the number of points acted on.
func (g *PermGroup) Degree() int { return g.degree }

// Generators returns the generating permutations in stored order.
func (g *PermGroup) Generators() []codec.Permutation {
	return append([]codec.Permutation(nil), g.gens...)
}

// Multiply composes p then q.
func (g *PermGroup) Multiply(p, q codec.Permutation) codec.Permutation { return p.Compose(q) }

// Elements enumerates the group by closing the identity under right
// multiplication by the generators.
func (g *PermGroup) Elements() []codec.Permutation {
	g.once.Do(func() {
		id := codec.Identity(g.degree)
		seen := map[string]bool{id.Key(): true}
		elems := []codec.Permutation{id}
		for next := 0; next < len(elems); next++ {
			for _, s := range g.gens {
				p := elems[next].Compose(s)
				if key := p.Key(); !seen[key] {
					seen[key] = true
					elems = append(elems, p)
				}
			}
		}
		g.elems = elems
	})
	return g.elems
}

// Order is the number of elements.
func (g *PermGroup) Order() int64 { return int64(len(g.Elements())) }
