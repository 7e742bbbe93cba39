package subgroups

import (
	"slices"
	"sort"
)

// Edge is one covering pair: Child is directly contained in Parent.
type Edge struct {
	Child  string `json:"child"`
	Parent string `json:"parent"`
}

// Lattice is the breadth-first layering of the subgroup lattice from the
// top. Complete is false when containment data ran out before every record
// was reached.
type Lattice struct {
	Layers   [][]string `json:"layers"`
	Edges    []Edge     `json:"edges"`
	Complete bool       `json:"complete"`
}

// BuildLattice layers s starting from its top label. Layer k+1 holds the
// unseen labels covered by layer k. Labels in contains that are not records
// of s are skipped when layering but still produce edges.
func BuildLattice(s Set) Lattice {
	var lat Lattice
	top, ok := s.Top()
	if !ok {
		lat.Complete = true
		return lat
	}
	lat.Layers = [][]string{{top}}
	seen := map[string]bool{top: true}
	for len(seen) < s.Len() {
		var next []string
		for _, label := range lat.Layers[len(lat.Layers)-1] {
			rec, _ := s.Get(label)
			for _, h := range rec.Contains {
				if seen[h] || !s.Has(h) {
					continue
				}
				seen[h] = true
				next = append(next, h)
			}
		}
		if len(next) == 0 {
			break
		}
		lat.Layers = append(lat.Layers, next)
	}
	lat.Complete = len(seen) == s.Len()
	lat.Edges = edges(s)
	return lat
}

// Clone returns a copy that shares no slices with l.
func (l Lattice) Clone() Lattice {
	out := Lattice{Edges: slices.Clone(l.Edges), Complete: l.Complete}
	if l.Layers != nil {
		out.Layers = make([][]string, len(l.Layers))
		for i, layer := range l.Layers {
			out.Layers[i] = slices.Clone(layer)
		}
	}
	return out
}

func edges(s Set) []Edge {
	var out []Edge
	for _, rec := range s.records {
		for _, h := range rec.Contains {
			out = append(out, Edge{Child: h, Parent: rec.Label})
		}
	}
	return out
}

// OrderLayer groups the subgroups of one order.
type OrderLayer struct {
	Order  int64    `json:"order"`
	Labels []string `json:"labels"`
}

// OrderLattice lays subgroups out by order instead of by covering depth.
type OrderLattice struct {
	Layers []OrderLayer `json:"layers"`
	Edges  []Edge       `json:"edges"`
}

// Clone returns a copy that shares no slices with l.
func (l OrderLattice) Clone() OrderLattice {
	out := OrderLattice{Edges: slices.Clone(l.Edges)}
	if l.Layers != nil {
		out.Layers = make([]OrderLayer, len(l.Layers))
		for i, layer := range l.Layers {
			out.Layers[i] = OrderLayer{Order: layer.Order, Labels: slices.Clone(layer.Labels)}
		}
	}
	return out
}

// LayersByOrder groups s by subgroup order, smallest first.
func LayersByOrder(s Set) OrderLattice {
	byOrder := make(map[int64][]string)
	for _, rec := range s.records {
		byOrder[rec.SubgroupOrder] = append(byOrder[rec.SubgroupOrder], rec.Label)
	}
	orders := make([]int64, 0, len(byOrder))
	for o := range byOrder {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i] < orders[j] })
	out := OrderLattice{Edges: edges(s)}
	for _, o := range orders {
		out.Layers = append(out.Layers, OrderLayer{Order: o, Labels: byOrder[o]})
	}
	return out
}
