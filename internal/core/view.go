package core

import (
	"slices"
	"sync"

	"groupcore/internal/group"
	"groupcore/internal/presentation"
	"groupcore/internal/subgroups"
	"groupcore/pkg/domain"
)

// lazy computes a value once; the error is cached with it.
type lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

func (l *lazy[T]) get(fn func() (T, error)) (T, error) {
	l.once.Do(func() { l.val, l.err = fn() })
	return l.val, l.err
}

// Special holds the labels of the special subgroups; absent ones are empty.
type Special struct {
	Fitting string `json:"fitting,omitempty"`
	Radical string `json:"radical,omitempty"`
	Socle   string `json:"socle,omitempty"`
}

// Series holds the four normal series as label lists.
type Series struct {
	Derived      []string `json:"derived"`
	Chief        []string `json:"chief"`
	LowerCentral []string `json:"lower_central"`
	UpperCentral []string `json:"upper_central"`
}

func (s Series) clone() Series {
	return Series{
		Derived:      slices.Clone(s.Derived),
		Chief:        slices.Clone(s.Chief),
		LowerCentral: slices.Clone(s.LowerCentral),
		UpperCentral: slices.Clone(s.UpperCentral),
	}
}

// Products lists the subgroups giving product decompositions.
type Products struct {
	Direct     []domain.SubgroupRecord `json:"direct"`
	Semidirect []domain.SubgroupRecord `json:"semidirect"`
	Nonsplit   []domain.SubgroupRecord `json:"nonsplit"`
	Most       int                     `json:"most"`
}

func cloneRecords(recs []domain.SubgroupRecord) []domain.SubgroupRecord {
	if recs == nil {
		return nil
	}
	out := make([]domain.SubgroupRecord, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}

func (p Products) clone() Products {
	return Products{
		Direct:     cloneRecords(p.Direct),
		Semidirect: cloneRecords(p.Semidirect),
		Nonsplit:   cloneRecords(p.Nonsplit),
		Most:       p.Most,
	}
}

// GroupView is an immutable snapshot of one group's records. Every derived
// attribute is computed on first use; accessors hand out copies.
type GroupView struct {
	record  domain.GroupRecord
	subs    subgroups.Set
	classes []domain.ConjugacyClassRecord
	chars   []domain.CharacterRecord

	group        lazy[*group.Group]
	presentation lazy[presentation.Result]
	factors      lazy[[]group.PrimePower]
	lattice      lazy[subgroups.Lattice]
	byOrder      lazy[subgroups.OrderLattice]
	series       lazy[Series]
	seriesTable  lazy[[]subgroups.SeriesRow]
	sylow        lazy[[]subgroups.Sylow]
	special      lazy[Special]
	products     lazy[Products]
}

// NewGroupView wraps loaded records. Subgroup records of other ambient
// groups are ignored.
func NewGroupView(rec domain.GroupRecord, subs []domain.SubgroupRecord, classes []domain.ConjugacyClassRecord, chars []domain.CharacterRecord) *GroupView {
	return &GroupView{
		record:  rec.Clone(),
		subs:    subgroups.NewSet(rec.Label, subs),
		classes: append([]domain.ConjugacyClassRecord(nil), classes...),
		chars:   append([]domain.CharacterRecord(nil), chars...),
	}
}

// Record returns a copy of the group record.
func (v *GroupView) Record() domain.GroupRecord { return v.record.Clone() }

// Label is the group label.
func (v *GroupView) Label() string { return v.record.Label }

// Order is the group order.
func (v *GroupView) Order() int64 { return v.record.Order }

// Subgroups is the subgroup record set.
func (v *GroupView) Subgroups() subgroups.Set { return v.subs }

// ConjugacyClasses returns the stored classes.
func (v *GroupView) ConjugacyClasses() []domain.ConjugacyClassRecord {
	return append([]domain.ConjugacyClassRecord(nil), v.classes...)
}

// Characters returns the stored characters.
func (v *GroupView) Characters() []domain.CharacterRecord {
	return append([]domain.CharacterRecord(nil), v.chars...)
}

// Group reconstructs the group from its encoding.
func (v *GroupView) Group() (*group.Group, error) {
	return v.group.get(func() (*group.Group, error) { return group.Reconstruct(v.record) })
}

// Presentation derives the presentation. Consistency failures are returned
// as is.
func (v *GroupView) Presentation() (presentation.Result, error) {
	res, err := v.presentation.get(func() (presentation.Result, error) {
		g, err := v.Group()
		if err != nil {
			return presentation.Result{}, err
		}
		return presentation.ForGroup(g, v.record)
	})
	return res.Clone(), err
}

// WriteElement renders the element with the given code over the pcgs.
func (v *GroupView) WriteElement(code int64) (string, error) {
	g, err := v.Group()
	if err != nil {
		return "", err
	}
	if g.PC == nil {
		return "", domain.Errorf(domain.ErrNotSupported, "write element", "%s is not polycyclic", v.record.Label)
	}
	return presentation.WriteElement(g.PC, v.record.NGens, code)
}

// Factorization is the prime factorization of the order.
func (v *GroupView) Factorization() ([]group.PrimePower, error) {
	terms, err := v.factors.get(func() ([]group.PrimePower, error) { return group.Factorization(v.record.Order) })
	return slices.Clone(terms), err
}

// Lattice layers the subgroup lattice.
func (v *GroupView) Lattice() subgroups.Lattice {
	lat, _ := v.lattice.get(func() (subgroups.Lattice, error) { return subgroups.BuildLattice(v.subs), nil })
	return lat.Clone()
}

// LayersByOrder groups subgroups by order.
func (v *GroupView) LayersByOrder() subgroups.OrderLattice {
	lat, _ := v.byOrder.get(func() (subgroups.OrderLattice, error) { return subgroups.LayersByOrder(v.subs), nil })
	return lat.Clone()
}

// Series returns the derived, chief, lower and upper central series.
func (v *GroupView) Series() Series {
	s, _ := v.series.get(func() (Series, error) {
		return Series{
			Derived:      subgroups.DerivedSeries(v.subs),
			Chief:        subgroups.ChiefSeries(v.subs),
			LowerCentral: subgroups.LowerCentralSeries(v.subs),
			UpperCentral: subgroups.UpperCentralSeries(v.subs),
		}, nil
	})
	return s.clone()
}

// SeriesTable returns the series as tabulated on the group page.
func (v *GroupView) SeriesTable() []subgroups.SeriesRow {
	rows, _ := v.seriesTable.get(func() ([]subgroups.SeriesRow, error) { return subgroups.SeriesTable(v.subs), nil })
	return subgroups.CloneSeriesRows(rows)
}

// Sylow lists the tagged Sylow subgroups by ascending prime.
func (v *GroupView) Sylow() ([]subgroups.Sylow, error) {
	syl, err := v.sylow.get(func() ([]subgroups.Sylow, error) { return subgroups.SylowSubgroups(v.record.Order, v.subs) })
	return slices.Clone(syl), err
}

// Special resolves the Fitting subgroup, radical and socle.
func (v *GroupView) Special() Special {
	sp, _ := v.special.get(func() (Special, error) {
		var out Special
		out.Fitting, _ = subgroups.Fitting(v.subs)
		out.Radical, _ = subgroups.Radical(v.subs)
		out.Socle, _ = subgroups.Socle(v.subs)
		return out, nil
	})
	return sp
}

// Products lists the direct, semidirect and nonsplit decompositions.
func (v *GroupView) Products() Products {
	p, _ := v.products.get(func() (Products, error) {
		return Products{
			Direct:     subgroups.DirectProducts(v.subs),
			Semidirect: subgroups.SemidirectProducts(v.subs),
			Nonsplit:   subgroups.NonsplitProducts(v.subs),
			Most:       subgroups.MostProductExpressions(v.subs),
		}, nil
	})
	return p.clone()
}

// AutGroup is the label of the automorphism group, if computed.
func (v *GroupView) AutGroup() Outcome[string] { return stored(v.record.AutGroup) }

// AutOrder is the order of the automorphism group, if computed.
func (v *GroupView) AutOrder() Outcome[int64] { return stored(v.record.AutOrder) }

// AutOrderFactorization factors the automorphism group order.
func (v *GroupView) AutOrderFactorization() Outcome[[]group.PrimePower] {
	if v.record.AutOrder == 0 {
		return Outcome[[]group.PrimePower]{}
	}
	return derived(group.Factorization(v.record.AutOrder))
}

// OuterGroup is the label of the outer automorphism group, if computed.
func (v *GroupView) OuterGroup() Outcome[string] { return stored(v.record.OuterGroup) }

// Center is the label of the centre, if computed.
func (v *GroupView) Center() Outcome[string] { return stored(v.record.CenterLabel) }

// CentralQuotient is the label of G/Z(G), if computed.
func (v *GroupView) CentralQuotient() Outcome[string] { return stored(v.record.CentralQuotient) }

// Commutator is the label of the commutator subgroup, if computed.
func (v *GroupView) Commutator() Outcome[string] { return stored(v.record.CommutatorLabel) }

// AbelianQuotient is the label of the abelianization, if computed.
func (v *GroupView) AbelianQuotient() Outcome[string] { return stored(v.record.AbelianQuotient) }

// Frattini is the label of the Frattini subgroup, if computed.
func (v *GroupView) Frattini() Outcome[string] { return stored(v.record.FrattiniLabel) }

// FrattiniQuotient is the label of G/Phi(G), if computed.
func (v *GroupView) FrattiniQuotient() Outcome[string] { return stored(v.record.FrattiniQuotient) }
