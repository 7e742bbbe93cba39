// Package domain defines the stored records of the finite-groups repository,
// the repository contract and the error kinds used across groupcore.
package domain

import (
	"slices"
	"strings"
)

// EntityType identifies the kind of stored record.
type EntityType string

// Record kinds held by a repository.
const (
	EntityGroup          EntityType = "group"
	EntitySubgroup       EntityType = "subgroup"
	EntityConjugacyClass EntityType = "conjugacy_class"
	EntityCharacter      EntityType = "character"
	EntityBundle         EntityType = "bundle"
)

// EncodingKind identifies how a group's elements are stored.
type EncodingKind string

// Supported encoding kinds.
const (
	EncodingTrivial     EncodingKind = "trivial"
	EncodingPolycyclic  EncodingKind = "polycyclic"
	EncodingPermutation EncodingKind = "permutation"
	EncodingMatrix      EncodingKind = "matrix"
)

// Valid reports whether k is one of the known encoding kinds.
func (k EncodingKind) Valid() bool {
	switch k {
	case EncodingTrivial, EncodingPolycyclic, EncodingPermutation, EncodingMatrix:
		return true
	}
	return false
}

// Encoding is the compact element representation of a group.
//
// Polycyclic groups carry PcCode (a decimal integer of arbitrary size) and the
// relative orders of the pcgs. Permutation groups carry generator codes
// (lexicographic ranks in S_n) and the point count n.
type Encoding struct {
	Kind           EncodingKind `json:"kind"`
	PcCode         string       `json:"pc_code,omitempty"`
	RelativeOrders []int        `json:"relative_orders,omitempty"`
	PermGens       []int64      `json:"perm_gens,omitempty"`
	PermDegree     int          `json:"perm_degree,omitempty"`
}

// GroupRecord is one abstract group as stored upstream. Immutable once loaded.
type GroupRecord struct {
	Label    string   `json:"label"`
	Order    int64    `json:"order"`
	Encoding Encoding `json:"encoding"`
	NGens    int      `json:"ngens"`
	GensUsed []int    `json:"gens_used"`

	Name             string `json:"name,omitempty"`
	AutGroup         string `json:"aut_group,omitempty"`
	AutOrder         int64  `json:"aut_order,omitempty"`
	OuterGroup       string `json:"outer_group,omitempty"`
	OuterOrder       int64  `json:"outer_order,omitempty"`
	CenterLabel      string `json:"center_label,omitempty"`
	CentralQuotient  string `json:"central_quotient,omitempty"`
	CommutatorLabel  string `json:"commutator_label,omitempty"`
	AbelianQuotient  string `json:"abelian_quotient,omitempty"`
	FrattiniLabel    string `json:"frattini_label,omitempty"`
	FrattiniQuotient string `json:"frattini_quotient,omitempty"`
}

// Clone returns a deep copy so callers never share slices with a snapshot.
func (g GroupRecord) Clone() GroupRecord {
	cp := g
	cp.GensUsed = slices.Clone(g.GensUsed)
	cp.Encoding.RelativeOrders = slices.Clone(g.Encoding.RelativeOrders)
	cp.Encoding.PermGens = slices.Clone(g.Encoding.PermGens)
	return cp
}

// Kind returns the effective encoding: order 1 is always trivial.
func (g GroupRecord) Kind() EncodingKind {
	if g.Order == 1 {
		return EncodingTrivial
	}
	return g.Encoding.Kind
}

// Validate checks the invariants strict decoding cannot express.
func (g GroupRecord) Validate() error {
	const op = "validate group"
	if strings.TrimSpace(g.Label) == "" {
		return Errorf(ErrInvalidRecord, op, "label required")
	}
	if g.Order <= 0 {
		return Errorf(ErrInvalidRecord, op, "%s: order must be positive, got %d", g.Label, g.Order)
	}
	if !g.Encoding.Kind.Valid() {
		return Errorf(ErrInvalidRecord, op, "%s: unknown encoding kind %q", g.Label, g.Encoding.Kind)
	}
	switch g.Kind() {
	case EncodingPolycyclic:
		if g.Encoding.PcCode == "" {
			return Errorf(ErrInvalidRecord, op, "%s: pc_code required", g.Label)
		}
		if len(g.Encoding.RelativeOrders) == 0 {
			return Errorf(ErrInvalidRecord, op, "%s: relative_orders required", g.Label)
		}
		for i, idx := range g.GensUsed {
			if idx < 1 || idx > len(g.Encoding.RelativeOrders) {
				return Errorf(ErrInvalidRecord, op, "%s: gens_used[%d]=%d outside 1..%d", g.Label, i, idx, len(g.Encoding.RelativeOrders))
			}
		}
	case EncodingPermutation:
		if g.Encoding.PermDegree <= 0 {
			return Errorf(ErrInvalidRecord, op, "%s: perm_degree must be positive", g.Label)
		}
		if len(g.Encoding.PermGens) == 0 {
			return Errorf(ErrInvalidRecord, op, "%s: perm_gens required", g.Label)
		}
	}
	return nil
}

// SubgroupRecord is one subgroup of an ambient group. Immutable once loaded.
type SubgroupRecord struct {
	Label          string   `json:"label"`
	Ambient        string   `json:"ambient"`
	AmbientOrder   int64    `json:"ambient_order,omitempty"`
	Subgroup       string   `json:"subgroup,omitempty"`
	Quotient       string   `json:"quotient,omitempty"`
	SubgroupOrder  int64    `json:"subgroup_order"`
	QuotientOrder  int64    `json:"quotient_order"`
	Normal         bool     `json:"normal"`
	Characteristic bool     `json:"characteristic"`
	Split          bool     `json:"split"`
	Direct         bool     `json:"direct"`
	Maximal        bool     `json:"maximal"`
	MinimalNormal  bool     `json:"minimal_normal"`
	Sylow          int64    `json:"sylow"`
	Contains       []string `json:"contains"`
	SpecialLabels  []string `json:"special_labels"`
}

// Clone returns a deep copy of the record.
func (s SubgroupRecord) Clone() SubgroupRecord {
	cp := s
	cp.Contains = slices.Clone(s.Contains)
	cp.SpecialLabels = slices.Clone(s.SpecialLabels)
	return cp
}

// Validate checks the label convention and order bookkeeping.
func (s SubgroupRecord) Validate() error {
	const op = "validate subgroup"
	if strings.TrimSpace(s.Label) == "" || strings.TrimSpace(s.Ambient) == "" {
		return Errorf(ErrInvalidRecord, op, "label and ambient required")
	}
	if !strings.HasPrefix(s.Label, s.Ambient+".") {
		return Errorf(ErrInvalidRecord, op, "%s: label does not extend ambient %s", s.Label, s.Ambient)
	}
	if s.SubgroupOrder <= 0 || s.QuotientOrder <= 0 {
		return Errorf(ErrInvalidRecord, op, "%s: subgroup and quotient orders must be positive", s.Label)
	}
	if s.Sylow < 0 {
		return Errorf(ErrInvalidRecord, op, "%s: negative sylow prime", s.Label)
	}
	return nil
}

// ConjugacyClassRecord is passthrough data for the view layer.
type ConjugacyClassRecord struct {
	Label          string `json:"label"`
	Group          string `json:"group"`
	Size           int64  `json:"size"`
	Order          int64  `json:"order"`
	Representative int64  `json:"representative"`
}

// CharacterRecord is passthrough data for the view layer.
type CharacterRecord struct {
	Label    string `json:"label"`
	Group    string `json:"group"`
	Dim      int    `json:"dim"`
	Faithful bool   `json:"faithful"`
}
