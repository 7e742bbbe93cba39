// Package group rebuilds in-memory groups from their stored encodings.
package group

import (
	"slices"

	"groupcore/internal/codec"
	"groupcore/pkg/domain"
)

// Group is a reconstructed group. Exactly one of PC and Perm is set for the
// polycyclic and permutation kinds; both are nil for the trivial group.
type Group struct {
	Label string
	Kind  domain.EncodingKind
	Order int64
	PC    *PcGroup
	Perm  *PermGroup
}

// Reconstruct builds the group described by rec.
func Reconstruct(rec domain.GroupRecord) (*Group, error) {
	const op = "reconstruct"
	g := &Group{Label: rec.Label, Kind: rec.Kind(), Order: rec.Order}
	switch g.Kind {
	case domain.EncodingTrivial:
		return g, nil
	case domain.EncodingPolycyclic:
		code, err := ParsePcCode(rec.Encoding.PcCode)
		if err != nil {
			return nil, err
		}
		pres, err := DecodePcCode(code, rec.Order)
		if err != nil {
			return nil, err
		}
		if !slices.Equal(pres.RelativeOrders, rec.Encoding.RelativeOrders) {
			return nil, domain.Errorf(domain.ErrDataCorruption, op, "%s: code yields relative orders %v, record stores %v",
				rec.Label, pres.RelativeOrders, rec.Encoding.RelativeOrders)
		}
		if g.PC, err = NewPcGroup(pres); err != nil {
			return nil, err
		}
		return g, nil
	case domain.EncodingPermutation:
		gens := make([]codec.Permutation, 0, len(rec.Encoding.PermGens))
		for _, c := range rec.Encoding.PermGens {
			p, err := codec.DecodePermutation(c, rec.Encoding.PermDegree)
			if err != nil {
				return nil, err
			}
			gens = append(gens, p)
		}
		g.Perm = NewPermGroup(rec.Encoding.PermDegree, gens)
		return g, nil
	case domain.EncodingMatrix:
		return nil, domain.Errorf(domain.ErrNotSupported, op, "%s: matrix groups cannot be reconstructed", rec.Label)
	}
	return nil, domain.Errorf(domain.ErrInvalidRecord, op, "%s: unknown encoding kind %q", rec.Label, g.Kind)
}
