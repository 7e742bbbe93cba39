package testutil

import "groupcore/pkg/domain"

func pcGroup(label string, order int64, code string, rel []int, ngens int, used []int, name string) domain.GroupRecord {
	return domain.GroupRecord{
		Label:    label,
		Order:    order,
		Encoding: domain.Encoding{Kind: domain.EncodingPolycyclic, PcCode: code, RelativeOrders: rel},
		NGens:    ngens,
		GensUsed: used,
		Name:     name,
	}
}

// GroupTrivial is the group of order 1.
func GroupTrivial() domain.GroupRecord {
	return domain.GroupRecord{Label: "1.1", Order: 1, Encoding: domain.Encoding{Kind: domain.EncodingTrivial}, Name: "C1"}
}

// GroupC6 is the cyclic group of order 6 as C2 x C3.
func GroupC6() domain.GroupRecord { return pcGroup("6.2", 6, "2", []int{2, 3}, 2, []int{1, 2}, "C6") }

// GroupS3 is the symmetric group on three letters with b^a = b^2.
func GroupS3() domain.GroupRecord { return pcGroup("6.1", 6, "22", []int{2, 3}, 2, []int{1, 2}, "S3") }

// GroupC4 is cyclic of order 4 with the second pcgs element eliminated.
func GroupC4() domain.GroupRecord { return pcGroup("4.1", 4, "6", []int{2, 2}, 1, []int{1}, "C4") }

// GroupC2xC2 is the Klein four group.
func GroupC2xC2() domain.GroupRecord {
	return pcGroup("4.2", 4, "0", []int{2, 2}, 2, []int{1, 2}, "C2^2")
}

// GroupC8 is cyclic of order 8 on a single surviving generator.
func GroupC8() domain.GroupRecord { return pcGroup("8.1", 8, "184", []int{2, 2, 2}, 1, []int{1}, "C8") }

// GroupD4 is the dihedral group of order 8.
func GroupD4() domain.GroupRecord { return pcGroup("8.3", 8, "172", []int{2, 2, 2}, 2, []int{1, 2}, "D4") }

// GroupQ8 is the quaternion group.
func GroupQ8() domain.GroupRecord { return pcGroup("8.4", 8, "732", []int{2, 2, 2}, 2, []int{1, 2}, "Q8") }

// GroupA4 is the alternating group on four letters; no pcgs element is a
// power of another, so all three survive.
func GroupA4() domain.GroupRecord {
	return pcGroup("12.3", 12, "1841", []int{3, 2, 2}, 3, []int{1, 2, 3}, "A4")
}

// GroupS3Perm is S3 given by the permutations (1,2) and (1,2,3).
func GroupS3Perm() domain.GroupRecord {
	return domain.GroupRecord{
		Label:    "6.1",
		Order:    6,
		Encoding: domain.Encoding{Kind: domain.EncodingPermutation, PermGens: []int64{2, 3}, PermDegree: 3},
		NGens:    2,
		GensUsed: []int{1, 2},
		Name:     "S3",
	}
}

// GroupMatrix is SL(2,3), stored with a matrix encoding.
func GroupMatrix() domain.GroupRecord {
	return domain.GroupRecord{
		Label:    "24.3",
		Order:    24,
		Encoding: domain.Encoding{Kind: domain.EncodingMatrix},
		NGens:    2,
		GensUsed: []int{1, 2},
		Name:     "SL(2,3)",
	}
}

type sub struct {
	idx                                   string
	subgroup, quotient                    string
	order, quo                            int64
	normal, char, split, direct, max, min bool
	sylow                                 int64
	contains, special                     []string
}

func subgroups(ambient string, ambientOrder int64, subs ...sub) []domain.SubgroupRecord {
	out := make([]domain.SubgroupRecord, 0, len(subs))
	for _, s := range subs {
		rec := domain.SubgroupRecord{
			Label:          ambient + "." + s.idx,
			Ambient:        ambient,
			AmbientOrder:   ambientOrder,
			Subgroup:       s.subgroup,
			Quotient:       s.quotient,
			SubgroupOrder:  s.order,
			QuotientOrder:  s.quo,
			Normal:         s.normal,
			Characteristic: s.char,
			Split:          s.split,
			Direct:         s.direct,
			Maximal:        s.max,
			MinimalNormal:  s.min,
			Sylow:          s.sylow,
			Contains:       []string{},
			SpecialLabels:  []string{},
		}
		for _, c := range s.contains {
			rec.Contains = append(rec.Contains, ambient+"."+c)
		}
		for _, t := range s.special {
			rec.SpecialLabels = append(rec.SpecialLabels, ambient+"."+t)
		}
		out = append(out, rec)
	}
	return out
}

// S3Subgroups lists the subgroup classes of 6.1.
func S3Subgroups() []domain.SubgroupRecord {
	return subgroups("6.1", 6,
		sub{idx: "1", subgroup: "1.1", quotient: "6.1", order: 1, quo: 6, normal: true, char: true, split: true, direct: true,
			special: []string{"D1", "C1", "U1"}},
		sub{idx: "2", subgroup: "2.1", order: 2, quo: 3, max: true, sylow: 2, contains: []string{"1"}},
		sub{idx: "3", subgroup: "3.1", quotient: "2.1", order: 3, quo: 2, normal: true, char: true, split: true, max: true, min: true, sylow: 3,
			contains: []string{"1"}, special: []string{"F", "S", "D2", "C2", "L2"}},
		sub{idx: "4", subgroup: "6.1", quotient: "1.1", order: 6, quo: 1, normal: true, char: true, split: true, direct: true,
			contains: []string{"2", "3"}, special: []string{"R", "D3", "C3", "L1"}},
	)
}

// A4Subgroups lists the subgroup classes of 12.3.
func A4Subgroups() []domain.SubgroupRecord {
	return subgroups("12.3", 12,
		sub{idx: "1", subgroup: "1.1", quotient: "12.3", order: 1, quo: 12, normal: true, char: true, split: true, direct: true,
			special: []string{"D1", "C1", "U1"}},
		sub{idx: "2", subgroup: "2.1", order: 2, quo: 6, contains: []string{"1"}},
		sub{idx: "3", subgroup: "3.1", order: 3, quo: 4, max: true, sylow: 3, contains: []string{"1"}},
		sub{idx: "4", subgroup: "4.2", quotient: "3.1", order: 4, quo: 3, normal: true, char: true, split: true, max: true, min: true, sylow: 2,
			contains: []string{"2"}, special: []string{"F", "S", "D2", "C2", "L2"}},
		sub{idx: "5", subgroup: "12.3", quotient: "1.1", order: 12, quo: 1, normal: true, char: true, split: true, direct: true,
			contains: []string{"3", "4"}, special: []string{"R", "D3", "C3", "L1"}},
	)
}

// C6Subgroups lists the subgroups of 6.2; both proper non-trivial
// subgroups give direct decompositions.
func C6Subgroups() []domain.SubgroupRecord {
	return subgroups("6.2", 6,
		sub{idx: "1", subgroup: "1.1", quotient: "6.2", order: 1, quo: 6, normal: true, char: true, split: true, direct: true,
			special: []string{"D1", "C1"}},
		sub{idx: "2", subgroup: "2.1", quotient: "3.1", order: 2, quo: 3, normal: true, char: true, split: true, direct: true, max: true, min: true, sylow: 2,
			contains: []string{"1"}, special: []string{"C2"}},
		sub{idx: "3", subgroup: "3.1", quotient: "2.1", order: 3, quo: 2, normal: true, char: true, split: true, direct: true, max: true, min: true, sylow: 3,
			contains: []string{"1"}},
		sub{idx: "4", subgroup: "6.2", quotient: "1.1", order: 6, quo: 1, normal: true, char: true, split: true, direct: true,
			contains: []string{"2", "3"}, special: []string{"F", "R", "S", "D2", "C3", "L1", "U1"}},
	)
}

// Q8Subgroups lists the subgroups of 8.4; the centre is normal but not
// complemented.
func Q8Subgroups() []domain.SubgroupRecord {
	return subgroups("8.4", 8,
		sub{idx: "1", subgroup: "1.1", quotient: "8.4", order: 1, quo: 8, normal: true, char: true, split: true, direct: true,
			special: []string{"D1", "C1", "U0"}},
		sub{idx: "2", subgroup: "2.1", quotient: "4.2", order: 2, quo: 4, normal: true, char: true, min: true,
			contains: []string{"1"}, special: []string{"S", "D2", "C2", "L2", "U1"}},
		sub{idx: "3", subgroup: "4.1", quotient: "2.1", order: 4, quo: 2, normal: true, max: true,
			contains: []string{"2"}, special: []string{"C3"}},
		sub{idx: "4", subgroup: "8.4", quotient: "1.1", order: 8, quo: 1, normal: true, char: true, split: true, direct: true, sylow: 2,
			contains: []string{"3"}, special: []string{"F", "R", "D3", "C4", "L1", "U2"}},
	)
}

// S3Bundle is 6.1 with its subgroups, classes and characters.
func S3Bundle() domain.Bundle {
	return domain.Bundle{
		Group:     GroupS3(),
		Subgroups: S3Subgroups(),
		ConjugacyClasses: []domain.ConjugacyClassRecord{
			{Label: "6.1.1A", Group: "6.1", Size: 1, Order: 1, Representative: 0},
			{Label: "6.1.2A", Group: "6.1", Size: 3, Order: 2, Representative: 3},
			{Label: "6.1.3A", Group: "6.1", Size: 2, Order: 3, Representative: 1},
		},
		Characters: []domain.CharacterRecord{
			{Label: "6.1.1a", Group: "6.1", Dim: 1},
			{Label: "6.1.1b", Group: "6.1", Dim: 1},
			{Label: "6.1.2a", Group: "6.1", Dim: 2, Faithful: true},
		},
	}
}

// A4Bundle is 12.3 with its subgroups.
func A4Bundle() domain.Bundle { return domain.Bundle{Group: GroupA4(), Subgroups: A4Subgroups()} }

// C6Bundle is 6.2 with its subgroups.
func C6Bundle() domain.Bundle { return domain.Bundle{Group: GroupC6(), Subgroups: C6Subgroups()} }

// Q8Bundle is 8.4 with its subgroups.
func Q8Bundle() domain.Bundle { return domain.Bundle{Group: GroupQ8(), Subgroups: Q8Subgroups()} }

// Bundles returns every fixture bundle with distinct labels.
func Bundles() []domain.Bundle {
	return []domain.Bundle{S3Bundle(), A4Bundle(), C6Bundle(), Q8Bundle()}
}
