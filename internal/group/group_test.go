package group

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"groupcore/internal/codec"
	"groupcore/pkg/domain"
	"groupcore/testutil"
)

func mustReconstruct(t *testing.T, rec domain.GroupRecord) *Group {
	t.Helper()
	g, err := Reconstruct(rec)
	if err != nil {
		t.Fatalf("reconstruct %s: %v", rec.Label, err)
	}
	return g
}

// orderProfile counts elements by element order.
func orderProfile(t *testing.T, g *PcGroup) map[int64]int {
	t.Helper()
	out := map[int64]int{}
	for code := int64(0); code < g.Order(); code++ {
		x, err := g.ElementByCode(code)
		if err != nil {
			t.Fatalf("element %d: %v", code, err)
		}
		k, err := g.ElementOrder(x)
		if err != nil {
			t.Fatalf("order of %v: %v", x, err)
		}
		out[k]++
	}
	return out
}

func TestReconstructPolycyclicOrderProfiles(t *testing.T) {
	cases := []struct {
		rec  domain.GroupRecord
		want map[int64]int
	}{
		{testutil.GroupC6(), map[int64]int{1: 1, 2: 1, 3: 2, 6: 2}},
		{testutil.GroupS3(), map[int64]int{1: 1, 2: 3, 3: 2}},
		{testutil.GroupC4(), map[int64]int{1: 1, 2: 1, 4: 2}},
		{testutil.GroupC2xC2(), map[int64]int{1: 1, 2: 3}},
		{testutil.GroupC8(), map[int64]int{1: 1, 2: 1, 4: 2, 8: 4}},
		{testutil.GroupD4(), map[int64]int{1: 1, 2: 5, 4: 2}},
		{testutil.GroupQ8(), map[int64]int{1: 1, 2: 1, 4: 6}},
		{testutil.GroupA4(), map[int64]int{1: 1, 2: 3, 3: 8}},
	}
	for _, tc := range cases {
		g := mustReconstruct(t, tc.rec)
		if g.Kind != domain.EncodingPolycyclic || g.PC == nil {
			t.Fatalf("%s: expected a pc group, got %+v", tc.rec.Label, g)
		}
		if diff := cmp.Diff(tc.want, orderProfile(t, g.PC)); diff != "" {
			t.Fatalf("%s element orders (-want +got):\n%s", tc.rec.Name, diff)
		}
	}
}

func TestPcGroupArithmetic(t *testing.T) {
	s3 := mustReconstruct(t, testutil.GroupS3()).PC
	a, b := s3.Generator(1), s3.Generator(2)
	ba := s3.Multiply(b, a)
	ab2 := s3.Multiply(a, s3.Multiply(b, b))
	if diff := cmp.Diff(ab2, ba); diff != "" {
		t.Fatalf("expected ba = ab^2 (-want +got):\n%s", diff)
	}
	inv, err := s3.Inverse(ba)
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	if !s3.Multiply(ba, inv).IsIdentity() {
		t.Fatalf("ba * (ba)^-1 is not the identity")
	}
	p, err := s3.Power(b, -1)
	if err != nil {
		t.Fatalf("power: %v", err)
	}
	if diff := cmp.Diff(codec.Exponents{0, 2}, p); diff != "" {
		t.Fatalf("b^-1 mismatch (-want +got):\n%s", diff)
	}
	code, err := s3.Code(ba)
	if err != nil || code != 5 {
		t.Fatalf("expected code 5 for ab^2, got %d (%v)", code, err)
	}
}

func TestQuaternionRelations(t *testing.T) {
	q8 := mustReconstruct(t, testutil.GroupQ8()).PC
	i, j := q8.Generator(1), q8.Generator(2)
	i2, _ := q8.Power(i, 2)
	j2, _ := q8.Power(j, 2)
	if diff := cmp.Diff(i2, j2); diff != "" {
		t.Fatalf("expected i^2 = j^2 (-want +got):\n%s", diff)
	}
	ij := q8.Multiply(i, j)
	ji := q8.Multiply(j, i)
	if diff := cmp.Diff(ij, q8.Multiply(ji, i2)); diff != "" {
		t.Fatalf("expected ij = ji i^2 (-want +got):\n%s", diff)
	}
}

func TestPcCodeRoundTrip(t *testing.T) {
	for _, rec := range []domain.GroupRecord{
		testutil.GroupC6(), testutil.GroupS3(), testutil.GroupC4(), testutil.GroupC2xC2(),
		testutil.GroupC8(), testutil.GroupD4(), testutil.GroupQ8(), testutil.GroupA4(),
	} {
		code, err := ParsePcCode(rec.Encoding.PcCode)
		if err != nil {
			t.Fatalf("%s: %v", rec.Label, err)
		}
		pres, err := DecodePcCode(code, rec.Order)
		if err != nil {
			t.Fatalf("%s decode: %v", rec.Label, err)
		}
		back, err := EncodePcCode(pres)
		if err != nil {
			t.Fatalf("%s encode: %v", rec.Label, err)
		}
		if back.Cmp(code) != 0 {
			t.Fatalf("%s: code %s re-encodes to %s", rec.Label, code, back)
		}
	}
}

func TestDecodePcCodeRelations(t *testing.T) {
	pres, err := DecodePcCode(big.NewInt(172), 8)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := NewPcPresentation([]int{2, 2, 2})
	want.Powers[1][2] = 1
	want.Commutators[1][0][2] = 1
	if diff := cmp.Diff(want, pres); diff != "" {
		t.Fatalf("D4 presentation mismatch (-want +got):\n%s", diff)
	}
}

// Codes decoded by hand from the documented layout: relative order digits
// first with r_1 least significant, then the relation flags with the first
// relation as the high bit, then right-hand side digits.
func TestDecodePcCodeDigitLayout(t *testing.T) {
	s3 := NewPcPresentation([]int{2, 3})
	s3.Commutators[1][0][1] = 1

	a4 := NewPcPresentation([]int{3, 2, 2})
	a4.Commutators[1][0][1] = 1
	a4.Commutators[1][0][2] = 1
	a4.Commutators[2][0][1] = 1

	cases := []struct {
		code  int64
		order int64
		want  PcPresentation
	}{
		{22, 6, s3},
		{1841, 12, a4},
	}
	for _, c := range cases {
		got, err := DecodePcCode(big.NewInt(c.code), c.order)
		if err != nil {
			t.Fatalf("decode %d: %v", c.code, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("code %d mismatch (-want +got):\n%s", c.code, diff)
		}
	}
}

func TestDecodePcCodeCorruption(t *testing.T) {
	// 1 << 5 sets an exponent digit beyond the last non-trivial relation.
	if _, err := DecodePcCode(big.NewInt(1<<5), 8); !errors.Is(err, domain.ErrDataCorruption) {
		t.Fatalf("expected ErrDataCorruption for trailing digits, got %v", err)
	}
	if _, err := DecodePcCode(big.NewInt(-1), 6); !errors.Is(err, domain.ErrRange) {
		t.Fatalf("expected ErrRange for negative code, got %v", err)
	}
	rec := testutil.GroupS3()
	rec.Encoding.RelativeOrders = []int{3, 2}
	if _, err := Reconstruct(rec); !errors.Is(err, domain.ErrDataCorruption) {
		t.Fatalf("expected ErrDataCorruption for mismatched relative orders, got %v", err)
	}
	rec = testutil.GroupS3()
	rec.Encoding.PcCode = "twenty-two"
	if _, err := Reconstruct(rec); !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for unparsable code, got %v", err)
	}
}

func TestPcGroupRelators(t *testing.T) {
	s3 := mustReconstruct(t, testutil.GroupS3()).PC
	var got []string
	for _, w := range s3.Relators() {
		got = append(got, w.String())
	}
	want := []string{"f1^2", "f2^3", "f1^{-1}f2^{-1}f1f2^2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("relators mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstructPermutation(t *testing.T) {
	g := mustReconstruct(t, testutil.GroupS3Perm())
	if g.Perm == nil || g.PC != nil {
		t.Fatalf("expected a permutation group, got %+v", g)
	}
	var gens []string
	for _, p := range g.Perm.Generators() {
		gens = append(gens, p.String())
	}
	if diff := cmp.Diff([]string{"(1,2)", "(1,2,3)"}, gens); diff != "" {
		t.Fatalf("generators mismatch (-want +got):\n%s", diff)
	}
	if g.Perm.Order() != 6 {
		t.Fatalf("expected closure of order 6, got %d", g.Perm.Order())
	}
	if len(g.Perm.Elements()) != 6 {
		t.Fatalf("memoized element list changed size")
	}
}

func TestReconstructTrivialAndMatrix(t *testing.T) {
	g := mustReconstruct(t, testutil.GroupTrivial())
	if g.Kind != domain.EncodingTrivial || g.PC != nil || g.Perm != nil {
		t.Fatalf("unexpected trivial group %+v", g)
	}
	if _, err := Reconstruct(testutil.GroupMatrix()); !errors.Is(err, domain.ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported for matrix groups, got %v", err)
	}
	bad := testutil.GroupS3Perm()
	bad.Encoding.PermGens = []int64{6}
	if _, err := Reconstruct(bad); !errors.Is(err, domain.ErrRange) {
		t.Fatalf("expected ErrRange for out-of-range generator code, got %v", err)
	}
}

func TestFactorization(t *testing.T) {
	got, err := Factorization(12)
	if err != nil {
		t.Fatalf("factorize: %v", err)
	}
	if diff := cmp.Diff([]PrimePower{{Prime: 2, Exponent: 2}, {Prime: 3, Exponent: 1}}, got); diff != "" {
		t.Fatalf("factorization mismatch (-want +got):\n%s", diff)
	}
	if got, _ := Factorization(1); len(got) != 0 {
		t.Fatalf("expected empty factorization of 1, got %v", got)
	}
	if _, err := Factorization(1 << 40); !errors.Is(err, domain.ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported for large orders, got %v", err)
	}
}
