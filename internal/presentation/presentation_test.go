package presentation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"groupcore/internal/freegroup"
	"groupcore/internal/group"
	"groupcore/pkg/domain"
	"groupcore/testutil"
)

func latexOf(t *testing.T, rec domain.GroupRecord) string {
	t.Helper()
	g, err := group.Reconstruct(rec)
	if err != nil {
		t.Fatalf("reconstruct %s: %v", rec.Label, err)
	}
	res, err := ForGroup(g, rec)
	if err != nil {
		t.Fatalf("presentation of %s: %v", rec.Label, err)
	}
	return res.Latex()
}

func TestPolycyclicPresentations(t *testing.T) {
	c4Split := testutil.GroupC4()
	c4Split.NGens, c4Split.GensUsed = 2, []int{1, 2}
	cases := []struct {
		name string
		rec  domain.GroupRecord
		want string
	}{
		{"C6", testutil.GroupC6(), `\langle a, b \mid a^2=b^3=1 \rangle`},
		{"S3", testutil.GroupS3(), `\langle a, b \mid a^2=b^3=1, b^a=b^2 \rangle`},
		{"C4", testutil.GroupC4(), `\langle a \mid a^4=1 \rangle`},
		{"C4 unfolded", c4Split, `\langle a, b \mid b^2=1, a^2=b \rangle`},
		{"C2^2", testutil.GroupC2xC2(), `\langle a, b \mid a^2=b^2=1 \rangle`},
		{"C8", testutil.GroupC8(), `\langle a \mid a^8=1 \rangle`},
		{"D4", testutil.GroupD4(), `\langle a, b \mid a^2=b^4=1, b^a=b^3 \rangle`},
		{"Q8", testutil.GroupQ8(), `\langle a, b \mid b^4=1, a^2=b^2, b^a=b^3 \rangle`},
		{"A4", testutil.GroupA4(), `\langle a, b, c \mid a^3=b^2=c^2=1, b^a=b^2c, c^a=cb \rangle`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := latexOf(t, tc.rec); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

// A pure power on a generator whose successor was eliminated is not
// cross-checked: C2 x C2 folded onto one letter reads as C4.
func TestPurePowerWithEliminatedSuccessorIsNotChecked(t *testing.T) {
	rec := testutil.GroupC2xC2()
	rec.NGens, rec.GensUsed = 1, []int{1}
	if got, want := latexOf(t, rec), `\langle a \mid a^4=1 \rangle`; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestPermutationAndTrivialPresentations(t *testing.T) {
	if got, want := latexOf(t, testutil.GroupS3Perm()), `\langle (1,2), (1,2,3) \rangle`; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	g, err := group.Reconstruct(testutil.GroupTrivial())
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	res, err := ForGroup(g, testutil.GroupTrivial())
	if err != nil {
		t.Fatalf("trivial presentation: %v", err)
	}
	if len(res.Generators) != 0 || len(res.Relators) != 0 {
		t.Fatalf("expected an empty presentation, got %+v", res)
	}
	if _, err := ForGroup(&group.Group{Kind: domain.EncodingMatrix}, testutil.GroupMatrix()); !errors.Is(err, domain.ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func f(gen, exp int) freegroup.Syllable { return freegroup.Syllable{Gen: gen, Exp: exp} }

func TestExtractErrors(t *testing.T) {
	cases := []struct {
		name     string
		relators []freegroup.Word
		n        int
		used     []int
		ngens    int
		want     error
	}{
		{
			name:     "duplicate power",
			relators: []freegroup.Word{freegroup.GenPow(1, 2), freegroup.GenPow(1, 3), freegroup.GenPow(2, 3)},
			n:        2,
			used:     []int{1, 2},
			ngens:    2,
			want:     domain.ErrInconsistentPresentation,
		},
		{
			name: "duplicate conjugation",
			relators: []freegroup.Word{
				freegroup.GenPow(1, 2), freegroup.GenPow(2, 3),
				freegroup.NewWord(f(1, -1), f(2, -1), f(1, 1), f(2, 2)),
				freegroup.NewWord(f(1, -1), f(2, -1), f(1, 1), f(2, 3)),
			},
			n:     2,
			used:  []int{1, 2},
			ngens: 2,
			want:  domain.ErrInconsistentPresentation,
		},
		{
			name:     "eliminated generator mismatch",
			relators: []freegroup.Word{freegroup.NewWord(f(1, 2), f(3, -1)), freegroup.GenPow(2, 2), freegroup.GenPow(3, 2)},
			n:        3,
			used:     []int{1, 3},
			ngens:    2,
			want:     domain.ErrDataCorruption,
		},
		{
			name:     "missing power",
			relators: []freegroup.Word{freegroup.GenPow(1, 2)},
			n:        2,
			used:     []int{1, 2},
			ngens:    2,
			want:     domain.ErrInconsistentPresentation,
		},
		{
			name:     "generator count",
			relators: []freegroup.Word{freegroup.GenPow(1, 2), freegroup.GenPow(2, 3)},
			n:        2,
			used:     []int{1, 2},
			ngens:    3,
			want:     domain.ErrInconsistentPresentation,
		},
		{
			name:     "too many generators for letters",
			relators: []freegroup.Word{freegroup.GenPow(1, 2)},
			n:        1,
			used:     []int{1},
			ngens:    27,
			want:     domain.ErrNotSupported,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Extract(tc.relators, tc.n, tc.used, tc.ngens); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestExtractResultShape(t *testing.T) {
	s3, err := group.Reconstruct(testutil.GroupS3())
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	res, err := Extract(s3.PC.Relators(), 2, []int{1, 2}, 2)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := Result{Generators: []string{"a", "b"}, Relators: []string{"a^2=b^3=1", "b^a=b^2"}}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteElement(t *testing.T) {
	d4, err := group.Reconstruct(testutil.GroupD4())
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	cases := map[int64]string{0: "1", 4: "a", 2: "b", 7: "abf3", 1: "f3"}
	for code, want := range cases {
		got, err := WriteElement(d4.PC, 2, code)
		if err != nil {
			t.Fatalf("code %d: %v", code, err)
		}
		if got != want {
			t.Fatalf("code %d: expected %s, got %s", code, want, got)
		}
	}
	if _, err := WriteElement(d4.PC, 2, 8); !errors.Is(err, domain.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}
