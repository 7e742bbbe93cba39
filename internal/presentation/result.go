package presentation

import (
	"slices"
	"strconv"
	"strings"

	"groupcore/internal/freegroup"
	"groupcore/internal/group"
	"groupcore/pkg/domain"
)

// Result is a presentation: ordered generator symbols and relator strings.
type Result struct {
	Generators []string `json:"generators"`
	Relators   []string `json:"relators"`
}

// Clone returns a copy that shares no slices with r.
func (r Result) Clone() Result {
	return Result{Generators: slices.Clone(r.Generators), Relators: slices.Clone(r.Relators)}
}

// Latex renders \langle gens \mid relators \rangle, dropping the bar when
// there are no relators.
func (r Result) Latex() string {
	gens := strings.Join(r.Generators, ", ")
	if len(r.Relators) == 0 {
		return `\langle ` + gens + ` \rangle`
	}
	return `\langle ` + gens + ` \mid ` + strings.Join(r.Relators, ", ") + ` \rangle`
}

// ForGroup derives the presentation of a reconstructed group. Permutation
// groups list their generators without relators.
func ForGroup(g *group.Group, rec domain.GroupRecord) (Result, error) {
	switch g.Kind {
	case domain.EncodingTrivial:
		return Result{}, nil
	case domain.EncodingPolycyclic:
		return Extract(g.PC.Relators(), g.PC.Len(), rec.GensUsed, rec.NGens)
	case domain.EncodingPermutation:
		var res Result
		for _, p := range g.Perm.Generators() {
			res.Generators = append(res.Generators, p.String())
		}
		return res, nil
	}
	return Result{}, domain.Errorf(domain.ErrNotSupported, "presentation", "%s: no presentation for %s groups", rec.Label, g.Kind)
}

// WriteElement renders the element with the given code as a word in the
// pcgs. The first ngens generators print as letters, the rest as f<i>.
func WriteElement(g *group.PcGroup, ngens int, code int64) (string, error) {
	x, err := g.ElementByCode(code)
	if err != nil {
		return "", err
	}
	name := func(gen int) string {
		if gen <= ngens {
			return freegroup.Letters(gen)
		}
		return "f" + strconv.Itoa(gen)
	}
	return freegroup.Format(g.Word(x), name), nil
}
