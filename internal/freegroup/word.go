// Package freegroup implements freely reduced words in a free group on
// generators numbered from 1, stored as syllables.
package freegroup

import (
	"strconv"
	"strings"
)

// Syllable is a maximal run gen^exp of one generator inside a word.
type Syllable struct {
	Gen int
	Exp int
}

// Word is a freely reduced word: no zero exponents and no two adjacent
// syllables on the same generator. The zero value is the identity.
type Word struct {
	syl []Syllable
}

// One returns the identity word.
func One() Word { return Word{} }

// Gen returns the word consisting of generator i (1-based).
func Gen(i int) Word { return Word{syl: []Syllable{{Gen: i, Exp: 1}}} }

// GenPow returns gen^exp.
func GenPow(gen, exp int) Word { return NewWord(Syllable{Gen: gen, Exp: exp}) }

// NewWord reduces the given syllables into a word.
func NewWord(syls ...Syllable) Word {
	var out []Syllable
	for _, s := range syls {
		out = push(out, s)
	}
	return Word{syl: out}
}

func push(out []Syllable, s Syllable) []Syllable {
	if s.Exp == 0 {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Gen == s.Gen {
		merged := out[n-1].Exp + s.Exp
		if merged == 0 {
			return out[:n-1]
		}
		out[n-1].Exp = merged
		return out
	}
	return append(out, s)
}

// Mul returns the reduced product w * others[0] * others[1] ...
func (w Word) Mul(others ...Word) Word {
	out := append([]Syllable(nil), w.syl...)
	for _, o := range others {
		for _, s := range o.syl {
			out = push(out, s)
		}
	}
	return Word{syl: out}
}

// Inverse returns w^-1.
func (w Word) Inverse() Word {
	out := make([]Syllable, len(w.syl))
	for i, s := range w.syl {
		out[len(w.syl)-1-i] = Syllable{Gen: s.Gen, Exp: -s.Exp}
	}
	return Word{syl: out}
}

// Pow returns w^n for any integer n.
func (w Word) Pow(n int) Word {
	base := w
	if n < 0 {
		base, n = w.Inverse(), -n
	}
	out := One()
	for i := 0; i < n; i++ {
		out = out.Mul(base)
	}
	return out
}

// Comm returns the commutator a^-1 b^-1 a b.
func Comm(a, b Word) Word {
	return a.Inverse().Mul(b.Inverse(), a, b)
}

// IsOne reports whether w is the identity.
func (w Word) IsOne() bool { return len(w.syl) == 0 }

// Equal reports whether two reduced words are identical.
func (w Word) Equal(o Word) bool {
	if len(w.syl) != len(o.syl) {
		return false
	}
	for i := range w.syl {
		if w.syl[i] != o.syl[i] {
			return false
		}
	}
	return true
}

// NumberSyllables returns the number of syllables.
func (w Word) NumberSyllables() int { return len(w.syl) }

// Syllables returns a copy of the syllables.
func (w Word) Syllables() []Syllable { return append([]Syllable(nil), w.syl...) }

// GeneratorSyllable returns the generator of the k-th syllable (1-based).
func (w Word) GeneratorSyllable(k int) int { return w.syl[k-1].Gen }

// ExponentSyllable returns the exponent of the k-th syllable (1-based).
func (w Word) ExponentSyllable(k int) int { return w.syl[k-1].Exp }

// SubSyllables returns syllables from..to (1-based, inclusive). An empty
// range yields the identity.
func (w Word) SubSyllables(from, to int) Word {
	if from < 1 {
		from = 1
	}
	if to > len(w.syl) {
		to = len(w.syl)
	}
	if from > to {
		return One()
	}
	return Word{syl: append([]Syllable(nil), w.syl[from-1:to]...)}
}

// Namer maps a 1-based generator number to its printed symbol.
type Namer func(gen int) string

// MaxLetters is the number of generators Letters names alphabetically.
const MaxLetters = 26

// Letters names generators a, b, ..., z and falls back to f<i> beyond
// MaxLetters.
func Letters(gen int) string {
	if gen < 1 || gen > MaxLetters {
		return "f" + strconv.Itoa(gen)
	}
	return string(rune('a' + gen - 1))
}

// Indexed names generators f1, f2, ...
func Indexed(prefix string) Namer {
	return func(gen int) string { return prefix + strconv.Itoa(gen) }
}

// Format renders w without multiplication markers. Exponent 1 is elided;
// negative or multi-digit exponents are wrapped in braces. The identity
// renders as "1".
func Format(w Word, name Namer) string {
	if w.IsOne() {
		return "1"
	}
	var b strings.Builder
	for _, s := range w.syl {
		b.WriteString(name(s.Gen))
		if s.Exp != 1 {
			b.WriteString(FormatExponent(s.Exp))
		}
	}
	return b.String()
}

// FormatExponent renders "^e", or "^{e}" when e is negative or has more than
// one digit.
func FormatExponent(e int) string {
	if e < 0 || e > 9 {
		return "^{" + strconv.Itoa(e) + "}"
	}
	return "^" + strconv.Itoa(e)
}

func (w Word) String() string { return Format(w, Indexed("f")) }
