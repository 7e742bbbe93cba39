package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// SpecialTag is the typed form of a special-subgroup label such as
// "12.3.F" (Fitting subgroup) or "12.3.C2" (second chief series term).
type SpecialTag struct {
	Kind     string
	Index    int
	HasIndex bool
}

// Well-known tag kinds.
const (
	TagFitting      = "F"
	TagRadical      = "R"
	TagSocle        = "S"
	TagChief        = "C"
	TagDerived      = "D"
	TagLowerCentral = "L"
	TagUpperCentral = "U"
)

// ParseSpecialLabel splits "<ambient>.<kind>[<index>]" into a SpecialTag.
// It reports false when the label belongs to another ambient group or the
// suffix is not letters followed by optional digits.
func ParseSpecialLabel(ambient, label string) (SpecialTag, bool) {
	prefix := ambient + "."
	if !strings.HasPrefix(label, prefix) {
		return SpecialTag{}, false
	}
	suffix := label[len(prefix):]
	split := strings.IndexFunc(suffix, func(r rune) bool { return !unicode.IsLetter(r) })
	if split == 0 || suffix == "" {
		return SpecialTag{}, false
	}
	if split < 0 {
		return SpecialTag{Kind: suffix}, true
	}
	digits := suffix[split:]
	idx, err := strconv.Atoi(digits)
	if err != nil || idx < 0 || strings.HasPrefix(digits, "+") {
		return SpecialTag{}, false
	}
	return SpecialTag{Kind: suffix[:split], Index: idx, HasIndex: true}, true
}

// Label renders the tag back into its wire form for the given ambient group.
func (t SpecialTag) Label(ambient string) string {
	if !t.HasIndex {
		return ambient + "." + t.Kind
	}
	return ambient + "." + t.Kind + strconv.Itoa(t.Index)
}
