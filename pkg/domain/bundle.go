package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Bundle is one group together with every record keyed on it. It is the unit
// of import, export and blob storage.
type Bundle struct {
	Group            GroupRecord            `json:"group"`
	Subgroups        []SubgroupRecord       `json:"subgroups"`
	ConjugacyClasses []ConjugacyClassRecord `json:"conjugacy_classes,omitempty"`
	Characters       []CharacterRecord      `json:"characters,omitempty"`
}

// Validate checks every record and that all of them belong to the group.
func (b Bundle) Validate() error {
	if err := b.Group.Validate(); err != nil {
		return err
	}
	for _, s := range b.Subgroups {
		if err := s.Validate(); err != nil {
			return err
		}
		if s.Ambient != b.Group.Label {
			return Errorf(ErrInvalidRecord, "validate bundle", "subgroup %s belongs to %s, not %s", s.Label, s.Ambient, b.Group.Label)
		}
	}
	for _, c := range b.ConjugacyClasses {
		if c.Group != b.Group.Label {
			return Errorf(ErrInvalidRecord, "validate bundle", "class %s belongs to %s", c.Label, c.Group)
		}
	}
	for _, c := range b.Characters {
		if c.Group != b.Group.Label {
			return Errorf(ErrInvalidRecord, "validate bundle", "character %s belongs to %s", c.Label, c.Group)
		}
	}
	return nil
}

var (
	groupRequired    = []string{"label", "order", "encoding", "ngens", "gens_used"}
	encodingRequired = []string{"kind"}
	subgroupRequired = []string{
		"label", "ambient", "subgroup_order", "quotient_order", "normal", "characteristic",
		"split", "direct", "maximal", "minimal_normal", "sylow", "contains", "special_labels",
	}
	bundleRequired = []string{"group", "subgroups"}
)

// DecodeGroupRecord strictly decodes one group record.
func DecodeGroupRecord(data []byte) (GroupRecord, error) {
	var rec GroupRecord
	if err := strictDecode(data, &rec, groupRequired); err != nil {
		return GroupRecord{}, fmt.Errorf("decode group: %w", err)
	}
	if err := requireFields(rawField(data, "encoding"), encodingRequired); err != nil {
		return GroupRecord{}, fmt.Errorf("decode group encoding: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return GroupRecord{}, err
	}
	return rec, nil
}

// DecodeSubgroupRecord strictly decodes one subgroup record.
func DecodeSubgroupRecord(data []byte) (SubgroupRecord, error) {
	var rec SubgroupRecord
	if err := strictDecode(data, &rec, subgroupRequired); err != nil {
		return SubgroupRecord{}, fmt.Errorf("decode subgroup: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return SubgroupRecord{}, err
	}
	return rec, nil
}

// DecodeBundle strictly decodes a bundle, checking required fields of the
// group and of every subgroup record.
func DecodeBundle(r io.Reader) (Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Bundle{}, fmt.Errorf("read bundle: %w", err)
	}
	var raw struct {
		Group     json.RawMessage   `json:"group"`
		Subgroups []json.RawMessage `json:"subgroups"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Bundle{}, Errorf(ErrInvalidRecord, "decode bundle", "%v", err)
	}
	if err := requireFields(data, bundleRequired); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	var b Bundle
	if err := strictDecode(data, &b, nil); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	if _, err := DecodeGroupRecord(raw.Group); err != nil {
		return Bundle{}, err
	}
	for _, s := range raw.Subgroups {
		if _, err := DecodeSubgroupRecord(s); err != nil {
			return Bundle{}, err
		}
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// EncodeBundle writes the bundle as indented JSON.
func EncodeBundle(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

func strictDecode(data []byte, target any, required []string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return Errorf(ErrInvalidRecord, "", "%v", err)
	}
	return requireFields(data, required)
}

func requireFields(data []byte, required []string) error {
	if len(required) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Errorf(ErrInvalidRecord, "", "%v", err)
	}
	for _, name := range required {
		if _, ok := fields[name]; !ok {
			return Errorf(ErrInvalidRecord, "", "missing required field %q", name)
		}
	}
	return nil
}

func rawField(data []byte, name string) []byte {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return fields[name]
}
