// Package subgroups derives lattice layers, special subgroups, normal series
// and Sylow subgroups from the flat subgroup records of one ambient group.
package subgroups

import (
	"sort"

	"groupcore/pkg/domain"
)

// Set is an immutable collection of subgroup records for one ambient group,
// ordered by label.
type Set struct {
	ambient string
	records []domain.SubgroupRecord
	index   map[string]int
}

// NewSet builds a set from records. Records of other ambient groups are
// dropped; a repeated label keeps its first record.
func NewSet(ambient string, records []domain.SubgroupRecord) Set {
	s := Set{ambient: ambient, index: make(map[string]int, len(records))}
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Ambient != ambient || seen[rec.Label] {
			continue
		}
		seen[rec.Label] = true
		s.records = append(s.records, rec.Clone())
	}
	sort.SliceStable(s.records, func(i, j int) bool {
		return domain.CompareLabels(s.records[i].Label, s.records[j].Label) < 0
	})
	for i, rec := range s.records {
		s.index[rec.Label] = i
	}
	return s
}

// Ambient is the label of the ambient group.
func (s Set) Ambient() string { return s.ambient }

// Len is the number of records.
func (s Set) Len() int { return len(s.records) }

// Get returns the record with the given label.
func (s Set) Get(label string) (domain.SubgroupRecord, bool) {
	i, ok := s.index[label]
	if !ok {
		return domain.SubgroupRecord{}, false
	}
	return s.records[i].Clone(), true
}

// Has reports whether label is in the set.
func (s Set) Has(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Labels returns all labels in order.
func (s Set) Labels() []string {
	out := make([]string, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Label
	}
	return out
}

// Records returns copies of all records in label order.
func (s Set) Records() []domain.SubgroupRecord {
	out := make([]domain.SubgroupRecord, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Clone()
	}
	return out
}

// Top returns the maximal label, by convention the whole group.
func (s Set) Top() (string, bool) {
	if len(s.records) == 0 {
		return "", false
	}
	return s.records[len(s.records)-1].Label, true
}

// each visits records in label order without copying.
func (s Set) each(fn func(rec *domain.SubgroupRecord) bool) {
	for i := range s.records {
		if !fn(&s.records[i]) {
			return
		}
	}
}
