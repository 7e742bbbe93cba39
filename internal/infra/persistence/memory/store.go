// Package memory provides an in-memory groups repository used for tests,
// ephemeral runs and as the read side of the sqlite and postgres stores.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"groupcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Store = (*Store)(nil)

// Store keeps every bundle in maps keyed by group label.
type Store struct {
	mu        sync.RWMutex
	groups    map[string]domain.GroupRecord
	subgroups map[string][]domain.SubgroupRecord
	classes   map[string][]domain.ConjugacyClassRecord
	chars     map[string][]domain.CharacterRecord
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		groups:    make(map[string]domain.GroupRecord),
		subgroups: make(map[string][]domain.SubgroupRecord),
		classes:   make(map[string][]domain.ConjugacyClassRecord),
		chars:     make(map[string][]domain.CharacterRecord),
	}
}

// ImportBundles validates every bundle and then replaces the stored records
// of each group. Nothing is written if any bundle is invalid.
func (s *Store) ImportBundles(ctx context.Context, bundles ...domain.Bundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, b := range bundles {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bundles {
		label := b.Group.Label
		s.groups[label] = b.Group.Clone()
		subs := make([]domain.SubgroupRecord, 0, len(b.Subgroups))
		for _, rec := range b.Subgroups {
			subs = append(subs, rec.Clone())
		}
		s.subgroups[label] = subs
		s.classes[label] = slices.Clone(b.ConjugacyClasses)
		s.chars[label] = slices.Clone(b.Characters)
	}
	return nil
}

// LookupGroup implements domain.Repository.
func (s *Store) LookupGroup(ctx context.Context, label string) (domain.GroupRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.GroupRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.groups[label]
	if !ok {
		return domain.GroupRecord{}, domain.NotFound(domain.EntityGroup, label)
	}
	return rec.Clone(), nil
}

// SearchSubgroups implements domain.Repository.
func (s *Store) SearchSubgroups(ctx context.Context, filter domain.SubgroupFilter) ([]domain.SubgroupRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if filter.Ambient != "" {
		return filter.Apply(s.subgroups[filter.Ambient]), nil
	}
	var all []domain.SubgroupRecord
	for _, subs := range s.subgroups {
		all = append(all, subs...)
	}
	return filter.Apply(all), nil
}

// ListConjugacyClasses implements domain.Repository. Unknown groups have no
// classes.
func (s *Store) ListConjugacyClasses(ctx context.Context, group string) ([]domain.ConjugacyClassRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ConjugacyClassRecord(nil), s.classes[group]...), nil
}

// ListCharacters implements domain.Repository.
func (s *Store) ListCharacters(ctx context.Context, group string) ([]domain.CharacterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CharacterRecord(nil), s.chars[group]...), nil
}

// Bundle reassembles the stored bundle of one group.
func (s *Store) Bundle(label string) (domain.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundleLocked(label)
}

func (s *Store) bundleLocked(label string) (domain.Bundle, error) {
	rec, ok := s.groups[label]
	if !ok {
		return domain.Bundle{}, domain.NotFound(domain.EntityGroup, label)
	}
	b := domain.Bundle{
		Group:            rec.Clone(),
		Subgroups:        make([]domain.SubgroupRecord, 0, len(s.subgroups[label])),
		ConjugacyClasses: slices.Clone(s.classes[label]),
		Characters:       slices.Clone(s.chars[label]),
	}
	for _, sub := range s.subgroups[label] {
		b.Subgroups = append(b.Subgroups, sub.Clone())
	}
	return b, nil
}

// Labels returns the stored group labels in natural label order.
func (s *Store) Labels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.groups))
	for label := range s.groups {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return domain.CompareLabels(out[i], out[j]) < 0 })
	return out
}

// ExportBundles returns every stored bundle in label order.
func (s *Store) ExportBundles() []domain.Bundle {
	labels := s.Labels()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Bundle, 0, len(labels))
	for _, label := range labels {
		if b, err := s.bundleLocked(label); err == nil {
			out = append(out, b)
		}
	}
	return out
}
