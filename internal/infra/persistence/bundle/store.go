// Package bundle serves the groups repository from bundle documents kept in
// a blob store, one JSON document per group under groups/<label>.json.
package bundle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"groupcore/internal/blob/core"
	"groupcore/pkg/domain"
)

// Prefix is the key prefix of bundle documents.
const Prefix = "groups/"

const contentType = "application/json"

var _ domain.Store = (*Store)(nil)

// Store reads and writes bundles through a blob store. Every read fetches
// the document again; callers cache at a higher level.
type Store struct {
	blobs core.Store
}

// NewStore wraps a blob store.
func NewStore(blobs core.Store) *Store { return &Store{blobs: blobs} }

// Key returns the blob key of a group's bundle.
func Key(label string) string { return Prefix + label + ".json" }

// Put writes one bundle document.
func Put(ctx context.Context, blobs core.Store, b domain.Bundle) (core.Info, error) {
	if err := b.Validate(); err != nil {
		return core.Info{}, err
	}
	var buf bytes.Buffer
	if err := domain.EncodeBundle(&buf, b); err != nil {
		return core.Info{}, fmt.Errorf("encode bundle %s: %w", b.Group.Label, err)
	}
	return blobs.Put(ctx, Key(b.Group.Label), &buf, core.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"label": b.Group.Label, "order": fmt.Sprint(b.Group.Order)},
	})
}

// Load reads and strictly decodes one bundle document.
func (s *Store) Load(ctx context.Context, label string) (domain.Bundle, error) {
	_, rc, err := s.blobs.Get(ctx, Key(label))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return domain.Bundle{}, domain.NotFound(domain.EntityGroup, label)
		}
		return domain.Bundle{}, fmt.Errorf("read bundle %s: %w", label, err)
	}
	defer func() { _ = rc.Close() }()
	b, err := domain.DecodeBundle(rc)
	if err != nil {
		return domain.Bundle{}, err
	}
	if b.Group.Label != label {
		return domain.Bundle{}, domain.Errorf(domain.ErrDataCorruption, "load bundle", "%s holds group %s", Key(label), b.Group.Label)
	}
	return b, nil
}

// ImportBundles validates every bundle, then writes each document.
func (s *Store) ImportBundles(ctx context.Context, bundles ...domain.Bundle) error {
	for _, b := range bundles {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	for _, b := range bundles {
		if _, err := Put(ctx, s.blobs, b); err != nil {
			return fmt.Errorf("write bundle %s: %w", b.Group.Label, err)
		}
	}
	return nil
}

// LookupGroup implements domain.Repository.
func (s *Store) LookupGroup(ctx context.Context, label string) (domain.GroupRecord, error) {
	b, err := s.Load(ctx, label)
	if err != nil {
		return domain.GroupRecord{}, err
	}
	return b.Group, nil
}

// SearchSubgroups implements domain.Repository. Without an ambient filter
// every bundle document is read.
func (s *Store) SearchSubgroups(ctx context.Context, filter domain.SubgroupFilter) ([]domain.SubgroupRecord, error) {
	if filter.Ambient != "" {
		b, err := s.Load(ctx, filter.Ambient)
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.SubgroupRecord{}, nil
		}
		if err != nil {
			return nil, err
		}
		return filter.Apply(b.Subgroups), nil
	}
	labels, err := s.Labels(ctx)
	if err != nil {
		return nil, err
	}
	var all []domain.SubgroupRecord
	for _, label := range labels {
		b, err := s.Load(ctx, label)
		if err != nil {
			return nil, err
		}
		all = append(all, b.Subgroups...)
	}
	return filter.Apply(all), nil
}

// ListConjugacyClasses implements domain.Repository.
func (s *Store) ListConjugacyClasses(ctx context.Context, group string) ([]domain.ConjugacyClassRecord, error) {
	b, err := s.Load(ctx, group)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return b.ConjugacyClasses, err
}

// ListCharacters implements domain.Repository.
func (s *Store) ListCharacters(ctx context.Context, group string) ([]domain.CharacterRecord, error) {
	b, err := s.Load(ctx, group)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return b.Characters, err
}

// Labels lists the groups that have a bundle document.
func (s *Store) Labels(ctx context.Context) ([]string, error) {
	infos, err := s.blobs.List(ctx, Prefix)
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	labels := make([]string, 0, len(infos))
	for _, inf := range infos {
		name := strings.TrimPrefix(inf.Key, Prefix)
		if label, ok := strings.CutSuffix(name, ".json"); ok && !strings.Contains(label, "/") {
			labels = append(labels, label)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return domain.CompareLabels(labels[i], labels[j]) < 0 })
	return labels, nil
}

// Collect reads one group's records back out of any repository so they can
// be written as a bundle document.
func Collect(ctx context.Context, repo domain.Repository, label string) (domain.Bundle, error) {
	rec, err := repo.LookupGroup(ctx, label)
	if err != nil {
		return domain.Bundle{}, err
	}
	subs, err := repo.SearchSubgroups(ctx, domain.SubgroupFilter{Ambient: label})
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("collect subgroups of %s: %w", label, err)
	}
	if subs == nil {
		subs = []domain.SubgroupRecord{}
	}
	classes, err := repo.ListConjugacyClasses(ctx, label)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("collect classes of %s: %w", label, err)
	}
	chars, err := repo.ListCharacters(ctx, label)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("collect characters of %s: %w", label, err)
	}
	if len(classes) == 0 {
		classes = nil
	}
	if len(chars) == 0 {
		chars = nil
	}
	return domain.Bundle{Group: rec, Subgroups: subs, ConjugacyClasses: classes, Characters: chars}, nil
}
