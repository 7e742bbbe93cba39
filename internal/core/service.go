// Package core is the groupcore service: it loads group snapshots from a
// repository, caches them as GroupViews and exposes the derived structure
// to the command line and other callers.
package core

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"groupcore/internal/group"
	"groupcore/internal/presentation"
	"groupcore/internal/subgroups"
	"groupcore/pkg/domain"
)

// MaximalSubgroupLimit caps the "maximal subgroup of" listing.
const MaximalSubgroupLimit = 10

// Service serves group views from a repository.
type Service struct {
	repo    domain.Repository
	logger  *zap.Logger
	metrics MetricsRecorder
	tracer  Tracer
	clock   Clock

	views *lru.Cache[string, *GroupView]
	loads singleflight.Group
}

// NewService constructs a service over repo.
func NewService(repo domain.Repository, opts ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("core: nil repository")
	}
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	views, err := lru.New[string, *GroupView](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("core: view cache: %w", err)
	}
	return &Service{
		repo:    repo,
		logger:  o.logger,
		metrics: o.metrics,
		tracer:  o.tracer,
		clock:   o.clock,
		views:   views,
	}, nil
}

// Repository returns the underlying repository.
func (s *Service) Repository() domain.Repository { return s.repo }

func (s *Service) run(ctx context.Context, op string, fields []zap.Field, fn func(context.Context) error) error {
	start := s.clock.Now()
	ctx, span := s.tracer.Start(ctx, op)
	err := fn(ctx)
	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, s.clock.Now().Sub(start))
	fields = append(fields, zap.String("operation", op), zap.Duration("elapsed", s.clock.Now().Sub(start)))
	if err != nil {
		s.logger.Warn("operation failed", append(fields, zap.Error(err))...)
		return err
	}
	s.logger.Debug("operation complete", fields...)
	return nil
}

// Group returns the view of the group with the given label. Concurrent calls
// for one label share a single repository load, and recent views are served
// from cache.
func (s *Service) Group(ctx context.Context, label string) (*GroupView, error) {
	var view *GroupView
	err := s.run(ctx, "load_group", []zap.Field{zap.String("label", label)}, func(ctx context.Context) error {
		if v, ok := s.views.Get(label); ok {
			view = v
			return nil
		}
		// The shared load outlives any single caller; each caller stops
		// waiting when its own context ends.
		loadCtx := context.WithoutCancel(ctx)
		ch := s.loads.DoChan(label, func() (any, error) {
			if v, ok := s.views.Get(label); ok {
				return v, nil
			}
			v, err := s.load(loadCtx, label)
			if err != nil {
				return nil, err
			}
			s.views.Add(label, v)
			return v, nil
		})
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return res.Err
			}
			view = res.Val.(*GroupView)
			return nil
		}
	})
	return view, err
}

func (s *Service) load(ctx context.Context, label string) (*GroupView, error) {
	var (
		rec     domain.GroupRecord
		subs    []domain.SubgroupRecord
		classes []domain.ConjugacyClassRecord
		chars   []domain.CharacterRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec, err = s.repo.LookupGroup(gctx, label)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = s.repo.SearchSubgroups(gctx, domain.SubgroupFilter{Ambient: label})
		return err
	})
	g.Go(func() error {
		var err error
		classes, err = s.repo.ListConjugacyClasses(gctx, label)
		return err
	})
	g.Go(func() error {
		var err error
		chars, err = s.repo.ListCharacters(gctx, label)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logger.Debug("group loaded", zap.String("label", label), zap.Int("subgroups", len(subs)))
	return NewGroupView(rec, subs, classes, chars), nil
}

// Forget drops a cached view, e.g. after re-importing its bundle.
func (s *Service) Forget(label string) { s.views.Remove(label) }

// MaximalSubgroupOf lists up to MaximalSubgroupLimit subgroup records in
// which the group is a maximal subgroup, by ambient order then ambient.
func (s *Service) MaximalSubgroupOf(ctx context.Context, label string) ([]domain.SubgroupRecord, error) {
	var out []domain.SubgroupRecord
	err := s.run(ctx, "maximal_subgroup_of", []zap.Field{zap.String("label", label)}, func(ctx context.Context) error {
		var err error
		out, err = s.repo.SearchSubgroups(ctx, domain.SubgroupFilter{
			Subgroup: label,
			Maximal:  domain.Bool(true),
			Limit:    MaximalSubgroupLimit,
		})
		return err
	})
	return out, err
}

// MaximalQuotientOf lists the subgroup records whose quotient is the group
// and whose kernel is minimal normal, by ambient order then ambient.
func (s *Service) MaximalQuotientOf(ctx context.Context, label string) ([]domain.SubgroupRecord, error) {
	var out []domain.SubgroupRecord
	err := s.run(ctx, "maximal_quotient_of", []zap.Field{zap.String("label", label)}, func(ctx context.Context) error {
		var err error
		out, err = s.repo.SearchSubgroups(ctx, domain.SubgroupFilter{
			Quotient:      label,
			MinimalNormal: domain.Bool(true),
		})
		return err
	})
	return out, err
}

// Summary is the group page data in one value.
type Summary struct {
	Label            string                `json:"label"`
	Name             string                `json:"name,omitempty"`
	Order            int64                 `json:"order"`
	Factorization    []group.PrimePower    `json:"factorization"`
	Presentation     presentation.Result   `json:"presentation"`
	Latex            string                `json:"latex"`
	Special          Special               `json:"special"`
	Sylow            []subgroups.Sylow     `json:"sylow"`
	Series           Series                `json:"series"`
	Products         Products              `json:"products"`
	AutGroup         string                `json:"aut_group"`
	OuterGroup       string                `json:"outer_group"`
	MaximalSubgroup  []string              `json:"maximal_subgroup_of"`
	MaximalQuotient  []string              `json:"maximal_quotient_of"`
	ConjugacyClasses int                   `json:"conjugacy_classes"`
	Characters       int                   `json:"characters"`
	Subgroups        int                   `json:"subgroups"`
	Lattice          subgroups.Lattice     `json:"-"`
	SeriesTable      []subgroups.SeriesRow `json:"-"`
}

// NotComputedText is shown for optional data missing upstream.
const NotComputedText = `\textrm{Not computed}`

// Summarize collects the group page data. Presentation consistency errors
// fail the call.
func (s *Service) Summarize(ctx context.Context, label string) (Summary, error) {
	view, err := s.Group(ctx, label)
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	err = s.run(ctx, "summarize", []zap.Field{zap.String("label", label)}, func(ctx context.Context) error {
		rec := view.Record()
		sum = Summary{
			Label:            rec.Label,
			Name:             rec.Name,
			Order:            rec.Order,
			Special:          view.Special(),
			Series:           view.Series(),
			Products:         view.Products(),
			AutGroup:         view.AutGroup().Or(NotComputedText),
			OuterGroup:       view.OuterGroup().Or(NotComputedText),
			ConjugacyClasses: len(view.ConjugacyClasses()),
			Characters:       len(view.Characters()),
			Subgroups:        view.Subgroups().Len(),
			Lattice:          view.Lattice(),
			SeriesTable:      view.SeriesTable(),
		}
		var err error
		if sum.Factorization, err = view.Factorization(); err != nil {
			return err
		}
		if sum.Sylow, err = view.Sylow(); err != nil {
			return err
		}
		if sum.Presentation, err = view.Presentation(); err != nil {
			return err
		}
		sum.Latex = sum.Presentation.Latex()
		maxSub, err := s.MaximalSubgroupOf(ctx, label)
		if err != nil {
			return err
		}
		maxQuo, err := s.MaximalQuotientOf(ctx, label)
		if err != nil {
			return err
		}
		sum.MaximalSubgroup = ambientLabels(maxSub)
		sum.MaximalQuotient = ambientLabels(maxQuo)
		return nil
	})
	return sum, err
}

func ambientLabels(recs []domain.SubgroupRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Ambient)
	}
	return out
}
