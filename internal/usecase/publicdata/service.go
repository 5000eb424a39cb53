package publicdata

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"farm-policy/internal/infrastructure/publicdata"
	"farm-policy/internal/metrics"
	"farm-policy/internal/repository"
	"farm-policy/internal/usecase"
	"farm-policy/internal/worker"

	"go.uber.org/zap"
)

var (
	ErrUnknownSource   = errors.New("unknown public data source")
	ErrUnsupportedType = errors.New("unsupported public data type")
	ErrNotConfigured   = errors.New("public data service key not configured")
	ErrSyncInProgress  = errors.New("sync already in progress")
	ErrSyncFailed      = errors.New("every public data fetch failed")
)

type Fetcher interface {
	HasKey() bool
	Fetch(ctx context.Context, source string, q publicdata.Query) (publicdata.Response, error)
}

type Notifier interface {
	NotifyPoliciesUpdated(sources []string, changed int)
}

type SyncOptions struct {
	Workers int
	RPS     int
	PerPage int
	LockTTL time.Duration
}

type SyncReport struct {
	Fetched  int      `json:"fetched"`
	Failed   int      `json:"failed"`
	Imported int      `json:"imported"`
	Changed  int      `json:"changed"`
	Sources  []string `json:"sources"`
}

type Usecase interface {
	Fetch(ctx context.Context, source string, q publicdata.Query) (publicdata.Response, error)
	Sync(ctx context.Context) (SyncReport, error)
}

type Service struct {
	fetcher  Fetcher
	policies repository.PolicyRepository
	cache    usecase.Cache
	notifier Notifier
	metrics  *metrics.Metrics
	opts     SyncOptions
	logger   *zap.Logger
}

func NewService(
	fetcher Fetcher,
	policies repository.PolicyRepository,
	cache usecase.Cache,
	notifier Notifier,
	m *metrics.Metrics,
	opts SyncOptions,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = 3
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 50
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Minute
	}
	return &Service{
		fetcher:  fetcher,
		policies: policies,
		cache:    cache,
		notifier: notifier,
		metrics:  m,
		opts:     opts,
		logger:   logger,
	}
}

// Fetch proxies one public API request.
func (s *Service) Fetch(ctx context.Context, source string, q publicdata.Query) (publicdata.Response, error) {
	resp, err := s.fetcher.Fetch(ctx, source, q)
	if err != nil {
		switch {
		case errors.Is(err, publicdata.ErrUnknownSource):
			return publicdata.Response{}, ErrUnknownSource
		case errors.Is(err, publicdata.ErrUnsupportedType):
			return publicdata.Response{}, errors.Join(ErrUnsupportedType, err)
		default:
			return publicdata.Response{}, err
		}
	}
	s.metrics.ObservePublicFetch(source, resp.IsFallback())
	return resp, nil
}

type fetched struct {
	source string
	typ    string
	resp   publicdata.Response
	err    error
}

// Sync imports every (source, type) dataset into the catalog as inactive
// policies. Fallback payloads are never imported. When any row changed the
// listing and match caches are dropped and subscribers are notified.
func (s *Service) Sync(ctx context.Context) (SyncReport, error) {
	if !s.fetcher.HasKey() {
		return SyncReport{}, ErrNotConfigured
	}

	if s.cache != nil {
		ok, err := s.cache.SetIfNotExists(ctx, usecase.SyncLockKey, "1", s.opts.LockTTL)
		switch {
		case err != nil:
			s.logger.Warn("sync lock unavailable, continuing without it", zap.Error(err))
		case !ok:
			return SyncReport{}, ErrSyncInProgress
		default:
			defer func() {
				if err := s.cache.Delete(context.WithoutCancel(ctx), usecase.SyncLockKey); err != nil {
					s.logger.Warn("release sync lock", zap.Error(err))
				}
			}()
		}
	}

	start := time.Now()
	tasks := make([]worker.Task[fetched], 0)
	for _, name := range publicdata.SourceNames() {
		for _, typ := range publicdata.Sources[name].Types() {
			tasks = append(tasks, func(ctx context.Context) (fetched, error) {
				resp, err := s.fetcher.Fetch(ctx, name, publicdata.Query{Type: typ, Page: 1, PerPage: s.opts.PerPage})
				if err == nil && resp.IsFallback() {
					err = fmt.Errorf("upstream unavailable: %s", resp.Error)
				}
				return fetched{source: name, typ: typ, resp: resp, err: err}, nil
			})
		}
	}

	var report SyncReport
	changedSources := map[string]struct{}{}
	for _, r := range worker.RunAll(ctx, s.opts.Workers, s.opts.RPS, tasks) {
		f := r.Value
		s.metrics.ObserveSyncFetch(f.source, f.err)
		if f.err != nil {
			report.Failed++
			s.logger.Warn("sync fetch failed",
				zap.String("source", f.source),
				zap.String("type", f.typ),
				zap.Error(f.err),
			)
			continue
		}
		report.Fetched++

		for _, item := range f.resp.Items() {
			p, ok := publicdata.ToPolicy(f.source, f.typ, item)
			if !ok {
				continue
			}
			changed, err := s.policies.UpsertExternal(ctx, p)
			if err != nil {
				s.logger.Warn("upsert external policy",
					zap.String("source", f.source),
					zap.String("external_id", p.ExternalID),
					zap.Error(err),
				)
				continue
			}
			report.Imported++
			if changed {
				report.Changed++
				changedSources[f.source] = struct{}{}
			}
		}
	}

	report.Sources = make([]string, 0, len(changedSources))
	for src := range changedSources {
		report.Sources = append(report.Sources, src)
	}
	sort.Strings(report.Sources)

	if report.Changed > 0 {
		s.invalidate(ctx)
		if s.notifier != nil {
			s.notifier.NotifyPoliciesUpdated(report.Sources, report.Changed)
		}
	}

	var err error
	if report.Fetched == 0 && report.Failed > 0 {
		err = ErrSyncFailed
	}
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	s.metrics.ObserveSyncRun(report.Changed, err)
	s.logger.Info("sync finished",
		zap.Int("fetched", report.Fetched),
		zap.Int("failed", report.Failed),
		zap.Int("imported", report.Imported),
		zap.Int("changed", report.Changed),
		zap.Duration("took", time.Since(start)),
	)
	return report, err
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, pattern := range []string{usecase.PolicyListPattern, usecase.MatchPattern} {
		n, err := s.cache.DeleteByPattern(ctx, pattern)
		if err != nil {
			s.logger.Warn("invalidate cache", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		s.logger.Debug("cache invalidated", zap.String("pattern", pattern), zap.Int("keys", n))
	}
}

// RunEvery syncs on a fixed interval until ctx is done.
func (s *Service) RunEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.Sync(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
				s.logger.Warn("scheduled sync failed", zap.Error(err))
			}
		}
	}
}
