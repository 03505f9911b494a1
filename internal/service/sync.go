package service

import (
	"context"
	"errors"
	"time"

	"gametopup-rest-api/internal/metrics"
	"gametopup-rest-api/internal/model"
	"gametopup-rest-api/internal/repository"
	"gametopup-rest-api/internal/upstream"
	"gametopup-rest-api/pkg/logger"

	"go.uber.org/zap"
)

// ErrEmptyCatalog is returned when the upstream list response carries no
// games. Treated identically to an upstream failure: the run aborts without
// touching the store.
var ErrEmptyCatalog = errors.New("no games received from catalog API")

// ReconcilePolicy selects how a sync run applies the fresh catalog.
type ReconcilePolicy string

const (
	// ReconcileReplace clears the collection and bulk-inserts the fresh
	// set. Removed games cannot survive a run. This is the default.
	ReconcileReplace ReconcilePolicy = "replace"
	// ReconcileUpsert upserts each record in place. Resilient to partial
	// failure but can strand games removed from the upstream catalog.
	ReconcileUpsert ReconcilePolicy = "upsert"
)

// ParseReconcilePolicy maps a config string to a policy, defaulting to
// replace.
func ParseReconcilePolicy(s string) ReconcilePolicy {
	if ReconcilePolicy(s) == ReconcileUpsert {
		return ReconcileUpsert
	}
	return ReconcileReplace
}

// SyncService runs the one-shot batch jobs that mirror the external catalog
// into the local store.
type SyncService struct {
	repo    repository.CatalogRepository
	catalog *upstream.CatalogClient
	policy  ReconcilePolicy
	log     *logger.Logger
	now     func() time.Time
}

// NewSyncService creates a sync service.
func NewSyncService(repo repository.CatalogRepository, catalog *upstream.CatalogClient, policy ReconcilePolicy, log *logger.Logger) *SyncService {
	return &SyncService{
		repo:    repo,
		catalog: catalog,
		policy:  policy,
		log:     log,
		now:     time.Now,
	}
}

// SyncGames makes the local summaries collection reflect the upstream
// catalog. The whole list is one API call: any fetch failure or malformed
// payload aborts the run with the store untouched. Every applied record is
// stamped with lastSyncedAt. Returns the applied count.
func (s *SyncService) SyncGames(ctx context.Context) (int, error) {
	games, err := s.catalog.FetchGames(ctx)
	if err != nil {
		metrics.SyncFailuresTotal.Inc()
		s.log.Error("catalog fetch failed", err)
		return 0, err
	}
	if len(games) == 0 {
		metrics.SyncFailuresTotal.Inc()
		s.log.Warn("no games received from catalog API")
		return 0, ErrEmptyCatalog
	}

	now := s.now()
	summaries := make([]model.GameSummary, 0, len(games))
	for _, g := range games {
		summary := model.GameSummary(g)
		summary.Stamp(now)
		summaries = append(summaries, summary)
	}

	var applied int
	switch s.policy {
	case ReconcileUpsert:
		applied, err = s.repo.UpsertGames(ctx, summaries)
	default:
		applied, err = s.repo.ReplaceGames(ctx, summaries)
	}
	if err != nil {
		metrics.SyncFailuresTotal.Inc()
		s.log.Error("failed to reconcile games", err)
		return 0, err
	}

	metrics.GamesReconciledTotal.Add(float64(applied))
	s.log.Info("synced games", zap.Int("count", applied), zap.String("policy", string(s.policy)))
	return applied, nil
}

// DumpGameDetails fetches and upserts the detail payload for each configured
// slug. Slugs are processed sequentially and independently: one failure never
// affects the others. The hand-maintained input list may contain duplicates
// or arbitrary ordering; upserting by slug makes repeats idempotent. Returns
// the dumped and skipped counts.
func (s *SyncService) DumpGameDetails(ctx context.Context, slugs []string) (int, int) {
	dumped, skipped := 0, 0

	for _, slug := range slugs {
		s.log.Info("dumping game detail", zap.String("slug", slug))

		data, raw, err := s.catalog.FetchGameDetail(ctx, slug)
		if err != nil {
			metrics.DetailDumpSkipsTotal.Inc()
			s.log.Warn("detail fetch failed, skipping", zap.String("slug", slug), zap.Error(err))
			skipped++
			continue
		}
		if len(data) == 0 {
			metrics.DetailDumpSkipsTotal.Inc()
			s.log.Warn("no data for slug, skipping", zap.String("slug", slug))
			skipped++
			continue
		}

		detail := &model.GameDetail{
			GameSlug:    slug,
			Data:        data,
			RawResponse: raw,
			Source:      model.SourceExternalAPI,
			DumpedAt:    s.now(),
		}
		if err := s.repo.UpsertGameDetail(ctx, detail); err != nil {
			metrics.DetailDumpSkipsTotal.Inc()
			s.log.Error("failed to upsert detail, skipping", err, zap.String("slug", slug))
			skipped++
			continue
		}

		metrics.DetailDumpsTotal.Inc()
		dumped++
	}

	s.log.Info("detail dump finished", zap.Int("dumped", dumped), zap.Int("skipped", skipped))
	return dumped, skipped
}
