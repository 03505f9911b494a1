package repository

import (
	"context"
	"sync"

	"gametopup-rest-api/internal/model"
)

// MemoryCatalogRepository is an in-memory CatalogRepository used by tests
// and local development. Insertion order of summaries is preserved.
type MemoryCatalogRepository struct {
	mu      sync.RWMutex
	order   []string
	games   map[string]model.GameSummary
	details map[string]*model.GameDetail
}

// NewMemoryCatalogRepository creates an empty in-memory repository.
func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		games:   make(map[string]model.GameSummary),
		details: make(map[string]*model.GameDetail),
	}
}

// ListGames returns all game summaries, omitting excludeSlug when non-empty.
func (r *MemoryCatalogRepository) ListGames(ctx context.Context, excludeSlug string) ([]model.GameSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.GameSummary
	for _, slug := range r.order {
		if excludeSlug != "" && slug == excludeSlug {
			continue
		}
		out = append(out, r.games[slug].Clone())
	}
	return out, nil
}

// ReplaceGames clears the summaries and bulk-upserts the fresh set.
func (r *MemoryCatalogRepository) ReplaceGames(ctx context.Context, games []model.GameSummary) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	r.games = make(map[string]model.GameSummary)
	return r.upsertLocked(games), nil
}

// UpsertGames upserts each summary by gameSlug without clearing.
func (r *MemoryCatalogRepository) UpsertGames(ctx context.Context, games []model.GameSummary) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.upsertLocked(games), nil
}

func (r *MemoryCatalogRepository) upsertLocked(games []model.GameSummary) int {
	for _, game := range games {
		slug := game.Slug()
		if _, exists := r.games[slug]; !exists {
			r.order = append(r.order, slug)
		}
		r.games[slug] = game.Clone()
	}
	return len(games)
}

// GetGameDetail returns the detail record for a slug, or (nil, nil) when absent.
func (r *MemoryCatalogRepository) GetGameDetail(ctx context.Context, slug string) (*model.GameDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	detail, ok := r.details[slug]
	if !ok {
		return nil, nil
	}
	copied := *detail
	copied.Data = model.CloneMap(detail.Data)
	copied.RawResponse = model.CloneMap(detail.RawResponse)
	return &copied, nil
}

// UpsertGameDetail inserts or overwrites the detail record keyed by gameSlug.
func (r *MemoryCatalogRepository) UpsertGameDetail(ctx context.Context, detail *model.GameDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *detail
	copied.Data = model.CloneMap(detail.Data)
	copied.RawResponse = model.CloneMap(detail.RawResponse)
	r.details[detail.GameSlug] = &copied
	return nil
}

// DetailCount reports the number of stored detail records.
func (r *MemoryCatalogRepository) DetailCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.details)
}

// Stats returns statistics about the catalog store.
func (r *MemoryCatalogRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return map[string]interface{}{
		"status":        "connected",
		"total_games":   int64(len(r.games)),
		"total_details": int64(len(r.details)),
	}, nil
}

// Close is a no-op for the in-memory repository.
func (r *MemoryCatalogRepository) Close() error {
	return nil
}
