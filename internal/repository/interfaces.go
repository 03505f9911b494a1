package repository

import (
	"context"

	"gametopup-rest-api/internal/model"
)

// CatalogRepository defines catalog data access methods over the two
// collections (game summaries and per-game details). No cross-collection
// transactions are assumed; each write is an independent last-write-wins
// upsert keyed by gameSlug.
type CatalogRepository interface {
	// ListGames returns all game summaries, omitting excludeSlug when
	// non-empty.
	ListGames(ctx context.Context, excludeSlug string) ([]model.GameSummary, error)

	// ReplaceGames clears the summaries collection and bulk-upserts the
	// fresh set. Returns the number of records applied.
	ReplaceGames(ctx context.Context, games []model.GameSummary) (int, error)

	// UpsertGames upserts each summary by gameSlug without clearing.
	// Returns the number of records applied.
	UpsertGames(ctx context.Context, games []model.GameSummary) (int, error)

	// GetGameDetail returns the detail record for a slug, or (nil, nil)
	// when absent.
	GetGameDetail(ctx context.Context, slug string) (*model.GameDetail, error)

	// UpsertGameDetail inserts or overwrites the detail record keyed by
	// its gameSlug.
	UpsertGameDetail(ctx context.Context, detail *model.GameDetail) error

	// Stats returns statistics about the catalog store.
	Stats(ctx context.Context) (map[string]interface{}, error)

	// Close closes the repository connection.
	Close() error
}
