package repository

import (
	"context"
	"testing"

	"gametopup-rest-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReplaceGamesClearsStaleRecords(t *testing.T) {
	repo := NewMemoryCatalogRepository()
	ctx := context.Background()

	_, err := repo.UpsertGames(ctx, []model.GameSummary{
		{"gameSlug": "old", "gameName": "Old"},
	})
	require.NoError(t, err)

	applied, err := repo.ReplaceGames(ctx, []model.GameSummary{
		{"gameSlug": "fresh", "gameName": "Fresh"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	games, err := repo.ListGames(ctx, "")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "fresh", games[0].Slug())
}

func TestMemoryUpsertGamesDeduplicatesBySlug(t *testing.T) {
	repo := NewMemoryCatalogRepository()
	ctx := context.Background()

	_, err := repo.UpsertGames(ctx, []model.GameSummary{
		{"gameSlug": "a", "gameName": "first"},
		{"gameSlug": "a", "gameName": "second"},
	})
	require.NoError(t, err)

	games, err := repo.ListGames(ctx, "")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "second", games[0].Name())
}

func TestMemoryListGamesExcludesSlug(t *testing.T) {
	repo := NewMemoryCatalogRepository()
	ctx := context.Background()

	_, err := repo.UpsertGames(ctx, []model.GameSummary{
		{"gameSlug": "keep"},
		{"gameSlug": "drop"},
	})
	require.NoError(t, err)

	games, err := repo.ListGames(ctx, "drop")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "keep", games[0].Slug())
}

func TestMemoryGetGameDetailAbsentIsNil(t *testing.T) {
	repo := NewMemoryCatalogRepository()

	detail, err := repo.GetGameDetail(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestMemoryDetailIsolatedFromCallerMutation(t *testing.T) {
	repo := NewMemoryCatalogRepository()
	ctx := context.Background()

	data := map[string]interface{}{"gameName": "A"}
	require.NoError(t, repo.UpsertGameDetail(ctx, &model.GameDetail{GameSlug: "a", Data: data}))

	// mutating what the caller handed in must not reach the store
	data["gameName"] = "mutated"

	record, err := repo.GetGameDetail(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", record.Data["gameName"])

	// mutating a read result must not reach the store either
	record.Data["gameName"] = "mutated again"
	record2, err := repo.GetGameDetail(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", record2.Data["gameName"])
}
