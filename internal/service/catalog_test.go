package service

import (
	"context"
	"testing"
	"time"

	"gametopup-rest-api/internal/model"
	"gametopup-rest-api/internal/pricing"
	"gametopup-rest-api/internal/repository"
	"gametopup-rest-api/pkg/apierror"
	"gametopup-rest-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinelSlug = "test-1637"

func seedRepo(t *testing.T) *repository.MemoryCatalogRepository {
	t.Helper()
	repo := repository.NewMemoryCatalogRepository()

	_, err := repo.UpsertGames(context.Background(), []model.GameSummary{
		{
			"gameSlug":         "mobile-legends988",
			"gameName":         "Mobile Legends",
			"gameAvailability": true,
			"publisher":        "Moonton",
		},
		{
			"gameSlug":         "pubg-mobile138",
			"gameName":         "PUBG Mobile",
			"gameAvailability": false,
		},
		{
			"gameSlug":         sentinelSlug,
			"gameName":         "Test Seed",
			"gameAvailability": true,
		},
	})
	require.NoError(t, err)

	err = repo.UpsertGameDetail(context.Background(), &model.GameDetail{
		GameSlug: "mobile-legends988",
		Data: map[string]interface{}{
			"gameName": "Mobile Legends",
			"gameSlug": "mobile-legends988",
			"itemId": []interface{}{
				map[string]interface{}{
					"itemName":     "86 Diamonds",
					"itemSlug":     "dm-86",
					"sellingPrice": float64(1000),
					"dummyPrice":   float64(1000),
				},
				map[string]interface{}{
					"itemName":     "172 Diamonds",
					"itemSlug":     "dm-172",
					"sellingPrice": float64(2000),
					"dummyPrice":   float64(2500),
				},
			},
		},
		RawResponse: map[string]interface{}{"success": true},
		Source:      model.SourceExternalAPI,
		DumpedAt:    time.Now(),
	})
	require.NoError(t, err)

	err = repo.UpsertGameDetail(context.Background(), &model.GameDetail{
		GameSlug: "no-items-game",
		Data: map[string]interface{}{
			"gameName": "Empty Game",
			"gameSlug": "no-items-game",
			"itemId":   []interface{}{},
		},
		Source:   model.SourceExternalAPI,
		DumpedAt: time.Now(),
	})
	require.NoError(t, err)

	return repo
}

func newCatalogService(repo repository.CatalogRepository) *CatalogService {
	rates := pricing.Rates{SellingPercent: 6, DummyPercent: 9}
	return NewCatalogService(repo, rates, sentinelSlug, logger.NewNop())
}

func TestListGamesExcludesSentinel(t *testing.T) {
	svc := newCatalogService(seedRepo(t))

	games, err := svc.ListGames(context.Background())
	require.NoError(t, err)
	assert.Len(t, games, 2)
	for _, g := range games {
		assert.NotEqual(t, sentinelSlug, g.Slug())
	}
}

func TestListGamesPassesProviderFieldsThrough(t *testing.T) {
	svc := newCatalogService(seedRepo(t))

	games, err := svc.ListGames(context.Background())
	require.NoError(t, err)

	var ml model.GameSummary
	for _, g := range games {
		if g.Slug() == "mobile-legends988" {
			ml = g
		}
	}
	require.NotNil(t, ml)
	assert.Equal(t, "Moonton", ml["publisher"])
}

func TestListAvailableFiltersAndProjects(t *testing.T) {
	svc := newCatalogService(seedRepo(t))

	games, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, model.SlimGame{GameName: "Mobile Legends", GameSlug: "mobile-legends988"}, games[0])
}

func TestGetGameDetailAppliesMarkup(t *testing.T) {
	svc := newCatalogService(seedRepo(t))

	data, err := svc.GetGameDetail(context.Background(), "mobile-legends988")
	require.NoError(t, err)

	items, ok := data["itemId"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)

	first := items[0].(map[string]interface{})
	assert.Equal(t, int64(1060), first["sellingPrice"])
	assert.Equal(t, int64(1090), first["dummyPrice"])
	assert.Equal(t, "86 Diamonds", first["itemName"])
}

func TestGetGameDetailDoesNotMutateStore(t *testing.T) {
	repo := seedRepo(t)
	svc := newCatalogService(repo)

	_, err := svc.GetGameDetail(context.Background(), "mobile-legends988")
	require.NoError(t, err)

	// second read sees raw prices again, not already-marked-up ones
	record, err := repo.GetGameDetail(context.Background(), "mobile-legends988")
	require.NoError(t, err)
	first := record.Items()[0].(map[string]interface{})
	assert.Equal(t, float64(1000), first["sellingPrice"])
}

func TestGetGameDetailNotFound(t *testing.T) {
	svc := newCatalogService(seedRepo(t))

	_, err := svc.GetGameDetail(context.Background(), "unknown-slug")
	require.Error(t, err)

	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestGetGameItemsSlimProjection(t *testing.T) {
	svc := newCatalogService(seedRepo(t))

	result, err := svc.GetGameItems(context.Background(), "mobile-legends988")
	require.NoError(t, err)
	assert.Equal(t, "Mobile Legends", result.GameName)
	assert.Equal(t, "mobile-legends988", result.GameSlug)
	require.Len(t, result.Items, 2)
	assert.Equal(t, model.SlimItem{
		ItemName:     "86 Diamonds",
		ItemSlug:     "dm-86",
		SellingPrice: 1060,
		DummyPrice:   1090,
	}, result.Items[0])
}

func TestGetGameItemsNotFoundWhenEmpty(t *testing.T) {
	svc := newCatalogService(seedRepo(t))

	_, err := svc.GetGameItems(context.Background(), "no-items-game")
	require.Error(t, err)
	apiErr, ok := err.(*apierror.Error)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.StatusCode)
}

// The same raw item must yield the same displayed price through every
// endpoint that exposes it.
func TestPriceIdentityAcrossEndpoints(t *testing.T) {
	svc := newCatalogService(seedRepo(t))

	data, err := svc.GetGameDetail(context.Background(), "mobile-legends988")
	require.NoError(t, err)
	items, err := svc.GetGameItems(context.Background(), "mobile-legends988")
	require.NoError(t, err)

	detailItems := data["itemId"].([]interface{})
	require.Len(t, detailItems, len(items.Items))

	for i, it := range detailItems {
		m := it.(map[string]interface{})
		assert.Equal(t, items.Items[i].SellingPrice, m["sellingPrice"])
		assert.Equal(t, items.Items[i].DummyPrice, m["dummyPrice"])
	}
}
