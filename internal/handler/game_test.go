package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gametopup-rest-api/internal/handler"
	"gametopup-rest-api/internal/model"
	"gametopup-rest-api/internal/pricing"
	"gametopup-rest-api/internal/repository"
	"gametopup-rest-api/internal/router"
	"gametopup-rest-api/internal/service"
	"gametopup-rest-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinelSlug = "test-1637"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := repository.NewMemoryCatalogRepository()
	ctx := context.Background()

	_, err := repo.UpsertGames(ctx, []model.GameSummary{
		{"gameSlug": "mobile-legends988", "gameName": "Mobile Legends", "gameAvailability": true},
		{"gameSlug": "pubg-mobile138", "gameName": "PUBG Mobile", "gameAvailability": false},
		{"gameSlug": sentinelSlug, "gameName": "Test Seed", "gameAvailability": true},
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertGameDetail(ctx, &model.GameDetail{
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
			},
		},
		Source:   model.SourceExternalAPI,
		DumpedAt: time.Now(),
	}))

	require.NoError(t, repo.UpsertGameDetail(ctx, &model.GameDetail{
		GameSlug: "no-items-game",
		Data: map[string]interface{}{
			"gameName": "Empty Game",
			"gameSlug": "no-items-game",
			"itemId":   []interface{}{},
		},
		Source:   model.SourceExternalAPI,
		DumpedAt: time.Now(),
	}))

	rates := pricing.Rates{SellingPercent: 6, DummyPercent: 9}
	catalogService := service.NewCatalogService(repo, rates, sentinelSlug, logger.NewNop())

	return router.New(router.Config{
		Handler:     handler.New(repo, "test"),
		GameHandler: handler.NewGameHandler(catalogService),
		Logger:      logger.NewNop(),
	})
}

func doGet(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestListGamesEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := doGet(t, h, "/api/v1/game")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["totalGames"])

	games := data["games"].([]interface{})
	for _, g := range games {
		assert.NotEqual(t, sentinelSlug, g.(map[string]interface{})["gameSlug"])
	}
}

func TestListAvailableEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := doGet(t, h, "/api/v1/games/list")
	assert.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]interface{})
	games := data["games"].([]interface{})
	require.Len(t, games, 1)

	game := games[0].(map[string]interface{})
	// slim projection only
	assert.Equal(t, "Mobile Legends", game["gameName"])
	assert.Equal(t, "mobile-legends988", game["gameSlug"])
	assert.Len(t, game, 2)
}

func TestGetGameDetailEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := doGet(t, h, "/api/v1/game/mobile-legends988")
	assert.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]interface{})
	items := data["itemId"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, float64(1060), first["sellingPrice"])
	assert.Equal(t, float64(1090), first["dummyPrice"])
}

func TestGetGameDetailNotFound(t *testing.T) {
	h := newTestRouter(t)

	rec, body := doGet(t, h, "/api/v1/game/unknown-slug")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Game not found", body["message"])
}

func TestGetGameItemsEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := doGet(t, h, "/api/v1/games/mobile-legends988/items")
	assert.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Mobile Legends", data["gameName"])

	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, float64(1060), item["sellingPrice"])
	assert.Equal(t, float64(1090), item["dummyPrice"])
}

func TestGetGameItemsNotFoundWhenEmpty(t *testing.T) {
	h := newTestRouter(t)

	rec, body := doGet(t, h, "/api/v1/games/no-items-game/items")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

// The same raw item must come back with the same displayed price through
// both endpoints.
func TestPriceIdentityAcrossEndpoints(t *testing.T) {
	h := newTestRouter(t)

	_, detailBody := doGet(t, h, "/api/v1/game/mobile-legends988")
	_, itemsBody := doGet(t, h, "/api/v1/games/mobile-legends988/items")

	detailItems := detailBody["data"].(map[string]interface{})["itemId"].([]interface{})
	listItems := itemsBody["data"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, listItems, len(detailItems))

	for i := range detailItems {
		d := detailItems[i].(map[string]interface{})
		l := listItems[i].(map[string]interface{})
		assert.Equal(t, d["sellingPrice"], l["sellingPrice"])
		assert.Equal(t, d["dummyPrice"], l["dummyPrice"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, body := doGet(t, h, "/api/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}
