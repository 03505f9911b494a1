package handler

import (
	"net/http"

	"gametopup-rest-api/internal/service"
	"gametopup-rest-api/pkg/apierror"
	"gametopup-rest-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// GameHandler handles the catalog read endpoints. All routes are read-only.
type GameHandler struct {
	catalog *service.CatalogService
}

// NewGameHandler creates a new game handler.
func NewGameHandler(catalog *service.CatalogService) *GameHandler {
	return &GameHandler{catalog: catalog}
}

// ListGames handles GET /api/v1/game
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.ListGames(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"games":      games,
		"totalGames": len(games),
	})
}

// ListAvailable handles GET /api/v1/games/list
func (h *GameHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.ListAvailable(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"games":      games,
		"totalGames": len(games),
	})
}

// GetGameDetail handles GET /api/v1/game/{slug}
func (h *GameHandler) GetGameDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		response.Error(w, apierror.BadRequest("slug is required"))
		return
	}

	data, err := h.catalog.GetGameDetail(r.Context(), slug)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, data)
}

// GetGameItems handles GET /api/v1/games/{slug}/items
func (h *GameHandler) GetGameItems(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		response.Error(w, apierror.BadRequest("slug is required"))
		return
	}

	items, err := h.catalog.GetGameItems(r.Context(), slug)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, items)
}
