package service

import (
	"context"

	"gametopup-rest-api/internal/model"
	"gametopup-rest-api/internal/pricing"
	"gametopup-rest-api/internal/repository"
	"gametopup-rest-api/pkg/apierror"
	"gametopup-rest-api/pkg/logger"

	"go.uber.org/zap"
)

// CatalogService serves the mirrored catalog. All reads are non-mutating;
// the pricing transform is applied to request-local clones only.
type CatalogService struct {
	repo         repository.CatalogRepository
	rates        pricing.Rates
	sentinelSlug string
	log          *logger.Logger
}

// NewCatalogService creates a catalog read service. sentinelSlug is a
// non-production seed record permanently excluded from listings.
func NewCatalogService(repo repository.CatalogRepository, rates pricing.Rates, sentinelSlug string, log *logger.Logger) *CatalogService {
	return &CatalogService{
		repo:         repo,
		rates:        rates,
		sentinelSlug: sentinelSlug,
		log:          log,
	}
}

// ListGames returns all catalog summaries minus the sentinel record.
func (s *CatalogService) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	games, err := s.repo.ListGames(ctx, s.sentinelSlug)
	if err != nil {
		s.log.Error("failed to list games", err)
		return nil, apierror.InternalError("Failed to load games")
	}
	if games == nil {
		games = []model.GameSummary{}
	}
	return games, nil
}

// ListAvailable returns the slim {gameName, gameSlug} projection of games
// with gameAvailability == true.
func (s *CatalogService) ListAvailable(ctx context.Context) ([]model.SlimGame, error) {
	games, err := s.repo.ListGames(ctx, s.sentinelSlug)
	if err != nil {
		s.log.Error("failed to list games", err)
		return nil, apierror.InternalError("Failed to load games")
	}

	slim := make([]model.SlimGame, 0, len(games))
	for _, g := range games {
		if !g.Available() {
			continue
		}
		slim = append(slim, model.SlimGame{
			GameName: g.Name(),
			GameSlug: g.Slug(),
		})
	}
	return slim, nil
}

// GetGameDetail returns one game's full detail payload with the pricing
// transform applied to every item. Not-found is a distinct, expected outcome.
func (s *CatalogService) GetGameDetail(ctx context.Context, slug string) (map[string]interface{}, error) {
	record, err := s.repo.GetGameDetail(ctx, slug)
	if err != nil {
		s.log.Error("failed to load game detail", err, zap.String("slug", slug))
		return nil, apierror.InternalError("Server error")
	}
	if record == nil || len(record.Data) == 0 {
		return nil, apierror.NotFound("Game not found")
	}

	// Clone before mutating: the transform is read-time only and must never
	// touch the stored payload.
	data := model.CloneMap(record.Data)
	if items, ok := data[model.FieldItems].([]interface{}); ok {
		data[model.FieldItems] = s.rates.ApplyToItems(items)
	}

	return data, nil
}

// GameItems is the slim per-game item listing.
type GameItems struct {
	GameName string           `json:"gameName"`
	GameSlug string           `json:"gameSlug"`
	Items    []model.SlimItem `json:"items"`
}

// GetGameItems returns one game's item list, slim-projected post-transform.
func (s *CatalogService) GetGameItems(ctx context.Context, slug string) (*GameItems, error) {
	record, err := s.repo.GetGameDetail(ctx, slug)
	if err != nil {
		s.log.Error("failed to load game detail", err, zap.String("slug", slug))
		return nil, apierror.InternalError("Server error")
	}

	items := record.Items()
	if len(items) == 0 {
		return nil, apierror.NotFound("Items not found for this game")
	}

	slim := make([]model.SlimItem, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := m[model.FieldItemName].(string)
		itemSlug, _ := m[model.FieldItemSlug].(string)
		slim = append(slim, model.SlimItem{
			ItemName:     name,
			ItemSlug:     itemSlug,
			SellingPrice: s.rates.Selling(m[model.FieldSellingPrice]),
			DummyPrice:   s.rates.Dummy(m[model.FieldDummyPrice]),
		})
	}

	gameName, _ := record.Data[model.FieldGameName].(string)
	gameSlug, _ := record.Data[model.FieldGameSlug].(string)

	return &GameItems{
		GameName: gameName,
		GameSlug: gameSlug,
		Items:    slim,
	}, nil
}
