package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"gametopup-rest-api/internal/upstream"
	"gametopup-rest-api/pkg/apierror"
	"gametopup-rest-api/pkg/logger"

	"go.uber.org/zap"
)

// ErrMissingRegionFields marks a region check rejected before the upstream
// call. The region endpoint reports this inside its always-200 envelope, not
// as a status code.
var ErrMissingRegionFields = errors.New("missing required fields")

// GateService backs the two stateless passthrough proxies: account check and
// region lookup. It validates and normalizes input, forwards the call, and
// reshapes the response. It never touches the catalog store.
type GateService struct {
	gate              *upstream.GateClient
	region            *upstream.RegionClient
	gateDefaultGame   string
	regionDefaultGame string
	log               *logger.Logger
}

// NewGateService creates a passthrough service.
func NewGateService(gate *upstream.GateClient, region *upstream.RegionClient, gateDefaultGame, regionDefaultGame string, log *logger.Logger) *GateService {
	return &GateService{
		gate:              gate,
		region:            region,
		gateDefaultGame:   gateDefaultGame,
		regionDefaultGame: regionDefaultGame,
		log:               log,
	}
}

// Check validates the request body and forwards it to the account-check API.
// user_id may arrive as id, server_id as zone; game defaults to the
// configured value. Returns the upstream status and body verbatim.
func (s *GateService) Check(ctx context.Context, body map[string]interface{}) (int, []byte, error) {
	userID := firstString(body, "user_id", "id")
	serverID := firstString(body, "server_id", "zone")
	game := firstString(body, "game")
	if game == "" {
		game = s.gateDefaultGame
	}

	if userID == "" {
		return 0, nil, apierror.ValidationError("Missing required field: user_id or id",
			apierror.FieldError{Field: "user_id", Message: "required"})
	}

	status, respBody, err := s.gate.Check(ctx, game, userID, serverID)
	if err != nil {
		s.log.Error("account check failed", err, zap.String("user_id", userID))
		return 0, nil, apierror.InternalError("Internal server error")
	}

	return status, respBody, nil
}

// RegionResult is the normalized region-check payload. Upstream id fields
// arrive as strings or numbers, so they stay untyped.
type RegionResult struct {
	Username interface{} `json:"username"`
	Region   interface{} `json:"region"`
	UserID   interface{} `json:"user_id"`
	Zone     interface{} `json:"zone"`
	Game     string      `json:"game"`
}

// CheckRegion validates the request body, queries the region API, and
// normalizes its {username, country, user_id, server_id} shape. Missing
// fields return ErrMissingRegionFields; upstream failures propagate as-is.
// The handler maps both into the endpoint's always-200 envelope.
func (s *GateService) CheckRegion(ctx context.Context, body map[string]interface{}) (*RegionResult, error) {
	userID := firstString(body, "user_id", "id")
	serverID := firstString(body, "server_id", "zone")
	game := firstString(body, "game")
	if game == "" {
		game = s.regionDefaultGame
	}

	if userID == "" || serverID == "" {
		return nil, ErrMissingRegionFields
	}

	apiData, err := s.region.Lookup(ctx, game, userID, serverID)
	if err != nil {
		s.log.Error("region lookup failed", err, zap.String("user_id", userID), zap.String("server_id", serverID))
		return nil, err
	}

	return &RegionResult{
		Username: orNil(apiData["username"]),
		Region:   orNil(apiData["country"]),
		UserID:   orDefault(apiData["user_id"], userID),
		Zone:     orDefault(apiData["server_id"], serverID),
		Game:     game,
	}, nil
}

// firstString returns the first present, non-empty field coerced to string.
// Numeric ids are accepted and formatted without a float suffix.
func firstString(body map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := body[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case json.Number:
			return t.String()
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}

func orNil(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	return v
}

func orDefault(v interface{}, fallback string) interface{} {
	if v == nil {
		return fallback
	}
	if s, ok := v.(string); ok && s == "" {
		return fallback
	}
	return v
}
