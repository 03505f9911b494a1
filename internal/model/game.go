package model

import "time"

// SourceExternalAPI tags detail records dumped from the upstream catalog.
const SourceExternalAPI = "external-api"

// Field names shared by the store, the sync jobs and the read path. The
// upstream provider owns the document shape, so summaries stay open maps and
// these are the only fields this system reads by name.
const (
	FieldGameSlug     = "gameSlug"
	FieldGameName     = "gameName"
	FieldAvailability = "gameAvailability"
	FieldLastSyncedAt = "lastSyncedAt"
	FieldItems        = "itemId"
	FieldItemName     = "itemName"
	FieldItemSlug     = "itemSlug"
	FieldSellingPrice = "sellingPrice"
	FieldDummyPrice   = "dummyPrice"
)

// GameSummary is one catalog entry: the provider document passed through
// opaquely, plus sync bookkeeping. Typed accessors cover the handful of
// fields the system interprets.
type GameSummary map[string]interface{}

// Slug returns the natural key, or "" when missing.
func (g GameSummary) Slug() string {
	s, _ := g[FieldGameSlug].(string)
	return s
}

// Name returns the display name, or "" when missing.
func (g GameSummary) Name() string {
	s, _ := g[FieldGameName].(string)
	return s
}

// Available reports whether the game is included in "available" listings.
func (g GameSummary) Available() bool {
	b, _ := g[FieldAvailability].(bool)
	return b
}

// Stamp sets lastSyncedAt. Called on every successful upsert so staleness is
// detectable downstream.
func (g GameSummary) Stamp(t time.Time) {
	g[FieldLastSyncedAt] = t
}

// Clone returns a deep copy of the summary.
func (g GameSummary) Clone() GameSummary {
	return GameSummary(CloneMap(g))
}

// GameDetail is the full per-game payload, keyed by slug.
type GameDetail struct {
	GameSlug    string                 `bson:"gameSlug" json:"gameSlug"`
	Data        map[string]interface{} `bson:"data" json:"data"`
	RawResponse map[string]interface{} `bson:"rawResponse" json:"rawResponse"`
	Source      string                 `bson:"source" json:"source"`
	DumpedAt    time.Time              `bson:"dumpedAt" json:"dumpedAt"`
}

// Items returns the ordered item list from the detail payload, or nil when
// the payload has none.
func (d *GameDetail) Items() []interface{} {
	if d == nil || d.Data == nil {
		return nil
	}
	items, _ := d.Data[FieldItems].([]interface{})
	return items
}

// SlimGame is the {gameName, gameSlug} listing projection.
type SlimGame struct {
	GameName string `json:"gameName"`
	GameSlug string `json:"gameSlug"`
}

// SlimItem is the slim post-transform item projection.
type SlimItem struct {
	ItemName     string `json:"itemName"`
	ItemSlug     string `json:"itemSlug"`
	SellingPrice int64  `json:"sellingPrice"`
	DummyPrice   int64  `json:"dummyPrice"`
}

// CloneMap deep-copies a JSON-shaped document (maps, slices, scalars).
// Stored payloads are cloned before the read path mutates them for pricing.
func CloneMap(src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return nil
	}
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return CloneMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
