package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gametopup-rest-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBCatalogRepository implements CatalogRepository using MongoDB.
type MongoDBCatalogRepository struct {
	client  *mongo.Client
	db      *mongo.Database
	games   *mongo.Collection
	details *mongo.Collection
}

// NewMongoDBCatalogRepository creates a new MongoDB catalog repository.
func NewMongoDBCatalogRepository(uri, database string) (*MongoDBCatalogRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	games := db.Collection("games")
	details := db.Collection("game_details")

	// gameSlug is the natural key of both collections
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: model.FieldGameSlug, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{games, details} {
		if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
			log.Printf("[MongoDB] Warning: failed to create index on %s: %v", coll.Name(), err)
		}
	}

	log.Printf("[MongoDB] Connected to %s", database)
	return &MongoDBCatalogRepository{
		client:  client,
		db:      db,
		games:   games,
		details: details,
	}, nil
}

// ListGames returns all game summaries, omitting excludeSlug when non-empty.
func (r *MongoDBCatalogRepository) ListGames(ctx context.Context, excludeSlug string) ([]model.GameSummary, error) {
	filter := bson.M{}
	if excludeSlug != "" {
		filter[model.FieldGameSlug] = bson.M{"$ne": excludeSlug}
	}

	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cursor, err := r.games.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer cursor.Close(ctx)

	var games []model.GameSummary
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode game: %w", err)
		}
		normalized, err := normalizeDoc(doc)
		if err != nil {
			return nil, err
		}
		games = append(games, model.GameSummary(normalized))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// ReplaceGames clears the summaries collection and bulk-upserts the fresh set.
func (r *MongoDBCatalogRepository) ReplaceGames(ctx context.Context, games []model.GameSummary) (int, error) {
	result, err := r.games.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to clear games: %w", err)
	}
	log.Printf("[MongoDB] Cleared games collection: %d records", result.DeletedCount)

	return r.UpsertGames(ctx, games)
}

// UpsertGames upserts each summary by gameSlug.
func (r *MongoDBCatalogRepository) UpsertGames(ctx context.Context, games []model.GameSummary) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(games))
	for _, game := range games {
		filter := bson.M{model.FieldGameSlug: game.Slug()}
		update := bson.M{"$set": map[string]interface{}(game)}
		models = append(models, mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := r.games.BulkWrite(ctx, models, opts); err != nil {
		return 0, fmt.Errorf("failed to bulk upsert games: %w", err)
	}

	return len(games), nil
}

// GetGameDetail returns the detail record for a slug, or (nil, nil) when absent.
func (r *MongoDBCatalogRepository) GetGameDetail(ctx context.Context, slug string) (*model.GameDetail, error) {
	filter := bson.M{model.FieldGameSlug: slug}

	var doc bson.M
	err := r.details.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 0})).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game detail: %w", err)
	}

	// Convert BSON back to plain JSON maps so the read path never sees
	// driver-specific types.
	normalized, err := normalizeDoc(doc)
	if err != nil {
		return nil, err
	}

	detail := &model.GameDetail{GameSlug: slug}
	if data, ok := normalized["data"].(map[string]interface{}); ok {
		detail.Data = data
	}
	if raw, ok := normalized["rawResponse"].(map[string]interface{}); ok {
		detail.RawResponse = raw
	}
	if source, ok := normalized["source"].(string); ok {
		detail.Source = source
	}
	if dumped, ok := doc["dumpedAt"].(primitive.DateTime); ok {
		detail.DumpedAt = dumped.Time()
	}

	return detail, nil
}

// UpsertGameDetail inserts or overwrites the detail record keyed by gameSlug.
func (r *MongoDBCatalogRepository) UpsertGameDetail(ctx context.Context, detail *model.GameDetail) error {
	filter := bson.M{model.FieldGameSlug: detail.GameSlug}
	update := bson.M{
		"$set": bson.M{
			model.FieldGameSlug: detail.GameSlug,
			"data":              detail.Data,
			"rawResponse":       detail.RawResponse,
			"source":            detail.Source,
			"dumpedAt":          detail.DumpedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.details.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert game detail: %w", err)
	}
	return nil
}

// Stats returns statistics about the catalog store.
func (r *MongoDBCatalogRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})
	stats["status"] = "connected"

	games, err := r.games.CountDocuments(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	stats["total_games"] = games

	details, err := r.details.CountDocuments(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	stats["total_details"] = details

	opts := options.FindOne().SetSort(bson.D{{Key: model.FieldLastSyncedAt, Value: -1}})
	var doc bson.M
	if err := r.games.FindOne(ctx, bson.M{}, opts).Decode(&doc); err == nil {
		if synced, ok := doc[model.FieldLastSyncedAt].(primitive.DateTime); ok {
			stats["last_sync"] = synced.Time()
		}
	}

	return stats, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBCatalogRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// normalizeDoc round-trips a decoded BSON document through JSON, flattening
// primitive.M/primitive.A values into plain maps and slices.
func normalizeDoc(doc bson.M) (map[string]interface{}, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}
	return out, nil
}
