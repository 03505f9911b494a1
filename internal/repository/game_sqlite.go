package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"gametopup-rest-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteCatalogRepository implements CatalogRepository using SQLite, storing
// documents as raw JSON text. Thread-safe with WAL mode.
type SQLiteCatalogRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteCatalogRepository creates a new SQLite catalog repository.
// dbPath is the path to the SQLite database file (e.g., "./data/catalog.db")
func NewSQLiteCatalogRepository(dbPath string) (*SQLiteCatalogRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteCatalogRepository] Initialized with database: %s", dbPath)
	return &SQLiteCatalogRepository{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_slug TEXT NOT NULL UNIQUE,
		doc TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS game_details (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_slug TEXT NOT NULL UNIQUE,
		data TEXT NOT NULL,
		raw_response TEXT NOT NULL,
		source TEXT NOT NULL,
		dumped_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_games_slug ON games(game_slug);
	CREATE INDEX IF NOT EXISTS idx_details_slug ON game_details(game_slug);
	`
	_, err := db.Exec(query)
	return err
}

// ListGames returns all game summaries, omitting excludeSlug when non-empty.
func (r *SQLiteCatalogRepository) ListGames(ctx context.Context, excludeSlug string) ([]model.GameSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT doc FROM games ORDER BY id`
	args := []interface{}{}
	if excludeSlug != "" {
		query = `SELECT doc FROM games WHERE game_slug <> ? ORDER BY id`
		args = append(args, excludeSlug)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []model.GameSummary
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse game document: %w", err)
		}
		games = append(games, model.GameSummary(doc))
	}
	return games, rows.Err()
}

// ReplaceGames clears the games table and bulk-upserts the fresh set inside
// one transaction.
func (r *SQLiteCatalogRepository) ReplaceGames(ctx context.Context, games []model.GameSummary) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM games`); err != nil {
		return 0, fmt.Errorf("failed to clear games: %w", err)
	}

	applied, err := r.upsertGamesTx(ctx, tx, games)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return applied, nil
}

// UpsertGames upserts each summary by gameSlug without clearing.
func (r *SQLiteCatalogRepository) UpsertGames(ctx context.Context, games []model.GameSummary) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	applied, err := r.upsertGamesTx(ctx, tx, games)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return applied, nil
}

func (r *SQLiteCatalogRepository) upsertGamesTx(ctx context.Context, tx *sql.Tx, games []model.GameSummary) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO games (game_slug, doc)
		VALUES (?, ?)
		ON CONFLICT(game_slug) DO UPDATE SET doc = excluded.doc`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	applied := 0
	for _, game := range games {
		raw, err := json.Marshal(map[string]interface{}(game))
		if err != nil {
			return 0, fmt.Errorf("failed to encode game %s: %w", game.Slug(), err)
		}
		if _, err := stmt.ExecContext(ctx, game.Slug(), string(raw)); err != nil {
			return 0, fmt.Errorf("failed to upsert game %s: %w", game.Slug(), err)
		}
		applied++
	}
	return applied, nil
}

// GetGameDetail returns the detail record for a slug, or (nil, nil) when absent.
func (r *SQLiteCatalogRepository) GetGameDetail(ctx context.Context, slug string) (*model.GameDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT data, raw_response, source, dumped_at FROM game_details WHERE game_slug = ?`

	var dataRaw, rawRespRaw string
	detail := &model.GameDetail{GameSlug: slug}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&dataRaw, &rawRespRaw, &detail.Source, &detail.DumpedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game detail: %w", err)
	}

	if err := json.Unmarshal([]byte(dataRaw), &detail.Data); err != nil {
		return nil, fmt.Errorf("failed to parse detail data: %w", err)
	}
	if err := json.Unmarshal([]byte(rawRespRaw), &detail.RawResponse); err != nil {
		return nil, fmt.Errorf("failed to parse raw response: %w", err)
	}
	return detail, nil
}

// UpsertGameDetail inserts or overwrites the detail record keyed by gameSlug.
func (r *SQLiteCatalogRepository) UpsertGameDetail(ctx context.Context, detail *model.GameDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dataRaw, err := json.Marshal(detail.Data)
	if err != nil {
		return fmt.Errorf("failed to encode detail data: %w", err)
	}
	rawRespRaw, err := json.Marshal(detail.RawResponse)
	if err != nil {
		return fmt.Errorf("failed to encode raw response: %w", err)
	}

	query := `
		INSERT INTO game_details (game_slug, data, raw_response, source, dumped_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_slug) DO UPDATE SET
			data = excluded.data,
			raw_response = excluded.raw_response,
			source = excluded.source,
			dumped_at = excluded.dumped_at`

	if _, err := r.db.ExecContext(ctx, query, detail.GameSlug, string(dataRaw), string(rawRespRaw), detail.Source, detail.DumpedAt); err != nil {
		return fmt.Errorf("failed to upsert game detail: %w", err)
	}
	return nil
}

// Stats returns statistics about the catalog store.
func (r *SQLiteCatalogRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["status"] = "connected"

	var games, details int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&games); err != nil {
		return stats, err
	}
	stats["total_games"] = games

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_details`).Scan(&details); err != nil {
		return stats, err
	}
	stats["total_details"] = details

	return stats, nil
}

// Close closes the database connection.
func (r *SQLiteCatalogRepository) Close() error {
	return r.db.Close()
}
