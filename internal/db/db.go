package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"days/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks the database connection.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevPlaces inserts sample place scores for development so the trending
// board has something to show. Skips places that already exist.
func (d *DB) SeedDevPlaces(ctx context.Context) error {
	places := []struct {
		key     string
		name    string
		country string
		views   int64
		chats   int64
		saves   int64
	}{
		{"Osaka", "Osaka", "Japan", 40, 6, 3},
		{"Kyoto", "Kyoto", "Japan", 32, 4, 5},
		{"Lisbon", "Lisbon", "Portugal", 21, 2, 2},
		{"Reykjavik", "Reykjavik", "Iceland", 12, 3, 1},
		{"Aitutaki", "Aitutaki", "Cook Islands", 9, 1, 4},
	}

	query := `
		INSERT INTO place_stats (place_key, display_name, country, view_count, chat_count, save_count, total_score)
		VALUES ($1, $2, $3, $4, $5, $6, $4 + $5 * 3 + $6 * 5)
		ON CONFLICT (place_key) DO NOTHING
	`

	for _, p := range places {
		if _, err := d.Pool.Exec(ctx, query, p.key, p.name, p.country, p.views, p.chats, p.saves); err != nil {
			return fmt.Errorf("failed to seed place %s: %w", p.key, err)
		}
	}

	return nil
}
