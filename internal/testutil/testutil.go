// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"days/internal/db"
	"days/internal/models"
)

// TestDB creates a test database connection and returns a cleanup function.
// Skips the test unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	cleanupTestData(ctx, database.Pool)

	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM place_stats")
}

// SeedPlace records views, chats and saves for a place through the
// aggregator and returns the resulting total score.
func SeedPlace(t *testing.T, database *db.DB, place models.PlaceKey, views, chats, saves int) int64 {
	t.Helper()
	ctx := context.Background()

	counts := map[models.InteractionKind]int{
		models.InteractionView: views,
		models.InteractionChat: chats,
		models.InteractionSave: saves,
	}
	var total int64
	for kind, n := range counts {
		for i := 0; i < n; i++ {
			if err := database.Increment(ctx, place, kind); err != nil {
				t.Fatalf("failed to seed %s for %s: %v", kind, place, err)
			}
			total += kind.Weight()
		}
	}
	return total
}

// Clock is a manually advanced clock for code that accepts a now func.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock stopped at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
