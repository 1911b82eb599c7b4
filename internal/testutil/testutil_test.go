package testutil

import (
	"context"
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	start := time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC)
	c := NewClock(start)
	if !c.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", c.Now(), start)
	}
	c.Advance(2 * time.Minute)
	if got := c.Now(); got.Day() != 18 {
		t.Errorf("after Advance, Now() = %v", got)
	}
}

func TestSeedPlace(t *testing.T) {
	database, cleanup := TestDB(t)
	defer cleanup()

	total := SeedPlace(t, database, "Osaka", 2, 1, 1)
	if total != 10 {
		t.Errorf("SeedPlace() total = %d, want 10", total)
	}

	top, err := database.TopPlaces(context.Background(), 1)
	if err != nil {
		t.Fatalf("TopPlaces() error = %v", err)
	}
	if len(top) != 1 || top[0].TotalScore != total {
		t.Errorf("TopPlaces() = %+v", top)
	}
}
