package trending

import (
	"context"
	"errors"
	"testing"

	"days/internal/config"
	"days/internal/models"
)

type fakeSource struct {
	stats []models.PlaceStats
	err   error
	limit int
}

func (f *fakeSource) TopPlaces(_ context.Context, limit int) ([]models.PlaceStats, error) {
	f.limit = limit
	return f.stats, f.err
}

type fakeThumbs struct{ calls int }

func (f *fakeThumbs) Thumbnail(_ context.Context, q models.GalleryQuery) string {
	f.calls++
	return "https://img/" + q.PlaceKey.String()
}

func TestBoard_StartsWithFallback(t *testing.T) {
	b := NewBoard(nil, config.DefaultCatalog(), nil)
	places, live := b.Current()
	if live {
		t.Error("new board reported live data")
	}
	if len(places) != 10 || places[0].Name != "Osaka" || places[0].Rank != 1 {
		t.Errorf("fallback = %+v", places)
	}
}

func TestBoard_TooFewScoresKeepsFallback(t *testing.T) {
	src := &fakeSource{stats: []models.PlaceStats{
		{PlaceKey: "Kyoto", TotalScore: 9},
		{PlaceKey: "Lisbon", TotalScore: 4},
	}}
	b := NewBoard(src, config.DefaultCatalog(), nil)
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if src.limit != Size {
		t.Errorf("limit = %d, want %d", src.limit, Size)
	}
	if _, live := b.Current(); live {
		t.Error("board went live with fewer than 3 places")
	}
}

func TestBoard_LiveRanking(t *testing.T) {
	src := &fakeSource{stats: []models.PlaceStats{
		{PlaceKey: "Osaka", TotalScore: 73, ImageURL: "https://img/stored-osaka"},
		{PlaceKey: "Hallstatt", DisplayName: "Hallstatt", Country: "Austria", TotalScore: 20},
		{PlaceKey: "Unknown", TotalScore: 15},
		{PlaceKey: "Ushuaia", TotalScore: 8},
	}}
	thumbs := &fakeThumbs{}
	b := NewBoard(src, config.DefaultCatalog(), thumbs)
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	places, live := b.Current()
	if !live {
		t.Fatal("board not live")
	}
	if len(places) != 3 {
		t.Fatalf("len = %d, want 3 (placeholder row skipped): %+v", len(places), places)
	}
	if places[0].Country != "Japan" || places[0].ImageURL != "https://img/stored-osaka" {
		t.Errorf("catalog enrichment missing: %+v", places[0])
	}
	if places[1].Rank != 2 || places[1].Country != "Austria" {
		t.Errorf("places[1] = %+v", places[1])
	}
	if places[2].Name != "Ushuaia" || places[2].ImageURL != "https://img/Ushuaia" {
		t.Errorf("places[2] = %+v", places[2])
	}
	if thumbs.calls != 2 {
		t.Errorf("thumbnail lookups = %d, want 2", thumbs.calls)
	}
}

func TestBoard_SourceErrorKeepsRanking(t *testing.T) {
	src := &fakeSource{stats: []models.PlaceStats{
		{PlaceKey: "Osaka", TotalScore: 3}, {PlaceKey: "Kyoto", TotalScore: 2}, {PlaceKey: "Paris", TotalScore: 1},
	}}
	b := NewBoard(src, config.DefaultCatalog(), nil)
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	src.err = errors.New("db down")
	if err := b.Refresh(context.Background()); err == nil {
		t.Error("Refresh() error = nil, want source error")
	}
	if places, live := b.Current(); !live || len(places) != 3 {
		t.Errorf("ranking lost after error: live=%v %+v", live, places)
	}
}
