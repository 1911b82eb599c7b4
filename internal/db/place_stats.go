package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"days/internal/models"
)

// kindColumns maps an interaction kind to its counter column. Column names are
// never taken from input.
var kindColumns = map[models.InteractionKind]string{
	models.InteractionView: "view_count",
	models.InteractionChat: "chat_count",
	models.InteractionSave: "save_count",
}

// Increment adds one interaction to a place's counters and its weighted score.
func (d *DB) Increment(ctx context.Context, place models.PlaceKey, kind models.InteractionKind) error {
	col, ok := kindColumns[kind]
	if !ok {
		return ErrInvalidKind
	}
	_, err := d.Pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO place_stats (place_key, %[1]s, total_score, updated_at)
		VALUES ($1, 1, $2, NOW())
		ON CONFLICT (place_key) DO UPDATE
		SET %[1]s = place_stats.%[1]s + 1,
		    total_score = place_stats.total_score + $2,
		    updated_at = NOW()
	`, col), place.String(), kind.Weight())
	if err != nil {
		return fmt.Errorf("failed to increment %s for %s: %w", kind, place, err)
	}
	return nil
}

// GalleryURLs returns the stored gallery for a place.
func (d *DB) GalleryURLs(ctx context.Context, place models.PlaceKey) ([]models.Image, error) {
	var raw []byte
	err := d.Pool.QueryRow(ctx, `
		SELECT gallery_urls FROM place_stats WHERE place_key = $1
	`, place.String()).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNoGallery
	}

	var images []models.Image
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil, fmt.Errorf("failed to decode gallery for %s: %w", place, err)
	}
	if len(images) == 0 {
		return nil, ErrNoGallery
	}
	return images, nil
}

// Thumbnail returns the stored thumbnail URL for a place.
func (d *DB) Thumbnail(ctx context.Context, place models.PlaceKey) (string, error) {
	var url string
	err := d.Pool.QueryRow(ctx, `
		SELECT image_url FROM place_stats WHERE place_key = $1
	`, place.String()).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrPlaceNotFound
		}
		return "", err
	}
	if url == "" {
		return "", ErrNoGallery
	}
	return url, nil
}

// SaveGallery upserts the gallery for a place and sets its thumbnail to the
// first image. Score counters are left untouched.
func (d *DB) SaveGallery(ctx context.Context, q models.GalleryQuery, images []models.Image) error {
	if len(images) == 0 {
		return ErrNoGallery
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("failed to encode gallery: %w", err)
	}

	_, err = d.Pool.Exec(ctx, `
		INSERT INTO place_stats (place_key, display_name, country, gallery_urls, image_url, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, NOW())
		ON CONFLICT (place_key) DO UPDATE
		SET gallery_urls = EXCLUDED.gallery_urls,
		    image_url = EXCLUDED.image_url,
		    display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), place_stats.display_name),
		    country = COALESCE(NULLIF(EXCLUDED.country, ''), place_stats.country),
		    updated_at = NOW()
	`, q.PlaceKey.String(), q.DisplayName, q.Country, string(raw), images[0].ThumbnailURL())
	if err != nil {
		return fmt.Errorf("failed to save gallery for %s: %w", q.PlaceKey, err)
	}
	return nil
}

// TopPlaces returns up to limit places with a positive score, highest first.
func (d *DB) TopPlaces(ctx context.Context, limit int) ([]models.PlaceStats, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT place_key, view_count, chat_count, save_count, total_score,
		       display_name, country, image_url, updated_at
		FROM place_stats
		WHERE total_score > 0
		ORDER BY total_score DESC, place_key
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return scanPlaceStats(rows)
}

// AllPlaceStats returns every place row for metrics export.
func (d *DB) AllPlaceStats(ctx context.Context) ([]models.PlaceStats, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT place_key, view_count, chat_count, save_count, total_score,
		       display_name, country, image_url, updated_at
		FROM place_stats
	`)
	if err != nil {
		return nil, err
	}
	return scanPlaceStats(rows)
}

func scanPlaceStats(rows pgx.Rows) ([]models.PlaceStats, error) {
	defer rows.Close()

	var stats []models.PlaceStats
	for rows.Next() {
		var s models.PlaceStats
		var key string
		if err := rows.Scan(&key, &s.ViewCount, &s.ChatCount, &s.SaveCount, &s.TotalScore,
			&s.DisplayName, &s.Country, &s.ImageURL, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.PlaceKey = models.PlaceKey(key)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
