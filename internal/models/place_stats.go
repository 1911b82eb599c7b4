package models

import "time"

// PlaceStats is the aggregated popularity row for a place. DisplayName and
// Country are remembered from the last gallery save.
type PlaceStats struct {
	PlaceKey    PlaceKey
	ViewCount   int64
	ChatCount   int64
	SaveCount   int64
	TotalScore  int64
	DisplayName string
	Country     string
	ImageURL    string
	UpdatedAt   time.Time
}

// TrendingPlace is one entry on the trending board.
type TrendingPlace struct {
	Rank     int      `json:"rank"`
	PlaceKey PlaceKey `json:"place_key"`
	Name     string   `json:"name"`
	NameEN   string   `json:"name_en,omitempty"`
	Country  string   `json:"country,omitempty"`
	Score    int64    `json:"score"`
	ImageURL string   `json:"image_url,omitempty"`
}
