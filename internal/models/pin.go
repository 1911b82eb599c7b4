package models

import (
	"fmt"
	"time"
)

// PinKind is the lifecycle stage of a pin.
type PinKind string

// Pin lifecycle: temporary -> resolved -> active/ghost.
const (
	PinTemporary PinKind = "temporary"
	PinResolved  PinKind = "resolved"
	PinActive    PinKind = "active"
	PinGhost     PinKind = "ghost"
)

// Pin categories
const (
	CategoryScout    = "scout"
	CategoryChat     = "chat"
	CategoryBookmark = "bookmark"
)

// Pin is a marker for a place the visitor has scouted, chatted about or bookmarked.
type Pin struct {
	ID          string      `json:"id"`
	PlaceKey    PlaceKey    `json:"place_key"`
	Coordinates Coordinates `json:"coordinates"`
	DisplayName string      `json:"display_name"`
	Country     string      `json:"country,omitempty"`
	Kind        PinKind     `json:"kind"`
	Category    string      `json:"category"`
	Bookmarked  bool        `json:"bookmarked"`
	CreatedAt   time.Time   `json:"created_at"`
}

// IsTemporary returns true while the pin awaits reverse geocoding.
func (p *Pin) IsTemporary() bool {
	return p.Kind == PinTemporary
}

// IsResolved returns true once the pin carries a real place name.
func (p *Pin) IsResolved() bool {
	return p.Kind == PinResolved || p.Kind == PinActive || p.Kind == PinGhost
}

// CoordinateLabel is the fallback display name used when geocoding fails.
func CoordinateLabel(c Coordinates) string {
	return fmt.Sprintf("Point (%.1f, %.1f)", c.Lat, c.Lng)
}
