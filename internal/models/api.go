package models

// InteractionRequest is the body of POST /api/interactions.
type InteractionRequest struct {
	Place string          `json:"place"`
	Kind  InteractionKind `json:"kind"`
}

// InteractionResponse acknowledges an accepted interaction.
type InteractionResponse struct {
	PlaceKey PlaceKey        `json:"place_key"`
	Kind     InteractionKind `json:"kind"`
}

// GalleryResponse is a gallery as shown to one tab.
type GalleryResponse struct {
	GalleryResult
	Outcome    Outcome `json:"outcome"`
	Generation uint64  `json:"generation"`
	Error      string  `json:"error,omitempty"`
}

// ThumbnailResponse carries a single image for a place.
type ThumbnailResponse struct {
	PlaceKey PlaceKey `json:"place_key"`
	URL      string   `json:"url"`
}

// ScoutRequest is the body of POST /api/pins/scout.
type ScoutRequest struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Category string  `json:"category,omitempty"`
}

// BookmarkRequest is the body of POST /api/pins/:id/bookmark.
type BookmarkRequest struct {
	Bookmarked bool `json:"bookmarked"`
}

// SelectionResponse is the outcome of selecting a place from search.
type SelectionResponse struct {
	Resolution Resolution `json:"resolution"`
	Pin        *Pin       `json:"pin,omitempty"`
}

// TrendingResponse is the current trending board.
type TrendingResponse struct {
	Places []TrendingPlace `json:"places"`
	Live   bool            `json:"live"`
}
