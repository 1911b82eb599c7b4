package db

import "errors"

// Domain-level database error sentinels.
var (
	// Place stats errors
	ErrPlaceNotFound = errors.New("place not found")
	ErrNoGallery     = errors.New("no stored gallery for place")
	ErrInvalidKind   = errors.New("invalid interaction kind")
)
