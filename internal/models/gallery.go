package models

// ImageURLs holds the renditions of one image.
type ImageURLs struct {
	Raw     string `json:"raw,omitempty"`
	Full    string `json:"full,omitempty"`
	Regular string `json:"regular,omitempty"`
	Small   string `json:"small,omitempty"`
	Thumb   string `json:"thumb,omitempty"`
}

// Attribution credits the author of an image.
type Attribution struct {
	Name       string `json:"name,omitempty"`
	Username   string `json:"username,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
}

// Image is a single gallery image descriptor.
type Image struct {
	ID          string      `json:"id"`
	URLs        ImageURLs   `json:"urls"`
	Description string      `json:"description,omitempty"`
	Attribution Attribution `json:"user"`
}

// ThumbnailURL returns the lightest usable rendition.
func (i Image) ThumbnailURL() string {
	if i.URLs.Small != "" {
		return i.URLs.Small
	}
	return i.URLs.Regular
}

// GallerySource names the producer of a gallery result.
type GallerySource string

// Gallery sources, in chain order.
const (
	SourceCache    GallerySource = "cache"
	SourceStore    GallerySource = "store"
	SourceSearch   GallerySource = "search"
	SourceFallback GallerySource = "fallback"
)

// GalleryQuery identifies the place whose imagery is requested.
type GalleryQuery struct {
	PlaceKey    PlaceKey `json:"place_key"`
	DisplayName string   `json:"display_name"`
	Country     string   `json:"country,omitempty"`
}

// SearchTerm is the primary free-text query for the image search.
func (q GalleryQuery) SearchTerm() string {
	if q.DisplayName != "" {
		return q.DisplayName
	}
	return string(q.PlaceKey)
}

// BroadenedTerm appends the country to the search term, or returns "" when
// there is nothing to broaden with.
func (q GalleryQuery) BroadenedTerm() string {
	term := q.SearchTerm()
	if q.Country == "" || term == "" {
		return ""
	}
	return term + " " + q.Country
}

// GalleryResult is an ordered image list produced by exactly one source.
type GalleryResult struct {
	Images []Image       `json:"images"`
	Source GallerySource `json:"source"`
	Query  string        `json:"query"`
}
