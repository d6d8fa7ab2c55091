package catalog

import (
	"strings"
	"time"
)

// MediaType identifies the physical format of a release.
type MediaType string

const (
	MediaCD    MediaType = "cd"
	MediaVinyl MediaType = "vinyl"
)

// MediaTypes lists every supported format in display order.
var MediaTypes = []MediaType{MediaCD, MediaVinyl}

// ParseMediaType accepts "cd" or "vinyl" in any case.
func ParseMediaType(value string) (MediaType, bool) {
	switch MediaType(strings.ToLower(strings.TrimSpace(value))) {
	case MediaCD:
		return MediaCD, true
	case MediaVinyl:
		return MediaVinyl, true
	}
	return "", false
}

// Label returns the human-readable name of the format.
func (m MediaType) Label() string {
	switch m {
	case MediaCD:
		return "CD"
	case MediaVinyl:
		return "Vinyl"
	default:
		return string(m)
	}
}

// List names the list an item belongs to.
type List string

const (
	ListCollection List = "collection"
	ListWantlist   List = "wantlist"
)

// Track is a single entry of a release's tracklist.
type Track struct {
	Number   int    `json:"number"`
	Title    string `json:"title"`
	Duration string `json:"duration,omitempty"`
}

// Item is a release in the collection or on the wantlist. Optional fields use
// their zero value for "unknown".
type Item struct {
	ID          string    `json:"id"`
	List        List      `json:"list,omitempty"`
	Artist      string    `json:"artist"`
	Title       string    `json:"title"`
	MediaType   MediaType `json:"mediaType"`
	Genre       string    `json:"genre,omitempty"`
	Year        int       `json:"year,omitempty"`
	CoverArtURL string    `json:"coverArtUrl,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Version     string    `json:"version,omitempty"`
	RecordLabel string    `json:"recordLabel,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Tracklist   []Track   `json:"tracklist,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

func (i Item) Key() string       { return i.ID }
func (i Item) Primary() string   { return i.Artist }
func (i Item) Secondary() string { return i.Title }

// DisplayTitle appends the version disambiguator, if any, to the title.
func (i Item) DisplayTitle() string {
	if i.Version == "" {
		return i.Title
	}
	return i.Title + " (" + i.Version + ")"
}

// DiscographyAlbum is an album from an artist's official discography.
type DiscographyAlbum struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// CollectionData is the backup document written by export and read by import.
type CollectionData struct {
	Collection  []Item     `json:"collection"`
	Wantlist    []Item     `json:"wantlist"`
	LastUpdated *time.Time `json:"lastUpdated"`
}
