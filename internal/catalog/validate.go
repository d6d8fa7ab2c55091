package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidItem is wrapped by every validation failure.
var ErrInvalidItem = errors.New("invalid item")

const (
	minYear = 1000
	maxYear = 9999
)

// Normalize trims text fields, drops blank and repeated tags (case-insensitive),
// and defaults an empty list to the collection.
func (i *Item) Normalize() {
	i.Artist = strings.TrimSpace(i.Artist)
	i.Title = strings.TrimSpace(i.Title)
	i.Genre = strings.TrimSpace(i.Genre)
	i.CoverArtURL = strings.TrimSpace(i.CoverArtURL)
	i.Notes = strings.TrimSpace(i.Notes)
	i.Version = strings.TrimSpace(i.Version)
	i.RecordLabel = strings.TrimSpace(i.RecordLabel)
	if mt, ok := ParseMediaType(string(i.MediaType)); ok {
		i.MediaType = mt
	}
	if i.List == "" {
		i.List = ListCollection
	}
	i.Tags = normalizeTags(i.Tags)
	for idx := range i.Tracklist {
		i.Tracklist[idx].Title = strings.TrimSpace(i.Tracklist[idx].Title)
		i.Tracklist[idx].Duration = strings.TrimSpace(i.Tracklist[idx].Duration)
	}
}

// Validate reports the first problem that would stop the item from being stored.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Artist) == "" {
		return fmt.Errorf("%w: artist is required", ErrInvalidItem)
	}
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidItem)
	}
	if _, ok := ParseMediaType(string(i.MediaType)); !ok {
		return fmt.Errorf("%w: media type %q must be cd or vinyl", ErrInvalidItem, i.MediaType)
	}
	switch i.List {
	case "", ListCollection, ListWantlist:
	default:
		return fmt.Errorf("%w: unknown list %q", ErrInvalidItem, i.List)
	}
	if i.Year != 0 && (i.Year < minYear || i.Year > maxYear) {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidItem, i.Year)
	}
	for idx, track := range i.Tracklist {
		if strings.TrimSpace(track.Title) == "" {
			return fmt.Errorf("%w: track %d has no title", ErrInvalidItem, idx+1)
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
