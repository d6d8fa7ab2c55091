package library

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"crate/internal/catalog"
	"crate/internal/dedupe"
	"crate/internal/logging"
	"crate/internal/textutil"
)

// DuplicateGroup is a set of collection items that look like the same release.
// Items[0] is the seed; Keep is the item recommended to retain.
type DuplicateGroup struct {
	Items []catalog.Item `json:"items"`
	Keep  catalog.Item   `json:"keep"`
}

// ScanDuplicates groups likely duplicates in the collection. An empty
// mediaType scans every format together.
func (s *Service) ScanDuplicates(ctx context.Context, mediaType catalog.MediaType) ([]DuplicateGroup, error) {
	items, err := s.store.List(ctx, catalog.ListCollection, mediaType)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	groups := dedupe.FindDuplicateGroups(items, s.duplicateThresholds())
	result := make([]DuplicateGroup, 0, len(groups))
	for _, group := range groups {
		keep, err := catalog.BestItem(group)
		if err != nil {
			return nil, err
		}
		result = append(result, DuplicateGroup{Items: group, Keep: keep})
	}

	logging.WithContext(ctx, s.logger).Info("duplicate scan finished",
		logging.String(logging.FieldMediaType, string(mediaType)),
		logging.Int("items", len(items)),
		logging.Int("groups", len(result)),
	)
	return result, nil
}

// ScanAll scans each media type separately and concurrently.
func (s *Service) ScanAll(ctx context.Context) (map[catalog.MediaType][]DuplicateGroup, error) {
	results := make([][]DuplicateGroup, len(catalog.MediaTypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, media := range catalog.MediaTypes {
		g.Go(func() error {
			groups, err := s.ScanDuplicates(gctx, media)
			if err != nil {
				return fmt.Errorf("scan %s: %w", media, err)
			}
			results[i] = groups
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[catalog.MediaType][]DuplicateGroup, len(results))
	for i, media := range catalog.MediaTypes {
		out[media] = results[i]
	}
	return out, nil
}

// WantlistOwned returns wantlist items that already appear to be in the
// collection. An empty mediaType checks every format.
func (s *Service) WantlistOwned(ctx context.Context, mediaType catalog.MediaType) ([]catalog.Item, error) {
	wanted, err := s.store.List(ctx, catalog.ListWantlist, mediaType)
	if err != nil {
		return nil, fmt.Errorf("load wantlist: %w", err)
	}
	owned, err := s.store.List(ctx, catalog.ListCollection, mediaType)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	th := s.ownedThresholds()
	var matches []catalog.Item
	for _, item := range wanted {
		if dedupe.Contains(owned, item, th) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// MissingReport partitions an artist's discography by ownership.
type MissingReport struct {
	Artist  string                     `json:"artist"`
	Owned   []catalog.DiscographyAlbum `json:"owned"`
	Missing []catalog.DiscographyAlbum `json:"missing"`
}

// MissingAlbums compares discography with the collection items by artist.
// Both halves of the report are ordered by year, unknown years first.
func (s *Service) MissingAlbums(ctx context.Context, artist string, discography []catalog.DiscographyAlbum) (MissingReport, error) {
	report := MissingReport{Artist: artist}
	if strings.TrimSpace(artist) == "" {
		return report, errors.New("artist is required")
	}

	items, err := s.store.List(ctx, catalog.ListCollection, "")
	if err != nil {
		return report, fmt.Errorf("load collection: %w", err)
	}
	var byArtist []catalog.Item
	for _, item := range items {
		if textutil.AreSimilar(item.Artist, artist, s.matching.OwnedArtistThreshold) {
			byArtist = append(byArtist, item)
		}
	}

	titleOnly := dedupe.Thresholds{Secondary: s.matching.OwnedTitleThreshold}
	for _, album := range discography {
		probe := dedupe.Text{Title: album.Title}
		if dedupe.Contains(byArtist, probe, titleOnly) {
			report.Owned = append(report.Owned, album)
		} else {
			report.Missing = append(report.Missing, album)
		}
	}

	byYear := func(a, b catalog.DiscographyAlbum) int { return a.Year - b.Year }
	slices.SortStableFunc(report.Owned, byYear)
	slices.SortStableFunc(report.Missing, byYear)

	logging.WithContext(ctx, s.logger).Info("discography compared",
		logging.String("artist", artist),
		logging.Int("owned", len(report.Owned)),
		logging.Int("missing", len(report.Missing)),
	)
	return report, nil
}

// ArtistFor returns the artist to offer a discography scan for when every
// search result shares one artist and the query names that artist. The
// artist is taken from the first result rather than the query, which may be
// misspelled.
func (s *Service) ArtistFor(query string, results []catalog.Item) (string, bool) {
	if strings.TrimSpace(query) == "" || len(results) == 0 {
		return "", false
	}
	first := results[0].Artist

	artists := make([]string, 0, len(results))
	for _, item := range results {
		artists = append(artists, item.Artist)
	}
	if !dedupe.AllSimilar(artists, first, s.matching.SameArtistThreshold) {
		return "", false
	}
	if !textutil.AreSimilar(query, first, s.matching.QueryThreshold) {
		return "", false
	}
	return first, true
}
