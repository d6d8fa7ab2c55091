package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"crate/internal/catalog"
)

const itemColumns = "id, list, artist, title, media_type, genre, year, cover_art_url, notes, version, record_label, tags_json, tracklist_json, created_at, updated_at"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*catalog.Item, error) {
	var (
		id          string
		list        string
		artist      string
		title       string
		mediaType   string
		genre       sql.NullString
		year        sql.NullInt64
		coverArt    sql.NullString
		notes       sql.NullString
		version     sql.NullString
		recordLabel sql.NullString
		tagsJSON    sql.NullString
		tracksJSON  sql.NullString
		createdRaw  string
		updatedRaw  string
	)

	if err := scanner.Scan(
		&id,
		&list,
		&artist,
		&title,
		&mediaType,
		&genre,
		&year,
		&coverArt,
		&notes,
		&version,
		&recordLabel,
		&tagsJSON,
		&tracksJSON,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	item := &catalog.Item{
		ID:          id,
		List:        catalog.List(list),
		Artist:      artist,
		Title:       title,
		MediaType:   catalog.MediaType(mediaType),
		Genre:       genre.String,
		Year:        int(year.Int64),
		CoverArtURL: coverArt.String,
		Notes:       notes.String,
		Version:     version.String,
		RecordLabel: recordLabel.String,
		CreatedAt:   parseTime(createdRaw),
		UpdatedAt:   parseTime(updatedRaw),
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &item.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", id, err)
		}
	}
	if tracksJSON.Valid && tracksJSON.String != "" {
		if err := json.Unmarshal([]byte(tracksJSON.String), &item.Tracklist); err != nil {
			return nil, fmt.Errorf("decode tracklist for %s: %w", id, err)
		}
	}
	return item, nil
}

// itemArgs returns values in itemColumns order.
func itemArgs(item catalog.Item) ([]any, error) {
	tags, err := nullableJSON(item.Tags, len(item.Tags) == 0)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	tracks, err := nullableJSON(item.Tracklist, len(item.Tracklist) == 0)
	if err != nil {
		return nil, fmt.Errorf("encode tracklist: %w", err)
	}
	return []any{
		item.ID,
		string(item.List),
		item.Artist,
		item.Title,
		string(item.MediaType),
		nullableString(item.Genre),
		nullableInt(item.Year),
		nullableString(item.CoverArtURL),
		nullableString(item.Notes),
		nullableString(item.Version),
		nullableString(item.RecordLabel),
		tags,
		tracks,
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	}, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableJSON(value any, empty bool) (any, error) {
	if empty {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
