package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey names a field the item list can be ordered by.
type SortKey string

const (
	SortArtist  SortKey = "artist"
	SortTitle   SortKey = "title"
	SortYear    SortKey = "year"
	SortGenre   SortKey = "genre"
	SortLabel   SortKey = "label"
	SortCreated SortKey = "created"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortKey validates a sort key name.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	switch key {
	case SortArtist, SortTitle, SortYear, SortGenre, SortLabel, SortCreated:
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want artist, title, year, genre, label, or created)", value)
}

// ParseSortOrder validates a sort order name.
func ParseSortOrder(value string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(value)))
	switch order {
	case OrderAsc, OrderDesc:
		return order, nil
	}
	return "", fmt.Errorf("unknown sort order %q (want asc or desc)", value)
}

// SortItems orders items in place by key. Items missing the sort field go
// last regardless of order, and text compares case-insensitively. The sort is
// stable so equal items keep their stored order.
func SortItems(items []Item, key SortKey, order SortOrder) {
	slices.SortStableFunc(items, func(a, b Item) int {
		aMissing, bMissing := missing(a, key), missing(b, key)
		switch {
		case aMissing && bMissing:
			return 0
		case aMissing:
			return 1
		case bMissing:
			return -1
		}
		c := compareBy(a, b, key)
		if order == OrderDesc {
			return -c
		}
		return c
	})
}

func missing(item Item, key SortKey) bool {
	switch key {
	case SortYear:
		return item.Year == 0
	case SortGenre:
		return item.Genre == ""
	case SortLabel:
		return item.RecordLabel == ""
	case SortCreated:
		return item.CreatedAt.IsZero()
	}
	return false
}

func compareBy(a, b Item, key SortKey) int {
	switch key {
	case SortTitle:
		return compareFold(a.Title, b.Title)
	case SortYear:
		return cmp.Compare(a.Year, b.Year)
	case SortGenre:
		return compareFold(a.Genre, b.Genre)
	case SortLabel:
		return compareFold(a.RecordLabel, b.RecordLabel)
	case SortCreated:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return compareFold(a.Artist, b.Artist)
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Search keeps items whose artist, title, genre, label, or any tag contains
// query, ignoring case. An empty query keeps everything.
func Search(items []Item, query string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if matchesQuery(item, query) {
			out = append(out, item)
		}
	}
	return out
}

func matchesQuery(item Item, query string) bool {
	fields := []string{item.Artist, item.Title, item.Genre, item.RecordLabel}
	fields = append(fields, item.Tags...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
