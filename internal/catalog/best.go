package catalog

import (
	"errors"
	"slices"
)

// BestItem picks the entry worth keeping from a group of duplicates. Entries
// with cover art win, then the one with the most filled-in details; ties go
// to the most recently created. The input slice is not reordered.
func BestItem(items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, errors.New("best item: empty group")
	}
	best := slices.MaxFunc(items, func(a, b Item) int {
		if sa, sb := completeness(a), completeness(b); sa != sb {
			return sa - sb
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return best, nil
}

func completeness(item Item) int {
	score := 0
	if item.CoverArtURL != "" {
		score += 100
	}
	if item.Genre != "" {
		score += 10
	}
	if item.Year != 0 {
		score += 10
	}
	if item.RecordLabel != "" {
		score += 10
	}
	if item.Version != "" {
		score += 5
	}
	if item.Notes != "" {
		score += 5
	}
	score += len(item.Tags)
	return score
}
