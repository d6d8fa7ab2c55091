package main

import (
	"errors"
	"fmt"
	"strings"

	"crate/internal/catalog"
	"crate/internal/store"
	"crate/internal/textutil"
)

// resolveItemID expands a full ID or a unique ID prefix to a stored item ID.
func resolveItemID(s *session, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.New("item id is required")
	}
	item, err := s.store.Get(s.ctx, arg)
	if err != nil {
		return "", err
	}
	if item != nil {
		return item.ID, nil
	}

	var matches []string
	for _, list := range []catalog.List{catalog.ListCollection, catalog.ListWantlist} {
		items, err := s.store.List(s.ctx, list, "")
		if err != nil {
			return "", err
		}
		for _, it := range items {
			if strings.HasPrefix(it.ID, arg) {
				matches = append(matches, it.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", store.ErrNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d items)", arg, len(matches))
	}
}

// parseMediaFlag returns "" for an empty value, meaning "not given".
func parseMediaFlag(value string) (catalog.MediaType, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	media, ok := catalog.ParseMediaType(value)
	if !ok {
		return "", fmt.Errorf("invalid media type %q (want cd or vinyl)", value)
	}
	return media, nil
}

// displayPrefs resolves the media type and sort order for a listing. Flags
// win over saved preferences, which win over config defaults.
type displayPrefs struct {
	Media catalog.MediaType
	Sort  catalog.SortKey
	Order catalog.SortOrder
}

func resolveDisplay(s *session, mediaFlag, sortFlag, orderFlag string) (displayPrefs, error) {
	pick := func(flag, key, fallback string) (string, error) {
		if strings.TrimSpace(flag) != "" {
			return flag, nil
		}
		value, ok, err := s.store.Preference(s.ctx, key)
		if err != nil {
			return "", err
		}
		if ok {
			return value, nil
		}
		return fallback, nil
	}

	var prefs displayPrefs
	raw, err := pick(mediaFlag, store.PrefMediaType, s.cfg.Display.MediaType)
	if err != nil {
		return prefs, err
	}
	if prefs.Media, err = parseMediaFlag(raw); err != nil {
		return prefs, err
	}
	if raw, err = pick(sortFlag, store.PrefSortKey, s.cfg.Display.SortKey); err != nil {
		return prefs, err
	}
	if prefs.Sort, err = catalog.ParseSortKey(raw); err != nil {
		return prefs, err
	}
	if raw, err = pick(orderFlag, store.PrefSortOrder, s.cfg.Display.SortOrder); err != nil {
		return prefs, err
	}
	if prefs.Order, err = catalog.ParseSortOrder(raw); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// displayArtist is the artist as shown in tables and detail views. The
// stored value is never rewritten.
func displayArtist(item catalog.Item) string {
	return textutil.CapitalizeWords(item.Artist)
}
