package library_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"crate/internal/catalog"
	"crate/internal/library"
	"crate/internal/logging"
	"crate/internal/store"
	"crate/internal/testsupport"
)

func newService(t *testing.T) (*library.Service, *store.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	return library.New(st, cfg.Matching, logging.NewNop()), st
}

func mustAdd(t *testing.T, svc *library.Service, item catalog.Item) *catalog.Item {
	t.Helper()
	stored, err := svc.Add(context.Background(), item, library.AddOptions{})
	if err != nil {
		t.Fatalf("Add(%s - %s) failed: %v", item.Artist, item.Title, err)
	}
	return stored
}

func cd(artist, title string) catalog.Item {
	return catalog.Item{Artist: artist, Title: title, MediaType: catalog.MediaCD}
}

func want(artist, title string) catalog.Item {
	return catalog.Item{Artist: artist, Title: title, MediaType: catalog.MediaCD, List: catalog.ListWantlist}
}

func TestAddRejectsDuplicate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	existing := mustAdd(t, svc, cd("Queen", "A Night at the Opera"))

	_, err := svc.Add(ctx, cd("queen", "a night at the opera"), library.AddOptions{})
	var dupErr *library.DuplicateError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dupErr.Existing.ID != existing.ID {
		t.Fatalf("unexpected existing item %q", dupErr.Existing.ID)
	}
}

func TestAddChecksSameMediaAndListOnly(t *testing.T) {
	svc, _ := newService(t)

	mustAdd(t, svc, cd("Queen", "Jazz"))

	vinyl := cd("Queen", "Jazz")
	vinyl.MediaType = catalog.MediaVinyl
	mustAdd(t, svc, vinyl)
	mustAdd(t, svc, want("Queen", "Jazz"))
}

func TestAddForceStoresVersion(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	mustAdd(t, svc, cd("Radiohead", "OK Computer"))

	stored, err := svc.Add(ctx, cd("Radiohead", "OK Computer"), library.AddOptions{Force: true, Version: "OKNOTOK 2017"})
	if err != nil {
		t.Fatalf("forced Add failed: %v", err)
	}
	if stored.Version != "OKNOTOK 2017" {
		t.Fatalf("version not stored: %q", stored.Version)
	}

	items, err := svc.List(ctx, catalog.ListCollection, catalog.MediaCD, library.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected both copies stored, got %d", len(items))
	}
}

func TestAddValidates(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Add(context.Background(), catalog.Item{Artist: " ", Title: "Jazz", MediaType: catalog.MediaCD}, library.AddOptions{})
	if !errors.Is(err, catalog.ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	item := mustAdd(t, svc, cd("Nirvana", "Nevermind"))
	item.Genre = "Grunge"
	if err := svc.Update(ctx, *item); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := svc.Get(ctx, item.ID)
	if err != nil || got.Genre != "Grunge" {
		t.Fatalf("Get after update = %+v, %v", got, err)
	}

	item.Year = 12
	if err := svc.Update(ctx, *item); !errors.Is(err, catalog.ErrInvalidItem) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := svc.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, item.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSortsAndSearches(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	mustAdd(t, svc, catalog.Item{Artist: "Radiohead", Title: "Kid A", MediaType: catalog.MediaCD, Year: 2000})
	mustAdd(t, svc, catalog.Item{Artist: "Queen", Title: "Jazz", MediaType: catalog.MediaCD, Year: 1978})
	mustAdd(t, svc, catalog.Item{Artist: "Radiohead", Title: "The Bends", MediaType: catalog.MediaCD, Year: 1995})

	items, err := svc.List(ctx, catalog.ListCollection, catalog.MediaCD, library.ListOptions{
		Sort:  catalog.SortYear,
		Query: "radiohead",
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got := titles(items); !reflect.DeepEqual(got, []string{"The Bends", "Kid A"}) {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestAcquire(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	wanted := mustAdd(t, svc, want("Radiohead", "Amnesiac"))
	acquired, err := svc.Acquire(ctx, wanted.ID, library.AddOptions{})
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if acquired.List != catalog.ListCollection {
		t.Fatalf("expected item in collection, got %q", acquired.List)
	}

	if _, err := svc.Acquire(ctx, wanted.ID, library.AddOptions{}); !errors.Is(err, library.ErrWrongList) {
		t.Fatalf("expected ErrWrongList, got %v", err)
	}

	again := mustAdd(t, svc, want("Radiohead", "Amnesiac"))
	var dupErr *library.DuplicateError
	if _, err := svc.Acquire(ctx, again.ID, library.AddOptions{}); !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}

	forced, err := svc.Acquire(ctx, again.ID, library.AddOptions{Force: true, Version: "Japanese pressing"})
	if err != nil {
		t.Fatalf("forced Acquire failed: %v", err)
	}
	if forced.Version != "Japanese pressing" || forced.List != catalog.ListCollection {
		t.Fatalf("unexpected forced item %+v", forced)
	}
}

func TestScanDuplicatesPicksKeeper(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	plain := testsupport.NewItem(t, st, "Queen", "Jazz", catalog.MediaCD)
	testsupport.NewItem(t, st, "Nirvana", "Nevermind", catalog.MediaCD)
	covered := testsupport.MustInsert(t, st, catalog.Item{
		Artist: "queen", Title: "jazz", MediaType: catalog.MediaCD, CoverArtURL: "https://example.com/jazz.jpg",
	})

	groups, err := svc.ScanDuplicates(ctx, catalog.MediaCD)
	if err != nil {
		t.Fatalf("ScanDuplicates failed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	if got := ids(groups[0].Items); !reflect.DeepEqual(got, []string{covered.ID, plain.ID}) {
		t.Fatalf("unexpected group %v", got)
	}
	if groups[0].Keep.ID != covered.ID {
		t.Fatalf("expected item with cover art kept, got %q", groups[0].Keep.ID)
	}
}

func TestMatchingStartsFromNewestItem(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	testsupport.NewItem(t, st, "Queen", "Jazz", catalog.MediaCD)
	newer := testsupport.NewItem(t, st, "Queen", "Jazz", catalog.MediaCD)

	_, err := svc.Add(ctx, cd("Queen", "Jazz"), library.AddOptions{})
	var dupErr *library.DuplicateError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dupErr.Existing.ID != newer.ID {
		t.Fatalf("expected newest match %s, got %s", newer.ID, dupErr.Existing.ID)
	}

	groups, err := svc.ScanDuplicates(ctx, catalog.MediaCD)
	if err != nil {
		t.Fatalf("ScanDuplicates failed: %v", err)
	}
	if len(groups) != 1 || groups[0].Items[0].ID != newer.ID {
		t.Fatalf("expected group seeded by %s, got %+v", newer.ID, groups)
	}
}

// Seeds are compared only with later items, so the newest-first walk decides
// which of three chained near-duplicates are grouped.
func TestScanDuplicatesSeedsChainFromNewest(t *testing.T) {
	svc, st := newService(t)

	testsupport.NewItem(t, st, "Guns N' Roses", "Appetite for Destruction", catalog.MediaCD)
	middle := testsupport.NewItem(t, st, "Guns N' Roses", "Appetite fr Destructon", catalog.MediaCD)
	newest := testsupport.NewItem(t, st, "Guns N' Roses", "Apetite fr Destrcton", catalog.MediaCD)

	groups, err := svc.ScanDuplicates(context.Background(), catalog.MediaCD)
	if err != nil {
		t.Fatalf("ScanDuplicates failed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	if got := ids(groups[0].Items); !reflect.DeepEqual(got, []string{newest.ID, middle.ID}) {
		t.Fatalf("unexpected group %v", got)
	}
}

func TestScanAllSeparatesMediaTypes(t *testing.T) {
	svc, st := newService(t)

	testsupport.NewItem(t, st, "Queen", "Jazz", catalog.MediaCD)
	testsupport.NewItem(t, st, "Queen", "Jazz", catalog.MediaVinyl)
	testsupport.NewItem(t, st, "Radiohead", "OK Computer", catalog.MediaVinyl)
	testsupport.NewItem(t, st, "Radiohead", "OK Computr", catalog.MediaVinyl)

	results, err := svc.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}
	if len(results[catalog.MediaCD]) != 0 {
		t.Fatalf("CD and vinyl copies must not group together: %+v", results[catalog.MediaCD])
	}
	if len(results[catalog.MediaVinyl]) != 1 {
		t.Fatalf("expected one vinyl group, got %d", len(results[catalog.MediaVinyl]))
	}
	if _, ok := results[catalog.MediaCD]; !ok {
		t.Fatal("expected cd key even without groups")
	}
}

func TestWantlistOwned(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	mustAdd(t, svc, cd("Radiohead", "OK Computer"))
	mustAdd(t, svc, cd("Fleetwood Mac", "Rumours"))

	owned := mustAdd(t, svc, want("Radiohed", "OK Computr"))
	mustAdd(t, svc, want("Fleetwood Mac", "Rumors"))
	mustAdd(t, svc, want("Queen", "Jazz"))

	got, err := svc.WantlistOwned(ctx, "")
	if err != nil {
		t.Fatalf("WantlistOwned failed: %v", err)
	}
	if ids := ids(got); !reflect.DeepEqual(ids, []string{owned.ID}) {
		t.Fatalf("unexpected owned wantlist items %v", ids)
	}
}

func TestMissingAlbums(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	mustAdd(t, svc, cd("Radiohead", "Kid A"))
	mustAdd(t, svc, cd("Radiohead", "OK Computer"))
	mustAdd(t, svc, cd("radiohed", "In Rainbow"))
	mustAdd(t, svc, cd("Queen", "The Bends"))

	discography := []catalog.DiscographyAlbum{
		{Title: "Pablo Honey", Year: 1993},
		{Title: "Kid A", Year: 2000},
		{Title: "The Bends", Year: 1995},
		{Title: "OK Computer", Year: 1997},
		{Title: "In Rainbows", Year: 2007},
		{Title: "Unreleased"},
	}

	report, err := svc.MissingAlbums(ctx, "Radiohead", discography)
	if err != nil {
		t.Fatalf("MissingAlbums failed: %v", err)
	}
	if got, want := albumTitles(report.Owned), []string{"OK Computer", "Kid A", "In Rainbows"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("owned = %v, want %v", got, want)
	}
	if got, want := albumTitles(report.Missing), []string{"Unreleased", "Pablo Honey", "The Bends"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("missing = %v, want %v", got, want)
	}

	if _, err := svc.MissingAlbums(ctx, "  ", discography); err == nil {
		t.Fatal("expected error for blank artist")
	}
}

func TestArtistFor(t *testing.T) {
	svc, _ := newService(t)

	radiohead := []catalog.Item{cd("Radiohead", "Kid A"), cd("radiohead", "The Bends")}
	mixed := []catalog.Item{cd("Queen", "Jazz"), cd("Queens of the Stone Age", "Songs for the Deaf")}

	tests := []struct {
		name       string
		query      string
		results    []catalog.Item
		wantArtist string
		wantOK     bool
	}{
		{"misspelled query uses stored name", "radiohed", radiohead, "Radiohead", true},
		{"query names album not artist", "kid a", radiohead, "", false},
		{"mixed artists", "queen", mixed, "", false},
		{"no results", "radiohead", nil, "", false},
		{"blank query", " ", radiohead, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, ok := svc.ArtistFor(tt.query, tt.results)
			if artist != tt.wantArtist || ok != tt.wantOK {
				t.Fatalf("ArtistFor(%q) = %q, %v; want %q, %v", tt.query, artist, ok, tt.wantArtist, tt.wantOK)
			}
		})
	}
}

func ids(items []catalog.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func titles(items []catalog.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func albumTitles(albums []catalog.DiscographyAlbum) []string {
	out := make([]string, 0, len(albums))
	for _, album := range albums {
		out = append(out, album.Title)
	}
	return out
}
