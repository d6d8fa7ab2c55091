package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"crate/internal/library"
)

func TestAddListShowRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	id := env.addJSON(t, "--artist", "pink floyd", "--title", "the wall", "--year", "1979", "--tag", "prog")
	env.addJSON(t, "--artist", "Queen", "--title", "Jazz", "--media", "vinyl")

	out := env.mustRun(t, "list")
	requireContains(t, out, "Pink Floyd")
	requireContains(t, out, "the wall")
	requireNotContains(t, out, "Jazz")
	requireContains(t, out, "1 item(s)")

	out = env.mustRun(t, "list", "--all")
	requireContains(t, out, "Jazz")

	out = env.mustRun(t, "show", id[:8])
	requireContains(t, out, "Artist:  Pink Floyd")
	requireContains(t, out, "Year:    1979")
	requireContains(t, out, "Tags:    prog")

	out = env.mustRun(t, "remove", id)
	requireContains(t, out, "Removed "+id)

	if _, _, err := runCLI(t, []string{"show", id}, env.configPath); err == nil {
		t.Fatal("expected error showing removed item")
	}
}

func TestAddRejectsDuplicateUnlessForced(t *testing.T) {
	env := setupCLITestEnv(t)

	env.addJSON(t, "--artist", "Radiohead", "--title", "OK Computer")

	_, stderr, err := runCLI(t, []string{"add", "--artist", "radiohead", "--title", "OK Computr"}, env.configPath)
	var dupErr *library.DuplicateError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	requireContains(t, stderr, "Possible duplicate")

	out := env.mustRun(t, "add", "--artist", "Radiohead", "--title", "OK Computer", "--force", "--version", "OKNOTOK")
	requireContains(t, out, "OK Computer (OKNOTOK)")
}

func TestWantlistAcquireAndOwned(t *testing.T) {
	env := setupCLITestEnv(t)

	env.addJSON(t, "--artist", "Fleetwood Mac", "--title", "Rumours")
	env.addJSON(t, "--artist", "Fleetwod Mac", "--title", "Rumours", "--want")
	wantID := env.addJSON(t, "--artist", "Radiohead", "--title", "Amnesiac", "--want")

	out := env.mustRun(t, "owned")
	requireContains(t, out, "Fleetwod Mac")
	requireNotContains(t, out, "Amnesiac")

	out = env.mustRun(t, "acquire", wantID)
	requireContains(t, out, "Moved Radiohead - Amnesiac into the collection")

	out = env.mustRun(t, "list", "--want")
	requireNotContains(t, out, "Amnesiac")
}

func TestDupesReportsGroups(t *testing.T) {
	env := setupCLITestEnv(t)

	env.addJSON(t, "--artist", "Nirvana", "--title", "Nevermind")
	env.addJSON(t, "--artist", "Nirvana", "--title", "Nevermind", "--force", "--cover", "https://example.com/n.jpg")
	env.addJSON(t, "--artist", "Queen", "--title", "Jazz")

	out := env.mustRun(t, "dupes")
	requireContains(t, out, "Group 1 (2 items)")
	requireContains(t, out, "keep")
	requireContains(t, out, "1 group(s)")

	out = env.mustRun(t, "--json", "dupes", "--all")
	var results map[string][]library.DuplicateGroup
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode dupes json: %v", err)
	}
	if len(results["cd"]) != 1 || len(results["vinyl"]) != 0 {
		t.Fatalf("unexpected scan results %+v", results)
	}
	if results["cd"][0].Keep.CoverArtURL == "" {
		t.Fatal("expected the copy with cover art to be kept")
	}
}

func TestMissingUsesDiscographyFile(t *testing.T) {
	env := setupCLITestEnv(t)

	env.addJSON(t, "--artist", "Radiohead", "--title", "Kid A")
	discography := filepath.Join(env.baseDir, "radiohead.json")
	doc := `[{"title": "Kid A", "year": 2000}, {"title": "The Bends", "year": 1995}]`
	if err := os.WriteFile(discography, []byte(doc), 0o644); err != nil {
		t.Fatalf("write discography: %v", err)
	}

	out := env.mustRun(t, "--json", "missing", "Radiohead", "--discography", discography)
	var report library.MissingReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Owned) != 1 || report.Owned[0].Title != "Kid A" {
		t.Fatalf("unexpected owned %+v", report.Owned)
	}
	if len(report.Missing) != 1 || report.Missing[0].Title != "The Bends" {
		t.Fatalf("unexpected missing %+v", report.Missing)
	}

	out = env.mustRun(t, "list", "--search", "radiohead")
	requireContains(t, out, "crate missing")
}

func TestAddStoresNamesAsTyped(t *testing.T) {
	env := setupCLITestEnv(t)

	tests := []struct {
		artist, title string
		shown         string
	}{
		{"the xx", "coexist", "The Xx"},
		{"k.d. lang", "ingénue", "K.d. Lang"},
		{"Radiohead", "ok computer", "Radiohead"},
	}

	for _, tt := range tests {
		id := env.addJSON(t, "--artist", tt.artist, "--title", tt.title)

		out := env.mustRun(t, "--json", "show", id)
		var stored struct {
			Artist string `json:"artist"`
			Title  string `json:"title"`
		}
		if err := json.Unmarshal([]byte(out), &stored); err != nil {
			t.Fatalf("decode show output %q: %v", out, err)
		}
		if stored.Artist != tt.artist || stored.Title != tt.title {
			t.Fatalf("stored %q / %q, want %q / %q", stored.Artist, stored.Title, tt.artist, tt.title)
		}

		out = env.mustRun(t, "show", id)
		requireContains(t, out, "Artist:  "+tt.shown)
		requireContains(t, out, "Title:   "+tt.title)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	env.addJSON(t, "--artist", "Queen", "--title", "Jazz")
	target := filepath.Join(env.baseDir, "out", "backup.json")
	out := env.mustRun(t, "export", target)
	requireContains(t, out, "Exported 1 collection and 0 wantlist item(s)")

	env.mustRun(t, "remove", env.addJSON(t, "--artist", "Björk", "--title", "Homogenic"))
	env.addJSON(t, "--artist", "Miles Davis", "--title", "Kind of Blue")

	out = env.mustRun(t, "import", target)
	requireContains(t, out, "Restored 1 collection")
	out = env.mustRun(t, "list")
	requireContains(t, out, "Jazz")
	requireNotContains(t, out, "Kind of Blue")

	env.addJSON(t, "--artist", "Miles Davis", "--title", "Kind of Blue")
	out = env.mustRun(t, "import", "--merge", target)
	requireContains(t, out, "0 added, 1 merged")
	out = env.mustRun(t, "list")
	requireContains(t, out, "Kind of Blue")
}

func TestExportDefaultsToBackupDir(t *testing.T) {
	env := setupCLITestEnv(t)

	env.mustRun(t, "export")
	entries, err := os.ReadDir(env.cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("read backup dir: %v", err)
	}
	var found bool
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a backup in %s", env.cfg.Paths.BackupDir)
	}
}

func TestPrefsSetChangesListDefaults(t *testing.T) {
	env := setupCLITestEnv(t)

	env.addJSON(t, "--artist", "Queen", "--title", "Jazz", "--media", "vinyl")

	out := env.mustRun(t, "list")
	requireNotContains(t, out, "Jazz")

	env.mustRun(t, "prefs", "set", "media_type", "VINYL")
	out = env.mustRun(t, "list")
	requireContains(t, out, "Jazz")

	out = env.mustRun(t, "prefs", "get")
	requireContains(t, out, "vinyl")

	if _, _, err := runCLI(t, []string{"prefs", "set", "colour", "blue"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown preference")
	}
	if _, _, err := runCLI(t, []string{"prefs", "set", "sort_key", "colour"}, env.configPath); err == nil {
		t.Fatal("expected error for invalid sort key")
	}
}
