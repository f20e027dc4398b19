package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hlsx/internal/media"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "hlsx", "history.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	entry := media.HistoryEntry{
		URL:       "https://ex.com/movie/master.m3u8",
		Title:     "Test Movie",
		StreamURL: "https://ex.com/movie/1080/index.m3u8",
		Quality:   "1080p (FHD)",
		Position:  1234,
		Duration:  5678,
	}

	if err := s.Save(ctx, entry); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.URL != entry.URL {
		t.Errorf("URL = %q, want %q", got.URL, entry.URL)
	}
	if got.Title != entry.Title {
		t.Errorf("Title = %q, want %q", got.Title, entry.Title)
	}
	if got.StreamURL != entry.StreamURL {
		t.Errorf("StreamURL = %q, want %q", got.StreamURL, entry.StreamURL)
	}
	if got.Position != entry.Position {
		t.Errorf("Position = %f, want %f", got.Position, entry.Position)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set on save")
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	entry := media.HistoryEntry{URL: "https://ex.com/a.m3u8", Title: "A", Position: 100}
	s.Save(ctx, entry)

	entry.Position = 500
	s.Save(ctx, entry)

	entries, _ := s.Load(ctx)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after update, got %d", len(entries))
	}
	if entries[0].Position != 500 {
		t.Errorf("position = %f, want 500", entries[0].Position)
	}
}

func TestLoadOrdersByRecency(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Save(ctx, media.HistoryEntry{URL: "https://ex.com/old.m3u8", Title: "Old", UpdatedAt: base})
	s.Save(ctx, media.HistoryEntry{URL: "https://ex.com/new.m3u8", Title: "New", UpdatedAt: base.Add(time.Hour)})

	entries, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Title != "New" || entries[1].Title != "Old" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if !entries[1].UpdatedAt.Equal(base) {
		t.Errorf("UpdatedAt = %v, want %v", entries[1].UpdatedAt, base)
	}
}

func TestFindAndRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Save(ctx, media.HistoryEntry{URL: "a", Title: "A"})
	s.Save(ctx, media.HistoryEntry{URL: "b", Title: "B"})

	if _, ok, err := s.Find(ctx, "a"); err != nil || !ok {
		t.Fatalf("Find(a) = %v, %v", ok, err)
	}

	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := s.Find(ctx, "a"); ok {
		t.Error("entry a should be gone")
	}
	entries, _ := s.Load(ctx)
	if len(entries) != 1 || entries[0].URL != "b" {
		t.Errorf("remaining entries = %+v, want only b", entries)
	}
}

func TestSaveRequiresURL(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save(context.Background(), media.HistoryEntry{Title: "No URL"}); err == nil {
		t.Error("Save() should reject an entry without URL")
	}
}

func TestOpenDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	s, err := OpenDefault()
	if err != nil {
		t.Fatalf("OpenDefault() error: %v", err)
	}
	defer s.Close()

	if err := s.Save(context.Background(), media.HistoryEntry{URL: "x", Title: "X"}); err != nil {
		t.Fatal(err)
	}
}

func TestFormatForDisplay(t *testing.T) {
	entries := []media.HistoryEntry{
		{Title: "Movie A", Quality: "1080p (FHD)", Position: 500, Duration: 1000},
		{Title: "Live B", Position: 3725},
		{Title: "Fresh C"},
	}

	items := FormatForDisplay(entries)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	if items[0] != "Movie A [1080p (FHD)] 50%" {
		t.Errorf("vod display = %q", items[0])
	}
	if items[1] != "Live B @1:02:05" {
		t.Errorf("live display = %q", items[1])
	}
	if items[2] != "Fresh C" {
		t.Errorf("new display = %q", items[2])
	}
}
