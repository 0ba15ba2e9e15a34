package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/enhance"
	"github.com/liturgica/lectern/internal/home"
)

func testPresentation() *deck.Presentation {
	return &deck.Presentation{
		ID:    "p1",
		Title: "Messe de Noël",
		Date:  time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		Readings: []deck.Reading{
			{ID: "r1", Title: "Évangile", Reference: "Lc 2, 1-14", Body: "En ces jours-là, parut un édit de l'empereur Auguste."},
		},
		Songs: []deck.Song{
			{ID: "s1", Title: "Il est né", Lyrics: "R/ Il est né le divin enfant", Category: deck.CategoryEntrance},
		},
		Order: []deck.OrderEntry{
			{ItemID: "r1", Kind: deck.KindReading, Order: 1},
			{ItemID: "s1", Kind: deck.KindSong, Order: 2},
		},
	}
}

func testHome(t *testing.T) *home.Dir {
	t.Helper()
	dir, err := home.New(filepath.Join(t.TempDir(), "lectern"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return dir
}

func TestExporter_Export(t *testing.T) {
	t.Run("writes deck to exports dir", func(t *testing.T) {
		h := testHome(t)
		exporter := NewExporter(ExporterConfig{Home: h})

		res, err := exporter.Export(context.Background(), testPresentation(), Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Filename != "Messe de Noël.pptx" {
			t.Errorf("unexpected filename: %s", res.Filename)
		}
		if res.SlideCount < 3 {
			t.Errorf("expected at least title + reading + song slides, got %d", res.SlideCount)
		}
		if res.Enhanced != 0 {
			t.Errorf("expected no enhancement, got %d", res.Enhanced)
		}

		data, err := os.ReadFile(res.Path)
		if err != nil {
			t.Fatalf("failed to read deck: %v", err)
		}
		if _, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			t.Errorf("deck is not a valid archive: %v", err)
		}
	})

	t.Run("explicit output path", func(t *testing.T) {
		h := testHome(t)
		exporter := NewExporter(ExporterConfig{Home: h})
		out := filepath.Join(t.TempDir(), "deck.pptx")

		res, err := exporter.Export(context.Background(), testPresentation(), Options{OutputPath: out})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Path != out {
			t.Errorf("unexpected path: %s", res.Path)
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("deck not written: %v", err)
		}
	})

	t.Run("enhance without provider degrades with warning", func(t *testing.T) {
		h := testHome(t)
		exporter := NewExporter(ExporterConfig{Home: h})

		res, err := exporter.Export(context.Background(), testPresentation(), Options{Enhance: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Warnings) == 0 {
			t.Error("expected a warning about skipped enhancement")
		}
		if !strings.HasSuffix(res.Filename, ".pptx") || strings.Contains(res.Filename, "_enhanced") {
			t.Errorf("unenhanced deck should not carry the suffix: %s", res.Filename)
		}
	})

	t.Run("invalid credentials abort the export", func(t *testing.T) {
		h := testHome(t)
		registry := enhance.NewRegistry()
		registry.Reload(map[string]enhance.ProviderConfig{
			"deepai": {Type: "deepai", APIKey: "your-api-key-here", Enabled: true},
		})
		exporter := NewExporter(ExporterConfig{
			Home:            h,
			Providers:       registry,
			DefaultProvider: func() string { return "deepai" },
		})

		_, err := exporter.Export(context.Background(), testPresentation(), Options{Enhance: true})
		if !errors.Is(err, enhance.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
		}
	})
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		enhanced bool
		want     string
	}{
		{"plain", "Messe de Noël", false, "Messe de Noël.pptx"},
		{"enhanced suffix", "Messe de Noël", true, "Messe de Noël_enhanced.pptx"},
		{"path separators replaced", "Messe 24/12", false, "Messe 24_12.pptx"},
		{"empty title falls back", "", false, "presentation.pptx"},
		{"dots trimmed", "Messe...", false, "Messe.pptx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.title, tt.enhanced); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJobs(t *testing.T) {
	h := testHome(t)
	exporter := NewExporter(ExporterConfig{Home: h})
	jobs := NewJobs(exporter)

	rec := jobs.Submit(context.Background(), testPresentation(), Options{})
	if rec.ID == "" {
		t.Fatal("expected job ID")
	}
	if rec.PresentationID != "p1" {
		t.Errorf("unexpected presentation id: %s", rec.PresentationID)
	}

	// The job runs in the background; poll until it settles.
	deadline := time.Now().Add(5 * time.Second)
	var final *Record
	for time.Now().Before(deadline) {
		got, err := jobs.Get(rec.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status == StatusCompleted || got.Status == StatusFailed {
			final = got
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if final == nil {
		t.Fatal("job did not finish in time")
	}
	if final.Status != StatusCompleted {
		t.Fatalf("job failed: %s", final.Error)
	}
	if final.Percent != 100 || final.Filename == "" || final.CompletedAt == nil {
		t.Errorf("incomplete final record: %+v", final)
	}

	t.Run("get unknown", func(t *testing.T) {
		if _, err := jobs.Get("nope"); err == nil {
			t.Error("expected error for unknown job")
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		jobs.Submit(context.Background(), testPresentation(), Options{})
		// Let the second job finish before the test tears down its
		// temp home directory.
		jobs.Wait()
		list := jobs.List()
		if len(list) != 2 {
			t.Fatalf("expected 2 records, got %d", len(list))
		}
		if list[0].CreatedAt.Before(list[1].CreatedAt) {
			t.Error("expected newest record first")
		}
	})

	t.Run("wait drains running jobs", func(t *testing.T) {
		rec := jobs.Submit(context.Background(), testPresentation(), Options{})
		jobs.Wait()
		got, err := jobs.Get(rec.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != StatusCompleted && got.Status != StatusFailed {
			t.Errorf("job still %s after Wait", got.Status)
		}
	})
}
