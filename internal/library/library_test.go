package library

import (
	"strings"
	"testing"

	"github.com/liturgica/lectern/internal/deck"
)

func TestLoad(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := lib.All()
	if len(all) == 0 {
		t.Fatal("library should not be empty")
	}

	t.Run("every song is well-formed", func(t *testing.T) {
		for _, s := range all {
			if s.Title == "" {
				t.Error("song without title")
			}
			if strings.TrimSpace(s.Lyrics) == "" {
				t.Errorf("song %q has no lyrics", s.Title)
			}
			if !deck.ValidCategory(s.Category) {
				t.Errorf("song %q has invalid category %q", s.Title, s.Category)
			}
		}
	})

	t.Run("lyrics keep blank-line structure", func(t *testing.T) {
		song, ok := lib.Find("Il est né le divin enfant")
		if !ok {
			t.Fatal("expected song in library")
		}
		if !strings.Contains(song.Lyrics, "\n\n") {
			t.Error("expected blank lines between refrain and verses")
		}
		if !strings.HasPrefix(song.Lyrics, "R/") {
			t.Errorf("expected refrain marker, got: %q", song.Lyrics[:20])
		}
	})

	t.Run("by category", func(t *testing.T) {
		entrance := lib.ByCategory(deck.CategoryEntrance)
		if len(entrance) == 0 {
			t.Fatal("expected entrance songs")
		}
		for _, s := range entrance {
			if s.Category != deck.CategoryEntrance {
				t.Errorf("song %q has category %s", s.Title, s.Category)
			}
		}
	})

	t.Run("find is case-insensitive", func(t *testing.T) {
		if _, ok := lib.Find("il est né le divin enfant"); !ok {
			t.Error("expected case-insensitive match")
		}
		if _, ok := lib.Find("Chanson inconnue"); ok {
			t.Error("unexpected match for unknown title")
		}
	})

	t.Run("all returns a copy", func(t *testing.T) {
		first := lib.All()
		first[0].Title = "mutation"
		if lib.All()[0].Title == "mutation" {
			t.Error("mutating the returned slice must not affect the library")
		}
	})
}
