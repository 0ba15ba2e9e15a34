package store

import (
	"errors"
	"testing"
	"time"

	"github.com/liturgica/lectern/internal/deck"
)

func testDate() time.Time {
	return time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
}

func TestStore_PresentationCRUD(t *testing.T) {
	s := New()

	created := s.CreatePresentation("Messe de Noël", testDate())
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}
	if created.Title != "Messe de Noël" {
		t.Errorf("unexpected title: %s", created.Title)
	}

	t.Run("get", func(t *testing.T) {
		got, err := s.GetPresentation(created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Title != created.Title {
			t.Errorf("unexpected title: %s", got.Title)
		}
	})

	t.Run("get unknown", func(t *testing.T) {
		if _, err := s.GetPresentation("nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		newDate := testDate().AddDate(0, 0, 1)
		updated, err := s.UpdatePresentation(created.ID, "Messe du jour", newDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Title != "Messe du jour" || !updated.Date.Equal(newDate) {
			t.Errorf("update not applied: %+v", updated)
		}
	})

	t.Run("list sorted by date desc", func(t *testing.T) {
		s.CreatePresentation("Plus ancienne", testDate().AddDate(0, -1, 0))
		list := s.ListPresentations()
		if len(list) != 2 {
			t.Fatalf("expected 2 presentations, got %d", len(list))
		}
		if list[0].Date.Before(list[1].Date) {
			t.Error("expected newest date first")
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.DeletePresentation(created.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.GetPresentation(created.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got: %v", err)
		}
		if err := s.DeletePresentation(created.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound for double delete, got: %v", err)
		}
	})
}

func TestStore_Readings(t *testing.T) {
	s := New()
	p := s.CreatePresentation("Messe", testDate())

	reading, err := s.AddReading(p.ID, deck.Reading{
		Title:     "Première lecture",
		Reference: "Is 9, 1-6",
		Body:      "Le peuple qui marchait dans les ténèbres...",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.ID == "" {
		t.Fatal("expected generated reading ID")
	}

	t.Run("update", func(t *testing.T) {
		reading.Body = "texte corrigé"
		updated, err := s.UpdateReading(p.ID, *reading)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Body != "texte corrigé" {
			t.Errorf("update not applied: %+v", updated)
		}
	})

	t.Run("update unknown", func(t *testing.T) {
		if _, err := s.UpdateReading(p.ID, deck.Reading{ID: "nope"}); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("delete also drops order entries", func(t *testing.T) {
		if err := s.SetOrder(p.ID, []deck.OrderEntry{
			{ItemID: reading.ID, Kind: deck.KindReading, Order: 1},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.DeleteReading(p.ID, reading.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := s.GetPresentation(p.ID)
		if len(got.Readings) != 0 {
			t.Error("reading should be removed")
		}
		if len(got.Order) != 0 {
			t.Error("order entry should be removed with the reading")
		}
	})
}

func TestStore_Songs(t *testing.T) {
	s := New()
	p := s.CreatePresentation("Messe", testDate())

	song, err := s.AddSong(p.ID, deck.Song{
		Title:    "Il est né le divin enfant",
		Lyrics:   "R/ Il est né le divin enfant\n\n1. Depuis plus de quatre mille ans",
		Category: deck.CategoryEntrance,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if song.ID == "" {
		t.Fatal("expected generated song ID")
	}

	t.Run("update", func(t *testing.T) {
		song.Melody = "traditionnel"
		updated, err := s.UpdateSong(p.ID, *song)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Melody != "traditionnel" {
			t.Errorf("update not applied: %+v", updated)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.DeleteSong(p.ID, song.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.DeleteSong(p.ID, song.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestStore_AddAppendsToOrder(t *testing.T) {
	s := New()
	p := s.CreatePresentation("Messe", testDate())

	reading, err := s.AddReading(p.ID, deck.Reading{Title: "Lecture", Body: "texte"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	song, err := s.AddSong(p.ID, deck.Song{Title: "Chant", Lyrics: "paroles", Category: deck.CategoryOther})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := s.GetPresentation(p.ID)
	if len(got.Order) != 2 {
		t.Fatalf("expected 2 order entries, got %d", len(got.Order))
	}
	if got.Order[0].ItemID != reading.ID || got.Order[0].Kind != deck.KindReading || got.Order[0].Order != 1 {
		t.Errorf("unexpected first entry: %+v", got.Order[0])
	}
	if got.Order[1].ItemID != song.ID || got.Order[1].Kind != deck.KindSong || got.Order[1].Order != 2 {
		t.Errorf("unexpected second entry: %+v", got.Order[1])
	}

	t.Run("keys continue after reorder", func(t *testing.T) {
		if err := s.SetOrder(p.ID, []deck.OrderEntry{
			{ItemID: song.ID, Kind: deck.KindSong, Order: 10},
			{ItemID: reading.ID, Kind: deck.KindReading, Order: 20},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		next, err := s.AddReading(p.ID, deck.Reading{Title: "Psaume", Body: "texte"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := s.GetPresentation(p.ID)
		last := got.Order[len(got.Order)-1]
		if last.ItemID != next.ID || last.Order != 21 {
			t.Errorf("new entry should take the next key after 20: %+v", last)
		}
	})

	t.Run("added items reach the assembler", func(t *testing.T) {
		got, _ := s.GetPresentation(p.ID)
		slides := deck.Assemble(got)
		if len(slides) < 3 {
			t.Errorf("slide count = %d, want at least 3 (title + content)", len(slides))
		}
	})
}

func TestStore_ImportPresentation(t *testing.T) {
	s := New()

	imported := s.ImportPresentation(&deck.Presentation{
		Title: "Importée",
		Date:  testDate(),
		Readings: []deck.Reading{
			{Title: "Évangile", Body: "texte"},
		},
		Songs: []deck.Song{
			{Title: "Chant", Lyrics: "paroles", Category: deck.CategoryOther},
		},
	})
	if imported.ID == "" {
		t.Fatal("expected assigned presentation ID")
	}
	if imported.Readings[0].ID == "" || imported.Songs[0].ID == "" {
		t.Error("expected assigned content-item IDs")
	}

	t.Run("replaces same id", func(t *testing.T) {
		imported.Title = "Remplacée"
		again := s.ImportPresentation(imported)
		if again.ID != imported.ID {
			t.Errorf("expected same ID, got %s", again.ID)
		}
		got, _ := s.GetPresentation(imported.ID)
		if got.Title != "Remplacée" {
			t.Errorf("unexpected title: %s", got.Title)
		}
		if len(s.ListPresentations()) != 1 {
			t.Error("reimport should not duplicate")
		}
	})
}

func TestStore_CopiesAreIsolated(t *testing.T) {
	s := New()
	p := s.CreatePresentation("Messe", testDate())
	if _, err := s.AddReading(p.ID, deck.Reading{Title: "Lecture", Body: "texte"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := s.GetPresentation(p.ID)
	got.Readings[0].Body = "mutation locale"

	again, _ := s.GetPresentation(p.ID)
	if again.Readings[0].Body != "texte" {
		t.Error("mutating a returned copy must not affect the store")
	}
}
