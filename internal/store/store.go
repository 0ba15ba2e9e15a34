// Package store holds editor state: presentations with their readings,
// songs, and slide order. State is in-memory; documents are saved and
// loaded as JSON through the import/export endpoints.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/liturgica/lectern/internal/deck"
)

// ErrNotFound is returned when a presentation or content item does not exist.
var ErrNotFound = errors.New("not found")

// Store is an in-memory presentation store safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	presentations map[string]*deck.Presentation
}

// New creates an empty store.
func New() *Store {
	return &Store{
		presentations: make(map[string]*deck.Presentation),
	}
}

// CreatePresentation creates a presentation with a fresh ID.
func (s *Store) CreatePresentation(title string, date time.Time) *deck.Presentation {
	p := &deck.Presentation{
		ID:    uuid.New().String(),
		Title: title,
		Date:  date,
	}

	s.mu.Lock()
	s.presentations[p.ID] = p
	s.mu.Unlock()

	return clonePresentation(p)
}

// ImportPresentation stores a complete presentation document. A missing
// ID is assigned; an existing ID is replaced.
func (s *Store) ImportPresentation(p *deck.Presentation) *deck.Presentation {
	cp := clonePresentation(p)
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	for i := range cp.Readings {
		if cp.Readings[i].ID == "" {
			cp.Readings[i].ID = uuid.New().String()
		}
	}
	for i := range cp.Songs {
		if cp.Songs[i].ID == "" {
			cp.Songs[i].ID = uuid.New().String()
		}
	}

	s.mu.Lock()
	s.presentations[cp.ID] = cp
	s.mu.Unlock()

	return clonePresentation(cp)
}

// GetPresentation returns a copy of the presentation.
func (s *Store) GetPresentation(id string) (*deck.Presentation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.presentations[id]
	if !ok {
		return nil, fmt.Errorf("presentation %s: %w", id, ErrNotFound)
	}
	return clonePresentation(p), nil
}

// ListPresentations returns copies of all presentations, newest date first.
func (s *Store) ListPresentations() []*deck.Presentation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*deck.Presentation, 0, len(s.presentations))
	for _, p := range s.presentations {
		out = append(out, clonePresentation(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// UpdatePresentation updates title and date.
func (s *Store) UpdatePresentation(id, title string, date time.Time) (*deck.Presentation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presentations[id]
	if !ok {
		return nil, fmt.Errorf("presentation %s: %w", id, ErrNotFound)
	}
	p.Title = title
	p.Date = date
	return clonePresentation(p), nil
}

// DeletePresentation removes a presentation.
func (s *Store) DeletePresentation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.presentations[id]; !ok {
		return fmt.Errorf("presentation %s: %w", id, ErrNotFound)
	}
	delete(s.presentations, id)
	return nil
}

// AddReading appends a reading, assigning it an ID and placing it at
// the end of the slide order.
func (s *Store) AddReading(presentationID string, r deck.Reading) (*deck.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presentations[presentationID]
	if !ok {
		return nil, fmt.Errorf("presentation %s: %w", presentationID, ErrNotFound)
	}
	r.ID = uuid.New().String()
	p.Readings = append(p.Readings, r)
	p.Order = append(p.Order, deck.OrderEntry{
		ItemID: r.ID,
		Kind:   deck.KindReading,
		Order:  nextOrderKey(p.Order),
	})
	return &r, nil
}

// UpdateReading replaces the fields of an existing reading.
func (s *Store) UpdateReading(presentationID string, r deck.Reading) (*deck.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presentations[presentationID]
	if !ok {
		return nil, fmt.Errorf("presentation %s: %w", presentationID, ErrNotFound)
	}
	for i := range p.Readings {
		if p.Readings[i].ID == r.ID {
			p.Readings[i] = r
			return &r, nil
		}
	}
	return nil, fmt.Errorf("reading %s: %w", r.ID, ErrNotFound)
}

// DeleteReading removes a reading and any order entries that point at it.
func (s *Store) DeleteReading(presentationID, readingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presentations[presentationID]
	if !ok {
		return fmt.Errorf("presentation %s: %w", presentationID, ErrNotFound)
	}
	for i := range p.Readings {
		if p.Readings[i].ID == readingID {
			p.Readings = append(p.Readings[:i], p.Readings[i+1:]...)
			p.Order = dropOrderEntries(p.Order, readingID)
			return nil
		}
	}
	return fmt.Errorf("reading %s: %w", readingID, ErrNotFound)
}

// AddSong appends a song, assigning it an ID and placing it at the end
// of the slide order.
func (s *Store) AddSong(presentationID string, song deck.Song) (*deck.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presentations[presentationID]
	if !ok {
		return nil, fmt.Errorf("presentation %s: %w", presentationID, ErrNotFound)
	}
	song.ID = uuid.New().String()
	p.Songs = append(p.Songs, song)
	p.Order = append(p.Order, deck.OrderEntry{
		ItemID: song.ID,
		Kind:   deck.KindSong,
		Order:  nextOrderKey(p.Order),
	})
	return &song, nil
}

// UpdateSong replaces the fields of an existing song.
func (s *Store) UpdateSong(presentationID string, song deck.Song) (*deck.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presentations[presentationID]
	if !ok {
		return nil, fmt.Errorf("presentation %s: %w", presentationID, ErrNotFound)
	}
	for i := range p.Songs {
		if p.Songs[i].ID == song.ID {
			p.Songs[i] = song
			return &song, nil
		}
	}
	return nil, fmt.Errorf("song %s: %w", song.ID, ErrNotFound)
}

// DeleteSong removes a song and any order entries that point at it.
func (s *Store) DeleteSong(presentationID, songID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presentations[presentationID]
	if !ok {
		return fmt.Errorf("presentation %s: %w", presentationID, ErrNotFound)
	}
	for i := range p.Songs {
		if p.Songs[i].ID == songID {
			p.Songs = append(p.Songs[:i], p.Songs[i+1:]...)
			p.Order = dropOrderEntries(p.Order, songID)
			return nil
		}
	}
	return fmt.Errorf("song %s: %w", songID, ErrNotFound)
}

// SetOrder replaces the slide order. Entries referencing unknown items
// are accepted; the assembler skips them at build time.
func (s *Store) SetOrder(presentationID string, order []deck.OrderEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.presentations[presentationID]
	if !ok {
		return fmt.Errorf("presentation %s: %w", presentationID, ErrNotFound)
	}
	p.Order = append([]deck.OrderEntry(nil), order...)
	return nil
}

// nextOrderKey returns one past the highest order key, starting at 1.
func nextOrderKey(order []deck.OrderEntry) int {
	next := 1
	for _, e := range order {
		if e.Order >= next {
			next = e.Order + 1
		}
	}
	return next
}

func dropOrderEntries(order []deck.OrderEntry, itemID string) []deck.OrderEntry {
	out := order[:0]
	for _, e := range order {
		if e.ItemID != itemID {
			out = append(out, e)
		}
	}
	return out
}

func clonePresentation(p *deck.Presentation) *deck.Presentation {
	cp := *p
	cp.Readings = append([]deck.Reading(nil), p.Readings...)
	cp.Songs = append([]deck.Song(nil), p.Songs...)
	cp.Order = append([]deck.OrderEntry(nil), p.Order...)
	return &cp
}
