// Package deck holds the editor's content model and the assembler that
// turns an ordered presentation into rendering-ready slide records.
package deck

import (
	"time"

	"github.com/liturgica/lectern/internal/theme"
)

// Kind tags the type of a content item or slide.
type Kind string

const (
	KindTitle   Kind = "title"
	KindReading Kind = "reading"
	KindSong    Kind = "song"
)

// SongCategory is the liturgical role of a song.
type SongCategory string

const (
	CategoryEntrance    SongCategory = "entrance"
	CategoryKyrie       SongCategory = "kyrie"
	CategoryGloria      SongCategory = "gloria"
	CategoryOffertory   SongCategory = "offertory"
	CategorySanctus     SongCategory = "sanctus"
	CategoryCommunion   SongCategory = "communion"
	CategoryRecessional SongCategory = "recessional"
	CategoryOther       SongCategory = "other"
)

// ValidCategory reports whether c is one of the known song categories.
func ValidCategory(c SongCategory) bool {
	switch c {
	case CategoryEntrance, CategoryKyrie, CategoryGloria, CategoryOffertory,
		CategorySanctus, CategoryCommunion, CategoryRecessional, CategoryOther:
		return true
	}
	return false
}

// Reading is a scripture passage.
type Reading struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Reference string `json:"reference"`
	Body      string `json:"body"`
}

// Song is a liturgical hymn.
type Song struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Lyrics   string       `json:"lyrics"`
	Author   string       `json:"author,omitempty"`
	Melody   string       `json:"melody,omitempty"`
	Category SongCategory `json:"category"`
}

// OrderEntry references a reading or song by id plus an integer order
// key. Order keys define the deck sequence; the title slide is implicit
// and never part of the order list.
type OrderEntry struct {
	ItemID string `json:"item_id"`
	Kind   Kind   `json:"kind"`
	Order  int    `json:"order"`
}

// Presentation is the aggregate the editor works on. Readings, songs and
// the order list live only in memory; slide records are derived fresh on
// every preview or export.
type Presentation struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Date     time.Time    `json:"date"`
	Readings []Reading    `json:"readings"`
	Songs    []Song       `json:"songs"`
	Order    []OrderEntry `json:"order"`
}

// FindReading returns the reading with the given id, or nil.
func (p *Presentation) FindReading(id string) *Reading {
	for i := range p.Readings {
		if p.Readings[i].ID == id {
			return &p.Readings[i]
		}
	}
	return nil
}

// FindSong returns the song with the given id, or nil.
func (p *Presentation) FindSong(id string) *Song {
	for i := range p.Songs {
		if p.Songs[i].ID == id {
			return &p.Songs[i]
		}
	}
	return nil
}

// SlideImage is an enhancement image attached to a slide record.
// URL is the remote reference; Data holds the downloaded bytes once the
// enhancer has fetched and verified them.
type SlideImage struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
	Data        []byte `json:"-"`
}

// SlideRecord is one rendering-ready slide. Index is 1-based and
// continuous across the deck.
type SlideRecord struct {
	Index int         `json:"index"`
	Kind  Kind        `json:"kind"`
	Theme theme.Theme `json:"theme"`
	Title string      `json:"title"`
	Body  string      `json:"body,omitempty"`
	Image *SlideImage `json:"image,omitempty"`
}
