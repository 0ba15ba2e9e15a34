// Package library ships a static collection of common French liturgical
// songs that can be added to a presentation without retyping lyrics.
package library

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/liturgica/lectern/internal/deck"
)

//go:embed songs.yaml
var songsYAML []byte

type songFile struct {
	Songs []songEntry `yaml:"songs"`
}

type songEntry struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Melody   string `yaml:"melody"`
	Category string `yaml:"category"`
	Lyrics   string `yaml:"lyrics"`
}

// Library is the parsed song collection.
type Library struct {
	songs []deck.Song
}

// Load parses the embedded song file.
func Load() (*Library, error) {
	var file songFile
	if err := yaml.Unmarshal(songsYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse song library: %w", err)
	}

	songs := make([]deck.Song, 0, len(file.Songs))
	for _, e := range file.Songs {
		category := deck.SongCategory(e.Category)
		if !deck.ValidCategory(category) {
			return nil, fmt.Errorf("song %q: unknown category %q", e.Title, e.Category)
		}
		songs = append(songs, deck.Song{
			Title:    e.Title,
			Author:   e.Author,
			Melody:   e.Melody,
			Category: category,
			Lyrics:   strings.TrimRight(e.Lyrics, "\n"),
		})
	}

	return &Library{songs: songs}, nil
}

// All returns every song in the library.
func (l *Library) All() []deck.Song {
	return append([]deck.Song(nil), l.songs...)
}

// ByCategory returns the songs with the given category.
func (l *Library) ByCategory(category deck.SongCategory) []deck.Song {
	var out []deck.Song
	for _, s := range l.songs {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the first song whose title matches, case-insensitively.
func (l *Library) Find(title string) (deck.Song, bool) {
	needle := strings.ToLower(strings.TrimSpace(title))
	for _, s := range l.songs {
		if strings.ToLower(s.Title) == needle {
			return s, true
		}
	}
	return deck.Song{}, false
}
