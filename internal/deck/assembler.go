package deck

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/liturgica/lectern/internal/segment"
	"github.com/liturgica/lectern/internal/theme"
)

// bulletThreshold is the chunk length above which a reading chunk is
// reformatted as a bulleted list, provided it has more than two sentences.
const bulletThreshold = 200

// Assemble walks the presentation's ordered content and produces the
// slide records for the whole deck. It never fails: dangling order
// entries are skipped, missing optional fields degrade to omitted text or
// slides. Slide indices are 1-based and continuous in emission order.
func Assemble(p *Presentation) []SlideRecord {
	seasonal := theme.Resolve(p.Date)

	slides := []SlideRecord{{
		Kind:  KindTitle,
		Theme: theme.TitleTheme,
		Title: p.Title,
		Body:  FormatLongDate(p.Date),
	}}

	entries := make([]OrderEntry, len(p.Order))
	copy(entries, p.Order)
	// Stable: duplicate order keys keep their prior relative order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Order < entries[j].Order
	})

	for _, entry := range entries {
		switch entry.Kind {
		case KindReading:
			if r := p.FindReading(entry.ItemID); r != nil {
				slides = append(slides, readingSlides(r, seasonal)...)
			}
		case KindSong:
			if s := p.FindSong(entry.ItemID); s != nil {
				slides = append(slides, songSlides(s, seasonal)...)
			}
		}
	}

	for i := range slides {
		slides[i].Index = i + 1
	}
	return slides
}

// readingSlides emits the reference slide followed by one slide per prose
// chunk.
func readingSlides(r *Reading, th theme.Theme) []SlideRecord {
	slides := []SlideRecord{{
		Kind:  KindReading,
		Theme: th,
		Title: r.Title,
		Body:  r.Reference,
	}}

	for i, chunk := range segment.Prose(r.Body) {
		slides = append(slides, SlideRecord{
			Kind:  KindReading,
			Theme: th,
			Title: proseChunkTitle(r.Title, i+1),
			Body:  bulletize(chunk),
		})
	}
	return slides
}

// songSlides emits the optional title/subtitle slide followed by one
// slide per lyric chunk. The subtitle slide is dropped when neither
// author nor melody is present.
func songSlides(s *Song, th theme.Theme) []SlideRecord {
	var slides []SlideRecord

	if subtitle := songSubtitle(s); subtitle != "" {
		slides = append(slides, SlideRecord{
			Kind:  KindSong,
			Theme: th,
			Title: s.Title,
			Body:  subtitle,
		})
	}

	for i, chunk := range segment.Lyrics(s.Lyrics) {
		slides = append(slides, SlideRecord{
			Kind:  KindSong,
			Theme: th,
			Title: lyricsChunkTitle(s.Title, chunk, i+1),
			Body:  chunk,
		})
	}
	return slides
}

// songSubtitle joins author and melody with " - ", dropping absent fields.
func songSubtitle(s *Song) string {
	var parts []string
	if s.Author != "" {
		parts = append(parts, s.Author)
	}
	if s.Melody != "" {
		parts = append(parts, s.Melody)
	}
	return strings.Join(parts, " - ")
}

// bulletize reformats long multi-sentence chunks as a bulleted list, one
// bullet per sentence. Short chunks and chunks of at most two sentences
// pass through verbatim.
func bulletize(chunk string) string {
	if utf8.RuneCountInString(chunk) <= bulletThreshold {
		return chunk
	}
	sentences := segment.SplitSentences(chunk)
	if len(sentences) <= 2 {
		return chunk
	}
	var sb strings.Builder
	for i, s := range sentences {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("• ")
		sb.WriteString(s)
	}
	return sb.String()
}
