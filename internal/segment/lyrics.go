package segment

import (
	"regexp"
	"strings"
)

const (
	// lyricsMaxLines is the largest segment allowed through unchanged.
	lyricsMaxLines = 8
	// lyricsGroupLines is the group size used when an oversized segment
	// is re-split.
	lyricsGroupLines = 6
)

// verseMarker matches a numbered-verse line start, e.g. "2. Mon âme...".
var verseMarker = regexp.MustCompile(`^\d+\.`)

// Lyrics splits song lyrics into ordered slide chunks. Segment boundaries
// are blank lines, lines starting with the refrain marker "R/", and
// numbered-verse lines ("1.", "2."...). Segments longer than
// lyricsMaxLines are re-split into consecutive groups of lyricsGroupLines.
func Lyrics(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var segments []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		segments = append(segments, strings.Join(current, "\n"))
		current = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "R/"), verseMarker.MatchString(trimmed):
			flush()
			current = append(current, trimmed)
		default:
			current = append(current, trimmed)
		}
	}
	flush()

	var chunks []string
	for _, seg := range compact(segments) {
		chunks = append(chunks, splitLongSegment(seg)...)
	}
	return chunks
}

// splitLongSegment passes segments of up to lyricsMaxLines through
// unchanged and regroups longer ones into runs of lyricsGroupLines.
func splitLongSegment(seg string) []string {
	lines := strings.Split(seg, "\n")
	if len(lines) <= lyricsMaxLines {
		return []string{seg}
	}

	var out []string
	for start := 0; start < len(lines); start += lyricsGroupLines {
		end := start + lyricsGroupLines
		if end > len(lines) {
			end = len(lines)
		}
		out = append(out, strings.Join(lines[start:end], "\n"))
	}
	return out
}
