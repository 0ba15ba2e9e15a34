// Package segment splits reading and song-lyric text into slide-sized
// chunks. Prose and lyrics use independent heuristics; both preserve the
// original order and never return empty chunks.
package segment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// proseResplitThreshold triggers sentence re-splitting when blank-line
	// and sentence-boundary splitting left a single oversized segment.
	proseResplitThreshold = 400
	// proseChunkLimit is the greedy packing limit for sentence chunks.
	// A single sentence longer than this is never split.
	proseChunkLimit = 300
)

var blankLine = regexp.MustCompile(`\n\s*\n`)

// Prose splits scripture-style text into ordered slide chunks.
//
// The text is first split on blank-line boundaries, or failing that on
// sentence boundaries followed by an uppercase letter. If that still
// yields one segment longer than the threshold, sentences are greedily
// packed into chunks of at most proseChunkLimit characters.
func Prose(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var parts []string
	if blankLine.MatchString(text) {
		parts = blankLine.Split(text, -1)
	} else {
		parts = splitSentenceBoundaries(text)
	}

	chunks := compact(parts)

	if len(chunks) == 1 && utf8.RuneCountInString(chunks[0]) > proseResplitThreshold {
		chunks = packSentences(SplitSentences(chunks[0]), proseChunkLimit)
	}

	return chunks
}

// splitSentenceBoundaries splits after '.', '!' or '?' followed by
// whitespace when the next word starts with an uppercase letter.
// Implemented as a scan because RE2 has no lookaround.
func splitSentenceBoundaries(text string) []string {
	runes := []rune(text)
	var parts []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		// Consume trailing whitespace after the terminator.
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) {
			continue
		}
		if unicode.IsUpper(runes[j]) {
			parts = append(parts, string(runes[start:i+1]))
			start = j
			i = j - 1
		}
	}
	parts = append(parts, string(runes[start:]))
	return parts
}

// SplitSentences splits text into sentences at '.', '!' or '?' followed
// by whitespace. The terminator stays with its sentence.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes)-1; i++ {
		if isSentenceEnd(runes[i]) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, strings.TrimSpace(string(runes[start:i+1])))
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// packSentences greedily packs sentences into chunks of at most limit
// runes, starting a new chunk whenever the next sentence would overflow.
// A single sentence longer than limit becomes its own chunk.
func packSentences(sentences []string, limit int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, s := range sentences {
		sLen := utf8.RuneCountInString(s)
		if currentLen > 0 && currentLen+1+sLen > limit {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(s)
		currentLen += sLen
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// compact trims each part and drops the empties.
func compact(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
