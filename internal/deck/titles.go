package deck

import (
	"fmt"
	"regexp"
	"strings"
)

var chunkVerseMarker = regexp.MustCompile(`^(\d+)\.`)

// proseChunkTitle titles the i-th (1-based) chunk of a reading.
func proseChunkTitle(itemTitle string, i int) string {
	return fmt.Sprintf("%s (%d)", itemTitle, i)
}

// lyricsChunkTitle titles the i-th (1-based) chunk of a song. Refrains and
// numbered couplets are recognized from the chunk text itself; anything
// else falls back to a positional part title.
func lyricsChunkTitle(songTitle, chunk string, i int) string {
	trimmed := strings.TrimSpace(chunk)
	if strings.HasPrefix(trimmed, "R/") || containsWordRefrain(trimmed) {
		return songTitle + " - Refrain"
	}
	if m := chunkVerseMarker.FindStringSubmatch(trimmed); m != nil {
		return fmt.Sprintf("%s - Couplet %s", songTitle, m[1])
	}
	return fmt.Sprintf("%s - Partie %d", songTitle, i)
}

func containsWordRefrain(s string) bool {
	return strings.Contains(strings.ToLower(s), "refrain")
}
