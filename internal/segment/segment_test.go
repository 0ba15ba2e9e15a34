package segment

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestProse(t *testing.T) {
	t.Run("empty input yields no chunks", func(t *testing.T) {
		if got := Prose("   \n  "); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("splits on blank lines", func(t *testing.T) {
		got := Prose("Premier paragraphe.\n\nDeuxième paragraphe.\n\n\nTroisième.")
		if len(got) != 3 {
			t.Fatalf("expected 3 chunks, got %d: %v", len(got), got)
		}
		if got[0] != "Premier paragraphe." || got[2] != "Troisième." {
			t.Errorf("unexpected chunks: %v", got)
		}
	})

	t.Run("splits on sentence boundary before uppercase", func(t *testing.T) {
		got := Prose("En ce temps-là, Jésus parlait. Il disait une parabole. voici la suite. Les foules écoutaient.")
		if len(got) != 3 {
			t.Fatalf("expected 3 chunks, got %d: %v", len(got), got)
		}
		// "voici" is lowercase, so that boundary is not a split point.
		if !strings.Contains(got[1], "voici la suite.") {
			t.Errorf("lowercase continuation was split off: %v", got)
		}
	})

	t.Run("no chunk is empty", func(t *testing.T) {
		for _, c := range Prose("A.  \n\n  \n\nB.") {
			if strings.TrimSpace(c) == "" {
				t.Error("empty chunk returned")
			}
		}
	})

	t.Run("oversized single segment repacks by sentence", func(t *testing.T) {
		// Lowercase sentence starts so the boundary heuristic leaves a
		// single segment and the sentence repacking path runs.
		sentence := "le Seigneur est mon berger et je ne manque de rien du tout en ce jour."
		blob := strings.TrimSpace(strings.Repeat(sentence+" ", 15))
		if utf8.RuneCountInString(blob) <= proseResplitThreshold {
			t.Fatal("test input too short")
		}

		got := Prose(blob)
		if len(got) < 2 {
			t.Fatalf("expected repacking into several chunks, got %d", len(got))
		}
		for i, c := range got {
			if utf8.RuneCountInString(c) > proseChunkLimit {
				t.Errorf("chunk %d exceeds limit: %d runes", i, utf8.RuneCountInString(c))
			}
		}
	})

	t.Run("single oversized sentence is never split", func(t *testing.T) {
		long := strings.Repeat("mot ", 250) + "fin"
		got := Prose(long)
		if len(got) != 1 {
			t.Fatalf("a sentence-free blob must stay one chunk, got %d", len(got))
		}
	})

	t.Run("content preserved in order", func(t *testing.T) {
		in := "Lecture du livre. Voici la parole. Ainsi soit-il. Amen pour tous."
		got := Prose(in)
		joined := strings.Join(got, " ")
		for _, word := range []string{"livre", "parole", "Ainsi", "Amen"} {
			if !strings.Contains(joined, word) {
				t.Errorf("lost content %q in %v", word, got)
			}
		}
	})
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Un. Deux! Trois? Quatre")
	if len(got) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(got), got)
	}
	if got[1] != "Deux!" {
		t.Errorf("terminator not kept with sentence: %q", got[1])
	}
}

func TestLyrics(t *testing.T) {
	t.Run("empty input yields no chunks", func(t *testing.T) {
		if got := Lyrics(""); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("three verses of four lines", func(t *testing.T) {
		verse := "la ligne une\nla ligne deux\nla ligne trois\nla ligne quatre"
		got := Lyrics(verse + "\n\n" + verse + "\n\n" + verse)
		if len(got) != 3 {
			t.Fatalf("expected 3 chunks, got %d", len(got))
		}
		for i, c := range got {
			if n := len(strings.Split(c, "\n")); n > 8 {
				t.Errorf("chunk %d has %d lines", i, n)
			}
		}
	})

	t.Run("refrain marker starts a new chunk", func(t *testing.T) {
		got := Lyrics("1. Premier couplet\nsuite du couplet\nR/ Gloire à Dieu\nau plus haut des cieux")
		if len(got) != 2 {
			t.Fatalf("expected 2 chunks, got %d: %v", len(got), got)
		}
		if !strings.HasPrefix(got[1], "R/") {
			t.Errorf("second chunk should start at the refrain: %q", got[1])
		}
	})

	t.Run("numbered verse starts a new chunk", func(t *testing.T) {
		got := Lyrics("R/ Refrain chanté\n1. Couplet un\nligne\n2. Couplet deux\nligne")
		if len(got) != 3 {
			t.Fatalf("expected 3 chunks, got %d: %v", len(got), got)
		}
		if !strings.HasPrefix(got[2], "2.") {
			t.Errorf("third chunk should start at verse 2: %q", got[2])
		}
	})

	t.Run("twenty lines regroup as 6/6/6/2", func(t *testing.T) {
		lines := make([]string, 20)
		for i := range lines {
			lines[i] = "ligne"
		}
		got := Lyrics(strings.Join(lines, "\n"))
		want := []int{6, 6, 6, 2}
		if len(got) != len(want) {
			t.Fatalf("expected %d chunks, got %d", len(want), len(got))
		}
		for i, c := range got {
			if n := len(strings.Split(c, "\n")); n != want[i] {
				t.Errorf("chunk %d has %d lines, want %d", i, n, want[i])
			}
		}
	})
}
