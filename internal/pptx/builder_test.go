package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/theme"
)

func testSlides() []deck.SlideRecord {
	th := theme.Resolve(time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC))
	return []deck.SlideRecord{
		{Index: 1, Kind: deck.KindTitle, Theme: theme.TitleTheme, Title: "Messe de Noël", Body: "mercredi 25 décembre 2024"},
		{Index: 2, Kind: deck.KindReading, Theme: th, Title: "Évangile", Body: "Jn 1, 1-18"},
		{Index: 3, Kind: deck.KindSong, Theme: th, Title: "Il est né - Refrain", Body: "R/ Il est né le divin enfant\njouez hautbois"},
	}
}

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(content)
	}
	return parts
}

func TestBuilder_Write(t *testing.T) {
	buf, err := NewBuilder("Messe de Noël", testSlides()).BuildToBuffer()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	parts := readArchive(t, buf.Bytes())

	t.Run("required parts present", func(t *testing.T) {
		required := []string{
			"[Content_Types].xml",
			"_rels/.rels",
			"ppt/presentation.xml",
			"ppt/_rels/presentation.xml.rels",
			"ppt/slideMasters/slideMaster1.xml",
			"ppt/slideLayouts/slideLayout1.xml",
			"ppt/theme/theme1.xml",
			"ppt/slides/slide1.xml",
			"ppt/slides/slide2.xml",
			"ppt/slides/slide3.xml",
		}
		for _, name := range required {
			if _, ok := parts[name]; !ok {
				t.Errorf("missing part %s", name)
			}
		}
	})

	t.Run("one slide part per record", func(t *testing.T) {
		count := 0
		for name := range parts {
			if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
				count++
			}
		}
		if count != 3 {
			t.Errorf("expected 3 slide parts, got %d", count)
		}
	})

	t.Run("slide text escaped and present", func(t *testing.T) {
		if !strings.Contains(parts["ppt/slides/slide1.xml"], "Messe de Noël") {
			t.Error("title text missing from slide 1")
		}
		if !strings.Contains(parts["ppt/slides/slide2.xml"], "Jn 1, 1-18") {
			t.Error("reference missing from slide 2")
		}
	})

	t.Run("index label rendered", func(t *testing.T) {
		if !strings.Contains(parts["ppt/slides/slide3.xml"], `<a:t>3</a:t>`) {
			t.Error("corner index label missing")
		}
	})

	t.Run("background uses theme color", func(t *testing.T) {
		if !strings.Contains(parts["ppt/slides/slide1.xml"], theme.TitleTheme.Background) {
			t.Error("title slide background color missing")
		}
	})

	t.Run("multi-line body becomes multiple paragraphs", func(t *testing.T) {
		if strings.Count(parts["ppt/slides/slide3.xml"], "jouez hautbois") != 1 {
			t.Error("second lyric line missing")
		}
	})

	t.Run("presentation lists every slide", func(t *testing.T) {
		pres := parts["ppt/presentation.xml"]
		if strings.Count(pres, "<p:sldId ") != 3 {
			t.Errorf("expected 3 slide ids in presentation.xml")
		}
	})
}

func TestBuilder_EmbedsImage(t *testing.T) {
	slides := testSlides()
	slides[1].Image = &deck.SlideImage{
		URL:         "https://img.example/out.jpg",
		ContentType: "image/jpeg",
		Data:        []byte{0xFF, 0xD8, 0xFF, 0xE0},
	}

	buf, err := NewBuilder("Messe", slides).BuildToBuffer()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	parts := readArchive(t, buf.Bytes())

	if _, ok := parts["ppt/media/image2.jpg"]; !ok {
		t.Error("media part missing")
	}
	if !strings.Contains(parts["ppt/slides/_rels/slide2.xml.rels"], "../media/image2.jpg") {
		t.Error("image relationship missing")
	}
	if !strings.Contains(parts["ppt/slides/slide2.xml"], `r:embed="rId2"`) {
		t.Error("picture shape missing")
	}
}

func TestBuilder_ImageWithoutDataSkipped(t *testing.T) {
	slides := testSlides()
	slides[1].Image = &deck.SlideImage{URL: "https://img.example/out.jpg"}

	buf, err := NewBuilder("Messe", slides).BuildToBuffer()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	parts := readArchive(t, buf.Bytes())

	for name := range parts {
		if strings.HasPrefix(name, "ppt/media/") {
			t.Errorf("unexpected media part %s", name)
		}
	}
}

func TestBuilder_Build_Atomic(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "exports", "deck.pptx")

	if err := NewBuilder("Test", testSlides()).Build(out); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestEscapeXML(t *testing.T) {
	in := `l'Agneau <de> "Dieu" & nous`
	got := escapeXML(in)
	for _, forbidden := range []string{"<de>", `"Dieu"`, "& "} {
		if strings.Contains(got, forbidden) {
			t.Errorf("unescaped sequence %q in %q", forbidden, got)
		}
	}
}
