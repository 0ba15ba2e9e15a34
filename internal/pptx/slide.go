package pptx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/liturgica/lectern/internal/deck"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Slide geometry in EMU (914400 per inch), 4:3 deck.
const (
	emuPerInch     = 914400
	slideWidthEMU  = 10 * emuPerInch
	slideHeightEMU = 6858000 // 7.5in, standard 4:3 height
)

// box is a text frame position in EMU.
type box struct {
	x, y, w, h int
}

// layout holds the fixed geometry and typography for one slide template.
type layout struct {
	title     box
	body      box
	titleSize int // hundredths of a point
	bodySize  int
	align     string // a:pPr algn value for the body
	bold      bool
}

// layouts maps each content type to its fixed template: a centered title
// slide, a left-aligned reading slide, and a centered song slide.
var layouts = map[deck.Kind]layout{
	deck.KindTitle: {
		title:     box{x: inch(0.8), y: inch(2.2), w: inch(8.4), h: inch(1.6)},
		body:      box{x: inch(0.8), y: inch(4.0), w: inch(8.4), h: inch(1.0)},
		titleSize: 4000,
		bodySize:  2400,
		align:     "ctr",
		bold:      true,
	},
	deck.KindReading: {
		title:     box{x: inch(0.5), y: inch(0.4), w: inch(9.0), h: inch(1.0)},
		body:      box{x: inch(0.7), y: inch(1.6), w: inch(8.6), h: inch(5.2)},
		titleSize: 2800,
		bodySize:  2000,
		align:     "l",
		bold:      true,
	},
	deck.KindSong: {
		title:     box{x: inch(0.5), y: inch(0.4), w: inch(9.0), h: inch(1.0)},
		body:      box{x: inch(0.7), y: inch(1.8), w: inch(8.6), h: inch(5.0)},
		titleSize: 2800,
		bodySize:  2400,
		align:     "ctr",
		bold:      true,
	},
}

// Enhancement image frame: right side, vertically centered, 4x3 inches.
var imageBox = box{x: inch(5.6), y: inch(2.1), w: inch(4.0), h: inch(3.0)}

// Corner label with the slide index, bottom right.
var indexBox = box{x: inch(9.1), y: inch(7.0), w: inch(0.7), h: inch(0.35)}

func inch(v float64) int {
	return int(v * emuPerInch)
}

// slideXML renders one slide part: seasonal background, title frame, body
// frame, the 1-based index label, and the optional enhancement picture.
func slideXML(s deck.SlideRecord) string {
	lo, ok := layouts[s.Kind]
	if !ok {
		lo = layouts[deck.KindReading]
	}

	var sb bytes.Buffer
	sb.WriteString(xmlHeader)
	sb.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	sb.WriteString(`<p:cSld>`)

	// Seasonal (or title) background color.
	fmt.Fprintf(&sb, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, s.Theme.Background)

	sb.WriteString(`<p:spTree>`)
	sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sb.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)

	shapeID := 2
	sb.WriteString(textShape(shapeID, "Title", lo.title, s.Title, lo.titleSize, "ctr", s.Theme.Text, lo.bold))
	shapeID++

	if s.Body != "" {
		sb.WriteString(textShape(shapeID, "Body", lo.body, s.Body, lo.bodySize, lo.align, s.Theme.Text, false))
		shapeID++
	}

	if hasImage(s) {
		sb.WriteString(pictureShape(shapeID, imageBox))
		shapeID++
	}

	sb.WriteString(textShape(shapeID, "SlideNumber", indexBox, fmt.Sprintf("%d", s.Index), 1000, "r", s.Theme.Text, false))

	sb.WriteString(`</p:spTree>`)
	sb.WriteString(`</p:cSld>`)
	sb.WriteString(`<p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr>`)
	sb.WriteString(`</p:sld>`)
	return sb.String()
}

// textShape renders one positioned text frame. Each line of text becomes
// its own paragraph.
func textShape(id int, name string, b box, text string, size int, align, color string, bold bool) string {
	var sb bytes.Buffer
	fmt.Fprintf(&sb, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr/></p:nvSpPr>`, id, name)
	fmt.Fprintf(&sb, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, b.x, b.y, b.w, b.h)
	sb.WriteString(`<p:txBody><a:bodyPr wrap="square" anchor="t"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)

	boldAttr := ""
	if bold {
		boldAttr = ` b="1"`
	}
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(&sb, `<a:p><a:pPr algn="%s"/>`, align)
		fmt.Fprintf(&sb, `<a:r><a:rPr lang="fr-FR" sz="%d"%s dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr><a:t>%s</a:t></a:r>`, size, boldAttr, color, escapeXML(line))
		sb.WriteString(`</a:p>`)
	}

	sb.WriteString(`</p:txBody></p:sp>`)
	return sb.String()
}

// pictureShape renders the enhancement image frame, always related as rId2.
func pictureShape(id int, b box) string {
	var sb bytes.Buffer
	fmt.Fprintf(&sb, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="EnhancementImage"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`, id)
	sb.WriteString(`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`)
	fmt.Fprintf(&sb, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`, b.x, b.y, b.w, b.h)
	return sb.String()
}

// escapeXML escapes the five XML special characters.
func escapeXML(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		case '\'':
			sb.WriteString("&apos;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
