// Package pptx generates PowerPoint (OOXML) presentations from assembled
// slide records. The archive layout follows ECMA-376: a zip with a content
// types part, package relationships, one presentation part, shared
// master/layout/theme parts, and one slide part per record.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/liturgica/lectern/internal/deck"
)

// Builder creates .pptx files from slide records.
type Builder struct {
	title   string
	created time.Time
	slides  []deck.SlideRecord
}

// NewBuilder creates a builder for the given deck.
func NewBuilder(title string, slides []deck.SlideRecord) *Builder {
	return &Builder{
		title:   title,
		created: time.Now().UTC(),
		slides:  slides,
	}
}

// Build generates the pptx and writes it to outputPath. The file is
// written to a temporary sibling first and renamed into place so a
// serialization failure never leaves a partial artifact.
func (b *Builder) Build(outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	buf, err := b.BuildToBuffer()
	if err != nil {
		return err
	}

	tmp := outputPath + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp, outputPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize output file: %w", err)
	}
	return nil
}

// BuildToBuffer generates the pptx into a byte buffer.
func (b *Builder) BuildToBuffer() (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := b.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Write writes the complete archive to w.
func (b *Builder) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content func() string
	}{
		{"[Content_Types].xml", b.contentTypes},
		{"_rels/.rels", packageRels},
		{"docProps/core.xml", b.coreProps},
		{"docProps/app.xml", b.appProps},
		{"ppt/presentation.xml", b.presentationXML},
		{"ppt/_rels/presentation.xml.rels", b.presentationRels},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
		{"ppt/theme/theme1.xml", themeXML},
	}

	for _, part := range parts {
		if err := writePart(zw, part.name, part.content()); err != nil {
			return err
		}
	}

	for i, slide := range b.slides {
		n := i + 1
		if err := writePart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(slide)); err != nil {
			return err
		}
		if err := writePart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels(slide, n)); err != nil {
			return err
		}
		if hasImage(slide) {
			name := fmt.Sprintf("ppt/media/image%d%s", n, imageExt(slide.Image.ContentType))
			if err := writeBinaryPart(zw, name, slide.Image.Data); err != nil {
				return err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func writePart(zw *zip.Writer, name, content string) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func writeBinaryPart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// hasImage reports whether a slide carries usable enhancement image bytes.
func hasImage(s deck.SlideRecord) bool {
	return s.Image != nil && len(s.Image.Data) > 0
}

func imageExt(contentType string) string {
	if contentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}

// contentTypes lists every part in the archive with its MIME type.
func (b *Builder) contentTypes() string {
	var sb bytes.Buffer
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Default Extension="jpg" ContentType="image/jpeg"/>`)
	sb.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	sb.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	for i := range b.slides {
		fmt.Fprintf(&sb, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1)
	}
	sb.WriteString(`</Types>`)
	return sb.String()
}

func packageRels() string {
	return xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
		`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
		`</Relationships>`
}

func (b *Builder) coreProps() string {
	return xmlHeader + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escapeXML(b.title) + `</dc:title>` +
		`<dc:creator>lectern</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + b.created.Format(time.RFC3339) + `</dcterms:created>` +
		`</cp:coreProperties>`
}

func (b *Builder) appProps() string {
	return xmlHeader + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
		`<Application>lectern</Application>` +
		fmt.Sprintf(`<Slides>%d</Slides>`, len(b.slides)) +
		`</Properties>`
}

// presentationXML declares the master, the slide list, and a 4:3 slide size.
func (b *Builder) presentationXML() string {
	var sb bytes.Buffer
	sb.WriteString(xmlHeader)
	sb.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	sb.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	sb.WriteString(`<p:sldIdLst>`)
	for i := range b.slides {
		fmt.Fprintf(&sb, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}
	sb.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&sb, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/>`, slideWidthEMU, slideHeightEMU, slideHeightEMU, slideWidthEMU)
	sb.WriteString(`</p:presentation>`)
	return sb.String()
}

func (b *Builder) presentationRels() string {
	var sb bytes.Buffer
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range b.slides {
		fmt.Fprintf(&sb, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+2, i+1)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// slideRels links a slide to the shared layout and, when present, its
// media image.
func slideRels(s deck.SlideRecord, n int) string {
	var sb bytes.Buffer
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if hasImage(s) {
		fmt.Fprintf(&sb, `<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d%s"/>`, n, imageExt(s.Image.ContentType))
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}
