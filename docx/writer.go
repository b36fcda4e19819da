// Package docx provides DOCX (Office Open XML) document assembly and
// writing. The assembler maps the resolved element sequence onto layout
// primitives; the writer packages them into the zip container.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/bellx2/md2mdocx/theme"
)

// mediaPart is one embedded image file under word/media.
type mediaPart struct {
	name        string // file name within word/media
	relID       string
	ext         string
	contentType string
	data        []byte
}

// Document is an assembled DOCX document ready to be written.
type Document struct {
	theme   theme.Theme
	title   string
	body    []any
	media   []mediaPart
	schemes []NumberingScheme
}

// Media extensions by sniffed magic bytes. Anything unrecognized is
// written as PNG; Word tolerates a mislabeled image better than a missing
// content type.
func sniffImage(data []byte) (ext, contentType string) {
	switch {
	case bytes.HasPrefix(data, []byte("\xFF\xD8\xFF")):
		return "jpeg", "image/jpeg"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "gif", "image/gif"
	case bytes.HasPrefix(data, []byte("BM")):
		return "bmp", "image/bmp"
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "webp", "image/webp"
	default:
		return "png", "image/png"
	}
}

// addMedia registers image bytes as a media part and returns its
// relationship ID. Styles and numbering occupy rId1 and rId2.
func (d *Document) addMedia(data []byte) string {
	ext, ct := sniffImage(data)
	part := mediaPart{
		name:        fmt.Sprintf("image%d.%s", len(d.media)+1, ext),
		relID:       fmt.Sprintf("rId%d", len(d.media)+3),
		ext:         ext,
		contentType: ct,
		data:        data,
	}
	d.media = append(d.media, part)
	return part.relID
}

// WriteFile writes the document to path.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// Write serializes the document into the DOCX zip container.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	docXML, err := d.documentXML()
	if err != nil {
		return err
	}

	files := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", d.contentTypesXML()},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", d.corePropsXML()},
		{"docProps/app.xml", appPropsXML},
		{"word/document.xml", docXML},
		{"word/styles.xml", stylesXMLContent(d.theme)},
		{"word/numbering.xml", numberingXMLContent(d.schemes)},
		{"word/_rels/document.xml.rels", d.documentRelsXML()},
	}
	for _, file := range files {
		fw, err := zw.Create(file.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", file.name, err)
		}
		if _, err := fw.Write([]byte(file.content)); err != nil {
			return fmt.Errorf("writing %s: %w", file.name, err)
		}
	}

	for _, part := range d.media {
		fw, err := zw.Create("word/media/" + part.name)
		if err != nil {
			return fmt.Errorf("creating media part: %w", err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return fmt.Errorf("writing media part: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing container: %w", err)
	}
	return nil
}

func (d *Document) documentXML() (string, error) {
	doc := documentXML{
		NSW:   nsW,
		NSR:   nsR,
		NSWP:  nsWP,
		NSA:   nsA,
		NSPic: nsPic,
		Body: bodyXML{
			Content: d.body,
			SectPr: sectPrXML{
				PageSize: pageSizeXML{W: pageWidthTwips, H: pageHeightTwips},
				Margins: marginsXML{
					Top: pageMarginTwips, Right: pageMarginTwips,
					Bottom: pageMarginTwips, Left: pageMarginTwips,
				},
			},
		},
	}
	out, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling document body: %w", err)
	}
	return xml.Header + string(out), nil
}

func (d *Document) contentTypesXML() string {
	var sb bytes.Buffer
	sb.WriteString(xml.Header)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	seen := map[string]bool{}
	for _, part := range d.media {
		if !seen[part.ext] {
			seen[part.ext] = true
			fmt.Fprintf(&sb, `<Default Extension=%q ContentType=%q/>`, part.ext, part.contentType)
		}
	}
	sb.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	sb.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	sb.WriteString(`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	sb.WriteString(`</Types>`)
	return sb.String()
}

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const appPropsXML = xml.Header + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>md2mdocx</Application></Properties>`

func (d *Document) corePropsXML() string {
	var title bytes.Buffer
	xml.EscapeText(&title, []byte(d.title))
	return xml.Header +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">` +
		`<dc:title>` + title.String() + `</dc:title>` +
		`<dc:creator>md2mdocx</dc:creator>` +
		`</cp:coreProperties>`
}

func (d *Document) documentRelsXML() string {
	var sb bytes.Buffer
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	sb.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`)
	for _, part := range d.media {
		fmt.Fprintf(&sb, `<Relationship Id=%q Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`, part.relID, part.name)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}
