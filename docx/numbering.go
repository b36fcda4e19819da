package docx

import (
	"fmt"
	"strings"
)

// bulletNumID is the shared numbering definition used by every bullet list.
const bulletNumID = 1

// Bullet glyphs per nesting level 0-3.
var bulletGlyphs = [4]string{"•", "◦", "▪", "‐"}

// NumberingScheme identifies one numbered list's numbering definition.
// Seq increases monotonically per numbered list in document order; Indent
// is the structural indent in twips active when the list was encountered.
// Two numbered lists at different structural depths never share a scheme,
// even if a counter elsewhere resets.
type NumberingScheme struct {
	Seq    int
	Indent int
}

// NumID returns the w:numId bound to this scheme. IDs start above the
// shared bullet definition.
func (s NumberingScheme) NumID() int { return bulletNumID + s.Seq }

// numberingAllocator assigns numbering schemes to numbered lists in
// document order. State is confined to one conversion.
type numberingAllocator struct {
	schemes []NumberingScheme
}

// assign allocates the next scheme for a numbered list encountered at the
// given structural indent.
func (na *numberingAllocator) assign(indent int) NumberingScheme {
	s := NumberingScheme{Seq: len(na.schemes) + 1, Indent: indent}
	na.schemes = append(na.schemes, s)
	return s
}

// numberingXMLContent generates word/numbering.xml: one shared bullet
// abstract definition plus one decimal definition per assigned scheme.
// Level 0 of a numbered scheme is decimal; deeper levels fall back to
// bullet glyphs, matching the parser's demotion of nested items.
func numberingXMLContent(schemes []NumberingScheme) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(fmt.Sprintf(`<w:numbering xmlns:w="%s">`, nsW))

	// Abstract definition 0: bullets at all levels.
	sb.WriteString(`<w:abstractNum w:abstractNumId="0">`)
	for lvl := 0; lvl <= 3; lvl++ {
		sb.WriteString(bulletLevelXML(lvl, 0))
	}
	sb.WriteString(`</w:abstractNum>`)

	for _, s := range schemes {
		sb.WriteString(fmt.Sprintf(`<w:abstractNum w:abstractNumId="%d">`, s.Seq))
		sb.WriteString(fmt.Sprintf(`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%%1."/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`, s.Indent+420))
		for lvl := 1; lvl <= 3; lvl++ {
			sb.WriteString(bulletLevelXML(lvl, s.Indent))
		}
		sb.WriteString(`</w:abstractNum>`)
	}

	sb.WriteString(fmt.Sprintf(`<w:num w:numId="%d"><w:abstractNumId w:val="0"/></w:num>`, bulletNumID))
	for _, s := range schemes {
		sb.WriteString(fmt.Sprintf(`<w:num w:numId="%d"><w:abstractNumId w:val="%d"/></w:num>`, s.NumID(), s.Seq))
	}

	sb.WriteString(`</w:numbering>`)
	return sb.String()
}

func bulletLevelXML(lvl, indent int) string {
	return fmt.Sprintf(`<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="%s"/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr><w:rPr><w:rFonts w:ascii="Symbol" w:hAnsi="Symbol"/></w:rPr></w:lvl>`,
		lvl, bulletGlyphs[lvl], indent+420*(lvl+1))
}
