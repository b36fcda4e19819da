package docx

import (
	"fmt"
	"strings"

	"github.com/bellx2/md2mdocx/theme"
)

// Heading font sizes in half-points, indexed by level-1.
var headingSizes = [6]int{48, 40, 36, 32, 28, 26}

const bodyFont = "Calibri"
const codeFont = "Consolas"

// stylesXMLContent generates word/styles.xml for the given theme. Only the
// styles the assembler references are defined: Normal, Title, Heading1-6,
// Quote and Code.
func stylesXMLContent(t theme.Theme) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(fmt.Sprintf(`<w:styles xmlns:w="%s">`, nsW))

	sb.WriteString(fmt.Sprintf(`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s"/><w:sz w:val="22"/></w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="120"/></w:pPr></w:pPrDefault></w:docDefaults>`, bodyFont))

	sb.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>`)

	sb.WriteString(`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:pPr><w:spacing w:after="240"/><w:jc w:val="center"/></w:pPr><w:rPr><w:b/><w:sz w:val="56"/></w:rPr></w:style>`)

	for i, sz := range headingSizes {
		level := i + 1
		sb.WriteString(fmt.Sprintf(`<w:style w:type="paragraph" w:styleId="Heading%[1]d"><w:name w:val="heading %[1]d"/><w:basedOn w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="%[2]d"/></w:pPr><w:rPr><w:b/><w:sz w:val="%[3]d"/></w:rPr></w:style>`, level, level-1, sz))
	}

	sb.WriteString(fmt.Sprintf(`<w:style w:type="paragraph" w:styleId="Quote"><w:name w:val="Quote"/><w:basedOn w:val="Normal"/><w:pPr><w:pBdr><w:left w:val="single" w:sz="12" w:space="4" w:color="%s"/></w:pBdr><w:ind w:left="360"/></w:pPr><w:rPr><w:i/></w:rPr></w:style>`, t.BorderColor))

	sb.WriteString(fmt.Sprintf(`<w:style w:type="paragraph" w:styleId="Code"><w:name w:val="Code"/><w:basedOn w:val="Normal"/><w:pPr><w:shd w:val="clear" w:color="auto" w:fill="%s"/><w:spacing w:after="0"/></w:pPr><w:rPr><w:rFonts w:ascii="%[2]s" w:hAnsi="%[2]s" w:cs="%[2]s"/><w:sz w:val="18"/></w:rPr></w:style>`, t.CodeFill, codeFont))

	sb.WriteString(`</w:styles>`)
	return sb.String()
}
