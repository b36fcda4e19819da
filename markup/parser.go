package markup

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/bellx2/md2mdocx/model"
)

// Line patterns tested by the block parser, in precedence order. A line that
// could read as a paragraph is first checked against every structural
// pattern; see Parser.parseBlock.
var (
	fenceRe     = regexp.MustCompile("^```\\s*(\\S*)\\s*$")
	pageBreakRe = regexp.MustCompile(`(?i)^\s*(<!--\s*pagebreak\s*-->|\\newpage)\s*$`)
	lineBreakRe = regexp.MustCompile(`(?i)^\s*<br\s*/?>\s*$`)
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	mdImageRe   = regexp.MustCompile(`^!\[(.*?)\]\((.*?)\)\s*$`)
	bulletRe    = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	numberRe    = regexp.MustCompile(`^(\d+)[.)]\s+(.*)$`)
	indentNumRe = regexp.MustCompile(`^(\s+)\d+[.)]\s+(.*)$`)
	quoteRe     = regexp.MustCompile(`^>\s?(.*)$`)
	ruleRe      = regexp.MustCompile(`^\s*(-{3,}|\*{3,}|_{3,})\s*$`)
	separatorRe = regexp.MustCompile(`^[\s|:-]+$`)
)

// maxListLevel caps bullet nesting depth.
const maxListLevel = 3

// Parser is a line-cursor state machine over preprocessed document text.
// It is single-use; create one per Parse call.
type Parser struct {
	lines []string
	pos   int
}

// Parse scans preprocessed document text and returns its ordered block
// element sequence. Malformed structures never fail: anything that matches
// no structural pattern falls through to paragraph treatment.
func Parse(text string) []model.Element {
	p := &Parser{lines: splitLines(text)}
	var elements []model.Element
	for p.pos < len(p.lines) {
		if el := p.parseBlock(); el != nil {
			elements = append(elements, el)
		}
	}
	return elements
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// parseBlock consumes one block starting at the cursor and returns its
// element, or nil for a skipped blank line. Patterns are tested in fixed
// precedence order; a table is only recognized when the following line is a
// valid separator row, so a lone pipe-containing line stays a paragraph.
func (p *Parser) parseBlock() model.Element {
	line := p.lines[p.pos]

	switch {
	case strings.TrimSpace(line) == "":
		p.pos++
		return nil
	case fenceRe.MatchString(line):
		return p.parseFence()
	case pageBreakRe.MatchString(line):
		p.pos++
		return &model.PageBreak{}
	case lineBreakRe.MatchString(line):
		p.pos++
		return &model.Break{}
	case headingRe.MatchString(line):
		m := headingRe.FindStringSubmatch(line)
		p.pos++
		return &model.Heading{Level: len(m[1]), Text: strings.TrimSpace(m[2])}
	case mdImageRe.MatchString(line):
		m := mdImageRe.FindStringSubmatch(line)
		p.pos++
		return &model.Image{Alt: m[1], Src: m[2]}
	case isImgTag(line):
		img, ok := parseImgTag(line)
		p.pos++
		if !ok {
			return &model.Paragraph{Text: strings.TrimSpace(line)}
		}
		return img
	case p.isTableStart():
		return p.parseTable()
	case bulletRe.MatchString(line):
		return p.parseList(model.ListKindBullet)
	case numberRe.MatchString(line):
		return p.parseList(model.ListKindNumber)
	case quoteRe.MatchString(line):
		return p.parseBlockquote()
	case ruleRe.MatchString(line):
		p.pos++
		return &model.Rule{}
	default:
		return p.parseParagraph()
	}
}

// isBlockStart reports whether the line at index i opens a non-paragraph
// block. Used to terminate paragraph accumulation.
func (p *Parser) isBlockStart(i int) bool {
	line := p.lines[i]
	if fenceRe.MatchString(line) || pageBreakRe.MatchString(line) ||
		lineBreakRe.MatchString(line) || headingRe.MatchString(line) ||
		mdImageRe.MatchString(line) || isImgTag(line) ||
		bulletRe.MatchString(line) || numberRe.MatchString(line) ||
		quoteRe.MatchString(line) || ruleRe.MatchString(line) {
		return true
	}
	if strings.Contains(line, "|") && i+1 < len(p.lines) && isTableSeparator(p.lines[i+1]) {
		return true
	}
	return false
}

// parseFence captures a fenced code block verbatim, preserving interior
// blank lines. The closing fence is consumed but excluded; an unterminated
// fence runs to end of input.
func (p *Parser) parseFence() model.Element {
	m := fenceRe.FindStringSubmatch(p.lines[p.pos])
	lang := m[1]
	p.pos++

	var body []string
	for p.pos < len(p.lines) {
		if strings.HasPrefix(p.lines[p.pos], "```") {
			p.pos++
			break
		}
		body = append(body, p.lines[p.pos])
		p.pos++
	}
	return &model.CodeBlock{Language: lang, Content: strings.Join(body, "\n")}
}

func (p *Parser) isTableStart() bool {
	if !strings.Contains(p.lines[p.pos], "|") {
		return false
	}
	return p.pos+1 < len(p.lines) && isTableSeparator(p.lines[p.pos+1])
}

// isTableSeparator reports whether a line matches the header-separator
// shape: only pipes, dashes, colons and whitespace, with at least one dash.
func isTableSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !strings.Contains(trimmed, "-") {
		return false
	}
	return separatorRe.MatchString(trimmed)
}

// splitTableCells splits a table row on pipes, trimming each cell. Empty
// cells produced by the line's outer delimiters are discarded; interior
// empty cells are preserved.
func splitTableCells(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

// parseTable consumes the header row, the separator row (discarded), and
// all contiguous data rows. The first retained row is the header row.
func (p *Parser) parseTable() model.Element {
	table := &model.Table{}
	table.Rows = append(table.Rows, splitTableCells(p.lines[p.pos]))
	p.pos += 2 // skip header and separator

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if !strings.Contains(line, "|") || strings.TrimSpace(line) == "" {
			break
		}
		table.Rows = append(table.Rows, splitTableCells(line))
		p.pos++
	}
	return table
}

// bulletLevel derives a nesting level from leading whitespace width.
func bulletLevel(indent int) int {
	level := (indent + 1) / 2
	if level > maxListLevel {
		level = maxListLevel
	}
	return level
}

// parseList greedily consumes contiguous items of one list kind. Numbered
// items are only recognized at the top level; indented lines under either
// kind, whether bulleted or numbered, become bullet items at the indent's
// nesting level. The block ends at the first blank line or first
// non-matching line.
func (p *Parser) parseList(kind model.ListKind) model.Element {
	list := &model.List{Kind: kind}

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]

		if kind == model.ListKindNumber {
			if m := numberRe.FindStringSubmatch(line); m != nil {
				list.Items = append(list.Items, model.ListItem{Text: m[2]})
				p.pos++
				continue
			}
		}
		if m := indentNumRe.FindStringSubmatch(line); m != nil {
			// An indented numbered line loses its number and nests as a
			// bullet.
			list.Items = append(list.Items, model.ListItem{Text: m[2], Level: bulletLevel(len(m[1]))})
			p.pos++
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			indent := len(m[1])
			if kind == model.ListKindNumber && indent == 0 {
				// A top-level bullet ends a numbered list.
				break
			}
			level := bulletLevel(indent)
			if kind == model.ListKindNumber && level == 0 {
				level = 1
			}
			list.Items = append(list.Items, model.ListItem{Text: m[2], Level: level})
			p.pos++
			continue
		}
		break
	}
	return list
}

// parseBlockquote strips exactly one quote marker and at most one following
// space per line, joining the remainder with newlines. Quoted text is not
// split into further blocks.
func (p *Parser) parseBlockquote() model.Element {
	var parts []string
	for p.pos < len(p.lines) {
		m := quoteRe.FindStringSubmatch(p.lines[p.pos])
		if m == nil {
			break
		}
		parts = append(parts, m[1])
		p.pos++
	}
	return &model.Blockquote{Text: strings.Join(parts, "\n")}
}

// parseParagraph accumulates consecutive lines until a blank line or a line
// opening any other block, joining them with single spaces. Hard line
// breaks inside a paragraph require the explicit break tag.
func (p *Parser) parseParagraph() model.Element {
	var parts []string
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if strings.TrimSpace(line) == "" || p.isBlockStart(p.pos) {
			break
		}
		parts = append(parts, strings.TrimSpace(line))
		p.pos++
	}
	if len(parts) == 0 {
		// Keeps the cursor moving if called on a blank line.
		p.pos++
		return nil
	}
	return &model.Paragraph{Text: strings.Join(parts, " ")}
}

func isImgTag(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "<img")
}

// parseImgTag parses an HTML img tag via the HTML tokenizer, reading src,
// alt and pixel width/height attributes.
func parseImgTag(line string) (*model.Image, bool) {
	z := html.NewTokenizer(strings.NewReader(strings.TrimSpace(line)))
	tt := z.Next()
	if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
		return nil, false
	}
	tok := z.Token()
	if tok.Data != "img" {
		return nil, false
	}

	img := &model.Image{}
	for _, attr := range tok.Attr {
		switch attr.Key {
		case "src":
			img.Src = attr.Val
		case "alt":
			img.Alt = attr.Val
		case "width":
			img.Width = parsePixels(attr.Val)
		case "height":
			img.Height = parsePixels(attr.Val)
		}
	}
	if img.Src == "" {
		return nil, false
	}
	return img, true
}

func parsePixels(v string) int {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
