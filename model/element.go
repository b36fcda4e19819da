package model

// ElementType represents the type of a block element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeHeading
	ElementTypeParagraph
	ElementTypeList
	ElementTypeTable
	ElementTypeCode
	ElementTypeBlockquote
	ElementTypeImage
	ElementTypeRule
	ElementTypePageBreak
	ElementTypeBreak
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeHeading:
		return "Heading"
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeList:
		return "List"
	case ElementTypeTable:
		return "Table"
	case ElementTypeCode:
		return "Code"
	case ElementTypeBlockquote:
		return "Blockquote"
	case ElementTypeImage:
		return "Image"
	case ElementTypeRule:
		return "Rule"
	case ElementTypePageBreak:
		return "PageBreak"
	case ElementTypeBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// Element is the interface for all block elements. The parser produces
// elements in document order; that order must be preserved through assembly.
type Element interface {
	Type() ElementType
}

// TextElement is an interface for elements whose raw text is subject to
// inline resolution.
type TextElement interface {
	Element
	GetText() string
}

// Heading represents a heading. Level 1 resets the structural indent;
// levels 2-6 set it to one nesting unit.
type Heading struct {
	Level int // 1-6
	Text  string
}

func (h *Heading) Type() ElementType { return ElementTypeHeading }
func (h *Heading) GetText() string   { return h.Text }

// Paragraph represents a paragraph of text. Consecutive source lines are
// joined with single spaces by the parser.
type Paragraph struct {
	Text string
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }
func (p *Paragraph) GetText() string   { return p.Text }

// ListKind distinguishes bullet lists from numbered lists.
type ListKind int

const (
	ListKindBullet ListKind = iota
	ListKindNumber
)

func (lk ListKind) String() string {
	if lk == ListKindNumber {
		return "number"
	}
	return "bullet"
}

// List represents a contiguous run of list items sharing one kind.
type List struct {
	Kind  ListKind
	Items []ListItem
}

func (l *List) Type() ElementType { return ElementTypeList }

// ListItem represents a single list item at a nesting level of 0-3.
type ListItem struct {
	Text  string
	Level int
}

// Table represents a table. The first row is always the header row; the
// markup separator row is consumed by the parser and never appears here.
type Table struct {
	Rows [][]string
}

func (t *Table) Type() ElementType { return ElementTypeTable }

// ColumnCount returns the widest row's cell count.
func (t *Table) ColumnCount() int {
	n := 0
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// CodeBlock represents a fenced code block. Content is verbatim, including
// interior blank lines. Diagram sources carry their diagram language tag.
type CodeBlock struct {
	Language string
	Content  string
}

func (c *CodeBlock) Type() ElementType { return ElementTypeCode }

// IsMermaid reports whether the block holds mermaid diagram source.
func (c *CodeBlock) IsMermaid() bool { return c.Language == "mermaid" }

// Blockquote represents quoted text. Lines are joined with newlines; the
// quoted text is not split into further blocks.
type Blockquote struct {
	Text string
}

func (b *Blockquote) Type() ElementType { return ElementTypeBlockquote }
func (b *Blockquote) GetText() string   { return b.Text }

// Image represents a block-level image. Width and Height are pixel values
// from an HTML img tag, or zero when unspecified.
type Image struct {
	Alt    string
	Src    string
	Width  int
	Height int
}

func (i *Image) Type() ElementType { return ElementTypeImage }

// Rule represents a horizontal rule.
type Rule struct{}

func (r *Rule) Type() ElementType { return ElementTypeRule }

// PageBreak represents a forced page break.
type PageBreak struct{}

func (p *PageBreak) Type() ElementType { return ElementTypePageBreak }

// Break represents a forced line break standing alone as a block.
type Break struct{}

func (b *Break) Type() ElementType { return ElementTypeBreak }

// Color represents an RGB color.
type Color struct {
	R, G, B uint8
}
