package model

// RunKind represents the kind of an inline run.
type RunKind int

const (
	RunKindText RunKind = iota
	RunKindBreak
	RunKindImage
)

// Run is the interface for inline content produced by the inline resolver.
// Runs appear in left-to-right document order within one block.
type Run interface {
	Kind() RunKind
}

// RunStyle is the additive style set of a text run.
type RunStyle struct {
	Bold   bool
	Italic bool
	Strike bool
	Code   bool // inline-code shading and monospace font
}

// TextRun is a styled text fragment. Color is nil for default text; error
// placeholders and syntax-colored code runs set it explicitly.
type TextRun struct {
	Text  string
	Style RunStyle
	Color *Color
}

func (t *TextRun) Kind() RunKind { return RunKindText }

// BreakRun is a forced line break inside a block.
type BreakRun struct{}

func (b *BreakRun) Kind() RunKind { return RunKindBreak }

// ImageRun is an image in inline position. Data holds the loaded bytes when
// the referenced file could be read; Width and Height are intrinsic pixel
// dimensions filled in at load time.
type ImageRun struct {
	Src    string
	Data   []byte
	Width  int
	Height int
}

func (i *ImageRun) Kind() RunKind { return RunKindImage }

// PlaceholderColor is the color used for visible error placeholder runs.
var PlaceholderColor = Color{R: 0xCC, G: 0x00, B: 0x00}
