package docx

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bellx2/md2mdocx/markup"
	"github.com/bellx2/md2mdocx/mermaid"
	"github.com/bellx2/md2mdocx/model"
	"github.com/bellx2/md2mdocx/theme"
)

// maxImageHeightPx is the tallest an image may render, in pixels at 96 dpi.
const maxImageHeightPx = 760

// warnFillColor shades diagram-failure warning blocks.
const warnFillColor = "FDE9E9"

// AssembleOptions configures one assembly pass.
type AssembleOptions struct {
	Theme         theme.Theme
	Title         string
	BaseDir       string
	ContentWidth  int // twips; zero selects DefaultContentWidthTwips
	HRAsPageBreak bool
}

// Assembler maps a resolved element sequence onto DOCX layout primitives.
// It owns the structural indent tracker and the numbering allocator, both
// single-use state: create a new Assembler per conversion.
type Assembler struct {
	opts      AssembleOptions
	diagrams  *mermaid.Renderer
	numbering numberingAllocator

	doc       *Document
	indent    int // current structural indent, twips
	drawingID int
	warnings  []model.Warning
}

// NewAssembler creates an assembler. diagrams may be nil, in which case
// mermaid blocks are emitted as plain code.
func NewAssembler(opts AssembleOptions, diagrams *mermaid.Renderer) *Assembler {
	if opts.ContentWidth <= 0 {
		opts.ContentWidth = DefaultContentWidthTwips
	}
	return &Assembler{opts: opts, diagrams: diagrams}
}

// Assemble walks the element sequence in document order, annotating each
// block with the structural indent active at that point: a level-1 heading
// resets the indent to zero, any deeper heading sets it to one nesting
// unit, and nothing else mutates it. The change history table is rendered
// first; when history is nil a single default row is synthesized.
func (a *Assembler) Assemble(elements []model.Element, history []model.ChangelogRecord) (*Document, []model.Warning) {
	a.doc = &Document{theme: a.opts.Theme, title: a.opts.Title}
	a.indent = 0

	if a.opts.Title != "" {
		a.addStyledParagraph("Title", 0, []model.Run{&model.TextRun{Text: a.opts.Title}})
	}
	a.addHistory(history)

	for _, el := range elements {
		switch el := el.(type) {
		case *model.Heading:
			a.addHeading(el)
		case *model.Paragraph:
			a.addStyledParagraph("", a.indent, a.resolve(el.Text))
		case *model.List:
			a.addList(el)
		case *model.Table:
			a.addTable(el)
		case *model.CodeBlock:
			a.addCode(el)
		case *model.Blockquote:
			a.addBlockquote(el)
		case *model.Image:
			a.addBlockImage(el)
		case *model.Rule:
			a.addRule()
		case *model.PageBreak:
			a.addPageBreak()
		case *model.Break:
			a.appendBody(paragraphXML{Runs: []runXML{{Content: []any{breakXML{}}}}})
		}
	}

	a.doc.schemes = a.numbering.schemes
	return a.doc, a.warnings
}

func (a *Assembler) appendBody(el any) {
	a.doc.body = append(a.doc.body, el)
}

func (a *Assembler) warnf(t model.WarningType, format string, args ...any) {
	a.warnings = append(a.warnings, model.Warningf(t, format, args...))
}

// resolve runs the inline resolver over one block's text, folding its
// warnings into the assembly warning set.
func (a *Assembler) resolve(text string) []model.Run {
	runs, warns := markup.ResolveInline(text, a.opts.BaseDir)
	a.warnings = append(a.warnings, warns...)
	return runs
}

func (a *Assembler) addHeading(h *model.Heading) {
	if h.Level == 1 {
		a.indent = 0
	} else {
		a.indent = indentUnitTwips
	}
	style := fmt.Sprintf("Heading%d", h.Level)
	a.addStyledParagraph(style, 0, a.resolve(h.Text))
}

// addStyledParagraph appends one paragraph with an optional style and left
// indent, converting the run sequence to OOXML runs.
func (a *Assembler) addStyledParagraph(style string, indent int, runs []model.Run) {
	p := paragraphXML{Runs: a.runsToXML(runs)}
	p.Props = paraProps(style, indent)
	a.appendBody(p)
}

func paraProps(style string, indent int) *paraPropsXML {
	props := &paraPropsXML{}
	if style != "" {
		props.Style = &valXML{Val: style}
	}
	if indent > 0 {
		props.Indent = &indentXML{Left: indent}
	}
	if props.Style == nil && props.Indent == nil {
		return nil
	}
	return props
}

// runsToXML converts resolved inline runs to OOXML runs in order.
func (a *Assembler) runsToXML(runs []model.Run) []runXML {
	var out []runXML
	for _, run := range runs {
		switch run := run.(type) {
		case *model.TextRun:
			out = append(out, textRunXML(run, a.opts.Theme))
		case *model.BreakRun:
			out = append(out, runXML{Content: []any{breakXML{}}})
		case *model.ImageRun:
			if xr, ok := a.inlineImageXML(run); ok {
				out = append(out, xr)
			}
		}
	}
	return out
}

func textRunXML(run *model.TextRun, t theme.Theme) runXML {
	props := &runPropsXML{}
	used := false
	if run.Style.Code {
		props.Fonts = &fontsXML{ASCII: codeFont, HAnsi: codeFont, CS: codeFont}
		props.Shading = &shadingXML{Val: "clear", Color: "auto", Fill: t.CodeFill}
		used = true
	}
	if run.Style.Bold {
		props.Bold = &emptyXML{}
		used = true
	}
	if run.Style.Italic {
		props.Italic = &emptyXML{}
		used = true
	}
	if run.Style.Strike {
		props.Strike = &emptyXML{}
		used = true
	}
	if run.Color != nil {
		props.Color = &valXML{Val: hexColor(*run.Color)}
		used = true
	}
	r := runXML{Content: []any{newText(run.Text)}}
	if used {
		r.Props = props
	}
	return r
}

func hexColor(c model.Color) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// inlineImageXML embeds a loaded inline image, scaled down to the usable
// width. Unloaded references degrade to a placeholder text run.
func (a *Assembler) inlineImageXML(run *model.ImageRun) (runXML, bool) {
	if len(run.Data) == 0 {
		a.warnf(model.WarningTypeImage, "inline image %q was not embedded", run.Src)
		c := model.PlaceholderColor
		return textRunXML(&model.TextRun{
			Text:  fmt.Sprintf("[image: %s]", run.Src),
			Style: model.RunStyle{Bold: true},
			Color: &c,
		}, a.opts.Theme), true
	}
	w, h := a.fitImage(run.Width, run.Height)
	return a.drawingRun(run.Data, filepath.Base(run.Src), w, h), true
}

// fitImage applies the downscale-only fit: usable width is the content
// width minus the current structural indent, converted to pixels.
func (a *Assembler) fitImage(w, h int) (int, int) {
	maxW := (a.opts.ContentWidth - a.indent) / twipsPerPixel
	return mermaid.FitSize(w, h, maxW, maxImageHeightPx)
}

// drawingRun builds the DrawingML run for image bytes at pixel dimensions.
func (a *Assembler) drawingRun(data []byte, name string, wPx, hPx int) runXML {
	if wPx <= 0 || hPx <= 0 {
		wPx, hPx = 300, 200
	}
	relID := a.doc.addMedia(data)
	a.drawingID++
	cx := int64(wPx) * emuPerPixel
	cy := int64(hPx) * emuPerPixel

	drawing := drawingXML{
		Inline: inlineXML{
			Extent: extentXML{CX: cx, CY: cy},
			DocPr:  docPrXML{ID: a.drawingID, Name: name},
			Graphic: graphicXML{
				Data: graphicDataXML{
					URI: nsPic,
					Pic: picXML{
						NvPicPr: nvPicPrXML{
							CNvPr: docPrXML{ID: a.drawingID, Name: name},
						},
						BlipFill: blipFillXML{Blip: blipXML{Embed: relID}},
						SpPr: spPrXML{
							Xfrm:     xfrmXML{Ext: extentXML{CX: cx, CY: cy}},
							PrstGeom: prstGeomXML{Prst: "rect"},
						},
					},
				},
			},
		},
	}
	return runXML{Content: []any{drawing}}
}

func (a *Assembler) addList(l *model.List) {
	numID := bulletNumID
	if l.Kind == model.ListKindNumber {
		numID = a.numbering.assign(a.indent).NumID()
	}
	for _, item := range l.Items {
		p := paragraphXML{Runs: a.runsToXML(a.resolve(item.Text))}
		p.Props = &paraPropsXML{
			NumPr: &numPrXML{
				ILvl:  valXML{Val: strconv.Itoa(item.Level)},
				NumID: valXML{Val: strconv.Itoa(numID)},
			},
			Indent: &indentXML{Left: a.indent + indentUnitTwips*(item.Level+1)},
		}
		a.appendBody(p)
	}
}

// addTable renders rows with the first row as a shaded, bold header.
// Column widths divide the usable width evenly.
func (a *Assembler) addTable(t *model.Table) {
	cols := t.ColumnCount()
	if cols == 0 {
		return
	}
	width := a.opts.ContentWidth - a.indent
	colWidth := width / cols
	border := borderXML{Val: "single", Size: 4, Space: 0, Color: a.opts.Theme.BorderColor}

	tbl := tableXML{
		Props: tblPrXML{
			Width: tblWidthXML{W: width, Type: "dxa"},
			Borders: tblBordersXML{
				Top: border, Left: border, Bottom: border, Right: border,
				InsideH: border, InsideV: border,
			},
		},
	}
	if a.indent > 0 {
		tbl.Props.Indent = &tblWidthXML{W: a.indent, Type: "dxa"}
	}
	for i := 0; i < cols; i++ {
		tbl.Grid.Cols = append(tbl.Grid.Cols, gridColXML{W: colWidth})
	}

	for rowIdx, row := range t.Rows {
		tr := tableRowXML{}
		for col := 0; col < cols; col++ {
			text := ""
			if col < len(row) {
				text = row[col]
			}
			runs := a.resolve(text)
			if rowIdx == 0 {
				runs = boldened(runs)
			}
			cell := tableCellXML{
				Props: &tcPropsXML{Width: &tblWidthXML{W: colWidth, Type: "dxa"}},
				Paras: []paragraphXML{{Runs: a.runsToXML(runs)}},
			}
			if rowIdx == 0 {
				cell.Props.Shading = &shadingXML{Val: "clear", Color: "auto", Fill: a.opts.Theme.HeaderFill}
			}
			tr.Cells = append(tr.Cells, cell)
		}
		tbl.Rows = append(tbl.Rows, tr)
	}
	a.appendBody(tbl)
}

func boldened(runs []model.Run) []model.Run {
	out := make([]model.Run, len(runs))
	for i, run := range runs {
		if tr, ok := run.(*model.TextRun); ok {
			cp := *tr
			cp.Style.Bold = true
			out[i] = &cp
		} else {
			out[i] = run
		}
	}
	return out
}

// addCode renders mermaid blocks through the diagram cache and everything
// else as a shaded, syntax-colored code paragraph.
func (a *Assembler) addCode(c *model.CodeBlock) {
	if c.IsMermaid() && a.diagrams != nil {
		a.addDiagram(c)
		return
	}
	runs := codeRuns(c.Content, c.Language, a.opts.Theme.Name)
	p := paragraphXML{Runs: a.runsToXML(runs)}
	p.Props = &paraPropsXML{
		Style:   &valXML{Val: "Code"},
		Shading: &shadingXML{Val: "clear", Color: "auto", Fill: a.opts.Theme.CodeFill},
	}
	if a.indent > 0 {
		p.Props.Indent = &indentXML{Left: a.indent}
	}
	a.appendBody(p)
}

// addDiagram consults the diagram cache populated before assembly. A
// failure marker, or a source the rendering pass never saw, produces a
// visibly marked warning block in place of the image.
func (a *Assembler) addDiagram(c *model.CodeBlock) {
	res, ok := a.diagrams.Lookup(c.Content)
	if !ok {
		a.addDiagramFailure("diagram was not rendered")
		return
	}
	if res.Failed() {
		a.addDiagramFailure(res.Err.Error())
		return
	}

	w, h, err := mermaid.Dimensions(res.PNG)
	if err != nil {
		a.addDiagramFailure(err.Error())
		return
	}
	w, h = a.fitImage(w, h)
	p := paragraphXML{Runs: []runXML{a.drawingRun(res.PNG, "diagram", w, h)}}
	if a.indent > 0 {
		p.Props = &paraPropsXML{Indent: &indentXML{Left: a.indent}}
	}
	a.appendBody(p)
}

func (a *Assembler) addDiagramFailure(msg string) {
	a.warnf(model.WarningTypeDiagram, "mermaid: %s", msg)
	c := model.PlaceholderColor
	p := paragraphXML{Runs: []runXML{textRunXML(&model.TextRun{
		Text:  fmt.Sprintf("[mermaid diagram failed: %s]", msg),
		Style: model.RunStyle{Bold: true},
		Color: &c,
	}, a.opts.Theme)}}
	p.Props = &paraPropsXML{
		Shading: &shadingXML{Val: "clear", Color: "auto", Fill: warnFillColor},
	}
	if a.indent > 0 {
		p.Props.Indent = &indentXML{Left: a.indent}
	}
	a.appendBody(p)
}

// addBlockquote resolves each quoted line separately, joined by breaks.
func (a *Assembler) addBlockquote(b *model.Blockquote) {
	var runs []model.Run
	for i, line := range strings.Split(b.Text, "\n") {
		if i > 0 {
			runs = append(runs, &model.BreakRun{})
		}
		runs = append(runs, a.resolve(line)...)
	}
	a.addStyledParagraph("Quote", a.indent, runs)
}

// addBlockImage loads a block-level image from the base directory. Tag
// dimensions override intrinsic ones; either way the image is scaled down
// to the usable width. A load failure degrades to a red placeholder.
func (a *Assembler) addBlockImage(img *model.Image) {
	data, w, h, err := a.loadImage(img.Src)
	if err != nil {
		a.warnf(model.WarningTypeImage, "image %q: %v", img.Src, err)
		c := model.PlaceholderColor
		a.addStyledParagraph("", a.indent, []model.Run{&model.TextRun{
			Text:  fmt.Sprintf("[image not found: %s]", img.Src),
			Style: model.RunStyle{Bold: true},
			Color: &c,
		}})
		return
	}
	if img.Width > 0 && img.Height > 0 {
		w, h = img.Width, img.Height
	}
	w, h = a.fitImage(w, h)
	name := img.Alt
	if name == "" {
		name = filepath.Base(img.Src)
	}
	p := paragraphXML{Runs: []runXML{a.drawingRun(data, name, w, h)}}
	if a.indent > 0 {
		p.Props = &paraPropsXML{Indent: &indentXML{Left: a.indent}}
	}
	a.appendBody(p)
}

func (a *Assembler) loadImage(src string) (data []byte, w, h int, err error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return nil, 0, 0, fmt.Errorf("remote images are not embedded")
	}
	path := src
	if !filepath.IsAbs(path) && a.opts.BaseDir != "" {
		path = filepath.Join(a.opts.BaseDir, path)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("reading image header: %w", err)
	}
	return data, cfg.Width, cfg.Height, nil
}

// addRule emits a bottom-bordered empty paragraph, or a page break when
// the option says rules paginate.
func (a *Assembler) addRule() {
	if a.opts.HRAsPageBreak {
		a.addPageBreak()
		return
	}
	p := paragraphXML{}
	p.Props = &paraPropsXML{
		Borders: &paraBdrXML{Bottom: borderXML{Val: "single", Size: 6, Space: 1, Color: a.opts.Theme.BorderColor}},
	}
	if a.indent > 0 {
		p.Props.Indent = &indentXML{Left: a.indent}
	}
	a.appendBody(p)
}

func (a *Assembler) addPageBreak() {
	a.appendBody(paragraphXML{Runs: []runXML{{Content: []any{breakXML{Type: "page"}}}}})
}

// addHistory renders the change history heading and table. A nil history
// synthesizes a single default row dated today.
func (a *Assembler) addHistory(history []model.ChangelogRecord) {
	if history == nil {
		history = []model.ChangelogRecord{{
			Version:     "1.0",
			Date:        time.Now().Format("2006-01-02"),
			Description: "Initial version",
		}}
	}
	a.addStyledParagraph("Heading2", 0, []model.Run{&model.TextRun{Text: "Revision History"}})

	rows := [][]string{{"Version", "Date", "Description"}}
	for _, rec := range history {
		rows = append(rows, []string{rec.Version, rec.Date, rec.Description})
	}
	a.addTable(&model.Table{Rows: rows})
}
