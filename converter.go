package md2mdocx

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bellx2/md2mdocx/docx"
	"github.com/bellx2/md2mdocx/format"
	"github.com/bellx2/md2mdocx/markup"
	"github.com/bellx2/md2mdocx/mermaid"
	"github.com/bellx2/md2mdocx/model"
	"github.com/bellx2/md2mdocx/theme"
)

// Converter provides a fluent interface for converting Markdown to DOCX.
// Each configuration method returns a new Converter instance, making it
// safe to fork a configured converter and allowing method chaining.
type Converter struct {
	// Source
	filename   string
	source     string
	haveSource bool

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter with copied options. Each chain
// method returns a new instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:   c.filename,
		source:     c.source,
		haveSource: c.haveSource,
		options:    c.options.clone(),
		err:        c.err,
	}
}

// Title sets the document title rendered on the first page and stored in
// the core properties.
func (c *Converter) Title(title string) *Converter {
	nc := c.clone()
	nc.options.title = title
	return nc
}

// Theme selects a named color theme. Unknown names fall back to the
// default theme with a warning at conversion time.
func (c *Converter) Theme(name string) *Converter {
	nc := c.clone()
	nc.options.themeName = name
	return nc
}

// HRAsPageBreak makes horizontal rules paginate instead of drawing a line.
func (c *Converter) HRAsPageBreak() *Converter {
	nc := c.clone()
	nc.options.hrAsPageBreak = true
	return nc
}

// BaseDir sets the directory against which referenced images are resolved.
func (c *Converter) BaseDir(dir string) *Converter {
	nc := c.clone()
	nc.options.baseDir = dir
	return nc
}

// MermaidEndpoint overrides the diagram rendering service URL.
func (c *Converter) MermaidEndpoint(url string) *Converter {
	nc := c.clone()
	nc.options.mermaidEndpoint = url
	return nc
}

// MermaidTimeout bounds each individual diagram rendering request.
func (c *Converter) MermaidTimeout(d time.Duration) *Converter {
	nc := c.clone()
	nc.options.mermaidTimeout = d
	return nc
}

// MermaidDisabled skips diagram rendering; mermaid blocks are emitted as
// plain code.
func (c *Converter) MermaidDisabled() *Converter {
	nc := c.clone()
	nc.options.mermaidDisabled = true
	return nc
}

// ContentWidth overrides the usable content width in twips.
func (c *Converter) ContentWidth(twips int) *Converter {
	nc := c.clone()
	nc.options.contentWidth = twips
	return nc
}

// load returns the raw document text, reading and decoding the input file
// on first need.
func (c *Converter) load() (string, error) {
	if c.haveSource {
		return c.source, nil
	}
	if c.filename == "" {
		return "", fmt.Errorf("no input specified")
	}
	data, err := os.ReadFile(c.filename)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	text, err := format.Decode(data)
	if err != nil {
		return "", fmt.Errorf("decoding input: %w", err)
	}
	return text, nil
}

// Elements parses the input and returns the ordered block element
// sequence without assembling a document.
func (c *Converter) Elements() ([]model.Element, error) {
	if c.err != nil {
		return nil, c.err
	}
	raw, err := c.load()
	if err != nil {
		return nil, err
	}
	return markup.Parse(markup.Preprocess(raw)), nil
}

// Changelog extracts the change history records, or nil when the document
// has no changelog region.
func (c *Converter) Changelog() ([]model.ChangelogRecord, error) {
	if c.err != nil {
		return nil, c.err
	}
	raw, err := c.load()
	if err != nil {
		return nil, err
	}
	return markup.ExtractChangelog(raw), nil
}

// Document runs the full conversion pipeline and returns the assembled
// document. Warnings report non-fatal degradations; the returned error is
// only non-nil when the input could not be read at all.
func (c *Converter) Document(ctx context.Context) (*docx.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	raw, err := c.load()
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning

	history := markup.ExtractChangelog(raw)
	elements := markup.Parse(markup.Preprocess(raw))

	th, known := theme.Lookup(c.options.themeName)
	if !known {
		warnings = append(warnings, model.Warningf(model.WarningTypeTheme,
			"unknown theme %q, using %q", c.options.themeName, th.Name))
	}

	var renderer *mermaid.Renderer
	if !c.options.mermaidDisabled {
		renderer = mermaid.NewRenderer(c.options.mermaidEndpoint, c.options.mermaidTimeout, th.Mermaid)
		renderer.RenderAll(ctx, diagramSources(elements))
	}

	assembler := docx.NewAssembler(docx.AssembleOptions{
		Theme:         th,
		Title:         c.options.title,
		BaseDir:       c.options.baseDir,
		ContentWidth:  c.options.contentWidth,
		HRAsPageBreak: c.options.hrAsPageBreak,
	}, renderer)

	doc, assemblyWarnings := assembler.Assemble(elements, history)
	warnings = append(warnings, assemblyWarnings...)
	return doc, warnings, nil
}

// WriteFile converts the input and writes the DOCX container to path.
func (c *Converter) WriteFile(ctx context.Context, path string) ([]Warning, error) {
	doc, warnings, err := c.Document(ctx)
	if err != nil {
		return warnings, err
	}
	if err := doc.WriteFile(path); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// diagramSources collects mermaid sources in discovery order. Duplicates
// are kept; the renderer's cache collapses them to one request while the
// order stays deterministic.
func diagramSources(elements []model.Element) []string {
	var sources []string
	for _, el := range elements {
		if code, ok := el.(*model.CodeBlock); ok && code.IsMermaid() {
			sources = append(sources, code.Content)
		}
	}
	return sources
}
