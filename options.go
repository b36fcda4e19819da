package md2mdocx

import "time"

// ConvertOptions holds the resolved configuration for one conversion. The
// library does not resolve precedence between flags, config files and
// defaults; callers hand in final values.
type ConvertOptions struct {
	// Presentation
	title         string
	themeName     string
	hrAsPageBreak bool

	// Input resolution
	baseDir string

	// Diagram rendering
	mermaidEndpoint string
	mermaidTimeout  time.Duration
	mermaidDisabled bool

	// Layout
	contentWidth int // twips; zero selects the A4 default
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		themeName: "default",
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}
