// Package md2mdocx converts Markdown documents into DOCX files.
//
// Basic usage:
//
//	warnings, err := md2mdocx.Open("report.md").WriteFile(ctx, "report.docx")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println(md2mdocx.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := md2mdocx.Open("report.md").
//	    Title("Quarterly Report").
//	    Theme("dark").
//	    HRAsPageBreak().
//	    WriteFile(ctx, "report.docx")
//
// Conversion runs a strictly sequential pipeline: preprocessing, changelog
// extraction, block parsing, one serial diagram-rendering pass, then inline
// resolution and assembly. Non-fatal issues (missing images, failed diagram
// renders, unknown theme names) degrade to visible placeholders and are
// reported as warnings; only input and output I/O failures are fatal.
//
// For finer control the markup, mermaid and docx packages are available
// directly.
package md2mdocx

import (
	"path/filepath"
)

// Open prepares a conversion of the Markdown file at filename. The file is
// read when a terminal operation runs. The file's directory becomes the
// base directory for resolving referenced images unless BaseDir overrides
// it.
func Open(filename string) *Converter {
	opts := defaultOptions()
	opts.baseDir = filepath.Dir(filename)
	return &Converter{filename: filename, options: opts}
}

// FromString prepares a conversion of in-memory Markdown text. No base
// directory is assumed; referenced images stay unresolved unless BaseDir
// is set.
func FromString(text string) *Converter {
	return &Converter{source: text, haveSource: true, options: defaultOptions()}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
