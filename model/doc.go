// Package model provides the intermediate representation (IR) for converted
// document content.
//
// This package defines the data structures produced by the markup parser and
// consumed by the DOCX assembler. A converted document is an ordered sequence
// of [Element] values; text-bearing elements are further resolved into
// ordered [Run] sequences by the inline resolver.
//
// # Elements
//
// All block content implements the [Element] interface. The concrete types are:
//
//   - [Heading] - headings (levels 1-6)
//   - [Paragraph] - text paragraphs
//   - [List] - ordered or unordered lists with nested items
//   - [Table] - tables whose first row is the header row
//   - [CodeBlock] - fenced code, including diagram sources
//   - [Blockquote] - quoted text
//   - [Image] - block-level images
//   - [Rule] - horizontal rules
//   - [PageBreak], [Break] - forced page and line breaks
//
// # Runs
//
// Inline content implements the [Run] interface:
//
//   - [TextRun] - a styled text fragment
//   - [BreakRun] - a forced line break
//   - [ImageRun] - an image embedded in inline position
//
// Styles on a [TextRun] are additive: bold and italic may be set together.
//
// # Warnings
//
// Non-fatal conversion issues are reported as [Warning] values accumulated
// alongside results rather than aborting the run.
package model
