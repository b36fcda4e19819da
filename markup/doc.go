// Package markup converts raw Markdown text into the document model.
//
// Conversion happens in two phases. The block parser scans lines with a
// cursor and emits typed [model.Element] values in document order, testing a
// fixed precedence of patterns at every position. The inline resolver then
// turns the raw text of each text-bearing block into an ordered sequence of
// [model.Run] values using a lexer with an ordered matcher table: the
// earliest-starting match wins, and declaration order breaks ties.
//
// Out-of-band control regions (start/end markers and the changelog block)
// are handled before block parsing by [Preprocess] and [ExtractChangelog].
//
// The package performs no network I/O. The only filesystem access is the
// synchronous load of images referenced in inline position when a base
// directory is supplied; a load failure degrades to a visible placeholder
// run rather than an error.
package markup
