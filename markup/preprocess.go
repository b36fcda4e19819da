package markup

import "regexp"

// Control-comment markers recognized by the preprocessor. All are tolerant
// of case and interior whitespace.
var (
	startMarkerRe    = regexp.MustCompile(`(?i)<!--\s*md2docx:start\s*-->`)
	endMarkerRe      = regexp.MustCompile(`(?i)<!--\s*md2docx:end\s*-->`)
	changelogOpenRe  = regexp.MustCompile(`(?i)<!--\s*changelog\s*-->`)
	changelogCloseRe = regexp.MustCompile(`(?i)<!--\s*/changelog\s*-->`)
)

// Preprocess strips out-of-band control regions from raw document text
// before block parsing. When both a start and an end marker are present,
// only the text between them survives; a lone start marker clips everything
// before it and a lone end marker everything after it. The delimited
// changelog region, if any, is removed entirely: it is parsed separately by
// ExtractChangelog from the same raw text.
func Preprocess(raw string) string {
	text := raw

	if loc := startMarkerRe.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}
	if loc := endMarkerRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	if open := changelogOpenRe.FindStringIndex(text); open != nil {
		rest := text[open[1]:]
		if closing := changelogCloseRe.FindStringIndex(rest); closing != nil {
			text = text[:open[0]] + rest[closing[1]:]
		} else {
			// Unterminated region runs to end of input.
			text = text[:open[0]]
		}
	}

	return text
}
