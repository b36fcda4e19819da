package markup

import (
	"strings"

	"github.com/bellx2/md2mdocx/model"
)

// Header labels recognized on the first non-separator changelog row.
var changelogHeaderLabels = map[string]bool{
	"version":     true,
	"date":        true,
	"description": true,
	"author":      true,
	"changes":     true,
}

// ExtractChangelog locates the delimited changelog region in raw document
// text and parses it as a table of three-field records. It returns nil when
// the region is absent or contains no data rows; callers fall back to a
// synthesized one-row history.
func ExtractChangelog(raw string) []model.ChangelogRecord {
	open := changelogOpenRe.FindStringIndex(raw)
	if open == nil {
		return nil
	}
	region := raw[open[1]:]
	if closing := changelogCloseRe.FindStringIndex(region); closing != nil {
		region = region[:closing[0]]
	}

	var records []model.ChangelogRecord
	sawHeader := false
	for _, line := range strings.Split(region, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		if isTableSeparator(line) {
			continue
		}
		cells := splitTableCells(line)
		if !sawHeader {
			sawHeader = true
			if looksLikeChangelogHeader(cells) {
				continue
			}
		}
		if len(cells) < 3 {
			continue
		}
		records = append(records, model.ChangelogRecord{
			Version:     cells[0],
			Date:        cells[1],
			Description: cells[2],
		})
	}
	return records
}

func looksLikeChangelogHeader(cells []string) bool {
	for _, c := range cells {
		if changelogHeaderLabels[strings.ToLower(strings.TrimSpace(c))] {
			return true
		}
	}
	return false
}
