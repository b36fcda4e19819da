package md2mdocx

import (
	"strings"

	"github.com/bellx2/md2mdocx/model"
)

// Warning is a non-fatal conversion issue. Warnings are accumulated and
// returned beside results; they never abort a conversion.
type Warning = model.Warning

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
