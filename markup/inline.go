package markup

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bellx2/md2mdocx/model"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// inlineMatchKind distinguishes what an inline matcher produces.
type inlineMatchKind int

const (
	inlineText inlineMatchKind = iota
	inlineBreak
	inlineImage
)

// inlineMatcher is one entry of the ordered matcher table. For text
// matchers, group 1 is the styled content; for image matchers, group 1 is
// the alt text and group 2 the source.
type inlineMatcher struct {
	re    *regexp.Regexp
	kind  inlineMatchKind
	style model.RunStyle
}

// inlineMatchers is the fixed pattern table. Order matters twice over:
// break/image tags are checked ahead of text patterns, and when two
// patterns match at the same offset the earlier table entry wins, so
// triple-emphasis must precede double, and double single. All content
// groups are non-greedy.
var inlineMatchers = []inlineMatcher{
	{re: regexp.MustCompile(`(?i)<br\s*/?>`), kind: inlineBreak},
	{re: regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`), kind: inlineImage},
	{re: regexp.MustCompile(`\*\*\*(.+?)\*\*\*`), style: model.RunStyle{Bold: true, Italic: true}},
	{re: regexp.MustCompile(`___(.+?)___`), style: model.RunStyle{Bold: true, Italic: true}},
	{re: regexp.MustCompile(`\*\*(.+?)\*\*`), style: model.RunStyle{Bold: true}},
	{re: regexp.MustCompile(`__(.+?)__`), style: model.RunStyle{Bold: true}},
	{re: regexp.MustCompile(`\*(.+?)\*`), style: model.RunStyle{Italic: true}},
	{re: regexp.MustCompile(`_(.+?)_`), style: model.RunStyle{Italic: true}},
	{re: regexp.MustCompile(`~~(.+?)~~`), style: model.RunStyle{Strike: true}},
	{re: regexp.MustCompile("`(.+?)`"), style: model.RunStyle{Code: true}},
}

// ResolveInline turns one block's raw text into its ordered run sequence.
// The lexer repeatedly finds the earliest-starting match across the matcher
// table, emits any preceding plain text, emits the matched run, and advances
// past the match. When no pattern matches, the remaining text becomes one
// plain run.
//
// Images in inline position are loaded synchronously relative to baseDir
// when baseDir is non-empty; a missing or unreadable file degrades to a
// red placeholder run and a warning.
func ResolveInline(text, baseDir string) ([]model.Run, []model.Warning) {
	var runs []model.Run
	var warnings []model.Warning

	rest := text
	for rest != "" {
		idx, loc := findEarliest(rest)
		if idx < 0 {
			runs = append(runs, &model.TextRun{Text: rest})
			break
		}
		if loc[0] > 0 {
			runs = append(runs, &model.TextRun{Text: rest[:loc[0]]})
		}

		m := inlineMatchers[idx]
		switch m.kind {
		case inlineBreak:
			runs = append(runs, &model.BreakRun{})
		case inlineImage:
			src := rest[loc[4]:loc[5]]
			run, warn := loadInlineImage(src, baseDir)
			runs = append(runs, run)
			if warn != nil {
				warnings = append(warnings, *warn)
			}
		default:
			runs = append(runs, &model.TextRun{Text: rest[loc[2]:loc[3]], Style: m.style})
		}
		rest = rest[loc[1]:]
	}
	return runs, warnings
}

// findEarliest returns the matcher index and submatch index slice of the
// earliest-starting match in text, or -1 when nothing matches. Ties on
// start offset resolve to the lower table index.
func findEarliest(text string) (int, []int) {
	best := -1
	var bestLoc []int
	for i, m := range inlineMatchers {
		loc := m.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if best < 0 || loc[0] < bestLoc[0] {
			best = i
			bestLoc = loc
		}
	}
	return best, bestLoc
}

// loadInlineImage resolves an inline image reference. Remote sources and
// references without a base directory stay unloaded; the assembler decides
// how to present them.
func loadInlineImage(src, baseDir string) (model.Run, *model.Warning) {
	if baseDir == "" || isRemoteRef(src) {
		return &model.ImageRun{Src: src}, nil
	}

	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		w := model.Warningf(model.WarningTypeImage, "inline image %q: %v", src, err)
		return placeholderRun(fmt.Sprintf("[image not found: %s]", src)), &w
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		w := model.Warningf(model.WarningTypeImage, "inline image %q: %v", src, err)
		return placeholderRun(fmt.Sprintf("[image not embedded: %s]", src)), &w
	}
	return &model.ImageRun{Src: src, Data: data, Width: cfg.Width, Height: cfg.Height}, nil
}

func isRemoteRef(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// placeholderRun builds the visible red run substituted for content that
// could not be resolved.
func placeholderRun(text string) *model.TextRun {
	c := model.PlaceholderColor
	return &model.TextRun{Text: text, Style: model.RunStyle{Bold: true}, Color: &c}
}
