package docx

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/bellx2/md2mdocx/model"
)

// Chroma style per document theme. Dark themes get a dark token palette.
var chromaStyles = map[string]string{
	"dark": "monokai",
}

// codeRuns tokenizes code block content and returns colored runs. Newlines
// inside token values become break runs so the block stays one shaded
// paragraph. Unknown languages fall back to the plain-text lexer.
func codeRuns(content, language, themeName string) []model.Run {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	styleName, ok := chromaStyles[themeName]
	if !ok {
		styleName = "github"
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iter, err := lexer.Tokenise(nil, content)
	if err != nil {
		return plainCodeRuns(content)
	}

	var runs []model.Run
	for tok := iter(); tok != chroma.EOF; tok = iter() {
		entry := style.Get(tok.Type)
		var color *model.Color
		if entry.Colour.IsSet() {
			color = &model.Color{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue()}
		}
		runs = appendCodeText(runs, tok.Value, entry.Bold == chroma.Yes, entry.Italic == chroma.Yes, color)
	}
	if len(runs) == 0 {
		return plainCodeRuns(content)
	}
	return trimTrailingBreak(runs)
}

func plainCodeRuns(content string) []model.Run {
	return trimTrailingBreak(appendCodeText(nil, content, false, false, nil))
}

// trimTrailingBreak drops the break produced by a final newline in the
// source so the shaded block does not end with an empty line.
func trimTrailingBreak(runs []model.Run) []model.Run {
	if n := len(runs); n > 0 {
		if _, ok := runs[n-1].(*model.BreakRun); ok {
			return runs[:n-1]
		}
	}
	return runs
}

// appendCodeText splits text on newlines, emitting break runs between the
// segments.
func appendCodeText(runs []model.Run, text string, bold, italic bool, color *model.Color) []model.Run {
	for i, seg := range strings.Split(text, "\n") {
		if i > 0 {
			runs = append(runs, &model.BreakRun{})
		}
		if seg == "" {
			continue
		}
		runs = append(runs, &model.TextRun{
			Text:  seg,
			Style: model.RunStyle{Code: true, Bold: bold, Italic: italic},
			Color: color,
		})
	}
	return runs
}
