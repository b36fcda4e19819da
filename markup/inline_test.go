package markup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bellx2/md2mdocx/model"
)

func textOf(t *testing.T, run model.Run) *model.TextRun {
	t.Helper()
	tr, ok := run.(*model.TextRun)
	if !ok {
		t.Fatalf("run = %T, want *model.TextRun", run)
	}
	return tr
}

func TestResolveInlineStyles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		style model.RunStyle
		text  string
	}{
		{"bold stars", "**bold**", model.RunStyle{Bold: true}, "bold"},
		{"bold underscores", "__bold__", model.RunStyle{Bold: true}, "bold"},
		{"italic stars", "*it*", model.RunStyle{Italic: true}, "it"},
		{"italic underscores", "_it_", model.RunStyle{Italic: true}, "it"},
		{"bold italic", "***both***", model.RunStyle{Bold: true, Italic: true}, "both"},
		{"strikethrough", "~~gone~~", model.RunStyle{Strike: true}, "gone"},
		{"inline code", "`x := 1`", model.RunStyle{Code: true}, "x := 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, _ := ResolveInline(tt.input, "")
			if len(runs) != 1 {
				t.Fatalf("got %d runs, want 1", len(runs))
			}
			tr := textOf(t, runs[0])
			if tr.Text != tt.text || tr.Style != tt.style {
				t.Errorf("run = {%q %+v}, want {%q %+v}", tr.Text, tr.Style, tt.text, tt.style)
			}
		})
	}
}

func TestResolveInlinePlainText(t *testing.T) {
	runs, _ := ResolveInline("nothing special here", "")
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if tr := textOf(t, runs[0]); tr.Text != "nothing special here" || tr.Style != (model.RunStyle{}) {
		t.Errorf("run = %+v, want one plain run", tr)
	}
}

func TestResolveInlineSequence(t *testing.T) {
	// The end-to-end ordering property: plain, bold, plain, italic.
	runs, _ := ResolveInline("say **bold** and *italic*", "")
	if len(runs) != 4 {
		t.Fatalf("got %d runs, want 4", len(runs))
	}
	checks := []struct {
		text  string
		style model.RunStyle
	}{
		{"say ", model.RunStyle{}},
		{"bold", model.RunStyle{Bold: true}},
		{" and ", model.RunStyle{}},
		{"italic", model.RunStyle{Italic: true}},
	}
	for i, want := range checks {
		tr := textOf(t, runs[i])
		if tr.Text != want.text || tr.Style != want.style {
			t.Errorf("runs[%d] = {%q %+v}, want {%q %+v}", i, tr.Text, tr.Style, want.text, want.style)
		}
	}
}

func TestEarliestMatchWins(t *testing.T) {
	// The later-starting bold span must not preempt the earlier italic.
	runs, _ := ResolveInline("*first* then **second**", "")
	tr := textOf(t, runs[0])
	if tr.Text != "first" || !tr.Style.Italic {
		t.Errorf("first run = {%q %+v}, want earliest match", tr.Text, tr.Style)
	}
}

func TestDeclarationOrderBreaksTies(t *testing.T) {
	// Triple, double and single emphasis all match at offset zero; the
	// matcher table's order makes triple win.
	runs, _ := ResolveInline("***x***", "")
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	tr := textOf(t, runs[0])
	if !(tr.Style.Bold && tr.Style.Italic) || tr.Text != "x" {
		t.Errorf("run = {%q %+v}, want bold+italic", tr.Text, tr.Style)
	}
}

func TestNonGreedyMatching(t *testing.T) {
	runs, _ := ResolveInline("`a` and `b`", "")
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if tr := textOf(t, runs[0]); tr.Text != "a" {
		t.Errorf("first code span = %q, want shortest match", tr.Text)
	}
}

func TestInlineBreakTag(t *testing.T) {
	runs, _ := ResolveInline("one<br>two", "")
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if _, ok := runs[1].(*model.BreakRun); !ok {
		t.Errorf("runs[1] = %T, want *model.BreakRun", runs[1])
	}
}

func TestInlineImageLoaded(t *testing.T) {
	dir := t.TempDir()
	// Smallest valid PNG: 1x1 transparent pixel.
	png := []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
		0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89, 0x00, 0x00, 0x00,
		0x0D, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x49,
		0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
	}
	if err := os.WriteFile(filepath.Join(dir, "dot.png"), png, 0o644); err != nil {
		t.Fatal(err)
	}

	runs, warns := ResolveInline("see ![dot](dot.png) here", dir)
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	img, ok := runs[1].(*model.ImageRun)
	if !ok {
		t.Fatalf("runs[1] = %T, want *model.ImageRun", runs[1])
	}
	if len(img.Data) == 0 || img.Width != 1 || img.Height != 1 {
		t.Errorf("image = {%d bytes %dx%d}, want loaded 1x1", len(img.Data), img.Width, img.Height)
	}
}

func TestInlineImageMissingBecomesPlaceholder(t *testing.T) {
	runs, warns := ResolveInline("![x](nope.png)", t.TempDir())
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}
	if warns[0].Type != model.WarningTypeImage {
		t.Errorf("warning type = %v, want image", warns[0].Type)
	}
	tr := textOf(t, runs[0])
	if !strings.Contains(tr.Text, "nope.png") || tr.Color == nil {
		t.Errorf("placeholder = %+v, want visible red run naming the file", tr)
	}
}

func TestInlineImageUndecodableBecomesPlaceholder(t *testing.T) {
	// A readable file that is not an image must not be embedded with made-up
	// dimensions.
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fake.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	runs, warns := ResolveInline("![x](fake.png)", dir)
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}
	if warns[0].Type != model.WarningTypeImage {
		t.Errorf("warning type = %v, want image", warns[0].Type)
	}
	tr := textOf(t, runs[0])
	if !strings.Contains(tr.Text, "fake.png") || tr.Color == nil {
		t.Errorf("placeholder = %+v, want visible red run naming the file", tr)
	}
}

func TestInlineImageWithoutBaseDirStaysUnloaded(t *testing.T) {
	runs, warns := ResolveInline("![x](a.png)", "")
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	img, ok := runs[0].(*model.ImageRun)
	if !ok {
		t.Fatalf("runs[0] = %T, want *model.ImageRun", runs[0])
	}
	if img.Data != nil {
		t.Errorf("Data = %d bytes, want unloaded", len(img.Data))
	}
}
