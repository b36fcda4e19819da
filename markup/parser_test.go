package markup

import (
	"reflect"
	"testing"

	"github.com/bellx2/md2mdocx/model"
)

// ============================================================================
// Block Parser Tests
// ============================================================================

func TestParseHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		level int
		text  string
	}{
		{"level 1", "# Title", 1, "Title"},
		{"level 3", "### Sub sub", 3, "Sub sub"},
		{"level 6", "###### Deep", 6, "Deep"},
		{"trailing space trimmed", "## Spaced  ", 2, "Spaced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := Parse(tt.input)
			if len(elements) != 1 {
				t.Fatalf("Parse() returned %d elements, want 1", len(elements))
			}
			h, ok := elements[0].(*model.Heading)
			if !ok {
				t.Fatalf("Parse() = %T, want *model.Heading", elements[0])
			}
			if h.Level != tt.level || h.Text != tt.text {
				t.Errorf("heading = {%d %q}, want {%d %q}", h.Level, h.Text, tt.level, tt.text)
			}
		})
	}
}

func TestParseSevenHashesIsParagraph(t *testing.T) {
	elements := Parse("####### Too deep")
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	if _, ok := elements[0].(*model.Paragraph); !ok {
		t.Errorf("Parse() = %T, want *model.Paragraph", elements[0])
	}
}

func TestParagraphJoinsLines(t *testing.T) {
	elements := Parse("first line\nsecond line\nthird line")
	p, ok := elements[0].(*model.Paragraph)
	if !ok {
		t.Fatalf("Parse() = %T, want *model.Paragraph", elements[0])
	}
	if p.Text != "first line second line third line" {
		t.Errorf("Text = %q, want lines joined with single spaces", p.Text)
	}
}

func TestParagraphEndsAtBlockStart(t *testing.T) {
	elements := Parse("some text\n# Heading")
	if len(elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(elements))
	}
	if _, ok := elements[0].(*model.Paragraph); !ok {
		t.Errorf("elements[0] = %T, want *model.Paragraph", elements[0])
	}
	if _, ok := elements[1].(*model.Heading); !ok {
		t.Errorf("elements[1] = %T, want *model.Heading", elements[1])
	}
}

func TestBulletNestingLevels(t *testing.T) {
	// level = min((indent+1)/2, 3) at the documented boundary widths.
	tests := []struct {
		indent int
		want   int
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {6, 3}, {8, 3},
	}
	for _, tt := range tests {
		got := bulletLevel(tt.indent)
		if got != tt.want {
			t.Errorf("bulletLevel(%d) = %d, want %d", tt.indent, got, tt.want)
		}
	}
}

func TestParseBulletList(t *testing.T) {
	input := "- top\n  - nested\n    - deeper\n- top again"
	elements := Parse(input)
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	list, ok := elements[0].(*model.List)
	if !ok {
		t.Fatalf("Parse() = %T, want *model.List", elements[0])
	}
	if list.Kind != model.ListKindBullet {
		t.Errorf("Kind = %v, want bullet", list.Kind)
	}
	want := []model.ListItem{
		{Text: "top", Level: 0},
		{Text: "nested", Level: 1},
		{Text: "deeper", Level: 2},
		{Text: "top again", Level: 0},
	}
	if !reflect.DeepEqual(list.Items, want) {
		t.Errorf("Items = %+v, want %+v", list.Items, want)
	}
}

func TestParseNumberedList(t *testing.T) {
	input := "1. first\n2. second\n  - nested bullet\n3. third"
	elements := Parse(input)
	list, ok := elements[0].(*model.List)
	if !ok {
		t.Fatalf("Parse() = %T, want *model.List", elements[0])
	}
	if list.Kind != model.ListKindNumber {
		t.Errorf("Kind = %v, want number", list.Kind)
	}
	want := []model.ListItem{
		{Text: "first", Level: 0},
		{Text: "second", Level: 0},
		{Text: "nested bullet", Level: 1},
		{Text: "third", Level: 0},
	}
	if !reflect.DeepEqual(list.Items, want) {
		t.Errorf("Items = %+v, want %+v", list.Items, want)
	}
}

func TestIndentedNumberNotAList(t *testing.T) {
	// Numbered items are only recognized at the top level.
	elements := Parse("  1. not a list")
	if _, ok := elements[0].(*model.Paragraph); !ok {
		t.Errorf("Parse() = %T, want *model.Paragraph", elements[0])
	}
}

func TestNestedNumberDemotedToBullet(t *testing.T) {
	// A numbered line indented under a list loses its number and nests as
	// a bullet; the surrounding numbered list stays one block.
	elements := Parse("1. first\n  2. nested\n3. third")
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1 list", len(elements))
	}
	list := elements[0].(*model.List)
	if list.Kind != model.ListKindNumber {
		t.Errorf("Kind = %v, want number", list.Kind)
	}
	want := []model.ListItem{
		{Text: "first", Level: 0},
		{Text: "nested", Level: 1},
		{Text: "third", Level: 0},
	}
	if !reflect.DeepEqual(list.Items, want) {
		t.Errorf("Items = %+v, want %+v", list.Items, want)
	}
}

func TestNestedNumberInBulletList(t *testing.T) {
	elements := Parse("- one\n    1. nested\n- two")
	list := elements[0].(*model.List)
	want := []model.ListItem{
		{Text: "one", Level: 0},
		{Text: "nested", Level: 2},
		{Text: "two", Level: 0},
	}
	if !reflect.DeepEqual(list.Items, want) {
		t.Errorf("Items = %+v, want %+v", list.Items, want)
	}
}

func TestListEndsAtBlankLine(t *testing.T) {
	elements := Parse("- one\n- two\n\n- three")
	if len(elements) != 2 {
		t.Fatalf("got %d elements, want 2 lists", len(elements))
	}
	first := elements[0].(*model.List)
	if len(first.Items) != 2 {
		t.Errorf("first list has %d items, want 2", len(first.Items))
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestTableDetection(t *testing.T) {
	input := "| Name | Age |\n|------|-----|\n| Ann | 31 |\n| Bo | 7 |"
	elements := Parse(input)
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	table, ok := elements[0].(*model.Table)
	if !ok {
		t.Fatalf("Parse() = %T, want *model.Table", elements[0])
	}
	want := [][]string{
		{"Name", "Age"},
		{"Ann", "31"},
		{"Bo", "7"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Rows = %v, want %v (separator row must be discarded)", table.Rows, want)
	}
}

func TestPipeWithoutSeparatorIsParagraph(t *testing.T) {
	elements := Parse("a | b | c\nplain text")
	if _, ok := elements[0].(*model.Paragraph); !ok {
		t.Errorf("Parse() = %T, want *model.Paragraph (no separator row follows)", elements[0])
	}
}

func TestTableInnerEmptyCellsPreserved(t *testing.T) {
	input := "| a |  | c |\n|---|---|---|\n| 1 | 2 | 3 |"
	table := Parse(input)[0].(*model.Table)
	if got := table.Rows[0]; !reflect.DeepEqual(got, []string{"a", "", "c"}) {
		t.Errorf("header = %v, want inner empty cell preserved", got)
	}
}

func TestSeparatorShapes(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"|---|---|", true},
		{"|:--|--:|", true},
		{"--- | ---", true},
		{"| a | b |", false},
		{"||", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isTableSeparator(tt.line); got != tt.want {
			t.Errorf("isTableSeparator(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

// ============================================================================
// Code Fence Tests
// ============================================================================

func TestFencedCode(t *testing.T) {
	input := "```go\nfunc main() {\n\n\tprintln(1)\n}\n```\nafter"
	elements := Parse(input)
	if len(elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(elements))
	}
	code := elements[0].(*model.CodeBlock)
	if code.Language != "go" {
		t.Errorf("Language = %q, want go", code.Language)
	}
	if code.Content != "func main() {\n\n\tprintln(1)\n}" {
		t.Errorf("Content = %q, interior blank lines must survive", code.Content)
	}
}

func TestUnterminatedFenceRunsToEnd(t *testing.T) {
	code := Parse("```\nline one\nline two")[0].(*model.CodeBlock)
	if code.Content != "line one\nline two" {
		t.Errorf("Content = %q", code.Content)
	}
}

// ============================================================================
// Remaining Block Types
// ============================================================================

func TestBlockquote(t *testing.T) {
	elements := Parse("> first\n> second\n>third")
	q := elements[0].(*model.Blockquote)
	if q.Text != "first\nsecond\nthird" {
		t.Errorf("Text = %q, want one marker and at most one space stripped per line", q.Text)
	}
}

func TestHorizontalRule(t *testing.T) {
	for _, line := range []string{"---", "-----", "***", "___"} {
		elements := Parse(line)
		if _, ok := elements[0].(*model.Rule); !ok {
			t.Errorf("Parse(%q) = %T, want *model.Rule", line, elements[0])
		}
	}
}

func TestPageBreakForms(t *testing.T) {
	for _, line := range []string{"<!-- pagebreak -->", "<!--pagebreak-->", "<!-- PageBreak -->", `\newpage`} {
		elements := Parse(line)
		if _, ok := elements[0].(*model.PageBreak); !ok {
			t.Errorf("Parse(%q) = %T, want *model.PageBreak", line, elements[0])
		}
	}
}

func TestStandaloneBreakTag(t *testing.T) {
	for _, line := range []string{"<br>", "<br/>", "<br />"} {
		elements := Parse(line)
		if _, ok := elements[0].(*model.Break); !ok {
			t.Errorf("Parse(%q) = %T, want *model.Break", line, elements[0])
		}
	}
}

func TestMarkdownImageLine(t *testing.T) {
	img := Parse("![logo](images/logo.png)")[0].(*model.Image)
	if img.Alt != "logo" || img.Src != "images/logo.png" {
		t.Errorf("image = %+v", img)
	}
}

func TestHTMLImageTag(t *testing.T) {
	img := Parse(`<img src="pic.png" alt="Pic" width="320" height="200">`)[0].(*model.Image)
	if img.Src != "pic.png" || img.Alt != "Pic" || img.Width != 320 || img.Height != 200 {
		t.Errorf("image = %+v", img)
	}
}

func TestDocumentOrderPreserved(t *testing.T) {
	input := "# H\n\npara\n\n- item\n\n> quote"
	got := Parse(input)
	wantTypes := []model.ElementType{
		model.ElementTypeHeading,
		model.ElementTypeParagraph,
		model.ElementTypeList,
		model.ElementTypeBlockquote,
	}
	if len(got) != len(wantTypes) {
		t.Fatalf("got %d elements, want %d", len(got), len(wantTypes))
	}
	for i, el := range got {
		if el.Type() != wantTypes[i] {
			t.Errorf("elements[%d] = %v, want %v", i, el.Type(), wantTypes[i])
		}
	}
}
