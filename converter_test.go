package md2mdocx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bellx2/md2mdocx/model"
)

const sampleDoc = `<!-- changelog -->
| Version | Date | Description |
|---------|------|-------------|
| 1.0 | 2024-05-01 | First draft |
<!-- /changelog -->

# Report

Some **important** text.

## Details

- alpha
- beta
`

func TestConverterElements(t *testing.T) {
	elements, err := FromString(sampleDoc).Elements()
	if err != nil {
		t.Fatal(err)
	}
	wantTypes := []model.ElementType{
		model.ElementTypeHeading,
		model.ElementTypeParagraph,
		model.ElementTypeHeading,
		model.ElementTypeList,
	}
	if len(elements) != len(wantTypes) {
		t.Fatalf("got %d elements, want %d (changelog must not leak into the body)", len(elements), len(wantTypes))
	}
	for i, el := range elements {
		if el.Type() != wantTypes[i] {
			t.Errorf("elements[%d] = %v, want %v", i, el.Type(), wantTypes[i])
		}
	}
}

func TestConverterChangelog(t *testing.T) {
	records, err := FromString(sampleDoc).Changelog()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Version != "1.0" {
		t.Errorf("Changelog() = %+v", records)
	}
}

func TestConverterDocument(t *testing.T) {
	doc, warnings, err := FromString(sampleDoc).
		Title("Sample").
		MermaidDisabled().
		Document(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	rc, err := zr.Open("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(rc); err != nil {
		t.Fatal(err)
	}
	for _, frag := range []string{"Sample", "Report", "important", "First draft"} {
		if !strings.Contains(out.String(), frag) {
			t.Errorf("document.xml missing %q", frag)
		}
	}
}

func TestConverterUnknownThemeWarns(t *testing.T) {
	_, warnings, err := FromString("# x").
		Theme("nonsense").
		MermaidDisabled().
		Document(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Type != model.WarningTypeTheme {
		t.Errorf("warnings = %v, want one theme warning", warnings)
	}
}

func TestConverterChainingDoesNotMutate(t *testing.T) {
	base := FromString("# x").Theme("dark")
	other := base.Theme("forest")
	if base.options.themeName != "dark" {
		t.Error("chaining mutated the original converter")
	}
	if other.options.themeName != "forest" {
		t.Error("chained converter lost its option")
	}
}

func TestConverterWriteFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(in, []byte("# Hello\n\nworld\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "doc.docx")

	warnings, err := Open(in).MermaidDisabled().WriteFile(context.Background(), out)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "absent.md")).Document(context.Background())
	if err == nil {
		t.Error("expected an error for a missing input file")
	}
}
