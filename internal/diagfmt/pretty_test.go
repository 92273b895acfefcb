package diagfmt

import (
	"strings"
	"testing"

	"github.com/nilehmann/codesync/internal/diag"
	"github.com/nilehmann/codesync/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.go", []byte("// CODESYNC(Foo_Bar, 2)\nfunc main() {}\n"))

	bag := diag.NewBag(10)
	labelSpan := source.NewSpan(id, 12, 19) // Foo_Bar
	d := diag.NewError(diag.ChkLabelCase, labelSpan, "label `Foo_Bar` must be snake_case").
		WithNote(labelSpan, "configured in codesync.toml").
		WithFix("rename to `foo_bar`", diag.FixEdit{Span: labelSpan, NewText: "foo_bar"})
	bag.Add(d)
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := testBag(t)

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := b.String()

	wantParts := []string{
		"a.go:1:13: error [CHK2003]: label `Foo_Bar` must be snake_case",
		"    // CODESYNC(Foo_Bar, 2)",
		"    " + strings.Repeat(" ", 12) + "^~~~~~~",
		"note: a.go:1:13: configured in codesync.toml",
		"help: rename to `foo_bar`",
	}
	for _, part := range wantParts {
		if !strings.Contains(out, part) {
			t.Errorf("output missing %q\ngot:\n%s", part, out)
		}
	}
}

func TestPretty_NoNotesNoFixes(t *testing.T) {
	bag, fs := testBag(t)

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{})
	out := b.String()

	if strings.Contains(out, "note:") {
		t.Errorf("notes printed despite ShowNotes=false:\n%s", out)
	}
	if strings.Contains(out, "help:") {
		t.Errorf("fixes printed despite ShowFixes=false:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := testBag(t)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if out.Count != 1 {
		t.Fatalf("count = %d, want 1", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "CHK2003" {
		t.Errorf("code = %q, want CHK2003", d.Code)
	}
	if d.Severity != "ERROR" {
		t.Errorf("severity = %q, want ERROR", d.Severity)
	}
	if d.Location.StartByte != 12 || d.Location.EndByte != 19 {
		t.Errorf("location bytes = %d..%d, want 12..19", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 13 {
		t.Errorf("location pos = %d:%d, want 1:13", d.Location.StartLine, d.Location.StartCol)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "configured in codesync.toml" {
		t.Errorf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "foo_bar" {
		t.Errorf("fixes = %+v", d.Fixes)
	}
}

func TestJSON_Max(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.go", []byte("x\n"))

	bag := diag.NewBag(10)
	for i := 0; i < 5; i++ {
		bag.Add(diag.NewError(diag.ChkCountMismatch, source.NewSpan(id, 0, 1), "m"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Errorf("count = %d, diagnostics = %d, want 2 each", out.Count, len(out.Diagnostics))
	}
}
