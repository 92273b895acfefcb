package check

import (
	"regexp"
	"strings"
	"testing"

	"github.com/nilehmann/codesync/internal/diag"
	"github.com/nilehmann/codesync/internal/inflect"
	"github.com/nilehmann/codesync/internal/scan"
	"github.com/nilehmann/codesync/internal/source"
)

type fileContent struct {
	path    string
	content string
}

func scanFiles(t *testing.T, files []fileContent) *scan.Matches {
	t.Helper()
	fs := source.NewFileSet()
	scanner := scan.NewScanner(fs)
	ms := &scan.Matches{Interner: scanner.Interner()}
	for _, f := range files {
		id := fs.AddVirtual(f.path, []byte(f.content))
		fm := scanner.ScanFile(id)
		if len(fm.Matches) > 0 {
			ms.Files = append(ms.Files, fm)
		}
	}
	return ms
}

func runCheck(t *testing.T, cfg Config, files []fileContent) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(100)
	New(cfg, diag.BagReporter{Bag: bag}).Check(scanFiles(t, files))
	return bag
}

func messages(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Message)
	}
	return out
}

func TestCheck_ConsistentCounts(t *testing.T) {
	bag := runCheck(t, DefaultConfig(), []fileContent{
		{"a.go", "// CODESYNC(init, 2)\n"},
		{"b.go", "// CODESYNC(init, 2)\n"},
	})
	if bag.Len() != 0 {
		t.Fatalf("findings = %v, want none", messages(bag))
	}
}

func TestCheck_CountMismatch(t *testing.T) {
	bag := runCheck(t, DefaultConfig(), []fileContent{
		{"a.go", "// CODESYNC(init, 2)\n"},
	})
	if bag.Len() != 1 {
		t.Fatalf("findings = %v, want 1", messages(bag))
	}
	d := bag.Items()[0]
	if d.Code != diag.ChkCountMismatch {
		t.Errorf("code = %v, want ChkCountMismatch", d.Code)
	}
	want := "expected 2 comments with label `init`, found 1"
	if d.Message != want {
		t.Errorf("message = %q, want %q", d.Message, want)
	}
}

func TestCheck_CountMismatch_Singular(t *testing.T) {
	bag := runCheck(t, DefaultConfig(), []fileContent{
		{"a.go", "// CODESYNC(solo, 1)\n// CODESYNC(solo, 1)\n"},
	})
	if bag.Len() != 1 {
		t.Fatalf("findings = %v, want 1", messages(bag))
	}
	want := "expected 1 comment with label `solo`, found 2"
	if got := bag.Items()[0].Message; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestCheck_CountConflict(t *testing.T) {
	bag := runCheck(t, DefaultConfig(), []fileContent{
		{"a.go", "// CODESYNC(init, 2)\n"},
		{"b.go", "// CODESYNC(init, 2)\n"},
		{"c.go", "// CODESYNC(init, 3)\n"},
	})
	if bag.Len() != 1 {
		t.Fatalf("findings = %v, want 1", messages(bag))
	}
	d := bag.Items()[0]
	if d.Code != diag.ChkCountConflict {
		t.Errorf("code = %v, want ChkCountConflict", d.Code)
	}
	want := "all comments with label `init` must have the same count"
	if d.Message != want {
		t.Errorf("message = %q, want %q", d.Message, want)
	}
	// The finding is localized across every member: primary plus notes.
	if len(d.Notes) != 2 {
		t.Errorf("notes = %d, want 2", len(d.Notes))
	}
}

func TestCheck_DefaultCount(t *testing.T) {
	// A bare label is expected DefaultCount times.
	bag := runCheck(t, DefaultConfig(), []fileContent{
		{"a.go", "// CODESYNC(pair)\n"},
	})
	if bag.Len() != 1 {
		t.Fatalf("findings = %v, want 1", messages(bag))
	}
	want := "expected 2 comments with label `pair`, found 1"
	if got := bag.Items()[0].Message; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	cfg := DefaultConfig()
	cfg.DefaultCount = 1
	bag = runCheck(t, cfg, []fileContent{
		{"a.go", "// CODESYNC(pair)\n"},
	})
	if bag.Len() != 0 {
		t.Fatalf("findings = %v, want none with DefaultCount=1", messages(bag))
	}
}

func TestCheck_DefaultCountConflictsWithDeclared(t *testing.T) {
	// One bare annotation (implicit 2) and one declaring 3 disagree.
	bag := runCheck(t, DefaultConfig(), []fileContent{
		{"a.go", "// CODESYNC(x)\n"},
		{"b.go", "// CODESYNC(x, 3)\n"},
	})
	if bag.Len() != 1 {
		t.Fatalf("findings = %v, want 1", messages(bag))
	}
	if got := bag.Items()[0].Code; got != diag.ChkCountConflict {
		t.Errorf("code = %v, want ChkCountConflict", got)
	}
}

func TestCheck_Malformed(t *testing.T) {
	bag := runCheck(t, DefaultConfig(), []fileContent{
		{"a.go", "// CODESYNC no parens\n"},
	})
	if bag.Len() != 1 {
		t.Fatalf("findings = %v, want 1", messages(bag))
	}
	d := bag.Items()[0]
	if d.Code != diag.ScanMalformed {
		t.Errorf("code = %v, want ScanMalformed", d.Code)
	}
	if d.Message != "malformed codesync comment" {
		t.Errorf("message = %q", d.Message)
	}
	if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "CODESYNC(my-label, 3)") {
		t.Errorf("notes = %+v, want usage note", d.Notes)
	}
}

func TestCheck_InvalidCount(t *testing.T) {
	bag := runCheck(t, DefaultConfig(), []fileContent{
		{"a.go", "// CODESYNC(x, many)\n"},
	})
	if bag.Len() != 1 {
		t.Fatalf("findings = %v, want 1", messages(bag))
	}
	d := bag.Items()[0]
	if d.Code != diag.ScanInvalidCount {
		t.Errorf("code = %v, want ScanInvalidCount", d.Code)
	}
	if d.Message != "invalid count" {
		t.Errorf("message = %q, want %q", d.Message, "invalid count")
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "second argument must be an integer" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestCheck_ParseDefectsGateCountChecks(t *testing.T) {
	// The count stage must not run while a parse defect exists: the lone
	// valid `init` annotation would otherwise also report a mismatch.
	bag := runCheck(t, DefaultConfig(), []fileContent{
		{"a.go", "// CODESYNC(init, 2)\n// CODESYNC broken\n"},
	})
	if bag.Len() != 1 {
		t.Fatalf("findings = %v, want only the parse defect", messages(bag))
	}
	if got := bag.Items()[0].Code; got != diag.ScanMalformed {
		t.Errorf("code = %v, want ScanMalformed", got)
	}
}

func TestCheck_CountFindingsGateStyleChecks(t *testing.T) {
	style := inflect.StyleSnake
	cfg := DefaultConfig()
	cfg.Style = &style

	bag := runCheck(t, cfg, []fileContent{
		{"a.go", "// CODESYNC(BadLabel, 2)\n"},
	})
	if bag.Len() != 1 {
		t.Fatalf("findings = %v, want only the count mismatch", messages(bag))
	}
	if got := bag.Items()[0].Code; got != diag.ChkCountMismatch {
		t.Errorf("code = %v, want ChkCountMismatch", got)
	}
}

func TestCheck_Casing(t *testing.T) {
	style := inflect.StyleSnake
	cfg := DefaultConfig()
	cfg.Style = &style

	bag := runCheck(t, cfg, []fileContent{
		{"a.go", "// CODESYNC(Foo_Bar, 2)\n"},
		{"b.go", "// CODESYNC(Foo_Bar, 2)\n"},
	})
	if bag.Len() != 2 {
		t.Fatalf("findings = %v, want 2", messages(bag))
	}
	d := bag.Items()[0]
	if d.Code != diag.ChkLabelCase {
		t.Errorf("code = %v, want ChkLabelCase", d.Code)
	}
	want := "label `Foo_Bar` must be snake_case"
	if d.Message != want {
		t.Errorf("message = %q, want %q", d.Message, want)
	}
	if len(d.Fixes) != 1 {
		t.Fatalf("fixes = %d, want 1", len(d.Fixes))
	}
	fix := d.Fixes[0]
	if fix.Title != "rename to `foo_bar`" {
		t.Errorf("fix title = %q", fix.Title)
	}
	if len(fix.Edits) != 1 || fix.Edits[0].NewText != "foo_bar" {
		t.Errorf("fix edits = %+v, want foo_bar rewrite", fix.Edits)
	}
}

func TestCheck_CasingWithAcronyms(t *testing.T) {
	style := inflect.StyleCamel
	cfg := DefaultConfig()
	cfg.Style = &style
	cfg.Acronyms = []string{"db"}

	bag := runCheck(t, cfg, []fileContent{
		{"a.go", "// CODESYNC(user_db_handle, 2)\n"},
		{"b.go", "// CODESYNC(user_db_handle, 2)\n"},
	})
	if bag.Len() != 2 {
		t.Fatalf("findings = %v, want 2", messages(bag))
	}
	if got := bag.Items()[0].Fixes[0].Edits[0].NewText; got != "userDBHandle" {
		t.Errorf("suggestion = %q, want %q", got, "userDBHandle")
	}
}

func TestCheck_Whitespace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictWhitespace = true

	bag := runCheck(t, cfg, []fileContent{
		{"a.go", "// CODESYNC( padded , 2 )\n"},
		{"b.go", "// CODESYNC(padded, 2)\n"},
	})
	var got []string
	for _, d := range bag.Items() {
		if d.Code != diag.ChkExtraWhitespace {
			t.Fatalf("code = %v, want ChkExtraWhitespace", d.Code)
		}
		got = append(got, d.Message)
	}
	want := []string{
		"label has surrounding whitespace",
		"count has surrounding whitespace",
	}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("messages = %v, want %v", got, want)
	}
}

func TestCheck_LabelPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LabelPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

	bag := runCheck(t, cfg, []fileContent{
		{"a.go", "// CODESYNC(good-label, 2)\n// CODESYNC(good-label, 2)\n"},
		{"b.go", "// CODESYNC(Bad!, 2)\n// CODESYNC(Bad!, 2)\n"},
	})
	if bag.Len() != 2 {
		t.Fatalf("findings = %v, want 2", messages(bag))
	}
	d := bag.Items()[0]
	if d.Code != diag.ChkLabelPattern {
		t.Errorf("code = %v, want ChkLabelPattern", d.Code)
	}
	want := "label `Bad!` must match pattern `^[a-z][a-z0-9-]*$`"
	if d.Message != want {
		t.Errorf("message = %q, want %q", d.Message, want)
	}
}

func TestCheck_StyleRulesAreIndependent(t *testing.T) {
	// One annotation violating casing, whitespace and pattern at once:
	// all three rules report, none gates another.
	style := inflect.StyleSnake
	cfg := DefaultConfig()
	cfg.Style = &style
	cfg.StrictWhitespace = true
	cfg.LabelPattern = regexp.MustCompile(`^[a-z_]+$`)

	bag := runCheck(t, cfg, []fileContent{
		{"a.go", "// CODESYNC( BadLabel , 2)\n// CODESYNC( BadLabel , 2)\n"},
	})
	seen := make(map[diag.Code]int)
	for _, d := range bag.Items() {
		seen[d.Code]++
	}
	if seen[diag.ChkLabelCase] != 2 || seen[diag.ChkExtraWhitespace] != 4 || seen[diag.ChkLabelPattern] != 2 {
		t.Errorf("findings by code = %v", seen)
	}
}

func TestCheck_GroupOrderIsDeterministic(t *testing.T) {
	files := []fileContent{
		{"a.go", "// CODESYNC(zulu, 3)\n// CODESYNC(alpha, 3)\n"},
	}
	for i := 0; i < 10; i++ {
		bag := runCheck(t, DefaultConfig(), files)
		got := messages(bag)
		want := []string{
			"expected 3 comments with label `alpha`, found 1",
			"expected 3 comments with label `zulu`, found 1",
		}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Fatalf("messages = %v, want %v", got, want)
		}
	}
}
