// Package check evaluates consistency rules over a completed scan. Rules
// run in stages: parse defects first, then count consistency, then the
// style rules. A stage that produced findings stops the later stages,
// because they assume the earlier invariants hold.
package check

import (
	"fmt"
	"sort"

	"github.com/nilehmann/codesync/internal/diag"
	"github.com/nilehmann/codesync/internal/inflect"
	"github.com/nilehmann/codesync/internal/scan"
	"github.com/nilehmann/codesync/internal/source"
)

const malformedNote = "comment must contain a label and an optional count, " +
	"e.g., `CODESYNC(my-label)`, `CODESYNC(my-label, 3)`"

// Checker runs the staged rules and emits findings to a Reporter.
type Checker struct {
	cfg Config
	rep *countingReporter
}

func New(cfg Config, rep diag.Reporter) *Checker {
	return &Checker{cfg: cfg, rep: &countingReporter{rep: rep}}
}

// Check runs every enabled stage over the scan results. What a reported
// finding means for the process outcome is the caller's decision.
func (c *Checker) Check(ms *scan.Matches) {
	if stop := c.stage(func() { c.checkInvalid(ms) }); stop {
		return
	}
	if stop := c.stage(func() { c.checkCounts(ms) }); stop {
		return
	}

	// The style rules are independent of each other; all of them run.
	c.checkCasing(ms)
	c.checkWhitespace(ms)
	c.checkPattern(ms)
}

// stage runs fn and reports whether it emitted findings.
func (c *Checker) stage(fn func()) bool {
	before := c.rep.emitted
	fn()
	return c.rep.emitted > before
}

func (c *Checker) checkInvalid(ms *scan.Matches) {
	for _, im := range ms.Invalid() {
		switch im.Err().Kind {
		case scan.ArgsInvalidCount:
			diag.ReportError(c.rep, diag.ScanInvalidCount, im.Err().CountSpan, "invalid count").
				WithNote(im.Err().CountSpan, "second argument must be an integer").
				Emit()
		default:
			diag.ReportError(c.rep, diag.ScanMalformed, im.Span(), "malformed codesync comment").
				WithNote(im.Span(), malformedNote).
				Emit()
		}
	}
}

func (c *Checker) checkCounts(ms *scan.Matches) {
	for _, group := range c.sortedGroups(ms) {
		counts := make(map[uint16]bool)
		for _, comment := range group.comments {
			counts[comment.CountOr(c.cfg.DefaultCount)] = true
		}

		switch len(counts) {
		case 0:
		case 1:
			var expected uint16
			for count := range counts {
				expected = count
			}
			found := len(group.comments)
			if found != int(expected) {
				msg := fmt.Sprintf("expected %d %s with label `%s`, found %d",
					expected, pluralize("comment", int(expected)), group.label, found)
				c.reportGroup(diag.ChkCountMismatch, group, msg)
			}
		default:
			msg := fmt.Sprintf("all comments with label `%s` must have the same count", group.label)
			c.reportGroup(diag.ChkCountConflict, group, msg)
		}
	}
}

// reportGroup localizes a finding across every member of a label group:
// the first member is the primary span, the rest become notes.
func (c *Checker) reportGroup(code diag.Code, group labelGroup, msg string) {
	b := diag.ReportError(c.rep, code, group.comments[0].Span(), msg)
	for _, comment := range group.comments[1:] {
		b.WithNote(comment.Span(), fmt.Sprintf("label `%s` also appears here", group.label))
	}
	b.Emit()
}

func (c *Checker) checkCasing(ms *scan.Matches) {
	if c.cfg.Style == nil {
		return
	}
	style := *c.cfg.Style
	for _, comment := range ms.Comments() {
		label := comment.Label()
		if inflect.Is(label, style) {
			continue
		}
		suggestion := inflect.ToWithAcronyms(label, style, c.cfg.Acronyms)
		msg := fmt.Sprintf("label `%s` must be %s", label, styleName(style))
		diag.ReportError(c.rep, diag.ChkLabelCase, comment.LabelSpan(), msg).
			WithFix(fmt.Sprintf("rename to `%s`", suggestion), diag.FixEdit{
				Span:    comment.LabelSpan(),
				NewText: suggestion,
			}).
			Emit()
	}
}

func (c *Checker) checkWhitespace(ms *scan.Matches) {
	if !c.cfg.StrictWhitespace {
		return
	}
	for _, comment := range ms.Comments() {
		args := comment.Args()
		if args.Label.HasExtraWhitespace() {
			diag.ReportError(c.rep, diag.ChkExtraWhitespace, args.Label.Span,
				"label has surrounding whitespace").Emit()
		}
		if args.Count != nil && args.Count.HasExtraWhitespace() {
			diag.ReportError(c.rep, diag.ChkExtraWhitespace, args.Count.Span,
				"count has surrounding whitespace").Emit()
		}
	}
}

func (c *Checker) checkPattern(ms *scan.Matches) {
	if c.cfg.LabelPattern == nil {
		return
	}
	for _, comment := range ms.Comments() {
		label := comment.Label()
		if c.cfg.LabelPattern.MatchString(label) {
			continue
		}
		msg := fmt.Sprintf("label `%s` must match pattern `%s`", label, c.cfg.LabelPattern)
		diag.ReportError(c.rep, diag.ChkLabelPattern, comment.LabelSpan(), msg).Emit()
	}
}

type labelGroup struct {
	label    string
	comments []scan.Comment
}

// sortedGroups orders label groups lexicographically so findings are
// deterministic regardless of map iteration order.
func (c *Checker) sortedGroups(ms *scan.Matches) []labelGroup {
	byID := ms.GroupByLabel()
	groups := make([]labelGroup, 0, len(byID))
	for id, comments := range byID {
		groups = append(groups, labelGroup{
			label:    ms.Interner.MustLookup(id),
			comments: comments,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].label < groups[j].label
	})
	return groups
}

// countingReporter tracks how many findings each stage emitted.
type countingReporter struct {
	rep     diag.Reporter
	emitted int
}

func (r *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.emitted++
	if r.rep != nil {
		r.rep.Report(code, sev, primary, msg, notes, fixes)
	}
}

func styleName(style inflect.Style) string {
	switch style {
	case inflect.StyleCamel:
		return "camelCase"
	case inflect.StylePascal:
		return "PascalCase"
	case inflect.StyleSnake:
		return "snake_case"
	case inflect.StyleScreamingSnake:
		return "SCREAMING_SNAKE_CASE"
	case inflect.StyleKebab:
		return "kebab-case"
	case inflect.StyleTrain:
		return "Train-Case"
	}
	return style.String()
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
