package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/nilehmann/codesync/internal/diag"
	"github.com/nilehmann/codesync/internal/source"
)

var (
	errorColor     = color.New(color.FgRed, color.Bold)
	warningColor   = color.New(color.FgYellow, color.Bold)
	infoColor      = color.New(color.FgCyan, color.Bold)
	noteColor      = color.New(color.FgBlue)
	helpColor      = color.New(color.FgGreen)
	underlineColor = color.New(color.FgRed)
)

// Pretty renders every diagnostic in the bag in a human-readable form.
// The bag is expected to be sorted already. Each diagnostic prints as
//
//	<path>:<line>:<col>: <severity> [<CODE>]: <message>
//	    <source line>
//	    ^~~~~~
//
// followed by its notes and fix suggestions when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sevColor := severityColor(d.Severity)
	header := fmt.Sprintf("%s %s: %s",
		paint(sevColor, opts.Color, strings.ToLower(d.Severity.String())),
		paint(sevColor, opts.Color, "["+d.Code.ID()+"]"),
		d.Message)
	fmt.Fprintf(w, "%s: %s\n", location(d.Primary, fs, opts.PathMode), header)
	printContext(w, d.Primary, fs, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s: %s: %s\n",
				paint(noteColor, opts.Color, "note"),
				location(note.Span, fs, opts.PathMode),
				note.Msg)
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s: %s\n", paint(helpColor, opts.Color, "help"), fix.Title)
		}
	}
	fmt.Fprintln(w)
}

// printContext prints the source line holding the span's start, then an
// underline aligned under the spanned text. Spans reaching past the line
// are clamped to it.
func printContext(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	endCol := end.Col
	if end.Line != start.Line {
		endCol = uint32(len(line)) + 1
	}
	if endCol <= start.Col {
		endCol = start.Col + 1
	}

	prefix := sliceCols(line, 0, start.Col-1)
	spanned := sliceCols(line, start.Col-1, endCol-1)

	fmt.Fprintf(w, "    %s\n", line)

	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	marks := runewidth.StringWidth(spanned)
	if marks < 1 {
		marks = 1
	}
	underline := "^" + strings.Repeat("~", marks-1)
	fmt.Fprintf(w, "    %s%s\n", pad, paint(underlineColor, opts.Color, underline))
}

// sliceCols slices a line by byte columns, clamping to its bounds.
func sliceCols(line string, from, to uint32) string {
	if from > uint32(len(line)) {
		from = uint32(len(line))
	}
	if to > uint32(len(line)) {
		to = uint32(len(line))
	}
	if to < from {
		to = from
	}
	return line[from:to]
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
