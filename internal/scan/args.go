package scan

import (
	"strings"

	"github.com/nilehmann/codesync/internal/source"
)

// Arg pairs a processed argument value with the raw matched substring and
// its absolute span, so style checks can see incidental whitespace that
// parsing stripped.
type Arg[T any] struct {
	Val  T
	Raw  string
	Span source.Span
}

// HasExtraWhitespace reports whether the raw text carries surrounding
// whitespace that is not part of the value.
func (a Arg[T]) HasExtraWhitespace() bool {
	return strings.TrimSpace(a.Raw) != a.Raw
}

// Args is a successfully parsed annotation argument list.
type Args struct {
	// Label is the required first argument.
	Label Arg[string]
	// LabelID is the interned form of Label.Val, used for grouping.
	LabelID source.StringID
	// Count is the optional second argument; nil means the annotation
	// states no expectation.
	Count *Arg[uint16]
	// Len is the byte length consumed after the marker, through the
	// closing parenthesis.
	Len uint32
}

// ArgsErrorKind classifies why an argument list failed to parse.
type ArgsErrorKind uint8

const (
	// ArgsMalformed means the argument list is absent or does not match
	// the required (label[, count]) shape.
	ArgsMalformed ArgsErrorKind = iota
	// ArgsInvalidCount means the second argument is present but is not an
	// unsigned 16-bit integer.
	ArgsInvalidCount
)

// ArgsError describes a failed argument list parse.
type ArgsError struct {
	Kind ArgsErrorKind
	// CountSpan is the absolute span of the offending count argument.
	// Only set for ArgsInvalidCount.
	CountSpan source.Span
}

func (e *ArgsError) Error() string {
	switch e.Kind {
	case ArgsInvalidCount:
		return "invalid count"
	default:
		return "malformed codesync comment"
	}
}
