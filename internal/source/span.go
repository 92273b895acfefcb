package source

import "fmt"

// Span is an absolute byte range within a file. Start is inclusive,
// End is exclusive.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func NewSpan(file FileID, start, end uint32) Span {
	return Span{File: file, Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens the span to include other. Spans in different files are
// left untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ShiftRight moves the whole span n bytes toward the end of the file.
func (s Span) ShiftRight(n uint32) Span {
	return Span{File: s.File, Start: s.Start + n, End: s.End + n}
}
