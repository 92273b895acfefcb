package scan

import (
	"github.com/nilehmann/codesync/internal/source"
)

// Match is one located marker occurrence. Exactly one of Args and Err is
// set. Matches are created during scanning and immutable afterwards.
type Match struct {
	File   source.FileID
	Offset uint32 // absolute offset of the marker's first byte
	Args   *Args
	Err    *ArgsError
}

// Valid reports whether the argument list parsed successfully.
func (m *Match) Valid() bool {
	return m.Err == nil
}

// Span is the byte range consumed by the whole annotation: the marker plus
// the argument list when it parsed, the marker alone otherwise.
func (m *Match) Span() source.Span {
	end := m.Offset + MarkerLen
	if m.Args != nil {
		end += m.Args.Len
	}
	return source.Span{File: m.File, Start: m.Offset, End: end}
}

// FileMatches owns the matches found in one file, in ascending byte-offset
// order.
type FileMatches struct {
	Path    string
	File    source.FileID
	Matches []Match
}

// Matches owns every FileMatches of a completed scan, in walk order. It is
// immutable once a scan finishes.
type Matches struct {
	Files    []FileMatches
	Interner *source.Interner
}

// Comment is a read-only view of one successfully parsed annotation plus
// its owning file. It borrows from the Matches collection rather than
// copying.
type Comment struct {
	fm *FileMatches
	m  *Match
}

func (c Comment) Path() string        { return c.fm.Path }
func (c Comment) FileID() source.FileID { return c.fm.File }
func (c Comment) Args() *Args         { return c.m.Args }
func (c Comment) Span() source.Span   { return c.m.Span() }
func (c Comment) Label() string       { return c.m.Args.Label.Val }
func (c Comment) LabelSpan() source.Span { return c.m.Args.Label.Span }

// CountOr returns the declared count, or def when the annotation states
// none.
func (c Comment) CountOr(def uint16) uint16 {
	if c.m.Args.Count != nil {
		return c.m.Args.Count.Val
	}
	return def
}

// InvalidMatch is a read-only view of one match whose argument list failed
// to parse.
type InvalidMatch struct {
	fm *FileMatches
	m  *Match
}

func (im InvalidMatch) Path() string      { return im.fm.Path }
func (im InvalidMatch) Err() *ArgsError   { return im.m.Err }
func (im InvalidMatch) Span() source.Span { return im.m.Span() }

// Comments returns a view of every valid annotation, in scan order.
func (ms *Matches) Comments() []Comment {
	var out []Comment
	for i := range ms.Files {
		fm := &ms.Files[i]
		for j := range fm.Matches {
			if fm.Matches[j].Valid() {
				out = append(out, Comment{fm: fm, m: &fm.Matches[j]})
			}
		}
	}
	return out
}

// Invalid returns a view of every match that failed to parse, in scan
// order.
func (ms *Matches) Invalid() []InvalidMatch {
	var out []InvalidMatch
	for i := range ms.Files {
		fm := &ms.Files[i]
		for j := range fm.Matches {
			if !fm.Matches[j].Valid() {
				out = append(out, InvalidMatch{fm: fm, m: &fm.Matches[j]})
			}
		}
	}
	return out
}

// GroupByLabel maps every interned label to its valid annotations. Order
// within a group follows scan order.
func (ms *Matches) GroupByLabel() map[source.StringID][]Comment {
	groups := make(map[source.StringID][]Comment)
	for _, c := range ms.Comments() {
		id := c.Args().LabelID
		groups[id] = append(groups[id], c)
	}
	return groups
}

// Total counts all matches, valid or not.
func (ms *Matches) Total() int {
	n := 0
	for i := range ms.Files {
		n += len(ms.Files[i].Matches)
	}
	return n
}
