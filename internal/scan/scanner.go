package scan

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"github.com/nilehmann/codesync/internal/source"
)

// Scanner finds annotations in files already loaded into a FileSet.
// Labels are interned so grouping later works on compact IDs.
type Scanner struct {
	fs       *source.FileSet
	interner *source.Interner
}

func NewScanner(fs *source.FileSet) *Scanner {
	return &Scanner{fs: fs, interner: source.NewInterner()}
}

func (s *Scanner) Interner() *source.Interner {
	return s.interner
}

// ScanFile parses every marker occurrence in the file. Matches are
// discovered strictly in ascending byte-offset order.
func (s *Scanner) ScanFile(id source.FileID) FileMatches {
	f := s.fs.Get(id)
	fm := FileMatches{Path: f.Path, File: id}

	lineStart := 0
	content := f.Content
	for lineStart <= len(content) {
		lineEnd := lineStart + len(content[lineStart:])
		if nl := bytes.IndexByte(content[lineStart:], '\n'); nl >= 0 {
			lineEnd = lineStart + nl
		}
		line := content[lineStart:lineEnd]

		off := 0
		for {
			idx := markerMatcher.Find(line[off:])
			if idx < 0 {
				break
			}
			markerAt := lineStart + off + idx
			abs, err := safecast.Conv[uint32](markerAt)
			if err != nil {
				panic(fmt.Errorf("offset overflow: %w", err))
			}

			rest := line[off+idx+int(MarkerLen):]
			args, argsErr := parseArgs(id, rest, abs+MarkerLen, s.interner)
			fm.Matches = append(fm.Matches, Match{
				File:   id,
				Offset: abs,
				Args:   args,
				Err:    argsErr,
			})

			off += idx + int(MarkerLen)
		}

		if lineEnd == len(content) {
			break
		}
		lineStart = lineEnd + 1
	}

	return fm
}
