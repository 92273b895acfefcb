package scan

import (
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/nilehmann/codesync/internal/source"
)

// argsPattern matches the first parenthesized argument list after a
// marker: a label (anything but ',' and ')') and an optional count
// (anything but ')'). Raw captures keep surrounding whitespace so the
// strictness rule can see it.
var argsPattern = regexp.MustCompile(`\(([^,)]*)(?:,([^)]*))?\)`)

// parseArgs parses the text immediately following a marker occurrence.
// base is the absolute byte offset of rest within its file, so every
// capture span survives the file -> line -> capture coordinate transforms
// intact.
func parseArgs(file source.FileID, rest []byte, base uint32, interner *source.Interner) (*Args, *ArgsError) {
	loc := argsPattern.FindSubmatchIndex(rest)
	if loc == nil {
		return nil, &ArgsError{Kind: ArgsMalformed}
	}

	labelRaw := string(rest[loc[2]:loc[3]])
	labelVal := strings.TrimSpace(labelRaw)
	if labelVal == "" {
		// An empty argument list is malformed, not an empty label.
		return nil, &ArgsError{Kind: ArgsMalformed}
	}

	argsLen, err := safecast.Conv[uint32](loc[1])
	if err != nil {
		return nil, &ArgsError{Kind: ArgsMalformed}
	}

	args := &Args{
		Label: Arg[string]{
			Val: labelVal,
			Raw: labelRaw,
			Span: source.Span{
				File:  file,
				Start: base + uint32(loc[2]),
				End:   base + uint32(loc[3]),
			},
		},
		LabelID: interner.Intern(labelVal),
		Len:     argsLen,
	}

	if loc[4] >= 0 {
		countRaw := string(rest[loc[4]:loc[5]])
		countSpan := source.Span{
			File:  file,
			Start: base + uint32(loc[4]),
			End:   base + uint32(loc[5]),
		}
		v, err := strconv.ParseUint(strings.TrimSpace(countRaw), 10, 16)
		if err != nil {
			return nil, &ArgsError{Kind: ArgsInvalidCount, CountSpan: countSpan}
		}
		args.Count = &Arg[uint16]{Val: uint16(v), Raw: countRaw, Span: countSpan}
	}

	return args, nil
}
