package check

import (
	"regexp"

	"github.com/nilehmann/codesync/internal/inflect"
)

// Config selects which consistency rules run and how.
type Config struct {
	// DefaultCount is assumed for annotations that state no count.
	DefaultCount uint16
	// Style, when set, requires every label to satisfy the case style.
	Style *inflect.Style
	// Acronyms feed the case-style suggestion generator.
	Acronyms []string
	// StrictWhitespace flags arguments carrying surrounding whitespace.
	StrictWhitespace bool
	// LabelPattern, when set, requires every label to match it.
	LabelPattern *regexp.Regexp
}

// DefaultConfig enables only the always-on rules: well-formedness and
// count consistency, with the conventional pair default.
func DefaultConfig() Config {
	return Config{DefaultCount: 2}
}
