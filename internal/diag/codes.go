package diag

import "fmt"

// Code is a compact, stable identifier for a diagnostic kind.
type Code uint16

const (
	UnknownCode Code = 0

	// Parse-level defects found while scanning annotations.
	ScanInfo         Code = 1000
	ScanMalformed    Code = 1001
	ScanInvalidCount Code = 1002

	// Consistency defects found by the checker.
	ChkInfo            Code = 2000
	ChkCountMismatch   Code = 2001
	ChkCountConflict   Code = 2002
	ChkLabelCase       Code = 2003
	ChkExtraWhitespace Code = 2004
	ChkLabelPattern    Code = 2005

	// I/O failures.
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	ScanInfo:           "Scan information",
	ScanMalformed:      "Malformed codesync comment",
	ScanInvalidCount:   "Invalid count",
	ChkInfo:            "Check information",
	ChkCountMismatch:   "Comment count does not match the declared count",
	ChkCountConflict:   "Conflicting declared counts for one label",
	ChkLabelCase:       "Label violates the configured case style",
	ChkExtraWhitespace: "Argument has surrounding whitespace",
	ChkLabelPattern:    "Label does not match the configured pattern",
	IOLoadFileError:    "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CHK%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
