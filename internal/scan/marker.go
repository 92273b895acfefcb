package scan

import "github.com/nilehmann/codesync/internal/kmp"

// Marker is the literal token that begins every annotation. It is searched
// verbatim and case-sensitively.
const Marker = "CODESYNC"

// MarkerLen is the marker length in bytes.
const MarkerLen = uint32(len(Marker))

// markerMatcher carries the partial-match table for Marker, computed once
// per process and reused for every line of every file.
var markerMatcher = kmp.NewMatcher([]byte(Marker))
