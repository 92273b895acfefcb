// Package scan locates codesync annotations in a file tree.
//
// An annotation is the fixed marker token followed by a parenthesized
// argument list: CODESYNC(label) or CODESYNC(label, count). The scanner
// walks the tree honoring .gitignore rules, searches each file line by
// line with a precomputed KMP matcher, and parses every marker occurrence
// into a Match with byte-accurate spans. Malformed argument lists become
// structured parse errors on the Match, never scanner failures; only I/O
// errors abort a scan.
//
// The resulting Matches collection is immutable and is the sole input to
// the consistency checker in internal/check.
package scan
