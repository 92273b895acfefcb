// Package kmp implements Knuth-Morris-Pratt exact substring search with a
// reusable partial-match table, so a fixed needle can be searched across
// many haystacks without recomputing anything per call.
package kmp

import "bytes"

// Table builds the partial-match table for needle. Entry i holds the length
// of the longest proper prefix of needle that is also a suffix of
// needle[:i+1].
func Table(needle []byte) []int {
	m := len(needle)
	table := make([]int, m)

	i, j := 1, 0
	for i < m {
		switch {
		case needle[i] == needle[j]:
			table[i] = j + 1
			i++
			j++
		case j == 0:
			table[i] = 0
			i++
		default:
			j = table[j-1]
		}
	}
	return table
}

// Search returns the offset of the first occurrence of needle in haystack,
// or -1. The table must come from Table(needle). On a mismatch the needle
// pointer falls back through the table instead of rescanning the haystack.
func Search(haystack, needle []byte, table []int) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}

	t, p := 0, 0
	for t < len(haystack) {
		if haystack[t] == needle[p] {
			t++
			p++
			if p == len(needle) {
				return t - p
			}
		} else if p > 0 {
			p = table[p-1]
		} else {
			t++
		}
	}
	return -1
}

// Matcher bundles a needle with its precomputed table.
type Matcher struct {
	needle []byte
	table  []int
}

// NewMatcher builds a Matcher for needle. The table is computed once and
// reused for every subsequent Find.
func NewMatcher(needle []byte) *Matcher {
	return &Matcher{
		needle: bytes.Clone(needle),
		table:  Table(needle),
	}
}

// Find returns the offset of the first occurrence of the needle in
// haystack, or -1.
func (m *Matcher) Find(haystack []byte) int {
	return Search(haystack, m.needle, m.table)
}

// Len returns the needle length in bytes.
func (m *Matcher) Len() int {
	return len(m.needle)
}
