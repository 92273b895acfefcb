// Package inflect converts identifiers between casing styles and checks
// whether an identifier already satisfies a style. A string is "in" a style
// exactly when converting it to that style is the identity.
package inflect

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// splitWords cuts s into lowercase words. Any non-alphanumeric rune is a
// boundary and is dropped; a lowercase-to-uppercase transition starts a new
// word, while runs of consecutive uppercase letters stay together.
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	var prev rune
	hasPrev := false

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			hasPrev = false
			continue
		}
		if unicode.IsUpper(r) && hasPrev && unicode.IsLower(prev) {
			flush()
		}
		cur.WriteRune(unicode.ToLower(r))
		prev = r
		hasPrev = true
	}
	flush()
	return words
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// To converts s into the given style. Every input has a defined output;
// empty input yields an empty string.
func To(s string, style Style) string {
	words := splitWords(norm.NFC.String(s))
	if len(words) == 0 {
		return ""
	}

	switch style {
	case StyleSnake:
		return strings.Join(words, "_")
	case StyleScreamingSnake:
		upper := make([]string, len(words))
		for i, w := range words {
			upper[i] = strings.ToUpper(w)
		}
		return strings.Join(upper, "_")
	case StyleKebab:
		return strings.Join(words, "-")
	case StyleTrain:
		caps := make([]string, len(words))
		for i, w := range words {
			caps[i] = capitalize(w)
		}
		return strings.Join(caps, "-")
	case StyleCamel, StylePascal:
		var b strings.Builder
		for i, w := range words {
			if i == 0 && style == StyleCamel {
				b.WriteString(w)
			} else {
				b.WriteString(capitalize(w))
			}
		}
		return b.String()
	}
	return strings.Join(words, "_")
}

// Is reports whether s is already in the given style.
func Is(s string, style Style) bool {
	return To(s, style) == s
}

// ToWithAcronyms converts s into style and then forces every configured
// acronym to uppercase inside camel/Pascal output. The rewrite is a
// case-insensitive substring replacement over the already-cased result, so
// an acronym occurring inside another word or across a word boundary is
// rewritten too. Word-separated styles never need the rewrite: their words
// are uniformly cased.
func ToWithAcronyms(s string, style Style, acronyms []string) string {
	out := To(s, style)
	if style != StyleCamel && style != StylePascal {
		return out
	}
	for _, a := range acronyms {
		out = upperAcronym(out, a)
	}
	return out
}

// upperAcronym uppercases every case-insensitive occurrence of acronym in s.
func upperAcronym(s, acronym string) string {
	if acronym == "" {
		return s
	}
	lower := strings.ToLower(s)
	needle := strings.ToLower(acronym)

	var b strings.Builder
	i := 0
	for {
		j := strings.Index(lower[i:], needle)
		if j < 0 {
			b.WriteString(s[i:])
			return b.String()
		}
		j += i
		b.WriteString(s[i:j])
		b.WriteString(strings.ToUpper(s[j : j+len(needle)]))
		i = j + len(needle)
	}
}
