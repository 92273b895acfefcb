package inflect

import "fmt"

// Style identifies a word-boundary-delimited casing convention.
type Style uint8

const (
	StyleCamel Style = iota
	StylePascal
	StyleSnake
	StyleScreamingSnake
	StyleKebab
	StyleTrain
)

func (s Style) String() string {
	switch s {
	case StyleCamel:
		return "camel"
	case StylePascal:
		return "pascal"
	case StyleSnake:
		return "snake"
	case StyleScreamingSnake:
		return "screaming-snake"
	case StyleKebab:
		return "kebab"
	case StyleTrain:
		return "train"
	}
	return "unknown"
}

// ParseStyle converts a user-supplied style name into a Style. Both
// hyphenated and underscored spellings are accepted.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "camel", "camelCase":
		return StyleCamel, nil
	case "pascal", "PascalCase":
		return StylePascal, nil
	case "snake", "snake_case":
		return StyleSnake, nil
	case "screaming-snake", "screaming_snake", "SCREAMING_SNAKE":
		return StyleScreamingSnake, nil
	case "kebab", "kebab-case":
		return StyleKebab, nil
	case "train", "Train-Case":
		return StyleTrain, nil
	}
	return 0, fmt.Errorf("unknown case style %q (camel|pascal|snake|screaming-snake|kebab|train)", name)
}
