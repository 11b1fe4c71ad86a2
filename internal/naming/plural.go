package naming

import "strings"

// irregularPlurals covers the handful of English nouns that show up in
// real data models and break the suffix rules.
var irregularPlurals = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
}

// Pluralize returns the English plural of a singular noun, preserving
// the casing of the first letter.
func Pluralize(s string) string {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if plural, ok := irregularPlurals[lower]; ok {
		return matchCase(s, plural)
	}

	switch {
	case strings.HasSuffix(lower, "y") && len(s) > 1 && !isVowel(lower[len(lower)-2]):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(lower, "s"),
		strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return s + "es"
	default:
		return s + "s"
	}
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// matchCase copies the first-letter casing of src onto plural.
func matchCase(src, plural string) string {
	if src[0] >= 'A' && src[0] <= 'Z' {
		return strings.ToUpper(plural[:1]) + plural[1:]
	}
	return plural
}
