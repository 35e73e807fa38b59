package match

import (
	"strings"
	"unicode"
)

// Fold lowercases s and drops separators, so "Array_Buffer", "array-buffer"
// and "ArrayBuffer" compare equal.
func Fold(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
