package typetree

import (
	"strings"

	"prettify-type/internal/checker"
)

// Visible reports whether a member is shown when private members are hidden.
// Underscore-prefixed names are hidden, as are members whose every
// declaration is private or protected. Members without declarations are
// synthetic and always shown.
func Visible(sym *checker.Symbol) bool {
	if sym == nil || strings.HasPrefix(sym.Name, "_") {
		return false
	}

	if len(sym.Declarations) == 0 {
		return true
	}

	for _, d := range sym.Declarations {
		if !d.Modifiers.Has(checker.ModifierPrivate | checker.ModifierProtected) {
			return true
		}
	}

	return false
}

func visibleOnly(props []*checker.Symbol) []*checker.Symbol {
	out := make([]*checker.Symbol, 0, len(props))
	for _, p := range props {
		if Visible(p) {
			out = append(out, p)
		}
	}

	return out
}
