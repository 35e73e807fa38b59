package render

import (
	"prettify-type/internal/tree"
)

// Stringify renders t as a single line of type text. When anonymous is
// false a single-signature function at the top level renders as a
// call-signature block instead of an arrow type, which is what an interface
// or class body needs.
func Stringify(t *tree.TypeTree, anonymous bool) string {
	w := &writer{}
	w.node(t, anonymous)

	return w.String()
}

// Parts renders t into tagged display parts. Children that already carry
// parts contribute them verbatim, so a tree built bottom-up renders each
// level once.
func Parts(t *tree.TypeTree) []tree.DisplayPart {
	w := &writer{reuse: true}
	w.node(t, true)

	return w.parts
}

// DisplayParts returns the parts computed while t was built, or a single
// text part holding the checker's name for t.
func DisplayParts(t *tree.TypeTree) []tree.DisplayPart {
	if t == nil {
		return nil
	}

	if len(t.Parts) > 0 {
		return t.Parts
	}

	return []tree.DisplayPart{{Text: t.TypeName, Kind: tree.PartText}}
}
