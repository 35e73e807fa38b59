package syntax

// ResolveNodeAt returns the most specific node covering offset.
func ResolveNodeAt(root Node, offset int) Node {
	return ResolveNodeAtRange(root, offset, offset)
}

// ResolveNodeAtRange descends from root towards the deepest node covering
// [start, end]. A child covers the range when it starts no later than start
// and ends no earlier than end; spans are inclusive here so a token touching
// an offset with either edge still covers it. When several children cover the
// range the tightest one wins: the one starting last, then the one ending
// first, then the later child. An end-of-file marker only wins when no other
// child covers the range.
//
// The result is never nil when root is not nil. Inverted, negative or
// oversized ranges are accepted; when no child covers the range, root is
// returned.
func ResolveNodeAtRange(root Node, start, end int) Node {
	if root == nil {
		return nil
	}

	if start > end {
		start, end = end, start
	}

	current := root

	for {
		next := bestChild(current, start, end)
		if next == nil {
			return current
		}

		current = next
	}
}

func bestChild(n Node, start, end int) Node {
	var best Node

	for _, child := range n.Children() {
		if child == nil || !covers(child, start, end) {
			continue
		}

		if best == nil || tighter(child, best) {
			best = child
		}
	}

	return best
}

// tighter reports whether c, which follows best among its siblings, should
// replace it. Siblings may overlap, e.g. a Go function's name and its type,
// which starts at the func keyword.
func tighter(c, best Node) bool {
	if eof := IsEndOfFile(c); eof != IsEndOfFile(best) {
		return !eof
	}

	switch {
	case c.Pos() != best.Pos():
		return c.Pos() > best.Pos()
	case c.End() != best.End():
		return c.End() < best.End()
	default:
		return true
	}
}

func covers(n Node, start, end int) bool {
	return n.Pos() <= start && n.End() >= end
}
