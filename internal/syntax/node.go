package syntax

// EndOfFileKind is the kind reported by end-of-file marker tokens.
const EndOfFileKind = "EndOfFileToken"

// Node is a syntax tree node with byte-offset spans. End is exclusive.
type Node interface {
	Kind() string
	Pos() int
	End() int
	Children() []Node
}

// Text returns the source text spanned by n, clamped to src.
func Text(n Node, src []byte) string {
	if n == nil {
		return ""
	}

	start := min(max(n.Pos(), 0), len(src))
	end := min(max(n.End(), start), len(src))

	return string(src[start:end])
}

// IsEndOfFile reports whether n is an end-of-file marker.
func IsEndOfFile(n Node) bool {
	return n != nil && n.Kind() == EndOfFileKind
}
