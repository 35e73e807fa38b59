package fixture

import (
	"unicode"

	"prettify-type/internal/checker"
	"prettify-type/internal/syntax"
)

// Document is a source text whose identifiers can be bound to types.
type Document struct {
	path     string
	text     []byte
	root     *docNode
	bindings map[string]*binding
}

type binding struct {
	symbol *checker.Symbol
	typ    *Type
}

// docNode is a flat syntax tree: a root holding identifier and punctuation
// tokens followed by an end-of-file marker.
type docNode struct {
	doc      *Document
	kind     string
	pos, end int
	children []syntax.Node
}

func (n *docNode) Kind() string            { return n.kind }
func (n *docNode) Pos() int                { return n.pos }
func (n *docNode) End() int                { return n.end }
func (n *docNode) Children() []syntax.Node { return n.children }

// AddDocument registers a document under path and tokenizes it.
func (g *Graph) AddDocument(path, text string) *Document {
	d := &Document{
		path:     path,
		text:     []byte(text),
		bindings: make(map[string]*binding),
	}
	d.root = tokenize(d)
	g.docs[path] = d

	return d
}

// Bind declares identifier name in the document with the given type and
// declaration kind.
func (d *Document) Bind(name string, typ *Type, kind checker.DeclarationKind) *Document {
	d.bindings[name] = &binding{
		symbol: &checker.Symbol{
			Name:         name,
			Declarations: []checker.Declaration{{Kind: kind}},
		},
		typ: typ,
	}

	return d
}

// Root returns the document's syntax tree.
func (d *Document) Root() syntax.Node {
	return d.root
}

func tokenize(d *Document) *docNode {
	root := &docNode{doc: d, kind: "SourceFile", pos: 0, end: len(d.text)}
	runes := []rune(string(d.text))

	offset := 0
	for i := 0; i < len(runes); {
		r := runes[i]
		size := len(string(r))

		switch {
		case unicode.IsSpace(r):
			i++
			offset += size
		case isIdentStart(r):
			start := offset
			for i < len(runes) && isIdentPart(runes[i]) {
				offset += len(string(runes[i]))
				i++
			}

			root.children = append(root.children, &docNode{doc: d, kind: "Identifier", pos: start, end: offset})
		default:
			root.children = append(root.children, &docNode{doc: d, kind: "Punctuation", pos: offset, end: offset + size})
			i++
			offset += size
		}
	}

	root.children = append(root.children, &docNode{doc: d, kind: syntax.EndOfFileKind, pos: len(d.text), end: len(d.text)})

	return root
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (g *Graph) bindingAt(n syntax.Node) (*binding, bool) {
	dn, ok := n.(*docNode)
	if !ok || dn.kind != "Identifier" {
		return nil, false
	}

	b, ok := dn.doc.bindings[syntax.Text(dn, dn.doc.text)]

	return b, ok
}
