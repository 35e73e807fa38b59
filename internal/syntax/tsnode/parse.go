// Package tsnode adapts tree-sitter TypeScript and TSX trees to syntax.Node.
package tsnode

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"prettify-type/internal/syntax"
)

// File is a parsed source file. Close releases the underlying tree; nodes
// obtained from it must not be used afterwards.
type File struct {
	tree *sitter.Tree
	src  []byte
	root *Node
}

// Parse parses content with the TSX grammar for .tsx files and the
// TypeScript grammar otherwise.
func Parse(ctx context.Context, path string, content []byte) (*File, error) {
	parser := sitter.NewParser()
	if strings.HasSuffix(path, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		tree.Close()
		return nil, fmt.Errorf("failed to parse %s: empty tree", path)
	}

	return &File{
		tree: tree,
		src:  content,
		root: &Node{node: rootNode, root: true, size: len(content)},
	}, nil
}

// Root returns the root node.
func (f *File) Root() syntax.Node {
	return f.root
}

// Source returns the parsed text.
func (f *File) Source() []byte {
	return f.src
}

// HasErrors reports whether the parser recovered from syntax errors.
func (f *File) HasErrors() bool {
	return f.root.node.HasError()
}

// Close releases the tree.
func (f *File) Close() {
	f.tree.Close()
}

// Node wraps a tree-sitter node. The root spans the whole file and ends with
// a synthetic end-of-file token.
type Node struct {
	node *sitter.Node
	root bool
	eof  bool
	size int
}

// Kind returns the grammar node type, e.g. "type_identifier".
func (n *Node) Kind() string {
	if n.eof {
		return syntax.EndOfFileKind
	}

	return n.node.Type()
}

func (n *Node) Pos() int {
	switch {
	case n.root:
		return 0
	case n.eof:
		return n.size
	default:
		return int(n.node.StartByte())
	}
}

func (n *Node) End() int {
	if n.root || n.eof {
		return n.size
	}

	return int(n.node.EndByte())
}

// Children returns all children, named and anonymous, in source order.
func (n *Node) Children() []syntax.Node {
	if n.eof {
		return nil
	}

	count := int(n.node.ChildCount())
	out := make([]syntax.Node, 0, count+1)

	for i := range count {
		if c := n.node.Child(i); c != nil {
			out = append(out, &Node{node: c, size: n.size})
		}
	}

	if n.root {
		out = append(out, &Node{eof: true, size: n.size})
	}

	return out
}
