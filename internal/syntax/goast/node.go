// Package goast adapts go/ast files to syntax.Node.
package goast

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"prettify-type/internal/syntax"
)

// Node wraps an ast.Node with offsets relative to its file. The root spans
// the whole file and ends with a synthetic end-of-file token.
type Node struct {
	file *token.File
	node ast.Node
	root bool
	eof  bool
}

// NewFile returns the root node of f. fset must be the set f was parsed with.
func NewFile(fset *token.FileSet, f *ast.File) *Node {
	return &Node{
		file: fset.File(f.FileStart),
		node: f,
		root: true,
	}
}

// AST returns the wrapped node, or nil for the end-of-file token.
func (n *Node) AST() ast.Node {
	if n.eof {
		return nil
	}

	return n.node
}

// Kind returns the go/ast type name without package, e.g. "Ident".
func (n *Node) Kind() string {
	if n.eof {
		return syntax.EndOfFileKind
	}

	return strings.TrimPrefix(fmt.Sprintf("%T", n.node), "*ast.")
}

func (n *Node) Pos() int {
	if n.root {
		return 0
	}

	if n.eof {
		return n.file.Size()
	}

	return n.file.Offset(n.node.Pos())
}

func (n *Node) End() int {
	if n.root || n.eof {
		return n.file.Size()
	}

	return n.file.Offset(n.node.End())
}

// Children returns the direct children in source order.
func (n *Node) Children() []syntax.Node {
	if n.eof {
		return nil
	}

	var out []syntax.Node

	ast.Inspect(n.node, func(c ast.Node) bool {
		if c == n.node {
			return true
		}

		if c != nil {
			out = append(out, &Node{file: n.file, node: c})
		}

		return false
	})

	if n.root {
		out = append(out, &Node{file: n.file, node: n.node, eof: true})
	}

	return out
}

// Unwrap returns the ast.Node behind a syntax.Node produced by this package.
func Unwrap(n syntax.Node) (ast.Node, bool) {
	gn, ok := n.(*Node)
	if !ok || gn.eof {
		return nil, false
	}

	return gn.node, true
}
