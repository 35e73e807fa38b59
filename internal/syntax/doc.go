// Package syntax describes the syntax-tree capability and resolves the most
// specific node covering a source range.
//
// Adapters: goast (go/ast files) and tsnode (tree-sitter TypeScript).
package syntax
