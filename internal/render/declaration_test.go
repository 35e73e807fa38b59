package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"prettify-type/internal/checker"
	"prettify-type/internal/tree"
)

func TestDeclarationPrefix(t *testing.T) {
	tests := []struct {
		kind checker.DeclarationKind
		want string
	}{
		{checker.KindClassDeclaration, "class Foo"},
		{checker.KindClassExpression, "class Foo"},
		{checker.KindInterfaceDeclaration, "interface Foo"},
		{checker.KindTypeAliasDeclaration, "type Foo ="},
		{checker.KindUnionType, "type Foo ="},
		{checker.KindMappedType, "type Foo ="},
		{checker.KindFunctionDeclaration, "function Foo"},
		{checker.KindMethodSignature, "function Foo"},
		{checker.KindArrowFunction, "function Foo"},
		{checker.KindVariableDeclaration, "const Foo:"},
		{checker.KindEnumDeclaration, "const Foo:"},
		{"", "const Foo:"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, DeclarationPrefix(tt.kind, "Foo"))
		})
	}
}

func TestDeclaration(t *testing.T) {
	person := object(
		prop("name", tree.Basic("string")),
		tree.Property{Name: "email", Type: union(tree.Basic("string"), tree.Basic("undefined"))},
	)

	t.Run("interface", func(t *testing.T) {
		got := Declaration(tree.TypeInfo{TypeTree: person, SyntaxKind: "InterfaceDeclaration", Name: "Person"}, 2)
		assert.Equal(t, "interface Person {\n  name: string;\n  email?: string;\n}", got)
	})

	t.Run("variable", func(t *testing.T) {
		got := Declaration(tree.TypeInfo{TypeTree: tree.Basic("number"), SyntaxKind: "VariableDeclaration", Name: "count"}, 2)
		assert.Equal(t, "const count: number", got)
	})

	t.Run("type alias", func(t *testing.T) {
		got := Declaration(tree.TypeInfo{TypeTree: union(tree.Basic("string"), tree.Basic("number")), SyntaxKind: "TypeAliasDeclaration", Name: "ID"}, 2)
		assert.Equal(t, "type ID = string | number", got)
	})

	t.Run("function", func(t *testing.T) {
		fn := arrow(tree.Basic("void"), tree.Parameter{Name: "who", Type: tree.Basic("string")})
		got := Declaration(tree.TypeInfo{TypeTree: fn, SyntaxKind: "FunctionDeclaration", Name: "greet"}, 2)
		assert.Equal(t, "function greet(who: string): void", got)
	})

	t.Run("overloads", func(t *testing.T) {
		fn := &tree.TypeTree{
			Kind: tree.KindFunction,
			Signatures: []tree.Signature{
				{Parameters: []tree.Parameter{{Name: "x", Type: tree.Basic("number")}}, ReturnType: tree.Basic("string")},
				{ReturnType: tree.Basic("void")},
			},
		}
		got := Declaration(tree.TypeInfo{TypeTree: fn, SyntaxKind: "MethodDeclaration", Name: "f"}, 2)
		assert.Equal(t, "function f(x: number): string;\nfunction f(): void;", got)
	})

	t.Run("function without signatures", func(t *testing.T) {
		got := Declaration(tree.TypeInfo{TypeTree: tree.Reference("Handler"), SyntaxKind: "FunctionDeclaration", Name: "h"}, 2)
		assert.Equal(t, "const h: Handler", got)
	})

	t.Run("nil tree", func(t *testing.T) {
		assert.Empty(t, Declaration(tree.TypeInfo{Name: "x"}, 2))
	})
}
