package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prettify-type/internal/checker"
	"prettify-type/internal/syntax"
)

func TestLoadFile(t *testing.T) {
	g, f, err := LoadFile("testdata/person.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Person", f.Root)

	person := g.MustLookup("Person")
	assert.True(t, g.Flags(person).Has(checker.FlagObject))

	props, err := g.Properties(person)
	require.NoError(t, err)
	require.Len(t, props, 5)
	assert.Equal(t, "name", props[0].Name)
	assert.True(t, props[2].Optional)
	assert.True(t, props[3].Declarations[0].Modifiers.Has(checker.ModifierPrivate))

	// Self reference resolves to the same handle.
	managerType, err := g.TypeOfSymbol(props[4])
	require.NoError(t, err)
	assert.Equal(t, person.ID(), managerType.ID())

	sigs, err := g.Signatures(g.MustLookup("greet"))
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	require.Len(t, sigs[0].Parameters, 2)
	assert.True(t, sigs[0].Parameters[1].Optional)

	promised, ok := g.PromisedType(sigs[0].ReturnType)
	require.True(t, ok)
	assert.Equal(t, "string", g.TypeString(promised))
}

func TestParse_Documents(t *testing.T) {
	g, _, err := LoadFile("testdata/person.yaml")
	require.NoError(t, err)

	root, src, err := Program{Graph: g}.SourceFile("main.ts")
	require.NoError(t, err)

	// "person" in "const person = load();"
	n := syntax.ResolveNodeAt(root, 8)
	require.NotNil(t, n)
	assert.Equal(t, "Identifier", n.Kind())
	assert.Equal(t, "person", syntax.Text(n, src))

	typ, err := g.TypeAtNode(n)
	require.NoError(t, err)
	assert.Equal(t, "Person", g.TypeString(typ))

	sym, err := g.SymbolAtNode(n)
	require.NoError(t, err)
	assert.Equal(t, checker.KindVariableDeclaration, sym.Kind())

	// "load" is not bound.
	n = syntax.ResolveNodeAt(root, 16)
	typ, err = g.TypeAtNode(n)
	require.NoError(t, err)
	assert.Nil(t, typ)
}

func TestParse_LiteralsAndForwardReferences(t *testing.T) {
	yaml := `
types:
  - name: Mode
    kind: union
    types: ['"on"', '"off"', 0, Extra]
  - name: Extra
    kind: tuple
    readonly: true
    types: [string, number]
`

	g, _, err := Parse([]byte(yaml))
	require.NoError(t, err)

	ops, err := g.Operands(g.MustLookup("Mode"))
	require.NoError(t, err)
	require.Len(t, ops, 4)
	assert.Equal(t, `"on"`, g.TypeString(ops[0]))
	assert.True(t, g.Flags(ops[2]).Has(checker.FlagLiteral))

	elems, readonly, ok := g.TupleElements(ops[3])
	require.True(t, ok)
	assert.True(t, readonly)
	assert.Len(t, elems, 2)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown kind",
			yaml: "types:\n  - name: A\n    kind: struct\n",
			want: `unknown kind "struct"`,
		},
		{
			name: "unknown reference",
			yaml: "types:\n  - name: A\n    kind: array\n    element: Missing\n",
			want: `unknown type "Missing"`,
		},
		{
			name: "duplicate",
			yaml: "types:\n  - name: A\n    kind: object\n  - name: A\n    kind: object\n",
			want: "declared twice",
		},
		{
			name: "bad root",
			yaml: "root: Nope\ntypes: []\n",
			want: "root",
		},
		{
			name: "malformed",
			yaml: "types: [",
			want: "failed to parse fixture YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGraph_Fault(t *testing.T) {
	g := New()
	broken := g.Object("Broken")
	broken.Fault = "boom"

	_, err := g.Properties(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = g.Operands(broken)
	require.Error(t, err)
}

func TestGraph_Panic(t *testing.T) {
	g := New()
	bad := g.Object("Bad")
	bad.Panic = true

	assert.Panics(t, func() { g.Flags(bad) })
}

func TestProgram_ResolveTypeName(t *testing.T) {
	g := New()
	g.Object("Widget")

	p := Program{Graph: g}
	assert.True(t, p.ResolveTypeName("Widget"))
	assert.True(t, p.ResolveTypeName("string"))
	assert.False(t, p.ResolveTypeName("Gadget"))

	_, _, err := p.SourceFile("missing.ts")
	require.Error(t, err)
}
