package engine

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prettify-type/internal/checker"
	"prettify-type/internal/checker/fixture"
	"prettify-type/internal/render"
	"prettify-type/internal/session"
	"prettify-type/internal/tree"
	"prettify-type/internal/typetree"
)

const project = `
types:
  - name: Person
    kind: object
    properties:
      - name: name
        type: string
      - name: age
        type: number
documents:
  - path: main.ts
    text: "const person = load();"
    bindings:
      - name: person
        type: Person
`

func newEngine(t *testing.T) (*Engine, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fixture.ConfigName), []byte(project), 0o600))

	m, err := session.NewManager(fixture.Loader{}, session.Config{Capacity: 4, Options: typetree.DefaultOptions()})
	require.NoError(t, err)

	return New(m, nil), filepath.Join(dir, "main.ts")
}

func TestEngine_TypeInfoAt(t *testing.T) {
	e, path := newEngine(t)

	info, err := e.TypeInfoAt(context.Background(), Request{Path: path, Start: 8, End: 8})
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "person", info.Name)
	assert.Equal(t, string(checker.KindVariableDeclaration), info.SyntaxKind)
	assert.Equal(t, "{ name: string; age: number; }", render.Stringify(info.TypeTree, true))
}

func TestEngine_NoResult(t *testing.T) {
	e, path := newEngine(t)

	// "load" has no binding.
	info, err := e.TypeInfoAt(context.Background(), Request{Path: path, Start: 16, End: 16})
	require.NoError(t, err)
	assert.Nil(t, info)

	// A file in the project that the program does not know.
	info, err = e.TypeInfoAt(context.Background(), Request{Path: filepath.Join(filepath.Dir(path), "other.ts")})
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestEngine_RequestOptions(t *testing.T) {
	e, path := newEngine(t)

	opts := typetree.DefaultOptions()
	opts.MaxDepth = 0

	info, err := e.TypeInfoAt(context.Background(), Request{Path: path, Start: 8, End: 12, Options: &opts})
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, tree.Basic("Person"), info.TypeTree)

	opts.MaxUnionMembers = -1
	_, err = e.TypeInfoAt(context.Background(), Request{Path: path, Start: 8, End: 8, Options: &opts})
	require.Error(t, err)
}

func TestEngine_ConfigNotFound(t *testing.T) {
	m, err := session.NewManager(fixture.Loader{}, session.Config{Capacity: 1, Options: typetree.DefaultOptions()})
	require.NoError(t, err)

	_, err = New(m, nil).TypeInfoAt(context.Background(), Request{Path: filepath.Join(t.TempDir(), "x.ts")})
	require.ErrorIs(t, err, session.ErrConfigNotFound)
}

func TestEngine_Cancelled(t *testing.T) {
	e, path := newEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	info, err := e.TypeInfoAt(ctx, Request{Path: path, Start: 8, End: 8})
	assert.Nil(t, info)
	assert.Equal(t, context.Canceled, err)
}

func faultyProgram(t *testing.T, mutate func(*fixture.Type)) (fixture.Program, *bytes.Buffer) {
	t.Helper()

	g := fixture.New()
	bad := g.Object("Bad").Prop("x", g.MustLookup("string"))
	mutate(bad)
	g.AddDocument("a.ts", "value").Bind("value", bad, checker.KindVariableDeclaration)

	return fixture.Program{Graph: g}, &bytes.Buffer{}
}

func TestLookup_CheckerPanicIsNoResult(t *testing.T) {
	p, buf := faultyProgram(t, func(bad *fixture.Type) { bad.Panic = true })
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	b := typetree.NewBuilder(p.Checker(), typetree.DefaultOptions())

	info, err := Lookup(context.Background(), p, b, Request{Path: "a.ts", Start: 1, End: 1}, logger)
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.Contains(t, buf.String(), "checker panicked")
	assert.Contains(t, buf.String(), `"file":"a.ts"`)
}

func TestLookup_CheckerFaultIsNoResult(t *testing.T) {
	p, buf := faultyProgram(t, func(bad *fixture.Type) { bad.Fault = "lost connection" })
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	b := typetree.NewBuilder(p.Checker(), typetree.DefaultOptions())

	info, err := Lookup(context.Background(), p, b, Request{Path: "a.ts", Start: 0, End: 5}, logger)
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.True(t, strings.Contains(buf.String(), "lost connection"), buf.String())
}
