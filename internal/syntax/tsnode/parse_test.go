package tsnode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prettify-type/internal/syntax"
)

const source = `interface User {
  name: string;
  age?: number;
}
`

func TestParse_ResolveTypeIdentifier(t *testing.T) {
	f, err := Parse(context.Background(), "user.ts", []byte(source))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, f.HasErrors())

	got := syntax.ResolveNodeAt(f.Root(), len("interface "))
	require.NotNil(t, got)
	assert.Equal(t, "type_identifier", got.Kind())
	assert.Equal(t, "User", syntax.Text(got, f.Source()))
}

func TestParse_PropertyName(t *testing.T) {
	f, err := Parse(context.Background(), "user.ts", []byte(source))
	require.NoError(t, err)
	defer f.Close()

	offset := len("interface User {\n  ")
	got := syntax.ResolveNodeAt(f.Root(), offset)
	assert.Equal(t, "name", syntax.Text(got, f.Source()))
}

func TestParse_EndOfFile(t *testing.T) {
	f, err := Parse(context.Background(), "user.tsx", []byte(source))
	require.NoError(t, err)
	defer f.Close()

	children := f.Root().Children()
	require.NotEmpty(t, children)
	assert.True(t, syntax.IsEndOfFile(children[len(children)-1]))

	got := syntax.ResolveNodeAtRange(f.Root(), 500, 600)
	assert.Same(t, f.Root(), got)
}
