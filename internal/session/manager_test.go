package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prettify-type/internal/checker"
	"prettify-type/internal/checker/fixture"
	"prettify-type/internal/diagnostic"
	"prettify-type/internal/typetree"
)

const graph = `
root: Person
types:
  - name: Person
    kind: object
    properties:
      - name: name
        type: string
`

type countingLoader struct {
	fixture.Loader
	loads atomic.Int32
	fail  error
}

func (l *countingLoader) Load(ctx context.Context, configPath string) (checker.Program, error) {
	l.loads.Add(1)

	if l.fail != nil {
		return nil, l.fail
	}

	return l.Loader.Load(ctx, configPath)
}

func writeProject(t *testing.T, dir string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, fixture.ConfigName)
	require.NoError(t, os.WriteFile(path, []byte(graph), 0o600))

	return path
}

func newManager(t *testing.T, loader Loader, opts typetree.Options, capacity int) *Manager {
	t.Helper()

	m, err := NewManager(loader, Config{Capacity: capacity, Options: opts})
	require.NoError(t, err)

	return m
}

func TestManager_CachesSessions(t *testing.T) {
	path := writeProject(t, t.TempDir())
	loader := &countingLoader{}
	m := newManager(t, loader, typetree.DefaultOptions(), 2)

	first, err := m.Session(context.Background(), path)
	require.NoError(t, err)

	second, err := m.Session(context.Background(), path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), loader.loads.Load())
	assert.NotNil(t, first.Builder())
}

func TestManager_RebuildsOnConfigChange(t *testing.T) {
	path := writeProject(t, t.TempDir())
	loader := &countingLoader{}
	m := newManager(t, loader, typetree.DefaultOptions(), 2)

	first, err := m.Session(context.Background(), path)
	require.NoError(t, err)

	later := first.ModTime.Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := m.Session(context.Background(), path)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.True(t, second.ModTime.Equal(later))
	assert.Equal(t, int32(2), loader.loads.Load())
	assert.Equal(t, 1, m.Len())
}

func TestManager_ConcurrentRebuildKeepsFreshSession(t *testing.T) {
	path := writeProject(t, t.TempDir())
	loader := &countingLoader{}
	m := newManager(t, loader, typetree.DefaultOptions(), 2)

	first, err := m.Session(context.Background(), path)
	require.NoError(t, err)

	later := first.ModTime.Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	const callers = 32

	var (
		wg  sync.WaitGroup
		got [callers]*Session
	)

	for i := range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			s, err := m.Session(context.Background(), path)
			assert.NoError(t, err)

			got[i] = s
		}()
	}

	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}

	assert.NotSame(t, first, got[0])
	assert.Equal(t, int32(2), loader.loads.Load())
	assert.Equal(t, 1, m.Len())
}

type modTimeInfo struct {
	fs.FileInfo
	mod time.Time
}

func (i modTimeInfo) ModTime() time.Time {
	return i.mod
}

func TestManager_OlderStatKeepsNewerSession(t *testing.T) {
	path := writeProject(t, t.TempDir())
	loader := &countingLoader{}
	m := newManager(t, loader, typetree.DefaultOptions(), 2)

	first, err := m.Session(context.Background(), path)
	require.NoError(t, err)

	m.stat = func(name string) (fs.FileInfo, error) {
		info, err := os.Stat(name)
		if err != nil {
			return nil, err
		}

		return modTimeInfo{FileInfo: info, mod: first.ModTime.Add(-time.Minute)}, nil
	}

	second, err := m.Session(context.Background(), path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), loader.loads.Load())
}

func TestManager_ConfigNotFound(t *testing.T) {
	m := newManager(t, &countingLoader{}, typetree.DefaultOptions(), 2)

	_, err := m.Session(context.Background(), filepath.Join(t.TempDir(), fixture.ConfigName))
	require.ErrorIs(t, err, ErrConfigNotFound)

	_, err = m.SessionFor(context.Background(), filepath.Join(t.TempDir(), "main.ts"))
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestManager_BuildErrorNotCached(t *testing.T) {
	path := writeProject(t, t.TempDir())
	loader := &countingLoader{fail: errors.New("checker crashed")}
	m := newManager(t, loader, typetree.DefaultOptions(), 2)

	_, err := m.Session(context.Background(), path)
	require.Error(t, err)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, path, buildErr.ConfigPath)
	assert.Contains(t, err.Error(), "checker crashed")
	assert.Equal(t, 0, m.Len())

	loader.fail = nil

	_, err = m.Session(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.loads.Load())
}

func TestManager_ValidatesSkippedNames(t *testing.T) {
	path := writeProject(t, t.TempDir())

	opts := typetree.DefaultOptions()
	opts.SkippedTypeNames = []string{"Person", "Persn", "Person", "string"}

	m := newManager(t, &countingLoader{}, opts, 2)

	s, err := m.Session(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Person", "string"}, s.Options.SkippedTypeNames)
	assert.Equal(t, []string{"Person", "string"}, s.Builder().Options().SkippedTypeNames)

	require.Len(t, s.Diagnostics.Warnings, 2)

	unknown := s.Diagnostics.Warnings[0]
	assert.Equal(t, diagnostic.CodeUnknownSkippedType, unknown.Code)
	assert.Equal(t, "Persn", unknown.Subject)
	assert.Equal(t, []string{"Person"}, unknown.Suggestions)

	assert.Equal(t, diagnostic.CodeDuplicateSkipped, s.Diagnostics.Warnings[1].Code)
}

func TestManager_EvictsLeastRecentlyUsed(t *testing.T) {
	root := t.TempDir()
	a := writeProject(t, filepath.Join(root, "a"))
	b := writeProject(t, filepath.Join(root, "b"))

	loader := &countingLoader{}
	m := newManager(t, loader, typetree.DefaultOptions(), 1)

	_, err := m.Session(context.Background(), a)
	require.NoError(t, err)
	_, err = m.Session(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Len())

	_, err = m.Session(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, int32(3), loader.loads.Load())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestManager_FindConfig(t *testing.T) {
	root := t.TempDir()
	path := writeProject(t, root)

	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := plainManager(t).FindConfig(filepath.Join(nested, "main.ts"))
	require.NoError(t, err)
	assert.Equal(t, path, found)

	found, err = plainManager(t).FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func plainManager(t *testing.T) *Manager {
	t.Helper()

	return newManager(t, &countingLoader{}, typetree.DefaultOptions(), 1)
}

func TestNewManager_Rejects(t *testing.T) {
	_, err := NewManager(&countingLoader{}, Config{Capacity: 0, Options: typetree.DefaultOptions()})
	require.Error(t, err)

	opts := typetree.DefaultOptions()
	opts.MaxDepth = -1

	_, err = NewManager(&countingLoader{}, Config{Capacity: 1, Options: opts})
	require.Error(t, err)
}
