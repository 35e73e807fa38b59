package fixture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"prettify-type/internal/checker"
	"prettify-type/internal/syntax"
)

// Program exposes a Graph and its documents as a checker.Program.
type Program struct {
	Graph *Graph
}

var _ checker.Program = Program{}

func (p Program) Checker() checker.Checker {
	return p.Graph
}

func (p Program) SourceFile(path string) (syntax.Node, []byte, error) {
	d, ok := p.Graph.docs[path]
	if !ok {
		if abs, err := filepath.Abs(path); err == nil {
			d, ok = p.Graph.docs[abs]
		}
	}

	if !ok {
		return nil, nil, fmt.Errorf("fixture: no document %q", path)
	}

	return d.root, d.text, nil
}

func (p Program) ResolveTypeName(name string) bool {
	_, ok := p.Graph.byName[name]

	return ok
}

// TypeNames lists every named type of the graph in sorted order.
func (p Program) TypeNames() []string {
	names := make([]string, 0, len(p.Graph.byName))
	for name := range p.Graph.byName {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ConfigName is the file name of a YAML type graph project.
const ConfigName = "typegraph.yaml"

// Loader loads YAML type graphs as programs.
type Loader struct{}

func (Loader) ConfigName() string {
	return ConfigName
}

// Load builds the graph in configPath. Relative document paths are taken
// relative to the directory of configPath.
func (Loader) Load(ctx context.Context, configPath string) (checker.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", configPath, err)
	}

	f, err := decode(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(configPath)
	for i := range f.Documents {
		if !filepath.IsAbs(f.Documents[i].Path) {
			f.Documents[i].Path = filepath.Join(dir, f.Documents[i].Path)
		}
	}

	g, err := Build(f)
	if err != nil {
		return nil, err
	}

	return Program{Graph: g}, nil
}
