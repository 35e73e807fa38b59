package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"prettify-type/internal/checker"
	"prettify-type/internal/syntax"
	"prettify-type/internal/syntax/goast"
)

// Program is a set of loaded Go packages. It implements checker.Program.
type Program struct {
	fset    *token.FileSet
	pkgs    []*packages.Package
	files   map[string]*sourceFile
	checker *Checker
}

type sourceFile struct {
	file *ast.File
	src  []byte
	root syntax.Node
}

var _ checker.Program = (*Program)(nil)

func newProgram(pkgs []*packages.Package) (*Program, error) {
	p := &Program{
		fset:  pkgs[0].Fset,
		pkgs:  pkgs,
		files: make(map[string]*sourceFile),
	}

	for _, pkg := range pkgs {
		for _, f := range pkg.Syntax {
			name := p.fset.File(f.FileStart).Name()

			src, err := os.ReadFile(name)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}

			p.files[filepath.Clean(name)] = &sourceFile{
				file: f,
				src:  src,
				root: goast.NewFile(p.fset, f),
			}
		}
	}

	p.checker = newChecker(pkgs)

	return p, nil
}

func (p *Program) Checker() checker.Checker {
	return p.checker
}

// SourceFile returns the syntax tree of a loaded file by absolute path.
func (p *Program) SourceFile(path string) (syntax.Node, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	sf, ok := p.files[abs]
	if !ok {
		return nil, nil, fmt.Errorf("file %s is not part of the loaded packages", abs)
	}

	return sf.root, sf.src, nil
}

// Files returns the absolute paths of the loaded files, sorted.
func (p *Program) Files() []string {
	out := make([]string, 0, len(p.files))
	for name := range p.files {
		out = append(out, name)
	}

	slices.Sort(out)

	return out
}

// ResolveTypeName reports whether name is a predeclared type or a type
// declared in a loaded package. Names may be qualified by package name
// ("time.Time") when the package is imported by a loaded package.
func (p *Program) ResolveTypeName(name string) bool {
	if _, ok := types.Universe.Lookup(name).(*types.TypeName); ok {
		return true
	}

	pkgName, typeName, qualified := strings.Cut(name, ".")

	for _, pkg := range p.pkgs {
		if !qualified {
			if _, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName); ok {
				return true
			}

			continue
		}

		candidates := append([]*types.Package{pkg.Types}, pkg.Types.Imports()...)
		for _, c := range candidates {
			if c.Name() != pkgName {
				continue
			}

			if _, ok := c.Scope().Lookup(typeName).(*types.TypeName); ok {
				return true
			}
		}
	}

	return false
}

// TypeNames lists the predeclared types and the types declared in loaded
// packages.
func (p *Program) TypeNames() []string {
	seen := make(map[string]bool)

	for _, name := range types.Universe.Names() {
		if _, ok := types.Universe.Lookup(name).(*types.TypeName); ok {
			seen[name] = true
		}
	}

	for _, pkg := range p.pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			if _, ok := scope.Lookup(name).(*types.TypeName); ok {
				seen[name] = true
			}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}

	slices.Sort(out)

	return out
}
