package analyze

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"prettify-type/internal/checker"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// ConfigName marks the root of a Go project.
const ConfigName = "go.mod"

// Loader loads every package of a Go module. It implements session.Loader.
type Loader struct {
	// Patterns are the package patterns to load, "./..." when empty.
	Patterns []string
	// Tests includes test files.
	Tests bool
}

func (l Loader) ConfigName() string {
	return ConfigName
}

// Load loads the module whose go.mod is configPath.
func (l Loader) Load(ctx context.Context, configPath string) (checker.Program, error) {
	return l.LoadDir(ctx, filepath.Dir(configPath))
}

// LoadDir loads the packages matching the loader's patterns in dir.
func (l Loader) LoadDir(ctx context.Context, dir string) (*Program, error) {
	patterns := l.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     dir,
		Tests:   l.Tests,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v in %s", patterns, dir)
	}

	return newProgram(pkgs)
}
