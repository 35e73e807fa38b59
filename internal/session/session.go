package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"prettify-type/internal/checker"
	"prettify-type/internal/diagnostic"
	"prettify-type/internal/typetree"
)

// ErrConfigNotFound is returned when no project configuration governs a
// path.
var ErrConfigNotFound = errors.New("project configuration not found")

// BuildError reports a failure to create a session. It is never cached.
type BuildError struct {
	ConfigPath string
	Err        error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build session for %s: %v", e.ConfigPath, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Loader creates programs for one kind of project.
type Loader interface {
	// ConfigName is the file name marking a project root, e.g. "go.mod".
	ConfigName() string
	// Load builds a program for the project configured by configPath.
	Load(ctx context.Context, configPath string) (checker.Program, error)
}

// TypeNamer is implemented by programs that can list the type names they
// resolve. It feeds suggestions for misspelled skipped names.
type TypeNamer interface {
	TypeNames() []string
}

// Session is one loaded project.
type Session struct {
	ConfigPath string
	// ModTime is the configuration file's modification time at build.
	ModTime time.Time
	Program checker.Program
	// Options are the builder options with unresolvable skipped names
	// removed.
	Options     typetree.Options
	Diagnostics diagnostic.Diagnostics
	BuiltAt     time.Time

	builder *typetree.Builder
}

// Builder returns a tree builder over the session's checker.
func (s *Session) Builder() *typetree.Builder {
	return s.builder
}

// Close releases the program when it holds resources.
func (s *Session) Close() error {
	if c, ok := s.Program.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
