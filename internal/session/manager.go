package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"prettify-type/internal/cache"
	"prettify-type/internal/diagnostic"
	"prettify-type/internal/match"
	"prettify-type/internal/typetree"
)

// Config configures a Manager.
type Config struct {
	// Capacity bounds the number of live sessions.
	Capacity int
	// TTL expires idle sessions; zero keeps them until evicted.
	TTL time.Duration
	// Options are the builder options every session starts from.
	Options typetree.Options
	Logger  *slog.Logger
}

// Manager creates, caches and refreshes sessions.
type Manager struct {
	loader Loader
	opts   typetree.Options
	logger *slog.Logger
	cache  *cache.Cache[*Session]

	// stat is os.Stat, replaceable in tests.
	stat func(string) (fs.FileInfo, error)
}

// NewManager returns a Manager that builds sessions with loader.
func NewManager(loader Loader, cfg Config) (*Manager, error) {
	if err := cfg.Options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid builder options: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		loader: loader,
		opts:   cfg.Options,
		logger: logger,
		stat:   os.Stat,
	}

	c, err := cache.New(cache.Config[*Session]{
		Capacity: cfg.Capacity,
		TTL:      cfg.TTL,
		OnEvict:  m.evicted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	m.cache = c

	return m, nil
}

// FindConfig returns the nearest configuration file at or above the
// directory of path.
func (m *Manager) FindConfig(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	dir := abs
	if info, err := m.stat(abs); err != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		candidate := filepath.Join(dir, m.loader.ConfigName())
		if info, err := m.stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s above %s", ErrConfigNotFound, m.loader.ConfigName(), path)
		}

		dir = parent
	}
}

// SessionFor returns the session of the project containing path.
func (m *Manager) SessionFor(ctx context.Context, path string) (*Session, error) {
	configPath, err := m.FindConfig(path)
	if err != nil {
		return nil, err
	}

	return m.Session(ctx, configPath)
}

// Session returns the session for configPath, building it on first use and
// rebuilding it when the file changed since the last build. Build failures
// are returned as *BuildError.
func (m *Manager) Session(ctx context.Context, configPath string) (*Session, error) {
	key, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", configPath, err)
	}

	info, err := m.stat(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, key)
		}

		return nil, fmt.Errorf("failed to stat %s: %w", key, err)
	}

	if s, ok := m.cache.Get(key); ok {
		// A session built from a newer stat than ours is still current.
		if !s.ModTime.Before(info.ModTime()) {
			return s, nil
		}

		m.logger.Debug("configuration changed, rebuilding session", "config", key)
		m.cache.RemoveIf(key, func(cur *Session) bool { return cur == s })
	}

	return m.cache.GetOrCreate(key, func() (*Session, error) {
		return m.build(ctx, key, info.ModTime())
	})
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.cache.Len()
}

// Clear drops every session.
func (m *Manager) Clear() {
	m.cache.Clear()
}

func (m *Manager) build(ctx context.Context, key string, modTime time.Time) (*Session, error) {
	start := time.Now()

	program, err := m.loader.Load(ctx, key)
	if err != nil {
		return nil, &BuildError{ConfigPath: key, Err: err}
	}

	s := &Session{
		ConfigPath: key,
		ModTime:    modTime,
		Program:    program,
		Options:    m.opts,
		BuiltAt:    time.Now(),
	}

	s.Options.SkippedTypeNames = m.validateSkipped(s, &s.Diagnostics)
	s.builder = typetree.NewBuilder(program.Checker(), s.Options)

	for _, d := range s.Diagnostics.Warnings {
		m.logger.Warn(d.Message, "config", key, "code", d.Code, "suggestions", d.Suggestions)
	}

	m.logger.Debug("session built", "config", key, "elapsed", time.Since(start))

	return s, nil
}

// validateSkipped returns the skipped names that resolve in the program, in
// their original order and without duplicates.
func (m *Manager) validateSkipped(s *Session, diags *diagnostic.Diagnostics) []string {
	var known []string
	if namer, ok := s.Program.(TypeNamer); ok {
		known = namer.TypeNames()
	}

	seen := make(map[string]bool, len(m.opts.SkippedTypeNames))
	kept := make([]string, 0, len(m.opts.SkippedTypeNames))

	for _, name := range m.opts.SkippedTypeNames {
		if seen[name] {
			diags.AddWarning(diagnostic.CodeDuplicateSkipped,
				fmt.Sprintf("skipped type %q is listed more than once", name), s.ConfigPath, name)

			continue
		}

		seen[name] = true

		if !s.Program.ResolveTypeName(name) {
			w := diags.AddWarning(diagnostic.CodeUnknownSkippedType,
				fmt.Sprintf("skipped type %q does not resolve and is ignored", name), s.ConfigPath, name)
			w.Suggestions = match.Suggest(name, known, 3)

			continue
		}

		kept = append(kept, name)
	}

	return slices.Clip(kept)
}

func (m *Manager) evicted(key string, s *Session) {
	m.logger.Debug("session evicted", "config", key)

	if err := s.Close(); err != nil {
		m.logger.Warn("failed to close session", "config", key, "error", err)
	}
}
