// Package cli implements the prettify command line.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/jessevdk/go-flags"

	"prettify-type/internal/analyze"
	"prettify-type/internal/checker/fixture"
	"prettify-type/internal/config"
	"prettify-type/internal/engine"
	"prettify-type/internal/logging"
	"prettify-type/internal/pretty"
	"prettify-type/internal/protocol"
	"prettify-type/internal/render"
	"prettify-type/internal/session"
	"prettify-type/internal/syntax"
	"prettify-type/internal/syntax/tsnode"
	"prettify-type/internal/tree"
	"prettify-type/internal/typetree"
)

// ErrNoTypeInfo is returned when nothing at the requested position has a
// type.
var ErrNoTypeInfo = errors.New("no type information at position")

// IO holds the streams a command reads and writes.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run parses args and executes the selected command.
func Run(ctx context.Context, args []string, streams IO) error {
	opts := &Options{}

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "prettify"

	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	cfg, err := config.LoadOptional(configPath(opts))
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	c := &command{
		cfg:    cfg,
		logger: logging.New(level, streams.Stderr),
		io:     streams,
	}

	switch parser.Active.Name {
	case "hover":
		return c.hover(ctx, opts.Hover)
	case "tree":
		return c.tree(ctx, opts.Tree)
	case "render":
		return c.render(ctx, opts.Render)
	case "pretty":
		return c.pretty(opts.Pretty)
	case "node":
		return c.node(ctx, opts.Node)
	case "serve":
		return c.serve(ctx, opts.Serve)
	default:
		return fmt.Errorf("unknown command %q", parser.Active.Name)
	}
}

func configPath(opts *Options) string {
	if opts.Config != "" {
		return opts.Config
	}

	return config.FileName
}

type command struct {
	cfg    *config.Config
	logger *slog.Logger
	io     IO
}

func (c *command) engine(graph bool) (*engine.Engine, error) {
	var loader session.Loader = analyze.Loader{}
	if graph {
		loader = fixture.Loader{}
	}

	m, err := session.NewManager(loader, session.Config{
		Capacity: c.cfg.Cache.Capacity,
		TTL:      c.cfg.Cache.TTL,
		Options:  c.options(graph),
		Logger:   c.logger,
	})
	if err != nil {
		return nil, err
	}

	return engine.New(m, c.logger), nil
}

// options returns the configured builder options. Go projects get the Go
// skip list unless the configuration names its own.
func (c *command) options(graph bool) typetree.Options {
	if graph {
		return c.cfg.Options
	}

	return analyze.WithGoDefaults(c.cfg.Options)
}

func (c *command) typeInfo(ctx context.Context, pos Position) (*tree.TypeInfo, error) {
	e, err := c.engine(pos.Graph)
	if err != nil {
		return nil, err
	}

	info, err := e.TypeInfoAt(ctx, engine.Request{
		Path:  pos.File,
		Start: pos.Offset,
		End:   pos.end(),
	})
	if err != nil {
		return nil, err
	}

	if info == nil {
		return nil, fmt.Errorf("%s:%d: %w", pos.File, pos.Offset, ErrNoTypeInfo)
	}

	return info, nil
}

func (c *command) hover(ctx context.Context, opts Hover) error {
	info, err := c.typeInfo(ctx, opts.Position)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.io.Stdout, render.Declaration(*info, c.cfg.IndentWidth))

	return err
}

func (c *command) tree(ctx context.Context, opts Tree) error {
	info, err := c.typeInfo(ctx, opts.Position)
	if err != nil {
		return err
	}

	if opts.Dump {
		spew.Fdump(c.io.Stdout, info)

		return nil
	}

	enc := json.NewEncoder(c.io.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(info)
}

func (c *command) render(ctx context.Context, opts Render) error {
	g, f, err := fixture.LoadFile(opts.Graph)
	if err != nil {
		return err
	}

	name := opts.Type
	if name == "" {
		name = f.Root
	}

	t, ok := g.Lookup(name)
	if !ok {
		return fmt.Errorf("type %q is not declared in %s", name, opts.Graph)
	}

	tt, err := typetree.NewBuilder(g, c.cfg.Options).Build(ctx, t)
	if err != nil {
		return err
	}

	text := render.Stringify(tt, true)
	if opts.Declaration {
		text = render.Declaration(tree.TypeInfo{
			TypeTree:   tt,
			SyntaxKind: "TypeAliasDeclaration",
			Name:       name,
		}, c.cfg.IndentWidth)
	}

	_, err = fmt.Fprintln(c.io.Stdout, text)

	return err
}

func (c *command) pretty(opts Pretty) error {
	data, err := io.ReadAll(c.io.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	indent := opts.Indent
	if indent < 0 {
		indent = c.cfg.IndentWidth
	}

	_, err = fmt.Fprintln(c.io.Stdout, pretty.Print(string(data), indent))

	return err
}

func (c *command) node(ctx context.Context, opts Node) error {
	src, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.File, err)
	}

	f, err := tsnode.Parse(ctx, opts.File, src)
	if err != nil {
		return err
	}
	defer f.Close()

	if f.HasErrors() {
		c.logger.Warn("source has syntax errors", slog.String("file", opts.File))
	}

	n := syntax.ResolveNodeAt(f.Root(), opts.Offset)

	_, err = fmt.Fprintf(c.io.Stdout, "%s [%d, %d) %q\n", n.Kind(), n.Pos(), n.End(), syntax.Text(n, src))

	return err
}

func (c *command) serve(ctx context.Context, opts Serve) error {
	e, err := c.engine(opts.Graph)
	if err != nil {
		return err
	}

	adapter := protocol.NewAdapter(protocol.NoCompletions, e, c.options(opts.Graph), c.logger)

	return protocol.Serve(ctx, c.io.Stdin, c.io.Stdout, adapter, c.logger)
}
