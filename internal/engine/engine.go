package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"prettify-type/internal/checker"
	"prettify-type/internal/session"
	"prettify-type/internal/syntax"
	"prettify-type/internal/tree"
	"prettify-type/internal/typetree"
)

// Request locates a position, or a range, in a source file.
type Request struct {
	Path  string
	Start int
	// End equals Start for a single position.
	End int
	// Options replace the session's builder options when set.
	Options *typetree.Options
}

// Engine resolves requests against sessions of a manager.
type Engine struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// New returns an Engine. A nil logger uses slog.Default().
func New(sessions *session.Manager, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{sessions: sessions, logger: logger}
}

// TypeInfoAt returns the type at the requested position, or nil when there
// is none.
func (e *Engine) TypeInfoAt(ctx context.Context, req Request) (*tree.TypeInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := e.sessions.SessionFor(ctx, req.Path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}

		return nil, fmt.Errorf("failed to open session for %s: %w", req.Path, err)
	}

	b := s.Builder()
	if req.Options != nil {
		if err := req.Options.Validate(); err != nil {
			return nil, fmt.Errorf("invalid request options: %w", err)
		}

		b = typetree.NewBuilder(s.Program.Checker(), *req.Options)
	}

	return Lookup(ctx, s.Program, b, req, e.logger)
}

// Lookup resolves req against program p directly, without a session.
func Lookup(ctx context.Context, p checker.Program, b *typetree.Builder, req Request, logger *slog.Logger) (info *tree.TypeInfo, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	log := logger.With("file", req.Path, "offset", req.Start)

	defer func() {
		if r := recover(); r != nil {
			log.Error("checker panicked", "panic", r, "stack", string(debug.Stack()))

			info, err = nil, nil
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, _, err := p.SourceFile(req.Path)
	if err != nil {
		log.Debug("source file not in program", "error", err)
		return nil, nil
	}

	node := syntax.ResolveNodeAtRange(root, req.Start, req.End)
	if node == nil {
		return nil, nil
	}

	c := p.Checker()

	typ, err := c.TypeAtNode(node)
	if err != nil {
		log.Error("checker failed to type node", "node", node.Kind(), "error", err)
		return nil, nil
	}

	if typ == nil {
		return nil, nil
	}

	sym, err := c.SymbolAtNode(node)
	if err != nil {
		log.Error("checker failed to resolve symbol", "node", node.Kind(), "error", err)
		return nil, nil
	}

	t, err := b.Build(ctx, typ)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}

		log.Error("checker failed while building type tree", "error", err)

		return nil, nil
	}

	if t == nil {
		return nil, nil
	}

	return &tree.TypeInfo{
		TypeTree:   t,
		SyntaxKind: syntaxKind(sym, node),
		Name:       symbolName(sym, t),
	}, nil
}

func syntaxKind(sym *checker.Symbol, node syntax.Node) string {
	if k := sym.Kind(); k != "" {
		return string(k)
	}

	return node.Kind()
}

func symbolName(sym *checker.Symbol, t *tree.TypeTree) string {
	if sym != nil && sym.Name != "" {
		return sym.Name
	}

	return t.TypeName
}
