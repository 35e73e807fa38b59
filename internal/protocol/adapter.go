package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"prettify-type/internal/engine"
	"prettify-type/internal/tree"
	"prettify-type/internal/typetree"
)

// Completer produces completion lists.
type Completer interface {
	Completion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

func (f CompleterFunc) Completion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	return f(ctx, req)
}

// NoCompletions answers every request with an empty list.
var NoCompletions Completer = CompleterFunc(func(context.Context, CompletionRequest) (*CompletionResponse, error) {
	return &CompletionResponse{Entries: []CompletionEntry{}}, nil
})

// TypeInfoProvider resolves the type at a position. *engine.Engine
// implements it.
type TypeInfoProvider interface {
	TypeInfoAt(ctx context.Context, req engine.Request) (*tree.TypeInfo, error)
}

// Adapter intercepts type-info requests on their way to a Completer.
type Adapter struct {
	next     Completer
	types    TypeInfoProvider
	defaults typetree.Options
	logger   *slog.Logger
}

// NewAdapter returns an Adapter in front of next. Requests decode their
// options over defaults.
func NewAdapter(next Completer, types TypeInfoProvider, defaults typetree.Options, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Adapter{
		next:     next,
		types:    types,
		defaults: defaults,
		logger:   logger,
	}
}

// Completion answers type-info requests itself and delegates the rest.
func (a *Adapter) Completion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	tir, ok := ParseTypeInfoRequest(req.TriggerCharacter)
	if !ok {
		return a.next.Completion(ctx, req)
	}

	opts, err := a.options(tir.Options)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("type info request", "file", req.File, "position", req.Position)

	info, err := a.types.TypeInfoAt(ctx, engine.Request{
		Path:    req.File,
		Start:   req.Position,
		End:     req.Position,
		Options: &opts,
	})
	if err != nil {
		return nil, err
	}

	return &CompletionResponse{
		Entries:  []CompletionEntry{},
		TypeInfo: info,
	}, nil
}

func (a *Adapter) options(raw json.RawMessage) (typetree.Options, error) {
	opts := a.defaults
	opts.SkippedTypeNames = append([]string(nil), a.defaults.SkippedTypeNames...)

	if len(raw) == 0 || string(raw) == "null" {
		return opts, nil
	}

	if err := json.Unmarshal(raw, &opts); err != nil {
		return opts, fmt.Errorf("invalid type info request options: %w", err)
	}

	return opts, nil
}
