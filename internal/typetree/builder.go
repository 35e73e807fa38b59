package typetree

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"unicode"

	"prettify-type/internal/checker"
	"prettify-type/internal/render"
	"prettify-type/internal/tree"
)

// Builder turns checker types into trees. A Builder holds no mutable state
// and may be shared between goroutines as long as its checker can.
type Builder struct {
	checker checker.Checker
	opts    Options
	skipped map[string]struct{}
}

// NewBuilder returns a Builder for c.
func NewBuilder(c checker.Checker, opts Options) *Builder {
	skipped := make(map[string]struct{}, len(opts.SkippedTypeNames))
	for _, name := range opts.SkippedTypeNames {
		skipped[name] = struct{}{}
	}

	return &Builder{
		checker: c,
		opts:    opts,
		skipped: skipped,
	}
}

// Options returns the options the builder was created with.
func (b *Builder) Options() Options {
	return b.opts
}

// Build projects t onto a tree. A nil t yields a nil tree.
//
// The only errors are checker faults and context cancellation; the latter is
// returned as ctx.Err() without wrapping.
func (b *Builder) Build(ctx context.Context, t checker.Type) (*tree.TypeTree, error) {
	if t == nil {
		return nil, nil
	}

	return b.build(ctx, t, frame{})
}

// frame is the per-branch recursion state.
type frame struct {
	depth   int
	nesting int
	visited visited
}

type visited map[uint64]struct{}

// with returns a copy of v that also contains id.
func (v visited) with(id uint64) visited {
	out := make(visited, len(v)+1)
	maps.Copy(out, v)
	out[id] = struct{}{}

	return out
}

func (b *Builder) build(ctx context.Context, t checker.Type, f frame) (*tree.TypeTree, error) {
	c := b.checker
	name := c.TypeString(t)

	if f.nesting >= MaxNesting {
		return b.finish(tree.Basic(name)), nil
	}

	flags := c.Flags(t)

	if f.depth >= b.opts.MaxDepth || flags.Has(checker.FlagPrimitive) {
		return b.finish(tree.Basic(name)), nil
	}

	if _, seen := f.visited[t.ID()]; seen {
		return b.finish(tree.Basic(name)), nil
	}

	child := frame{
		depth:   f.depth,
		nesting: f.nesting + 1,
		visited: f.visited.with(t.ID()),
	}

	if flags.Has(checker.FlagEnumMember) {
		if member, ok := c.EnumMember(t); ok {
			return b.finish(&tree.TypeTree{Kind: tree.KindEnum, TypeName: name, Member: member}), nil
		}

		return b.finish(tree.Basic(name)), nil
	}

	switch {
	case flags.Has(checker.FlagUnion):
		return b.buildUnion(ctx, t, name, child)
	case flags.Has(checker.FlagIntersection):
		return b.buildIntersection(ctx, t, name, child)
	}

	if b.isSkipped(name) {
		return b.finish(tree.Reference(name)), nil
	}

	if promised, ok := c.PromisedType(t); ok {
		inner, err := b.buildOrAny(ctx, promised, child)
		if err != nil {
			return nil, err
		}

		return b.finish(&tree.TypeTree{Kind: tree.KindPromise, TypeName: name, Type: inner}), nil
	}

	sigs, err := c.Signatures(t)
	if err != nil {
		return nil, fmt.Errorf("signatures of %s: %w", name, err)
	}

	if len(sigs) > 0 {
		if !b.opts.UnwrapFunctions {
			return b.finish(tree.Reference(name)), nil
		}

		return b.buildFunction(ctx, name, sigs, child)
	}

	if elem, readonly, ok := c.ArrayElement(t); ok {
		if !b.opts.UnwrapArrays {
			return b.finish(tree.Reference(name)), nil
		}

		et, err := b.buildOrAny(ctx, elem, child)
		if err != nil {
			return nil, err
		}

		return b.finish(&tree.TypeTree{
			Kind:        tree.KindArray,
			TypeName:    name,
			Readonly:    readonly,
			ElementType: et,
		}), nil
	}

	if elems, readonly, ok := c.TupleElements(t); ok {
		node := &tree.TypeTree{Kind: tree.KindTuple, TypeName: name, Readonly: readonly}

		for _, e := range elems {
			et, err := b.buildOrAny(ctx, e, child)
			if err != nil {
				return nil, err
			}

			node.ElementTypes = append(node.ElementTypes, et)
		}

		return b.finish(node), nil
	}

	if flags.Has(checker.FlagObject) {
		return b.buildObject(ctx, t, name, f.depth == 0, child)
	}

	base, args, err := c.TypeArguments(t)
	if err != nil {
		return nil, fmt.Errorf("type arguments of %s: %w", name, err)
	}

	if base != "" && len(args) > 0 && !containsNil(args) {
		node := &tree.TypeTree{Kind: tree.KindGeneric, TypeName: name, Name: base}

		for _, a := range args {
			at, err := b.build(ctx, a, child)
			if err != nil {
				return nil, err
			}

			node.TypeArguments = append(node.TypeArguments, at)
		}

		return b.finish(node), nil
	}

	return b.finish(tree.Basic(name)), nil
}

// buildOrAny builds t, or an `any` leaf when the checker could not resolve
// it.
func (b *Builder) buildOrAny(ctx context.Context, t checker.Type, f frame) (*tree.TypeTree, error) {
	if t == nil {
		return b.finish(tree.Basic("any")), nil
	}

	return b.build(ctx, t, f)
}

func (b *Builder) buildUnion(ctx context.Context, t checker.Type, name string, f frame) (*tree.TypeTree, error) {
	ops, err := b.checker.Operands(t)
	if err != nil {
		return nil, fmt.Errorf("union members of %s: %w", name, err)
	}

	node := &tree.TypeTree{Kind: tree.KindUnion, TypeName: name}

	kept := ops
	if len(ops) > b.opts.MaxUnionMembers {
		kept = ops[:b.opts.MaxUnionMembers]
		node.ExcessMembers = len(ops) - len(kept)
	}

	for _, op := range kept {
		ot, err := b.buildOrAny(ctx, op, f)
		if err != nil {
			return nil, err
		}

		node.Types = append(node.Types, ot)
	}

	return b.finish(node), nil
}

func (b *Builder) buildIntersection(ctx context.Context, t checker.Type, name string, f frame) (*tree.TypeTree, error) {
	ops, err := b.checker.Operands(t)
	if err != nil {
		return nil, fmt.Errorf("intersection members of %s: %w", name, err)
	}

	node := &tree.TypeTree{Kind: tree.KindIntersection, TypeName: name}

	for _, op := range ops {
		ot, err := b.buildOrAny(ctx, op, f)
		if err != nil {
			return nil, err
		}

		node.Types = append(node.Types, ot)
	}

	return b.finish(node), nil
}

func (b *Builder) buildFunction(ctx context.Context, name string, sigs []checker.Signature, f frame) (*tree.TypeTree, error) {
	node := &tree.TypeTree{Kind: tree.KindFunction, TypeName: name}

	kept := sigs
	if len(sigs) > b.opts.MaxFunctionSignatures {
		kept = sigs[:b.opts.MaxFunctionSignatures]
		node.ExcessSignatures = len(sigs) - len(kept)
	}

	for _, sig := range kept {
		var out tree.Signature

		for _, p := range sig.Parameters {
			pt, err := b.buildOrAny(ctx, p.Type, f)
			if err != nil {
				return nil, err
			}

			out.Parameters = append(out.Parameters, tree.Parameter{
				Name:            p.Name,
				Optional:        p.Optional,
				IsRestParameter: p.Rest,
				Type:            pt,
			})
		}

		if sig.ReturnType == nil {
			out.ReturnType = b.finish(tree.Basic("void"))
		} else {
			rt, err := b.build(ctx, sig.ReturnType, f)
			if err != nil {
				return nil, err
			}

			out.ReturnType = rt
		}

		node.Signatures = append(node.Signatures, out)
	}

	return b.finish(node), nil
}

func (b *Builder) buildObject(ctx context.Context, t checker.Type, name string, top bool, f frame) (*tree.TypeTree, error) {
	props, err := b.checker.Properties(t)
	if err != nil {
		return nil, fmt.Errorf("members of %s: %w", name, err)
	}

	if b.opts.HidePrivateProperties {
		props = visibleOnly(props)
	}

	limit := b.opts.MaxSubProperties
	if top {
		limit = b.opts.MaxProperties
	}

	node := &tree.TypeTree{Kind: tree.KindObject, TypeName: name}

	kept := props
	if len(props) > limit {
		kept = props[:limit]
		node.ExcessProperties = len(props) - len(kept)
	}

	member := f
	member.depth++

	for _, sym := range kept {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pt, err := b.checker.TypeOfSymbol(sym)
		if err != nil {
			return nil, fmt.Errorf("type of %s.%s: %w", name, sym.Name, err)
		}

		ptree, err := b.buildOrAny(ctx, pt, member)
		if err != nil {
			return nil, err
		}

		node.Properties = append(node.Properties, tree.Property{
			Name:     sym.Name,
			Optional: sym.Optional,
			Readonly: sym.Readonly || declaredReadonly(sym),
			Type:     ptree,
		})
	}

	return b.finish(node), nil
}

// isSkipped matches a type name against the skipped set. Names with type
// arguments (Box<T> or Box[T]) match on their base name. Other display text,
// such as "Set<string>[]" or "[]Item", never matches.
func (b *Builder) isSkipped(name string) bool {
	if len(b.skipped) == 0 {
		return false
	}

	base := name
	if i := strings.IndexAny(name, "<["); i > 0 {
		closer := byte('>')
		if name[i] == '[' {
			closer = ']'
		}

		if name[len(name)-1] != closer {
			return false
		}

		base = name[:i]
	}

	if !isTypeName(base) {
		return false
	}

	_, ok := b.skipped[base]

	return ok
}

// isTypeName reports whether s is an identifier, optionally qualified with
// dots.
func isTypeName(s string) bool {
	if s == "" {
		return false
	}

	for _, part := range strings.Split(s, ".") {
		for i, r := range part {
			switch {
			case r == '_' || r == '$' || unicode.IsLetter(r):
			case i > 0 && unicode.IsDigit(r):
			default:
				return false
			}
		}

		if part == "" {
			return false
		}
	}

	return true
}

// finish attaches display parts when they were requested. Children are
// finished first, so each call only renders one level.
func (b *Builder) finish(node *tree.TypeTree) *tree.TypeTree {
	if b.opts.DisplayParts {
		node.Parts = render.Parts(node)
	}

	return node
}

func containsNil(ts []checker.Type) bool {
	for _, t := range ts {
		if t == nil {
			return true
		}
	}

	return false
}

func declaredReadonly(sym *checker.Symbol) bool {
	for _, d := range sym.Declarations {
		if d.Modifiers.Has(checker.ModifierReadonly) {
			return true
		}
	}

	return false
}
