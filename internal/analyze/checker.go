package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"reflect"
	"slices"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"

	"prettify-type/internal/checker"
	"prettify-type/internal/syntax"
	"prettify-type/internal/syntax/goast"
)

var errForeignHandle = errors.New("analyze: foreign type handle")

// handle is the checker.Type of a go/types type. Identical types share a
// handle.
type handle struct {
	id  uint64
	typ types.Type
}

func (h *handle) ID() uint64 {
	return h.id
}

func (h *handle) String() string {
	return h.typ.String()
}

// Checker answers checker.Checker queries from go/types information.
//
// Named struct and interface types declared outside the loaded packages
// are opaque: they are rendered by name only.
type Checker struct {
	infos  []*types.Info
	local  map[*types.Package]bool
	params map[types.Object]bool

	mu      sync.Mutex
	handles typeutil.Map
	symbols map[symbolKey]*checker.Symbol
	objects map[*checker.Symbol]types.Object
}

var _ checker.Checker = (*Checker)(nil)

func newChecker(pkgs []*packages.Package) *Checker {
	c := &Checker{
		local:   make(map[*types.Package]bool, len(pkgs)),
		params:  make(map[types.Object]bool),
		symbols: make(map[symbolKey]*checker.Symbol),
		objects: make(map[*checker.Symbol]types.Object),
	}

	for _, pkg := range pkgs {
		c.local[pkg.Types] = true
		c.infos = append(c.infos, pkg.TypesInfo)

		for _, f := range pkg.Syntax {
			c.collectParams(pkg.TypesInfo, f)
		}
	}

	return c
}

// collectParams records the objects declared by parameter and result lists.
func (c *Checker) collectParams(info *types.Info, f *ast.File) {
	ast.Inspect(f, func(n ast.Node) bool {
		ft, ok := n.(*ast.FuncType)
		if !ok {
			return true
		}

		for _, list := range []*ast.FieldList{ft.Params, ft.Results} {
			if list == nil {
				continue
			}

			for _, field := range list.List {
				for _, name := range field.Names {
					if obj := info.Defs[name]; obj != nil {
						c.params[obj] = true
					}
				}
			}
		}

		return true
	})
}

// intern returns the handle of t, creating one on first use.
func (c *Checker) intern(t types.Type) checker.Type {
	if t == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.handles.At(t).(*handle); ok {
		return h
	}

	h := &handle{id: uint64(c.handles.Len() + 1), typ: t}
	c.handles.Set(t, h)

	return h
}

func (c *Checker) interns(ts []types.Type) []checker.Type {
	out := make([]checker.Type, 0, len(ts))
	for _, t := range ts {
		out = append(out, c.intern(t))
	}

	return out
}

func unwrap(t checker.Type) (types.Type, error) {
	h, ok := t.(*handle)
	if !ok || h == nil {
		return nil, errForeignHandle
	}

	return h.typ, nil
}

// structural strips aliases and pointers.
func structural(t types.Type) types.Type {
	t = types.Unalias(t)

	for {
		p, ok := t.(*types.Pointer)
		if !ok {
			return t
		}

		t = types.Unalias(p.Elem())
	}
}

// opaque reports whether t is a named struct or interface declared outside
// the loaded packages, including predeclared ones such as error.
func (c *Checker) opaque(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	if pkg := named.Obj().Pkg(); pkg != nil && c.local[pkg] {
		return false
	}

	switch named.Underlying().(type) {
	case *types.Struct, *types.Interface:
		return true
	default:
		return false
	}
}

func (c *Checker) Flags(t checker.Type) checker.Flags {
	typ, err := unwrap(t)
	if err != nil {
		return 0
	}

	typ = structural(typ)
	if c.opaque(typ) {
		return 0
	}

	if _, ok := typ.(*types.TypeParam); ok {
		return checker.FlagTypeParameter
	}

	switch u := typ.Underlying().(type) {
	case *types.Basic:
		return basicFlags(u)
	case *types.Interface:
		return interfaceFlags(u)
	case *types.Struct, *types.Signature, *types.Slice, *types.Array, *types.Tuple:
		return checker.FlagObject
	default:
		return 0
	}
}

func basicFlags(b *types.Basic) checker.Flags {
	info := b.Info()

	switch {
	case b.Kind() == types.UntypedNil:
		return checker.FlagNull
	case info&types.IsBoolean != 0:
		return checker.FlagBoolean
	case info&types.IsString != 0:
		return checker.FlagString
	case info&types.IsNumeric != 0:
		return checker.FlagNumber
	default:
		return checker.FlagUnknown
	}
}

func interfaceFlags(iface *types.Interface) checker.Flags {
	if iface.Empty() {
		return checker.FlagAny
	}

	for i := range iface.NumEmbeddeds() {
		if _, ok := iface.EmbeddedType(i).(*types.Union); ok {
			return checker.FlagUnion
		}
	}

	if iface.NumExplicitMethods() == 0 && iface.NumEmbeddeds() > 0 {
		return checker.FlagIntersection
	}

	return checker.FlagObject
}

// TypeString spells t the way Go source in a loaded package would, with
// other packages qualified by name.
func (c *Checker) TypeString(t checker.Type) string {
	typ, err := unwrap(t)
	if err != nil {
		return ""
	}

	return types.TypeString(typ, c.qualifier)
}

func (c *Checker) qualifier(pkg *types.Package) string {
	if c.local[pkg] {
		return ""
	}

	return pkg.Name()
}

func (c *Checker) Operands(t checker.Type) ([]checker.Type, error) {
	typ, err := unwrap(t)
	if err != nil {
		return nil, err
	}

	iface, ok := structural(typ).Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("analyze: %s is not an interface", typ)
	}

	var unions, embedded []types.Type

	for i := range iface.NumEmbeddeds() {
		e := iface.EmbeddedType(i)

		u, ok := e.(*types.Union)
		if !ok {
			embedded = append(embedded, e)

			continue
		}

		for j := range u.Len() {
			unions = append(unions, u.Term(j).Type())
		}
	}

	if len(unions) > 0 {
		return c.interns(unions), nil
	}

	return c.interns(embedded), nil
}

// EnumMember always reports false; Go has no enum member types.
func (c *Checker) EnumMember(checker.Type) (string, bool) {
	return "", false
}

// PromisedType always reports false; Go has no promise types.
func (c *Checker) PromisedType(checker.Type) (checker.Type, bool) {
	return nil, false
}

func (c *Checker) Signatures(t checker.Type) ([]checker.Signature, error) {
	typ, err := unwrap(t)
	if err != nil {
		return nil, err
	}

	sig, ok := structural(typ).Underlying().(*types.Signature)
	if !ok {
		return nil, nil
	}

	out := checker.Signature{ReturnType: c.results(sig.Results())}

	params := sig.Params()
	for i := range params.Len() {
		p := params.At(i)

		name := p.Name()
		if name == "" {
			name = "_"
		}

		out.Parameters = append(out.Parameters, checker.Parameter{
			Name: name,
			Rest: sig.Variadic() && i == params.Len()-1,
			Type: c.intern(p.Type()),
		})
	}

	return []checker.Signature{out}, nil
}

// results maps a result list to a return type: nil for none, the single
// type, or the tuple itself.
func (c *Checker) results(res *types.Tuple) checker.Type {
	switch res.Len() {
	case 0:
		return nil
	case 1:
		return c.intern(res.At(0).Type())
	default:
		return c.intern(res)
	}
}

func (c *Checker) ArrayElement(t checker.Type) (checker.Type, bool, bool) {
	typ, err := unwrap(t)
	if err != nil {
		return nil, false, false
	}

	switch u := structural(typ).Underlying().(type) {
	case *types.Slice:
		return c.intern(u.Elem()), false, true
	case *types.Array:
		return c.intern(u.Elem()), false, true
	default:
		return nil, false, false
	}
}

func (c *Checker) TupleElements(t checker.Type) ([]checker.Type, bool, bool) {
	typ, err := unwrap(t)
	if err != nil {
		return nil, false, false
	}

	tuple, ok := structural(typ).(*types.Tuple)
	if !ok {
		return nil, false, false
	}

	elems := make([]types.Type, 0, tuple.Len())
	for i := range tuple.Len() {
		elems = append(elems, tuple.At(i).Type())
	}

	return c.interns(elems), false, true
}

// Properties returns the data fields of a struct, with fields of embedded
// structs promoted, or the methods of an interface.
func (c *Checker) Properties(t checker.Type) ([]*checker.Symbol, error) {
	typ, err := unwrap(t)
	if err != nil {
		return nil, err
	}

	typ = structural(typ)
	if c.opaque(typ) {
		return nil, nil
	}

	switch u := typ.Underlying().(type) {
	case *types.Struct:
		var out []*checker.Symbol
		c.fields(u, make(map[string]bool), make(map[*types.Struct]bool), &out)

		return out, nil
	case *types.Interface:
		out := make([]*checker.Symbol, 0, u.NumMethods())
		for i := range u.NumMethods() {
			m := u.Method(i)
			out = append(out, c.symbol(m, checker.KindMethodSignature, false))
		}

		return out, nil
	default:
		return nil, nil
	}
}

// fields appends the fields of st in declaration order. Embedded structs
// contribute their fields in place; a name seen earlier shadows later ones.
func (c *Checker) fields(st *types.Struct, seen map[string]bool, walked map[*types.Struct]bool, out *[]*checker.Symbol) {
	if walked[st] {
		return
	}

	walked[st] = true

	for i := range st.NumFields() {
		f := st.Field(i)

		if f.Embedded() {
			inner := structural(f.Type())
			if es, ok := inner.Underlying().(*types.Struct); ok && !c.opaque(inner) {
				c.fields(es, seen, walked, out)

				continue
			}
		}

		if seen[f.Name()] {
			continue
		}

		seen[f.Name()] = true
		*out = append(*out, c.symbol(f, checker.KindPropertyDeclaration, omitEmpty(st.Tag(i))))
	}
}

func omitEmpty(tag string) bool {
	for _, key := range []string{"json", "yaml"} {
		v, ok := reflect.StructTag(tag).Lookup(key)
		if !ok {
			continue
		}

		_, opts, _ := strings.Cut(v, ",")
		if slices.Contains(strings.Split(opts, ","), "omitempty") {
			return true
		}
	}

	return false
}

// symbolKey identifies an interned symbol. A field seen through its struct
// and through a selector differ in optionality only.
type symbolKey struct {
	obj      types.Object
	kind     checker.DeclarationKind
	optional bool
}

// symbol returns the Symbol for obj, creating it on first use. Symbols are
// interned so repeated lookups on a long-lived checker do not grow it.
func (c *Checker) symbol(obj types.Object, kind checker.DeclarationKind, optional bool) *checker.Symbol {
	key := symbolKey{obj: obj, kind: kind, optional: optional}

	c.mu.Lock()
	defer c.mu.Unlock()

	if sym, ok := c.symbols[key]; ok {
		return sym
	}

	mods := checker.ModifierPublic
	if !obj.Exported() {
		mods = checker.ModifierPrivate
	}

	_, isConst := obj.(*types.Const)
	if isConst {
		mods |= checker.ModifierReadonly
	}

	sym := &checker.Symbol{
		Name:         obj.Name(),
		Optional:     optional,
		Readonly:     isConst,
		Declarations: []checker.Declaration{{Kind: kind, Modifiers: mods}},
	}

	c.symbols[key] = sym
	c.objects[sym] = obj

	return sym
}

func (c *Checker) TypeOfSymbol(sym *checker.Symbol) (checker.Type, error) {
	c.mu.Lock()
	obj, ok := c.objects[sym]
	c.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("analyze: unknown symbol %q", sym.Name)
	}

	return c.intern(obj.Type()), nil
}

// TypeArguments reports maps as map<K, V>, channels as chan<T> and
// instantiated generic types by their base name.
func (c *Checker) TypeArguments(t checker.Type) (string, []checker.Type, error) {
	typ, err := unwrap(t)
	if err != nil {
		return "", nil, err
	}

	typ = structural(typ)

	if named, ok := typ.(*types.Named); ok {
		args := named.TypeArgs()
		if args.Len() == 0 {
			return "", nil, nil
		}

		list := make([]types.Type, 0, args.Len())
		for i := range args.Len() {
			list = append(list, args.At(i))
		}

		return named.Obj().Name(), c.interns(list), nil
	}

	switch u := typ.(type) {
	case *types.Map:
		return "map", c.interns([]types.Type{u.Key(), u.Elem()}), nil
	case *types.Chan:
		return "chan", c.interns([]types.Type{u.Elem()}), nil
	default:
		return "", nil, nil
	}
}

// TypeAtNode returns the type of the expression at n, or of the object the
// declaration at n introduces.
func (c *Checker) TypeAtNode(n syntax.Node) (checker.Type, error) {
	node, ok := goast.Unwrap(n)
	if !ok {
		return nil, nil
	}

	if obj := c.objectAt(node); obj != nil {
		switch obj.(type) {
		case *types.PkgName, *types.Label, *types.Builtin, *types.Nil:
			return nil, nil
		}

		return c.intern(obj.Type()), nil
	}

	expr, ok := node.(ast.Expr)
	if !ok {
		return nil, nil
	}

	for _, info := range c.infos {
		if t := info.TypeOf(expr); t != nil {
			return c.intern(t), nil
		}
	}

	return nil, nil
}

// SymbolAtNode returns the object declared or referenced at n.
func (c *Checker) SymbolAtNode(n syntax.Node) (*checker.Symbol, error) {
	node, ok := goast.Unwrap(n)
	if !ok {
		return nil, nil
	}

	obj := c.objectAt(node)
	if obj == nil {
		return nil, nil
	}

	kind, ok := c.declarationKind(obj)
	if !ok {
		return nil, nil
	}

	return c.symbol(obj, kind, false), nil
}

func (c *Checker) objectAt(node ast.Node) types.Object {
	id := declaredIdent(node)
	if id == nil {
		return nil
	}

	for _, info := range c.infos {
		if obj := info.ObjectOf(id); obj != nil {
			return obj
		}
	}

	return nil
}

// declaredIdent returns the identifier named by node: the node itself or
// the first name a declaration introduces.
func declaredIdent(node ast.Node) *ast.Ident {
	switch n := node.(type) {
	case *ast.Ident:
		return n
	case *ast.TypeSpec:
		return n.Name
	case *ast.FuncDecl:
		return n.Name
	case *ast.ValueSpec:
		if len(n.Names) > 0 {
			return n.Names[0]
		}
	case *ast.Field:
		if len(n.Names) > 0 {
			return n.Names[0]
		}
	case *ast.SelectorExpr:
		return n.Sel
	}

	return nil
}

func (c *Checker) declarationKind(obj types.Object) (checker.DeclarationKind, bool) {
	switch o := obj.(type) {
	case *types.TypeName:
		if _, ok := o.Type().Underlying().(*types.Interface); ok {
			return checker.KindInterfaceDeclaration, true
		}

		return checker.KindTypeAliasDeclaration, true
	case *types.Func:
		if sig, ok := o.Type().(*types.Signature); ok && sig.Recv() != nil {
			return checker.KindMethodDeclaration, true
		}

		return checker.KindFunctionDeclaration, true
	case *types.Var:
		switch {
		case o.IsField():
			return checker.KindPropertyDeclaration, true
		case c.params[o]:
			return checker.KindParameter, true
		default:
			return checker.KindVariableDeclaration, true
		}
	case *types.Const:
		return checker.KindVariableDeclaration, true
	default:
		return "", false
	}
}
