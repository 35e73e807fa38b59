package fixture

import (
	"errors"
	"fmt"

	"prettify-type/internal/checker"
	"prettify-type/internal/syntax"
)

// Type is a node of the fixture graph. Exported fields may be set directly
// while the graph is being described.
type Type struct {
	id    uint64
	Name  string
	Flags checker.Flags

	Operands   []*Type
	Member     string
	Promised   *Type
	Signatures []Signature

	IsArray  bool
	IsTuple  bool
	Readonly bool
	Element  *Type
	Elements []*Type

	Properties []*Property

	GenericName string
	Arguments   []*Type

	// Fault makes structural queries on this type fail with this message.
	Fault string
	// Panic makes Flags panic, imitating a crashing checker.
	Panic bool
}

// ID implements checker.Type.
func (t *Type) ID() uint64 {
	return t.id
}

// Property is an object member of a fixture type.
type Property struct {
	checker.Symbol
	Type *Type
}

// Signature is a call signature of a fixture type.
type Signature struct {
	Parameters []Param
	Returns    *Type
}

// Param is a signature parameter.
type Param struct {
	Name     string
	Optional bool
	Rest     bool
	Type     *Type
}

// Prop appends a public property and returns t for chaining.
func (t *Type) Prop(name string, typ *Type) *Type {
	return t.AddProperty(&Property{
		Symbol: checker.Symbol{
			Name:         name,
			Declarations: []checker.Declaration{{Kind: checker.KindPropertySignature}},
		},
		Type: typ,
	})
}

// OptionalProp appends an optional public property.
func (t *Type) OptionalProp(name string, typ *Type) *Type {
	return t.AddProperty(&Property{
		Symbol: checker.Symbol{
			Name:         name,
			Optional:     true,
			Declarations: []checker.Declaration{{Kind: checker.KindPropertySignature}},
		},
		Type: typ,
	})
}

// AddProperty appends p and returns t for chaining.
func (t *Type) AddProperty(p *Property) *Type {
	t.Properties = append(t.Properties, p)
	t.Flags |= checker.FlagObject

	return t
}

// Call appends a call signature and returns t for chaining.
func (t *Type) Call(returns *Type, params ...Param) *Type {
	t.Signatures = append(t.Signatures, Signature{Parameters: params, Returns: returns})

	return t
}

// Graph is an in-memory checker.
type Graph struct {
	types  []*Type
	byName map[string]*Type
	docs   map[string]*Document
}

var _ checker.Checker = (*Graph)(nil)

// New returns a graph with the built-in primitives registered.
func New() *Graph {
	g := &Graph{
		byName: make(map[string]*Type),
		docs:   make(map[string]*Document),
	}

	for _, b := range builtins {
		g.add(&Type{Name: b.name, Flags: b.flags})
	}

	return g
}

var builtins = []struct {
	name  string
	flags checker.Flags
}{
	{"string", checker.FlagString},
	{"number", checker.FlagNumber},
	{"boolean", checker.FlagBoolean},
	{"bigint", checker.FlagBigInt},
	{"null", checker.FlagNull},
	{"undefined", checker.FlagUndefined},
	{"void", checker.FlagVoid},
	{"any", checker.FlagAny},
	{"unknown", checker.FlagUnknown},
	{"never", checker.FlagNever},
}

func (g *Graph) add(t *Type) *Type {
	t.id = uint64(len(g.types) + 1)
	g.types = append(g.types, t)

	if t.Name != "" {
		if _, exists := g.byName[t.Name]; !exists {
			g.byName[t.Name] = t
		}
	}

	return t
}

// Lookup returns the first type registered under name.
func (g *Graph) Lookup(name string) (*Type, bool) {
	t, ok := g.byName[name]

	return t, ok
}

// MustLookup returns the type registered under name or panics.
func (g *Graph) MustLookup(name string) *Type {
	t, ok := g.byName[name]
	if !ok {
		panic(fmt.Sprintf("fixture: no type %q", name))
	}

	return t
}

// Primitive returns the named built-in, or registers a new primitive type
// with the given flags.
func (g *Graph) Primitive(name string, flags checker.Flags) *Type {
	if t, ok := g.byName[name]; ok && t.Flags.Has(checker.FlagPrimitive) {
		return t
	}

	return g.add(&Type{Name: name, Flags: flags})
}

// Literal registers a literal type such as `"on"` or `42`.
func (g *Graph) Literal(text string) *Type {
	return g.Primitive(text, checker.FlagLiteral)
}

// Object registers an object type without members.
func (g *Graph) Object(name string) *Type {
	return g.add(&Type{Name: name, Flags: checker.FlagObject})
}

// Union registers a union of operands.
func (g *Graph) Union(name string, operands ...*Type) *Type {
	return g.add(&Type{Name: name, Flags: checker.FlagUnion, Operands: operands})
}

// Intersection registers an intersection of operands.
func (g *Graph) Intersection(name string, operands ...*Type) *Type {
	return g.add(&Type{Name: name, Flags: checker.FlagIntersection, Operands: operands})
}

// EnumMemberType registers a single enum member type.
func (g *Graph) EnumMemberType(name, member string) *Type {
	return g.add(&Type{Name: name, Flags: checker.FlagEnumMember, Member: member})
}

// Promise registers a promise-like wrapper of promised.
func (g *Graph) Promise(name string, promised *Type) *Type {
	return g.add(&Type{Name: name, Flags: checker.FlagObject, Promised: promised})
}

// Function registers a callable type with no signatures yet.
func (g *Graph) Function(name string) *Type {
	return g.add(&Type{Name: name, Flags: checker.FlagObject})
}

// Array registers an array of elem.
func (g *Graph) Array(name string, elem *Type) *Type {
	return g.add(&Type{Name: name, Flags: checker.FlagObject, IsArray: true, Element: elem})
}

// Tuple registers a tuple of elems.
func (g *Graph) Tuple(name string, elems ...*Type) *Type {
	return g.add(&Type{Name: name, Flags: checker.FlagObject, IsTuple: true, Elements: elems})
}

// Generic registers an instantiation base<args...>.
func (g *Graph) Generic(name, base string, args ...*Type) *Type {
	return g.add(&Type{Name: name, GenericName: base, Arguments: args})
}

var errNotFixture = errors.New("fixture: foreign type handle")

func (g *Graph) resolve(t checker.Type) (*Type, error) {
	ft, ok := t.(*Type)
	if !ok || ft == nil {
		return nil, errNotFixture
	}

	if ft.Fault != "" {
		return nil, fmt.Errorf("fixture: %s", ft.Fault)
	}

	return ft, nil
}

func (g *Graph) Flags(t checker.Type) checker.Flags {
	ft, ok := t.(*Type)
	if !ok || ft == nil {
		return 0
	}

	if ft.Panic {
		panic(fmt.Sprintf("fixture: checker crashed on %s", ft.Name))
	}

	return ft.Flags
}

func (g *Graph) TypeString(t checker.Type) string {
	ft, ok := t.(*Type)
	if !ok || ft == nil {
		return ""
	}

	return ft.Name
}

func (g *Graph) Operands(t checker.Type) ([]checker.Type, error) {
	ft, err := g.resolve(t)
	if err != nil {
		return nil, err
	}

	return handles(ft.Operands), nil
}

func (g *Graph) EnumMember(t checker.Type) (string, bool) {
	ft, ok := t.(*Type)
	if !ok || ft == nil || !ft.Flags.Has(checker.FlagEnumMember) {
		return "", false
	}

	return ft.Member, true
}

func (g *Graph) PromisedType(t checker.Type) (checker.Type, bool) {
	ft, ok := t.(*Type)
	if !ok || ft == nil || ft.Promised == nil {
		return nil, false
	}

	return ft.Promised, true
}

func (g *Graph) Signatures(t checker.Type) ([]checker.Signature, error) {
	ft, err := g.resolve(t)
	if err != nil {
		return nil, err
	}

	out := make([]checker.Signature, 0, len(ft.Signatures))
	for _, s := range ft.Signatures {
		sig := checker.Signature{ReturnType: handle(s.Returns)}
		for _, p := range s.Parameters {
			sig.Parameters = append(sig.Parameters, checker.Parameter{
				Name:     p.Name,
				Optional: p.Optional,
				Rest:     p.Rest,
				Type:     handle(p.Type),
			})
		}

		out = append(out, sig)
	}

	return out, nil
}

func (g *Graph) ArrayElement(t checker.Type) (checker.Type, bool, bool) {
	ft, ok := t.(*Type)
	if !ok || ft == nil || !ft.IsArray {
		return nil, false, false
	}

	return handle(ft.Element), ft.Readonly, true
}

func (g *Graph) TupleElements(t checker.Type) ([]checker.Type, bool, bool) {
	ft, ok := t.(*Type)
	if !ok || ft == nil || !ft.IsTuple {
		return nil, false, false
	}

	return handles(ft.Elements), ft.Readonly, true
}

func (g *Graph) Properties(t checker.Type) ([]*checker.Symbol, error) {
	ft, err := g.resolve(t)
	if err != nil {
		return nil, err
	}

	out := make([]*checker.Symbol, 0, len(ft.Properties))
	for _, p := range ft.Properties {
		out = append(out, &p.Symbol)
	}

	return out, nil
}

func (g *Graph) TypeOfSymbol(sym *checker.Symbol) (checker.Type, error) {
	for _, t := range g.types {
		for _, p := range t.Properties {
			if &p.Symbol == sym {
				return handle(p.Type), nil
			}
		}
	}

	for _, d := range g.docs {
		for _, b := range d.bindings {
			if b.symbol == sym {
				return handle(b.typ), nil
			}
		}
	}

	return nil, fmt.Errorf("fixture: unknown symbol %q", sym.Name)
}

func (g *Graph) TypeArguments(t checker.Type) (string, []checker.Type, error) {
	ft, err := g.resolve(t)
	if err != nil {
		return "", nil, err
	}

	return ft.GenericName, handles(ft.Arguments), nil
}

func (g *Graph) TypeAtNode(n syntax.Node) (checker.Type, error) {
	b, ok := g.bindingAt(n)
	if !ok {
		return nil, nil
	}

	return handle(b.typ), nil
}

func (g *Graph) SymbolAtNode(n syntax.Node) (*checker.Symbol, error) {
	b, ok := g.bindingAt(n)
	if !ok {
		return nil, nil
	}

	return b.symbol, nil
}

// handle converts a possibly nil *Type into a checker.Type that is nil when
// the pointer is nil.
func handle(t *Type) checker.Type {
	if t == nil {
		return nil
	}

	return t
}

func handles(ts []*Type) []checker.Type {
	out := make([]checker.Type, 0, len(ts))
	for _, t := range ts {
		out = append(out, handle(t))
	}

	return out
}
