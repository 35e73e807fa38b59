package fixture

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"prettify-type/internal/checker"
)

// File is the YAML form of a fixture graph.
type File struct {
	// Root names the type rendered by default.
	Root      string         `yaml:"root"`
	Types     []TypeSpec     `yaml:"types"`
	Documents []DocumentSpec `yaml:"documents,omitempty"`
}

// TypeSpec describes one named type. References to other types are by name;
// undeclared built-ins ("string", "null", ...) and literals ("\"a\"", 1,
// true) are resolved automatically.
type TypeSpec struct {
	Name string `yaml:"name"`
	// Kind is one of: primitive, literal, enum, enum-member, type-parameter,
	// union, intersection, promise, function, array, tuple, object, generic.
	Kind       string          `yaml:"kind"`
	Types      []string        `yaml:"types,omitempty"`
	Member     string          `yaml:"member,omitempty"`
	Promised   string          `yaml:"promised,omitempty"`
	Element    string          `yaml:"element,omitempty"`
	Readonly   bool            `yaml:"readonly,omitempty"`
	Signatures []SignatureSpec `yaml:"signatures,omitempty"`
	Properties []PropertySpec  `yaml:"properties,omitempty"`
	Generic    string          `yaml:"generic,omitempty"`
	Arguments  []string        `yaml:"arguments,omitempty"`
	Fault      string          `yaml:"fault,omitempty"`
}

// PropertySpec describes an object member.
type PropertySpec struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Optional  bool   `yaml:"optional,omitempty"`
	Readonly  bool   `yaml:"readonly,omitempty"`
	Private   bool   `yaml:"private,omitempty"`
	Protected bool   `yaml:"protected,omitempty"`
	// Synthetic members have no declaration site.
	Synthetic bool `yaml:"synthetic,omitempty"`
}

// SignatureSpec describes a call signature.
type SignatureSpec struct {
	Parameters []ParameterSpec `yaml:"parameters,omitempty"`
	Returns    string          `yaml:"returns"`
}

// ParameterSpec describes a signature parameter.
type ParameterSpec struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional,omitempty"`
	Rest     bool   `yaml:"rest,omitempty"`
}

// DocumentSpec describes a document and its identifier bindings.
type DocumentSpec struct {
	Path     string        `yaml:"path"`
	Text     string        `yaml:"text"`
	Bindings []BindingSpec `yaml:"bindings,omitempty"`
}

// BindingSpec binds an identifier of a document to a type.
type BindingSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Kind string `yaml:"kind"`
}

// LoadFile loads and builds a YAML fixture from path.
func LoadFile(path string) (*Graph, *File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML data and builds the graph it describes.
func Parse(data []byte) (*Graph, *File, error) {
	f, err := decode(data)
	if err != nil {
		return nil, nil, err
	}

	g, err := Build(f)
	if err != nil {
		return nil, nil, err
	}

	return g, f, nil
}

func decode(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}

	return &f, nil
}

var kindFlags = map[string]checker.Flags{
	"primitive":      0,
	"literal":        checker.FlagLiteral,
	"enum":           checker.FlagEnumLiteral,
	"enum-member":    checker.FlagEnumMember,
	"type-parameter": checker.FlagTypeParameter,
	"union":          checker.FlagUnion,
	"intersection":   checker.FlagIntersection,
	"promise":        checker.FlagObject,
	"function":       checker.FlagObject,
	"array":          checker.FlagObject,
	"tuple":          checker.FlagObject,
	"object":         checker.FlagObject,
	"generic":        0,
}

// Build turns a decoded fixture into a graph.
func Build(f *File) (*Graph, error) {
	g := New()
	declared := make(map[string]*Type, len(f.Types))

	// Declare first so types may reference each other in any order.
	for i := range f.Types {
		spec := &f.Types[i]

		flags, ok := kindFlags[spec.Kind]
		if !ok {
			return nil, fmt.Errorf("type %q: unknown kind %q", spec.Name, spec.Kind)
		}

		if spec.Name == "" {
			return nil, fmt.Errorf("type #%d: missing name", i)
		}

		if _, dup := declared[spec.Name]; dup {
			return nil, fmt.Errorf("type %q: declared twice", spec.Name)
		}

		if spec.Kind == "primitive" {
			flags = checker.FlagAny
		}

		declared[spec.Name] = g.add(&Type{Name: spec.Name, Flags: flags, Fault: spec.Fault})
	}

	r := &refResolver{g: g, declared: declared}

	for i := range f.Types {
		if err := r.fill(&f.Types[i]); err != nil {
			return nil, err
		}
	}

	for _, ds := range f.Documents {
		doc := g.AddDocument(ds.Path, ds.Text)

		for _, b := range ds.Bindings {
			t, err := r.ref(b.Type)
			if err != nil {
				return nil, fmt.Errorf("document %q binding %q: %w", ds.Path, b.Name, err)
			}

			kind := checker.DeclarationKind(b.Kind)
			if kind == "" {
				kind = checker.KindVariableDeclaration
			}

			doc.Bind(b.Name, t, kind)
		}
	}

	if f.Root != "" {
		if _, err := r.ref(f.Root); err != nil {
			return nil, fmt.Errorf("root: %w", err)
		}
	}

	return g, nil
}

type refResolver struct {
	g        *Graph
	declared map[string]*Type
}

func (r *refResolver) ref(name string) (*Type, error) {
	if t, ok := r.declared[name]; ok {
		return t, nil
	}

	if t, ok := r.g.Lookup(name); ok {
		return t, nil
	}

	if isLiteral(name) {
		return r.g.Literal(name), nil
	}

	return nil, fmt.Errorf("unknown type %q", name)
}

func (r *refResolver) refs(names []string) ([]*Type, error) {
	out := make([]*Type, 0, len(names))
	for _, n := range names {
		t, err := r.ref(n)
		if err != nil {
			return nil, err
		}

		out = append(out, t)
	}

	return out, nil
}

func (r *refResolver) fill(spec *TypeSpec) error {
	t := r.declared[spec.Name]
	wrap := func(err error) error {
		return fmt.Errorf("type %q: %w", spec.Name, err)
	}

	var err error

	switch spec.Kind {
	case "union", "intersection":
		t.Operands, err = r.refs(spec.Types)
	case "tuple":
		t.IsTuple = true
		t.Readonly = spec.Readonly
		t.Elements, err = r.refs(spec.Types)
	case "array":
		t.IsArray = true
		t.Readonly = spec.Readonly
		if spec.Element != "" {
			t.Element, err = r.ref(spec.Element)
		}
	case "enum-member":
		t.Member = spec.Member
	case "promise":
		t.Promised, err = r.ref(spec.Promised)
	case "generic":
		t.GenericName = spec.Generic
		t.Arguments, err = r.refs(spec.Arguments)
	}

	if err != nil {
		return wrap(err)
	}

	for _, ps := range spec.Properties {
		pt, err := r.ref(ps.Type)
		if err != nil {
			return wrap(fmt.Errorf("property %q: %w", ps.Name, err))
		}

		t.AddProperty(&Property{Symbol: propertySymbol(ps), Type: pt})
	}

	for _, ss := range spec.Signatures {
		sig, err := r.signature(ss)
		if err != nil {
			return wrap(err)
		}

		t.Signatures = append(t.Signatures, sig)
	}

	return nil
}

func (r *refResolver) signature(ss SignatureSpec) (Signature, error) {
	var sig Signature

	returns := ss.Returns
	if returns == "" {
		returns = "void"
	}

	ret, err := r.ref(returns)
	if err != nil {
		return sig, fmt.Errorf("return type: %w", err)
	}

	sig.Returns = ret

	for _, p := range ss.Parameters {
		pt, err := r.ref(p.Type)
		if err != nil {
			return sig, fmt.Errorf("parameter %q: %w", p.Name, err)
		}

		sig.Parameters = append(sig.Parameters, Param{Name: p.Name, Optional: p.Optional, Rest: p.Rest, Type: pt})
	}

	return sig, nil
}

func propertySymbol(ps PropertySpec) checker.Symbol {
	sym := checker.Symbol{
		Name:     ps.Name,
		Optional: ps.Optional,
		Readonly: ps.Readonly,
	}

	if ps.Synthetic {
		return sym
	}

	var mods checker.Modifier

	switch {
	case ps.Private:
		mods = checker.ModifierPrivate
	case ps.Protected:
		mods = checker.ModifierProtected
	}

	if ps.Readonly {
		mods |= checker.ModifierReadonly
	}

	sym.Declarations = []checker.Declaration{{Kind: checker.KindPropertySignature, Modifiers: mods}}

	return sym
}

func isLiteral(name string) bool {
	if name == "true" || name == "false" {
		return true
	}

	if strings.HasPrefix(name, `"`) || strings.HasPrefix(name, "'") {
		return true
	}

	_, err := strconv.ParseFloat(name, 64)

	return err == nil
}
