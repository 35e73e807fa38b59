package checker

import (
	"prettify-type/internal/syntax"
)

// Type is an opaque handle to a checker-owned type. Two handles denote the
// same type when their IDs are equal.
type Type interface {
	ID() uint64
}

// Flags classify a type. A type may carry several flags; the builder checks
// them in a fixed order.
type Flags uint32

const (
	FlagString Flags = 1 << iota
	FlagNumber
	FlagBoolean
	FlagBigInt
	FlagNull
	FlagUndefined
	FlagVoid
	FlagLiteral     // string, number or boolean literal type
	FlagEnumLiteral // an enum type as a whole
	FlagAny
	FlagUnknown
	FlagNever
	FlagTypeParameter
	FlagEnumMember // a single enum member, e.g. Color.Red
	FlagUnion
	FlagIntersection
	FlagObject // class, interface or anonymous object shape

	// FlagPrimitive covers every flag rendered as a terminal node.
	FlagPrimitive = FlagString | FlagNumber | FlagBoolean | FlagBigInt | FlagNull |
		FlagUndefined | FlagVoid | FlagLiteral | FlagEnumLiteral | FlagAny | FlagUnknown |
		FlagNever | FlagTypeParameter
)

// Has reports whether any of the given flags are set.
func (f Flags) Has(flags Flags) bool {
	return f&flags != 0
}

// Modifier is a bit set of declaration modifiers.
type Modifier uint8

const (
	ModifierPublic Modifier = 1 << iota
	ModifierPrivate
	ModifierProtected
	ModifierReadonly
	ModifierStatic
)

// Has reports whether any of the given modifiers are set.
func (m Modifier) Has(mods Modifier) bool {
	return m&mods != 0
}

// DeclarationKind names the syntax kind of a declaration, using the
// language-service spelling (e.g. "InterfaceDeclaration").
type DeclarationKind string

const (
	KindClassDeclaration     DeclarationKind = "ClassDeclaration"
	KindClassExpression      DeclarationKind = "ClassExpression"
	KindInterfaceDeclaration DeclarationKind = "InterfaceDeclaration"
	KindTypeAliasDeclaration DeclarationKind = "TypeAliasDeclaration"
	KindTypeLiteral          DeclarationKind = "TypeLiteral"
	KindTypeReference        DeclarationKind = "TypeReference"
	KindArrayType            DeclarationKind = "ArrayType"
	KindTupleType            DeclarationKind = "TupleType"
	KindFunctionType         DeclarationKind = "FunctionType"
	KindUnionType            DeclarationKind = "UnionType"
	KindIntersectionType     DeclarationKind = "IntersectionType"
	KindMappedType           DeclarationKind = "MappedType"
	KindConditionalType      DeclarationKind = "ConditionalType"
	KindFunctionDeclaration  DeclarationKind = "FunctionDeclaration"
	KindFunctionExpression   DeclarationKind = "FunctionExpression"
	KindArrowFunction        DeclarationKind = "ArrowFunction"
	KindMethodDeclaration    DeclarationKind = "MethodDeclaration"
	KindMethodSignature      DeclarationKind = "MethodSignature"
	KindVariableDeclaration  DeclarationKind = "VariableDeclaration"
	KindPropertyDeclaration  DeclarationKind = "PropertyDeclaration"
	KindPropertySignature    DeclarationKind = "PropertySignature"
	KindParameter            DeclarationKind = "Parameter"
	KindEnumDeclaration      DeclarationKind = "EnumDeclaration"
	KindEnumMember           DeclarationKind = "EnumMember"
)

// Declaration is one declaration site of a symbol.
type Declaration struct {
	Kind      DeclarationKind
	Modifiers Modifier
}

// Symbol is a named entity: a variable, type, member or parameter.
type Symbol struct {
	Name         string
	Optional     bool
	Readonly     bool
	Declarations []Declaration
}

// Kind returns the kind of the first declaration, or "" for synthetic symbols.
func (s *Symbol) Kind() DeclarationKind {
	if s == nil || len(s.Declarations) == 0 {
		return ""
	}

	return s.Declarations[0].Kind
}

// Parameter is one parameter of a call signature.
type Parameter struct {
	Name     string
	Optional bool
	Rest     bool
	Type     Type
}

// Signature is one call signature.
type Signature struct {
	Parameters []Parameter
	ReturnType Type
}

// Checker answers structural questions about types. Methods returning an
// error report a checker fault; a nil Type with a nil error means "nothing
// there".
type Checker interface {
	// Flags classifies t.
	Flags(t Type) Flags
	// TypeString returns the canonical display string of t.
	TypeString(t Type) string

	// Operands returns the members of a union or intersection.
	Operands(t Type) ([]Type, error)
	// EnumMember returns the qualified member name ("Color.Red") of an enum
	// member type.
	EnumMember(t Type) (string, bool)
	// PromisedType returns the wrapped type of a promise-like type.
	PromisedType(t Type) (Type, bool)
	// Signatures returns the call signatures of t, in declaration order.
	Signatures(t Type) ([]Signature, error)
	// ArrayElement returns the element type of an array-like type. ok is
	// false when t is not array-like; elem may be nil when unresolvable.
	ArrayElement(t Type) (elem Type, readonly bool, ok bool)
	// TupleElements returns the element types of a tuple-like type.
	TupleElements(t Type) (elems []Type, readonly bool, ok bool)
	// Properties returns the apparent members of t (own and inherited).
	Properties(t Type) ([]*Symbol, error)
	// TypeOfSymbol returns the type of a member symbol.
	TypeOfSymbol(sym *Symbol) (Type, error)
	// TypeArguments returns the resolved type arguments of a generic
	// instantiation together with its unqualified base name.
	TypeArguments(t Type) (name string, args []Type, err error)

	// TypeAtNode returns the type of the expression or declaration at n.
	TypeAtNode(n syntax.Node) (Type, error)
	// SymbolAtNode returns the symbol declared or referenced at n.
	SymbolAtNode(n syntax.Node) (*Symbol, error)
}

// Program is one loaded project: its sources and a checker over them.
type Program interface {
	Checker() Checker
	// SourceFile returns the syntax tree and text of a loaded file.
	SourceFile(path string) (syntax.Node, []byte, error)
	// ResolveTypeName reports whether name denotes a type visible in the
	// program.
	ResolveTypeName(name string) bool
}
