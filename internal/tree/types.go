package tree

// TypeTree is one node of a type projection. Kind selects which of the
// remaining fields are meaningful; the others stay at their zero values.
type TypeTree struct {
	Kind Kind `json:"kind"`
	// TypeName is the checker's canonical string for the type, used as a
	// fallback and for display.
	TypeName string `json:"typeName"`

	// Union and intersection operands, in checker order.
	Types []*TypeTree `json:"types,omitempty"`
	// ExcessMembers counts union members dropped by the member cap.
	ExcessMembers int `json:"excessMembers,omitempty"`

	Properties []Property `json:"properties,omitempty"`
	// ExcessProperties counts object members dropped by the property cap.
	ExcessProperties int `json:"excessProperties,omitempty"`

	// Readonly applies to arrays and tuples.
	Readonly     bool        `json:"readonly,omitempty"`
	ElementType  *TypeTree   `json:"elementType,omitempty"`
	ElementTypes []*TypeTree `json:"elementTypes,omitempty"`

	Signatures []Signature `json:"signatures,omitempty"`
	// ExcessSignatures counts overloads dropped by the signature cap.
	ExcessSignatures int `json:"excessSignatures,omitempty"`

	// Type is the awaited type of a promise.
	Type *TypeTree `json:"type,omitempty"`

	// Member is the qualified enum member, e.g. "Color.Red".
	Member string `json:"member,omitempty"`

	// Name and TypeArguments describe a generic instantiation Name<Args...>.
	Name          string      `json:"name,omitempty"`
	TypeArguments []*TypeTree `json:"typeArguments,omitempty"`

	// Parts holds display fragments computed while the tree was built, when
	// rich rendering was requested.
	Parts []DisplayPart `json:"parts,omitempty"`
}

// Property is an object member.
type Property struct {
	Name     string    `json:"name"`
	Optional bool      `json:"optional,omitempty"`
	Readonly bool      `json:"readonly,omitempty"`
	Type     *TypeTree `json:"type"`
}

// Signature is one call signature of a function type.
type Signature struct {
	Parameters []Parameter `json:"parameters"`
	ReturnType *TypeTree   `json:"returnType"`
}

// Parameter is one parameter of a call signature.
type Parameter struct {
	Name            string    `json:"name"`
	Optional        bool      `json:"optional,omitempty"`
	IsRestParameter bool      `json:"isRestParameter,omitempty"`
	Type            *TypeTree `json:"type"`
}

// PartKind classifies a display fragment. Values follow the symbol display
// part kinds used by language services.
type PartKind string

const (
	PartText              PartKind = "text"
	PartKeyword           PartKind = "keyword"
	PartPunctuation       PartKind = "punctuation"
	PartOperator          PartKind = "operator"
	PartSpace             PartKind = "space"
	PartLineBreak         PartKind = "lineBreak"
	PartPropertyName      PartKind = "propertyName"
	PartParameterName     PartKind = "parameterName"
	PartTypeReference     PartKind = "aliasName"
	PartEnumMemberName    PartKind = "enumMemberName"
	PartStringLiteral     PartKind = "stringLiteral"
	PartNumericLiteral    PartKind = "numericLiteral"
	PartTypeParameterName PartKind = "typeParameterName"
)

// DisplayPart is one tagged fragment of rendered text.
type DisplayPart struct {
	Text string   `json:"text"`
	Kind PartKind `json:"kind"`
}

// Basic returns a terminal node for name.
func Basic(name string) *TypeTree {
	return &TypeTree{Kind: KindBasic, TypeName: name}
}

// Reference returns an unexpanded named node.
func Reference(name string) *TypeTree {
	return &TypeTree{Kind: KindReference, TypeName: name}
}

// Children returns the direct child trees of t in rendering order.
func (t *TypeTree) Children() []*TypeTree {
	if t == nil {
		return nil
	}

	var out []*TypeTree

	switch t.Kind {
	case KindUnion, KindIntersection:
		out = append(out, t.Types...)
	case KindObject:
		for _, p := range t.Properties {
			out = append(out, p.Type)
		}
	case KindArray:
		out = append(out, t.ElementType)
	case KindTuple:
		out = append(out, t.ElementTypes...)
	case KindFunction:
		for _, s := range t.Signatures {
			for _, p := range s.Parameters {
				out = append(out, p.Type)
			}
			out = append(out, s.ReturnType)
		}
	case KindPromise:
		out = append(out, t.Type)
	case KindGeneric:
		out = append(out, t.TypeArguments...)
	case KindBasic, KindReference, KindEnum:
	}

	return out
}

// Walk visits t and its descendants depth-first. If fn returns false the
// children of that node are skipped.
func Walk(t *TypeTree, fn func(*TypeTree) bool) {
	if t == nil || !fn(t) {
		return
	}

	for _, c := range t.Children() {
		Walk(c, fn)
	}
}

// Height returns the number of nodes on the longest root-to-leaf path.
func Height(t *TypeTree) int {
	if t == nil {
		return 0
	}

	h := 0
	for _, c := range t.Children() {
		h = max(h, Height(c))
	}

	return h + 1
}

// MemberDepth returns the largest number of object-member edges on any
// root-to-leaf path. This is the nesting measure bounded by the builder's
// maximum depth.
func MemberDepth(t *TypeTree) int {
	if t == nil {
		return 0
	}

	d := 0
	if t.Kind == KindObject {
		for _, p := range t.Properties {
			d = max(d, MemberDepth(p.Type)+1)
		}

		return d
	}

	for _, c := range t.Children() {
		d = max(d, MemberDepth(c))
	}

	return d
}

// TypeInfo is the result of a lookup: the projected tree together with the
// declaration that produced it.
type TypeInfo struct {
	TypeTree *TypeTree `json:"typeTree"`
	// SyntaxKind is the declaration kind of the symbol, e.g.
	// "InterfaceDeclaration", or the node kind when there is no symbol.
	SyntaxKind string `json:"syntaxKind"`
	Name       string `json:"name"`
}
