package render

import (
	"strconv"
	"strings"
	"unicode"

	"prettify-type/internal/tree"
)

// writer accumulates display parts. With reuse set, children that already
// carry parts are copied instead of rendered again.
type writer struct {
	parts []tree.DisplayPart
	reuse bool
}

func (w *writer) emit(text string, kind tree.PartKind) {
	if text == "" {
		return
	}

	w.parts = append(w.parts, tree.DisplayPart{Text: text, Kind: kind})
}

func (w *writer) punct(text string) { w.emit(text, tree.PartPunctuation) }
func (w *writer) space()            { w.emit(" ", tree.PartSpace) }
func (w *writer) keyword(text string) {
	w.emit(text, tree.PartKeyword)
	w.space()
}

func (w *writer) operator(op string) {
	w.space()
	w.emit(op, tree.PartOperator)
	w.space()
}

func (w *writer) String() string {
	var sb strings.Builder
	for _, p := range w.parts {
		sb.WriteString(p.Text)
	}

	return sb.String()
}

// child renders a nested node, which is always anonymous.
func (w *writer) child(t *tree.TypeTree) {
	if w.reuse && t != nil && len(t.Parts) > 0 {
		w.parts = append(w.parts, t.Parts...)
		return
	}

	w.node(t, true)
}

// wrapped renders a child in parentheses when it would otherwise bind
// loosely, e.g. a union inside an array.
func (w *writer) wrapped(t *tree.TypeTree) {
	if needsParens(t) {
		w.punct("(")
		w.child(t)
		w.punct(")")

		return
	}

	w.child(t)
}

func needsParens(t *tree.TypeTree) bool {
	if t == nil {
		return false
	}

	switch t.Kind {
	case tree.KindUnion, tree.KindIntersection:
		return len(t.Types) > 1 || t.ExcessMembers > 0
	case tree.KindFunction:
		return isArrow(t, true)
	default:
		return false
	}
}

func isArrow(t *tree.TypeTree, anonymous bool) bool {
	return anonymous && len(t.Signatures) == 1 && t.ExcessSignatures == 0
}

func (w *writer) node(t *tree.TypeTree, anonymous bool) {
	if t == nil {
		w.emit("any", tree.PartKeyword)
		return
	}

	switch t.Kind {
	case tree.KindUnion:
		w.union(t)
	case tree.KindIntersection:
		w.intersection(t)
	case tree.KindObject:
		w.object(t.Properties, t.ExcessProperties)
	case tree.KindArray:
		if t.Readonly {
			w.keyword("readonly")
		}

		w.wrapped(t.ElementType)
		w.punct("[]")
	case tree.KindTuple:
		if t.Readonly {
			w.keyword("readonly")
		}

		w.punct("[")
		for i, e := range t.ElementTypes {
			if i > 0 {
				w.punct(",")
				w.space()
			}

			w.child(e)
		}
		w.punct("]")
	case tree.KindFunction:
		w.function(t, anonymous)
	case tree.KindPromise:
		w.emit("Promise", tree.PartTypeReference)
		w.punct("<")
		w.child(t.Type)
		w.punct(">")
	case tree.KindEnum:
		w.enumMember(t)
	case tree.KindGeneric:
		w.emit(t.Name, tree.PartTypeReference)
		w.punct("<")
		for i, a := range t.TypeArguments {
			if i > 0 {
				w.punct(",")
				w.space()
			}

			w.child(a)
		}
		w.punct(">")
	case tree.KindReference:
		w.emit(t.TypeName, tree.PartTypeReference)
	default:
		w.emit(t.TypeName, basicPartKind(t.TypeName))
	}
}

func (w *writer) union(t *tree.TypeTree) {
	for i, m := range t.Types {
		if i > 0 {
			w.operator("|")
		}

		if m != nil && m.Kind == tree.KindFunction && isArrow(m, true) {
			w.wrapped(m)
		} else {
			w.child(m)
		}
	}

	if t.ExcessMembers > 0 {
		if len(t.Types) > 0 {
			w.operator("|")
		}

		w.emit(more(t.ExcessMembers), tree.PartText)
	}
}

// intersection merges every object operand into a single object literal
// placed where the first object operand was.
func (w *writer) intersection(t *tree.TypeTree) {
	var (
		props  []tree.Property
		excess int
		first  = -1
	)

	for i, m := range t.Types {
		if m != nil && m.Kind == tree.KindObject {
			if first < 0 {
				first = i
			}

			props = append(props, m.Properties...)
			excess += m.ExcessProperties
		}
	}

	written := 0
	for i, m := range t.Types {
		if m != nil && m.Kind == tree.KindObject && i != first {
			continue
		}

		if written > 0 {
			w.operator("&")
		}

		if i == first {
			w.object(props, excess)
		} else {
			w.wrapped(m)
		}

		written++
	}
}

func (w *writer) object(props []tree.Property, excess int) {
	if len(props) == 0 && excess == 0 {
		w.punct("{}")
		return
	}

	w.punct("{")
	w.space()

	for _, p := range props {
		if p.Readonly {
			w.keyword("readonly")
		}

		w.emit(PropertyName(p.Name), tree.PartPropertyName)
		if p.Optional {
			w.punct("?")
		}

		w.punct(":")
		w.space()
		w.child(p.Type)
		w.punct(";")
		w.space()
	}

	if excess > 0 {
		w.emit(more(excess), tree.PartText)
		w.punct(";")
		w.space()
	}

	w.punct("}")
}

func (w *writer) function(t *tree.TypeTree, anonymous bool) {
	if len(t.Signatures) == 0 {
		w.emit(t.TypeName, tree.PartTypeReference)
		return
	}

	if isArrow(t, anonymous) {
		w.parameters(t.Signatures[0].Parameters)
		w.space()
		w.punct("=>")
		w.space()
		w.child(t.Signatures[0].ReturnType)

		return
	}

	w.punct("{")
	w.space()

	for _, sig := range t.Signatures {
		w.signature(sig)
		w.punct(";")
		w.space()
	}

	if t.ExcessSignatures > 0 {
		w.emit(more(t.ExcessSignatures), tree.PartText)
		w.punct(";")
		w.space()
	}

	w.punct("}")
}

// signature writes "(params): R".
func (w *writer) signature(sig tree.Signature) {
	w.parameters(sig.Parameters)
	w.punct(":")
	w.space()
	w.child(sig.ReturnType)
}

func (w *writer) parameters(params []tree.Parameter) {
	w.punct("(")

	for i, p := range params {
		if i > 0 {
			w.punct(",")
			w.space()
		}

		if p.IsRestParameter {
			w.punct("...")
		}

		w.emit(p.Name, tree.PartParameterName)
		if p.Optional {
			w.punct("?")
		}

		w.punct(":")
		w.space()
		w.child(p.Type)
	}

	w.punct(")")
}

func (w *writer) enumMember(t *tree.TypeTree) {
	member := t.Member
	if member == "" {
		member = t.TypeName
	}

	enum, name, ok := strings.Cut(member, ".")
	if !ok {
		w.emit(member, tree.PartEnumMemberName)
		return
	}

	w.emit(enum, tree.PartTypeReference)
	w.punct(".")
	w.emit(name, tree.PartEnumMemberName)
}

func more(n int) string {
	return "... " + strconv.Itoa(n) + " more"
}

// PropertyName returns name as written in an object type, quoting it when
// it is not a valid identifier.
func PropertyName(name string) string {
	if isIdentifier(name) {
		return name
	}

	return strconv.Quote(name)
}

// isIdentifier reports whether name starts with a letter, '_' or '$' and
// continues with letters, digits, combining marks, connectors or '$'.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case unicode.IsLetter(r), r == '_', r == '$':
		case i > 0 && (unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)):
		default:
			return false
		}
	}

	return true
}

var keywordTypes = map[string]bool{
	"any":       true,
	"bigint":    true,
	"boolean":   true,
	"false":     true,
	"never":     true,
	"null":      true,
	"number":    true,
	"object":    true,
	"string":    true,
	"symbol":    true,
	"true":      true,
	"undefined": true,
	"unknown":   true,
	"void":      true,
}

func basicPartKind(name string) tree.PartKind {
	switch {
	case keywordTypes[name]:
		return tree.PartKeyword
	case strings.HasPrefix(name, `"`) || strings.HasPrefix(name, "'") || strings.HasPrefix(name, "`"):
		return tree.PartStringLiteral
	case isNumeric(name):
		return tree.PartNumericLiteral
	default:
		return tree.PartTypeReference
	}
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimPrefix(s, "-"), 64)
	return err == nil
}
