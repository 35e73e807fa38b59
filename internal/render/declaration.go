package render

import (
	"strings"

	"prettify-type/internal/checker"
	"prettify-type/internal/pretty"
	"prettify-type/internal/tree"
)

type prefixStyle int

const (
	styleConst prefixStyle = iota
	styleClass
	styleInterface
	styleType
	styleFunction
)

var prefixStyles = map[checker.DeclarationKind]prefixStyle{
	checker.KindClassDeclaration:     styleClass,
	checker.KindClassExpression:      styleClass,
	checker.KindInterfaceDeclaration: styleInterface,
	checker.KindTypeAliasDeclaration: styleType,
	checker.KindTypeLiteral:          styleType,
	checker.KindTypeReference:        styleType,
	checker.KindArrayType:            styleType,
	checker.KindTupleType:            styleType,
	checker.KindFunctionType:         styleType,
	checker.KindUnionType:            styleType,
	checker.KindIntersectionType:     styleType,
	checker.KindMappedType:           styleType,
	checker.KindConditionalType:      styleType,
	checker.KindFunctionDeclaration:  styleFunction,
	checker.KindFunctionExpression:   styleFunction,
	checker.KindArrowFunction:        styleFunction,
	checker.KindMethodDeclaration:    styleFunction,
	checker.KindMethodSignature:      styleFunction,
}

// DeclarationPrefix returns the keyword form that introduces a declaration
// of the given kind, e.g. "interface User" or "const user:".
func DeclarationPrefix(kind checker.DeclarationKind, name string) string {
	switch prefixStyles[kind] {
	case styleClass:
		return "class " + name
	case styleInterface:
		return "interface " + name
	case styleType:
		return "type " + name + " ="
	case styleFunction:
		return "function " + name
	default:
		return "const " + name + ":"
	}
}

// Declaration renders info as declaration text and reflows it with indent
// spaces per level. Functions with call signatures render as one
// "function name(params): R" line per signature; a function-like
// declaration whose type is not callable falls back to the const form.
func Declaration(info tree.TypeInfo, indent int) string {
	t := info.TypeTree
	if t == nil {
		return ""
	}

	kind := checker.DeclarationKind(info.SyntaxKind)
	style := prefixStyles[kind]

	var text string

	switch {
	case style == styleFunction && t.Kind == tree.KindFunction && len(t.Signatures) > 0:
		text = functionDeclaration(info.Name, t)
	case style == styleFunction:
		text = DeclarationPrefix("", info.Name) + " " + Stringify(t, true)
	case style == styleClass || style == styleInterface:
		text = DeclarationPrefix(kind, info.Name) + " " + Stringify(t, false)
	default:
		text = DeclarationPrefix(kind, info.Name) + " " + Stringify(t, true)
	}

	return pretty.Print(text, indent)
}

func functionDeclaration(name string, t *tree.TypeTree) string {
	lines := make([]string, 0, len(t.Signatures)+1)

	for _, sig := range t.Signatures {
		w := &writer{}
		w.signature(sig)
		lines = append(lines, "function "+name+w.String())
	}

	if len(lines) == 1 && t.ExcessSignatures == 0 {
		return lines[0]
	}

	for i := range lines {
		lines[i] += ";"
	}

	if t.ExcessSignatures > 0 {
		lines = append(lines, "// "+more(t.ExcessSignatures))
	}

	return strings.Join(lines, "\n")
}
