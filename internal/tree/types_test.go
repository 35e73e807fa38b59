package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nestedObject() *TypeTree {
	inner := &TypeTree{
		Kind:     KindObject,
		TypeName: "Inner",
		Properties: []Property{
			{Name: "leaf", Type: Basic("string")},
		},
	}

	return &TypeTree{
		Kind:     KindObject,
		TypeName: "Outer",
		Properties: []Property{
			{Name: "id", Type: Basic("number")},
			{Name: "items", Type: &TypeTree{Kind: KindArray, TypeName: "Inner[]", ElementType: inner}},
		},
	}
}

func TestMemberDepth(t *testing.T) {
	assert.Equal(t, 0, MemberDepth(nil))
	assert.Equal(t, 0, MemberDepth(Basic("string")))
	assert.Equal(t, 2, MemberDepth(nestedObject()))

	union := &TypeTree{Kind: KindUnion, Types: []*TypeTree{Basic("null"), nestedObject()}}
	assert.Equal(t, 2, MemberDepth(union), "unions do not add member edges")
}

func TestHeight(t *testing.T) {
	assert.Equal(t, 1, Height(Basic("x")))
	// Outer -> items array -> Inner -> leaf
	assert.Equal(t, 4, Height(nestedObject()))
}

func TestWalk(t *testing.T) {
	var names []string
	Walk(nestedObject(), func(n *TypeTree) bool {
		names = append(names, n.TypeName)
		return n.Kind != KindArray
	})

	assert.Equal(t, []string{"Outer", "number", "Inner[]"}, names)
}

func TestChildren_Function(t *testing.T) {
	fn := &TypeTree{
		Kind: KindFunction,
		Signatures: []Signature{{
			Parameters: []Parameter{{Name: "a", Type: Basic("string")}},
			ReturnType: Basic("void"),
		}},
	}

	children := fn.Children()
	assert.Len(t, children, 2)
	assert.Equal(t, "void", children[1].TypeName)
}
