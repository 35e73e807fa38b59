package tree

import (
	"fmt"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the structural shape of a TypeTree node.
type Kind int

const (
	_ Kind = iota // skip zero value, an unset Kind is invalid

	KindBasic        // basic
	KindReference    // reference
	KindUnion        // union
	KindIntersection // intersection
	KindObject       // object
	KindArray        // array
	KindTuple        // tuple
	KindFunction     // function
	KindPromise      // promise
	KindEnum         // enum
	KindGeneric      // generic
)

// kindCount is one past the last valid Kind.
const kindCount = KindGeneric + 1

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return k > 0 && k < kindCount
}

// IsTerminal reports whether nodes of this kind never have children.
func (k Kind) IsTerminal() bool {
	switch k {
	case KindBasic, KindReference, KindEnum:
		return true
	default:
		return false
	}
}

// MarshalText encodes the kind by name so JSON payloads read "kind": "union".
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// ParseKind returns the Kind with the given name. "primitive" is accepted as
// an alias of "basic".
func ParseKind(name string) (Kind, error) {
	if name == "primitive" {
		return KindBasic, nil
	}

	for k := KindBasic; k < kindCount; k++ {
		if k.String() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown type tree kind %q", name)
}
