package typetree

import (
	"fmt"
	"slices"
)

// MaxNesting bounds the recursion of a single build, independent of
// MaxDepth. Depth-preserving steps (union operands, array elements,
// signatures) count against it too.
const MaxNesting = 64

// Options controls how much of a type is expanded.
type Options struct {
	// MaxDepth is the number of object-member levels expanded below the root.
	MaxDepth int `yaml:"maxDepth" json:"maxDepth"`
	// MaxProperties caps the members of the top-level object.
	MaxProperties int `yaml:"maxProperties" json:"maxProperties"`
	// MaxSubProperties caps the members of nested objects.
	MaxSubProperties int `yaml:"maxSubProperties" json:"maxSubProperties"`
	// MaxUnionMembers caps union operands.
	MaxUnionMembers int `yaml:"maxUnionMembers" json:"maxUnionMembers"`
	// MaxFunctionSignatures caps overloads.
	MaxFunctionSignatures int `yaml:"maxFunctionSignatures" json:"maxFunctionSignatures"`
	// SkippedTypeNames are rendered as references instead of being expanded.
	SkippedTypeNames []string `yaml:"skippedTypeNames" json:"skippedTypeNames"`
	// UnwrapArrays expands array element types; when false arrays are
	// references.
	UnwrapArrays bool `yaml:"unwrapArrays" json:"unwrapArrays"`
	// UnwrapFunctions expands call signatures; when false callables are
	// references.
	UnwrapFunctions bool `yaml:"unwrapFunctions" json:"unwrapFunctions"`
	// HidePrivateProperties filters out private, protected and
	// underscore-prefixed members.
	HidePrivateProperties bool `yaml:"hidePrivateProperties" json:"hidePrivateProperties"`
	// DisplayParts attaches tagged display fragments to every node.
	DisplayParts bool `yaml:"displayParts" json:"displayParts,omitempty"`
}

// DefaultSkippedTypeNames are built-in library types whose structure is
// rarely useful in a tooltip.
var DefaultSkippedTypeNames = []string{
	"Array",
	"ArrayBuffer",
	"Buffer",
	"Date",
	"Element",
	"Error",
	"Map",
	"Number",
	"RegExp",
	"Set",
	"String",
	"Symbol",
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxDepth:              2,
		MaxProperties:         100,
		MaxSubProperties:      10,
		MaxUnionMembers:       15,
		MaxFunctionSignatures: 5,
		SkippedTypeNames:      slices.Clone(DefaultSkippedTypeNames),
		UnwrapArrays:          true,
		UnwrapFunctions:       true,
		HidePrivateProperties: true,
	}
}

// Validate reports options that cannot produce a sensible tree.
func (o Options) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"maxDepth", o.MaxDepth},
		{"maxProperties", o.MaxProperties},
		{"maxSubProperties", o.MaxSubProperties},
		{"maxUnionMembers", o.MaxUnionMembers},
		{"maxFunctionSignatures", o.MaxFunctionSignatures},
	}

	for _, c := range checks {
		if c.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", c.name, c.value)
		}
	}

	return nil
}
