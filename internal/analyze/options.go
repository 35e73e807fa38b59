package analyze

import (
	"slices"

	"prettify-type/internal/typetree"
)

// DefaultSkippedTypeNames replaces typetree.DefaultSkippedTypeNames for Go
// projects. The TypeScript list names built-ins such as Number or Map that
// would hide Go types declared with the same names. Struct and interface
// types from outside the loaded packages already render by name.
var DefaultSkippedTypeNames = []string{
	"error",
}

// DefaultOptions returns typetree.DefaultOptions with the Go skip list.
func DefaultOptions() typetree.Options {
	return WithGoDefaults(typetree.DefaultOptions())
}

// WithGoDefaults swaps the TypeScript default skip list in opts for the Go
// one. A list that differs from the TypeScript default was configured on
// purpose and is kept.
func WithGoDefaults(opts typetree.Options) typetree.Options {
	if slices.Equal(opts.SkippedTypeNames, typetree.DefaultSkippedTypeNames) {
		opts.SkippedTypeNames = slices.Clone(DefaultSkippedTypeNames)
	}

	return opts
}
