// Package tree defines the TypeTree: a bounded, acyclic and serializable
// projection of a type reported by a type checker.
//
// Key types:
//   - Kind: closed enumeration of structural shapes (basic, union, object, ...)
//   - TypeTree: one node; only the fields relevant to its Kind are set
//   - Property, Signature, Parameter: object members and call signatures
//   - DisplayPart: a (text, kind) fragment for rich rendering
//
// TypeTree values are built once by package typetree and never mutated afterwards.
package tree
