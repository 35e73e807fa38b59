// Package checker describes the type-checking capability the engine consumes.
//
// The engine never inspects a checker's internals: it asks questions about
// opaque Type handles (category flags, operands, members, signatures, type
// arguments, canonical strings) and about syntax nodes (which type and
// symbol sit at a node). Implementations live in package analyze (Go source
// through go/types) and package checker/fixture (in-memory type graphs).
package checker
