// Package typetree projects a checker type onto a finite tree.Tree.
//
// The projection is bounded three ways: a member depth (Options.MaxDepth)
// counted across object members, per-kind caps on union members, object
// members and call signatures, and a hard nesting ceiling that bounds every
// recursion step. A branch-scoped visited set turns cycles into terminal
// nodes, so building terminates for any graph the checker can describe,
// including graphs that mint a fresh handle on every step.
package typetree
