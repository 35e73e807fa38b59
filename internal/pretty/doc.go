// Package pretty reflows single-line type text into an indented block.
//
// Print works on text alone, so it also accepts strings produced by a
// checker rather than by package render. Running Print on its own output
// returns the output unchanged.
package pretty
