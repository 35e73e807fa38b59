// Package render turns trees into declaration text.
//
// Stringify produces single-line text, Parts and DisplayParts produce tagged
// fragments of the same text, and Declaration prefixes the text with a
// keyword derived from the declaration kind and reflows it with the pretty
// printer.
package render
