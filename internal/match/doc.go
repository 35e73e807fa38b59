// Package match ranks names by similarity. It backs the "did you mean"
// suggestions attached to configuration diagnostics.
//
// Key functions:
//   - Levenshtein: edit distance between two names
//   - Fold: case- and separator-insensitive form of a name
//   - Suggest: closest candidates for a misspelled name
package match
