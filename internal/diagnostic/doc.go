// Package diagnostic provides structured warnings and errors about a
// project's configuration, such as skipped type names that do not resolve,
// together with "did you mean" suggestions.
package diagnostic
