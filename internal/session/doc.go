// Package session manages checker sessions, one per project configuration.
//
// A Manager keeps sessions in a bounded LRU cache keyed by the absolute
// path of the configuration file. A session remembers the modification time
// of that file and is rebuilt when the file changes. Skipped type names from
// the builder options are validated once per build; names that do not
// resolve are dropped and reported as diagnostics.
package session
