// Package cache provides a bounded, time-aware cache of expensive values,
// such as checker sessions keyed by project configuration.
package cache
