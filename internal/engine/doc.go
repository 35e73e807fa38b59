// Package engine answers "what is the type at this position" requests.
//
// Failures are sorted into four outcomes. A position without a type and a
// checker fault (an error or a panic raised by the checker) both yield a
// nil TypeInfo and a nil error; faults are logged. Session construction
// failures are returned as *session.BuildError. Cancellation returns the
// context's error unwrapped.
package engine
