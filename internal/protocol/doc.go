// Package protocol carries type-info requests through a completion request.
//
// A host that can only issue completion requests sends one whose trigger
// character is an object tagged with the Sentinel. The Adapter recognises
// it, answers with an empty completion list carrying the TypeInfo in an
// extra field, and hands every other request to the wrapped Completer
// unchanged.
package protocol
