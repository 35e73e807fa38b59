package protocol

import (
	"encoding/json"

	"prettify-type/internal/tree"
)

// Sentinel tags a type-info request.
const Sentinel = "prettify-type-info-request"

// ResponseField is the out-of-band field carrying the TypeInfo.
const ResponseField = "__prettifyResponse"

// CompletionRequest asks for completions at an offset of a file.
type CompletionRequest struct {
	File     string `json:"file"`
	Position int    `json:"position"`
	// TriggerCharacter is normally a string such as "."; a type-info
	// request puts a TypeInfoRequest object here instead.
	TriggerCharacter json.RawMessage `json:"triggerCharacter,omitempty"`
}

// TypeInfoRequest is the object smuggled in the trigger field.
type TypeInfoRequest struct {
	ID string `json:"id"`
	// Options are decoded over the adapter's defaults, so a request only
	// needs to carry the fields it changes.
	Options json.RawMessage `json:"options,omitempty"`
}

// CompletionEntry is one completion item.
type CompletionEntry struct {
	Name     string `json:"name"`
	Kind     string `json:"kind,omitempty"`
	SortText string `json:"sortText,omitempty"`
}

// CompletionResponse is a completion list, optionally carrying a TypeInfo.
type CompletionResponse struct {
	IsGlobalCompletion      bool              `json:"isGlobalCompletion"`
	IsMemberCompletion      bool              `json:"isMemberCompletion"`
	IsNewIdentifierLocation bool              `json:"isNewIdentifierLocation"`
	Entries                 []CompletionEntry `json:"entries"`

	// TypeInfo answers a type-info request. It is nil for ordinary
	// completions and when the position has no type.
	TypeInfo *tree.TypeInfo `json:"__prettifyResponse,omitempty"`
}

// ParseTypeInfoRequest reports whether trigger is a type-info request and
// returns it. Strings, other objects and malformed JSON are not.
func ParseTypeInfoRequest(trigger json.RawMessage) (*TypeInfoRequest, bool) {
	if len(trigger) == 0 || trigger[0] != '{' {
		return nil, false
	}

	var req TypeInfoRequest
	if err := json.Unmarshal(trigger, &req); err != nil || req.ID != Sentinel {
		return nil, false
	}

	return &req, true
}
