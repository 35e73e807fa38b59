package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prettify-type/internal/engine"
	"prettify-type/internal/tree"
	"prettify-type/internal/typetree"
)

type stubProvider struct {
	got  []engine.Request
	info *tree.TypeInfo
	err  error
}

func (s *stubProvider) TypeInfoAt(_ context.Context, req engine.Request) (*tree.TypeInfo, error) {
	s.got = append(s.got, req)
	return s.info, s.err
}

type recordingCompleter struct {
	calls []CompletionRequest
}

func (r *recordingCompleter) Completion(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	r.calls = append(r.calls, req)

	return &CompletionResponse{Entries: []CompletionEntry{{Name: "toString", Kind: "method"}}}, nil
}

func TestParseTypeInfoRequest(t *testing.T) {
	tests := []struct {
		name    string
		trigger string
		want    bool
	}{
		{"absent", "", false},
		{"character", `"."`, false},
		{"other object", `{"id":"something-else"}`, false},
		{"malformed", `{"id":`, false},
		{"sentinel", `{"id":"prettify-type-info-request"}`, true},
		{"sentinel with options", `{"id":"prettify-type-info-request","options":{"maxDepth":1}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseTypeInfoRequest(json.RawMessage(tt.trigger))
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestAdapter_InterceptsSentinel(t *testing.T) {
	info := &tree.TypeInfo{TypeTree: tree.Basic("string"), SyntaxKind: "VariableDeclaration", Name: "s"}
	provider := &stubProvider{info: info}
	next := &recordingCompleter{}

	a := NewAdapter(next, provider, typetree.DefaultOptions(), nil)

	resp, err := a.Completion(context.Background(), CompletionRequest{
		File:             "/src/main.ts",
		Position:         42,
		TriggerCharacter: json.RawMessage(`{"id":"prettify-type-info-request","options":{"maxDepth":4,"unwrapArrays":false}}`),
	})
	require.NoError(t, err)

	assert.Empty(t, next.calls, "sentinel requests are not delegated")
	assert.Same(t, info, resp.TypeInfo)
	assert.Empty(t, resp.Entries)

	require.Len(t, provider.got, 1)
	req := provider.got[0]
	assert.Equal(t, "/src/main.ts", req.Path)
	assert.Equal(t, 42, req.Start)
	assert.Equal(t, 42, req.End)
	require.NotNil(t, req.Options)
	assert.Equal(t, 4, req.Options.MaxDepth)
	assert.False(t, req.Options.UnwrapArrays)
	assert.True(t, req.Options.UnwrapFunctions)
	assert.Equal(t, 100, req.Options.MaxProperties)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"`+ResponseField+`":{"typeTree":{"kind":"basic","typeName":"string"}`)
}

func TestAdapter_DelegatesOtherTriggers(t *testing.T) {
	provider := &stubProvider{}
	next := &recordingCompleter{}
	a := NewAdapter(next, provider, typetree.DefaultOptions(), nil)

	for _, trigger := range []string{"", `"."`, `{"id":"other"}`} {
		req := CompletionRequest{File: "a.ts", Position: 1, TriggerCharacter: json.RawMessage(trigger)}

		resp, err := a.Completion(context.Background(), req)
		require.NoError(t, err)
		assert.Nil(t, resp.TypeInfo)
		assert.Len(t, resp.Entries, 1)
	}

	assert.Len(t, next.calls, 3)
	assert.Empty(t, provider.got)
}

func TestAdapter_NoResult(t *testing.T) {
	a := NewAdapter(NoCompletions, &stubProvider{}, typetree.DefaultOptions(), nil)

	resp, err := a.Completion(context.Background(), CompletionRequest{
		TriggerCharacter: json.RawMessage(`{"id":"prettify-type-info-request"}`),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.TypeInfo)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(data), ResponseField)
}

func TestAdapter_Errors(t *testing.T) {
	boom := errors.New("boom")
	a := NewAdapter(NoCompletions, &stubProvider{err: boom}, typetree.DefaultOptions(), nil)

	_, err := a.Completion(context.Background(), CompletionRequest{
		TriggerCharacter: json.RawMessage(`{"id":"prettify-type-info-request"}`),
	})
	require.ErrorIs(t, err, boom)

	_, err = a.Completion(context.Background(), CompletionRequest{
		TriggerCharacter: json.RawMessage(`{"id":"prettify-type-info-request","options":{"maxDepth":"deep"}}`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type info request options")
}

func TestAdapter_DefaultsNotShared(t *testing.T) {
	defaults := typetree.DefaultOptions()
	provider := &stubProvider{}
	a := NewAdapter(NoCompletions, provider, defaults, nil)

	_, err := a.Completion(context.Background(), CompletionRequest{
		TriggerCharacter: json.RawMessage(`{"id":"prettify-type-info-request","options":{"skippedTypeNames":["Foo"]}}`),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Foo"}, provider.got[0].Options.SkippedTypeNames)
	assert.Equal(t, typetree.DefaultSkippedTypeNames, defaults.SkippedTypeNames)
}
