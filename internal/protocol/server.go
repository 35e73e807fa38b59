package protocol

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// MethodCompletion is the only method served.
const MethodCompletion = "completion"

// Error codes, following JSON-RPC.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeCancelled      = -32800
)

// Request is one line of the newline-delimited JSON-RPC stream.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response answers a Request.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError describes a failed request.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// maxLine bounds a single request line.
const maxLine = 4 << 20

// Serve reads requests from r, one JSON object per line, and writes one
// response line per request to w until r is exhausted or ctx is done.
func Serve(ctx context.Context, r io.Reader, w io.Writer, c Completer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	enc := json.NewEncoder(w)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := handle(ctx, line, c)
		if resp.Error != nil {
			logger.Debug("request failed", "code", resp.Error.Code, "error", resp.Error.Message)
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	return nil
}

func handle(ctx context.Context, line []byte, c Completer) Response {
	resp := Response{JSONRPC: "2.0"}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		resp.Error = &ResponseError{Code: CodeParseError, Message: err.Error()}
		return resp
	}

	resp.ID = req.ID

	if req.Method != MethodCompletion {
		resp.Error = &ResponseError{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown method %q", req.Method)}
		return resp
	}

	var params CompletionRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		resp.Error = &ResponseError{Code: CodeInvalidParams, Message: err.Error()}
		return resp
	}

	result, err := c.Completion(ctx, params)
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		resp.Error = &ResponseError{Code: CodeCancelled, Message: err.Error()}
	case err != nil:
		resp.Error = &ResponseError{Code: CodeInternalError, Message: err.Error()}
	default:
		resp.Result = result
	}

	return resp
}
