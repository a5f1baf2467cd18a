package otpravka

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// decodeList coerces a response that may be a single object or an array
// into a slice: an object becomes a one-element slice, null an empty one.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, newError(KindUnexpected, "failed to decode response list").WithCause(err).WithData(trimmed)
		}
		return items, nil
	}

	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return nil, newError(KindUnexpected, "failed to decode response object").WithCause(err).WithData(trimmed)
	}
	return []T{item}, nil
}

// sendOne adapts a batch-only endpoint to a single record: it sends [req]
// and returns the first element of the response array.
func sendOne[Req, Resp any](ctx context.Context, c *Client, op, method, path string, req Req) (*Resp, error) {
	var out []Resp
	err := c.do(ctx, call{
		op:     op,
		method: method,
		path:   path,
		body:   []Req{req},
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &APIError{
			Kind:      KindUnexpected,
			Operation: op,
			Message:   "service returned an empty result list",
		}
	}
	return &out[0], nil
}

// postOne is sendOne for the POST endpoints.
func postOne[Req, Resp any](ctx context.Context, c *Client, op, path string, req Req) (*Resp, error) {
	return sendOne[Req, Resp](ctx, c, op, http.MethodPost, path, req)
}
