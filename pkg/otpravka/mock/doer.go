// Package mock provides an in-memory transport for exercising otpravka.Client
// without a network.
package mock

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Call is one request seen by the Doer.
type Call struct {
	Method  string
	Path    string
	RawPath string // escaped form of Path
	Query   url.Values
	Header  http.Header
	Body    []byte
}

// JSON decodes the recorded body into v.
func (c Call) JSON(v any) error {
	return json.Unmarshal(c.Body, v)
}

// Doer is a mock implementation of otpravka.HTTPDoer.
//
// Without hooks it answers like a permissive service: clean endpoints and the
// backlog PUT echo their batch back, everything else returns null.
type Doer struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	// OnDo replaces the default response when set.
	OnDo func(req *http.Request, body []byte) (*http.Response, error)

	mu     sync.Mutex
	calls  []Call
	nextID int64
}

// NewDoer creates a mock doer with default behavior.
func NewDoer() *Doer {
	return &Doer{nextID: 1000}
}

// Do records the request and produces a response.
func (d *Doer) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		body = b
	}

	d.mu.Lock()
	d.calls = append(d.calls, Call{
		Method:  req.Method,
		Path:    req.URL.Path,
		RawPath: req.URL.EscapedPath(),
		Query:   req.URL.Query(),
		Header:  req.Header.Clone(),
		Body:    body,
	})
	d.mu.Unlock()

	if d.SimulateLatency > 0 {
		select {
		case <-time.After(d.SimulateLatency):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	if d.SimulateErrors {
		return JSONResponse(http.StatusInternalServerError, map[string]any{
			"errorCodes": []map[string]string{
				{"errorCode": "MOCK_ERROR", "description": "Simulated API error"},
			},
		})
	}

	if d.OnDo != nil {
		return d.OnDo(req, body)
	}
	return d.defaultResponse(req, body)
}

// Calls returns a copy of every recorded request.
func (d *Doer) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// CallCount returns the number of recorded requests.
func (d *Doer) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

// LastCall returns the most recent request, or false when there is none.
func (d *Doer) LastCall() (Call, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.calls) == 0 {
		return Call{}, false
	}
	return d.calls[len(d.calls)-1], true
}

// Reset forgets recorded requests.
func (d *Doer) Reset() {
	d.mu.Lock()
	d.calls = nil
	d.mu.Unlock()
}

func (d *Doer) defaultResponse(req *http.Request, body []byte) (*http.Response, error) {
	path := req.URL.Path
	switch {
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/1.0/clean/"):
		return d.echoBatch(body, func(item map[string]any) {
			if _, ok := item["quality-code"]; !ok {
				item["quality-code"] = "GOOD"
			}
		})
	case req.Method == http.MethodPut && path == "/1.0/user/backlog":
		return d.echoBatch(body, func(item map[string]any) {
			if _, ok := item["id"]; !ok {
				item["id"] = d.allocateID()
			}
		})
	case strings.HasPrefix(path, "/1.0/forms/"):
		return RawResponse(http.StatusOK, "application/pdf", []byte("%PDF-1.4 mock form data")), nil
	}
	return RawResponse(http.StatusOK, "application/json", []byte("null")), nil
}

func (d *Doer) echoBatch(body []byte, fill func(map[string]any)) (*http.Response, error) {
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		return JSONResponse(http.StatusBadRequest, map[string]string{"code": "BAD_REQUEST", "desc": err.Error()})
	}
	for _, item := range items {
		fill(item)
	}
	return JSONResponse(http.StatusOK, items)
}

func (d *Doer) allocateID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	return d.nextID
}

// JSONResponse builds a response with v marshalled as the body.
func JSONResponse(status int, v any) (*http.Response, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return RawResponse(status, "application/json;charset=UTF-8", payload), nil
}

// RawResponse builds a response with the given body.
func RawResponse(status int, contentType string, body []byte) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", contentType)
	header.Set("X-Request-Id", uuid.NewString())
	return &http.Response{
		StatusCode:    status,
		Status:        http.StatusText(status),
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}
