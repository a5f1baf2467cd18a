package otpravka

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies where a failure originated.
type ErrorKind string

const (
	// KindValidation means the request was rejected locally, before any network call.
	KindValidation ErrorKind = "validation"
	// KindTransport means the call failed on the wire or the service answered non-2xx.
	KindTransport ErrorKind = "transport"
	// KindUnexpected covers everything else, e.g. an undecodable response body.
	KindUnexpected ErrorKind = "unexpected"
)

// Sentinel errors usable with errors.Is against any *APIError.
var (
	ErrValidation   = errors.New("validation failed")
	ErrTransport    = errors.New("transport failure")
	ErrUnexpected   = errors.New("unexpected failure")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
)

// APIError is the single error type returned by every Client operation.
type APIError struct {
	Kind       ErrorKind
	Operation  string
	Message    string
	StatusCode int             // 0 when no HTTP response was received
	Code       string          // first error code reported by the service, if any
	Data       json.RawMessage // raw error payload, if any
	Cause      error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	prefix := "otpravka"
	if e.Operation != "" {
		prefix += " " + e.Operation
	}
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Code)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", prefix, e.StatusCode, msg)
	}
	if e.Cause != nil && e.Kind != KindValidation && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", prefix, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is maps the error onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrUnexpected:
		return e.Kind == KindUnexpected
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code && e.StatusCode == t.StatusCode
}

func newError(kind ErrorKind, message string) *APIError {
	return &APIError{Kind: kind, Message: message}
}

// WithCause adds a cause to the error.
func (e *APIError) WithCause(err error) *APIError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *APIError) WithStatusCode(code int) *APIError {
	e.StatusCode = code
	return e
}

// WithData attaches the raw remote payload.
func (e *APIError) WithData(data []byte) *APIError {
	if len(data) > 0 {
		e.Data = append(json.RawMessage(nil), data...)
	}
	return e
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// remoteErrorBody covers the error envelopes the service is known to return.
type remoteErrorBody struct {
	ErrorCodes    []remoteErrorCode `json:"errorCodes"`
	ErrorCodesAlt []remoteErrorCode `json:"error-codes"`
	Code          string            `json:"code"`
	Desc          string            `json:"desc"`
	Message       string            `json:"message"`
	Error         string            `json:"error"`
}

type remoteErrorCode struct {
	ErrorCode   string `json:"errorCode"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Details     string `json:"details"`
}

// translateHTTPError builds the error for a non-2xx response.
func translateHTTPError(status int, body []byte) *APIError {
	apiErr := newError(KindTransport, fmt.Sprintf("request failed with status %d", status)).
		WithStatusCode(status).
		WithData(body)

	var payload remoteErrorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	entries := payload.ErrorCodes
	if len(entries) == 0 {
		entries = payload.ErrorCodesAlt
	}
	if len(entries) > 0 {
		first := entries[0]
		apiErr.Code = first.ErrorCode
		if apiErr.Code == "" {
			apiErr.Code = first.Code
		}
		switch {
		case first.Description != "":
			apiErr.Message = first.Description
		case first.Details != "":
			apiErr.Message = first.Details
		}
		return apiErr
	}

	apiErr.Code = payload.Code
	for _, msg := range []string{payload.Desc, payload.Message, payload.Error} {
		if msg != "" {
			apiErr.Message = msg
			break
		}
	}
	return apiErr
}
