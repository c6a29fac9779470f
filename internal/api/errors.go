// Package api implements the client for the Finance Tracker REST backend.
package api

import (
	"fmt"
	"net/http"
	"sort"
)

// ErrorKind buckets a failed request for presentation. A shape mismatch in a
// successful response is deliberately not represented here: it normalizes to
// empty data, never to an error.
type ErrorKind int

const (
	// KindNetwork means no HTTP response was obtained at all.
	KindNetwork ErrorKind = iota
	// KindAuth is a 401; the session has been invalidated.
	KindAuth
	// KindForbidden is a 403.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindValidation is a 422 with optional field-level messages.
	KindValidation
	// KindRateLimit is a 429.
	KindRateLimit
	// KindServer is any 5xx.
	KindServer
	// KindUnexpected covers everything else.
	KindUnexpected
)

// Error is the typed failure returned by every client call. Message is safe
// to show to the user verbatim.
type Error struct {
	Err     error
	Fields  map[string][]string
	Message string
	Kind    ErrorKind
	Status  int
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FieldMessages flattens validation errors into a deterministic list.
func (e *Error) FieldMessages() []string {
	if len(e.Fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var messages []string
	for _, k := range keys {
		messages = append(messages, e.Fields[k]...)
	}
	return messages
}

// networkError wraps a transport-level failure.
func networkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "Network error. Please check your internet connection.",
		Err:     err,
	}
}

// statusError maps an HTTP status to the user-facing message the web client
// showed for it. serverMessage is the backend's own message field, used when
// it beats the generic text.
func statusError(status int, serverMessage string, fields map[string][]string) *Error {
	e := &Error{Status: status, Fields: fields}
	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindAuth
		e.Message = "Session expired. Please login again."
	case status == http.StatusForbidden:
		e.Kind = KindForbidden
		e.Message = "Access denied. You do not have permission to perform this action."
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
		e.Message = "Resource not found."
	case status == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
		e.Message = serverMessage
		if e.Message == "" {
			e.Message = "Validation error occurred."
		}
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimit
		e.Message = "Too many requests. Please try again later."
	case status >= 500:
		e.Kind = KindServer
		e.Message = "Server error. Please try again later."
	default:
		e.Kind = KindUnexpected
		e.Message = serverMessage
		if e.Message == "" {
			e.Message = "An unexpected error occurred."
		}
	}
	return e
}
