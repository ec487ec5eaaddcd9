package api

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a get-by-id returned 404.
var ErrNotFound = errors.New("resource not found")

// APIError indicates the gateway answered with a non-2xx status.
// Body carries the response text when the server sent one.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("api: %s returned %d: %s", e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("api: %s returned %d", e.Path, e.Status)
}

// DecodeError indicates a response body did not match the expected
// shape for its collection.
type DecodeError struct {
	Collection string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: decode %s response: %v", e.Collection, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
