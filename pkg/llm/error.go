// Package llm provides internal representations of LLM inference API
// requests and responses, plus a streaming client for the generate endpoint.
package llm

import "fmt"

// ErrorResponse represents an error from the LLM API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BackendUnavailableError indicates the inference backend could not serve
// the request: connection refused, timeout, or a non-2xx response.
type BackendUnavailableError struct {
	Endpoint string
	Status   int    // zero when the request never completed
	Body     string // response body for non-2xx, if any
	Err      error  // underlying transport error, if any
}

func (e *BackendUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend unavailable: %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("backend unavailable: %s returned %d: %s", e.Endpoint, e.Status, e.Body)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

// MalformedChunkError indicates a stream line was not valid JSON.
// The stream stops at the offending line; it is never skipped.
type MalformedChunkError struct {
	Line string
	Err  error
}

func (e *MalformedChunkError) Error() string {
	return fmt.Sprintf("malformed chunk %q: %v", e.Line, e.Err)
}

func (e *MalformedChunkError) Unwrap() error { return e.Err }
