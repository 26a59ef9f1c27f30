package domain

import "errors"

// ErrEmptyPrompt rejects a request before any model call or telemetry
// emission happens.
var ErrEmptyPrompt = errors.New("prompt is required")

// RequestError wraps a request failure together with the request ID that was
// assigned before the failure, so the transport layer can build the
// {error, request_id} envelope. The wrapped error text is surfaced to the
// caller as-is.
type RequestError struct {
	RequestID string
	Err       error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
