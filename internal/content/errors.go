package content

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest covers malformed requests other than disallowed
	// characters, which match validate.ErrDisallowed instead.
	ErrInvalidRequest = errors.New("content: invalid request")
	// ErrNetwork wraps transport failures.
	ErrNetwork = errors.New("content: network error")
	// ErrDecode wraps responses that do not match the expected shape.
	ErrDecode = errors.New("content: decode error")
)

// SupportHint is appended to every decode error.
const SupportHint = "If the issue persists, contact support@kinestex.com"

// APIError is a non-2xx response. Message is the envelope's message or
// error text, or a generic status line when the body could not be decoded.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content: %s", e.Message)
}

type decodeError struct {
	what string
	err  error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("content: decode %s: %v. %s", e.what, e.err, SupportHint)
}

func (e *decodeError) Unwrap() []error { return []error{ErrDecode, e.err} }
