package containers

import (
	"errors"
	"fmt"
)

// Error kinds reported by a Source. Both are terminal for the load attempt.
var (
	ErrNetwork = errors.New("network error")
	ErrDecode  = errors.New("decode error")
)

// NetworkError reports a transport failure or an error status from the API.
type NetworkError struct {
	URL    string
	Status int // zero when no response was received
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api %s returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}

// DecodeError reports a payload that does not match the record shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}
