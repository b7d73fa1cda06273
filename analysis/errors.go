// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPayload  = errors.New("empty analysis payload")
	ErrEmptyEndpoint = errors.New("analysis endpoint cannot be empty")

	// ErrMalformedVerdict wraps a 2xx answer whose body is not a verdict.
	ErrMalformedVerdict = errors.New("malformed verdict")
)

// StatusError is a non-2xx answer from the gateway.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analysis gateway returned %d", e.StatusCode)
	}
	return fmt.Sprintf("analysis gateway returned %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether repeating the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500
}
