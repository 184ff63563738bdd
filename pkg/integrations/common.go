package integrations

import (
	"errors"
	"net/http"
	"time"

	pferrors "github.com/matzehuels/pawfetch/pkg/errors"
)

var (
	// ErrNotFound is returned when the service answers 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (connection errors, timeouts, non-OK statuses).
	ErrNetwork = errors.New("network error")

	// ErrMalformed is returned when a response body does not have the shape a client expects.
	ErrMalformed = errors.New("malformed response")
)

// NewHTTPClient creates an HTTP client for service requests.
// A zero timeout means requests are never cut short; a hung service then
// keeps the caller waiting until its context ends.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// UserAgent builds the User-Agent header sent to every service.
func UserAgent(version string) string {
	return "pawfetch/" + version + " (https://github.com/matzehuels/pawfetch)"
}

// Code maps a client error to its error code.
// Errors that did not come from a client are [pferrors.ErrCodeInternal].
func Code(err error) pferrors.Code {
	switch {
	case errors.Is(err, ErrMalformed):
		return pferrors.ErrCodeMalformedResponse
	case errors.Is(err, ErrNotFound):
		return pferrors.ErrCodeNotFound
	case errors.Is(err, ErrNetwork):
		return pferrors.ErrCodeNetwork
	default:
		return pferrors.ErrCodeInternal
	}
}
