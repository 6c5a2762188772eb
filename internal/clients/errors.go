package clients

import (
	"errors"
	"fmt"
)

// StatusError reports a non-2xx answer from an upstream.
type StatusError struct {
	Service    string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %s returned status %d: %s", e.Service, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s returned status %d", e.Service, e.Path, e.StatusCode)
}

// IsStatus reports whether err carries an upstream status error.
func IsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
