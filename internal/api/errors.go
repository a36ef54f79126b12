package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a platform error response. The body shape is {"error": "..."};
// when the body is absent or malformed the status text stands in.
type Error struct {
	Status    int
	Message   string
	RequestID string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("platform: %s (%d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is a 401 from the platform, meaning the
// stored session is missing, expired, or revoked.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the platform.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
