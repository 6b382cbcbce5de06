package webusage

import (
	"errors"
	"fmt"
)

// Common errors returned by the webusage package.
var (
	// ErrNoCredentials is returned when no access token is configured.
	ErrNoCredentials = errors.New("remote usage credentials not configured")

	// ErrInvalidResponse is returned when the API response cannot be parsed.
	ErrInvalidResponse = errors.New("invalid remote usage response")
)

// HTTPError reports a non-200 response from the usage API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("usage API returned %d: %s", e.StatusCode, body)
}
