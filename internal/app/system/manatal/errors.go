// internal/app/system/manatal/errors.go
package manatal

import (
	"errors"
	"fmt"
)

// Typed error conditions for the Manatal API. Handlers branch on these
// instead of matching message text.
var (
	// ErrNotConfigured means no API key was provided.
	ErrNotConfigured = errors.New("manatal API key is not configured")

	// ErrInvalidCredential maps a 401 response.
	ErrInvalidCredential = errors.New("invalid Manatal API key")

	// ErrNotFound maps a 404 response.
	ErrNotFound = errors.New("candidate not found in Manatal")

	// ErrRateLimited maps a 429 response.
	ErrRateLimited = errors.New("rate limited by Manatal, try again later")

	// ErrTimeout means the request exceeded the client timeout.
	ErrTimeout = errors.New("manatal API request timed out")
)

// ProviderError is any other non-2xx response.
type ProviderError struct {
	Status int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("manatal API error: %d", e.Status)
}
