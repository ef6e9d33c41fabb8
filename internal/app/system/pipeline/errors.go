// internal/app/system/pipeline/errors.go
package pipeline

import "errors"

// Typed failures callers can branch on. HTTP handlers map these to
// status codes; nothing in the service layer matches on message text.
var (
	// ErrNotFound covers a missing user, candidate, position, or
	// candidate-position record.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateAssignment means the candidate is already assigned
	// to the position.
	ErrDuplicateAssignment = errors.New("candidate already assigned to this position")

	// ErrInvalidStage means the requested stage is not one of the
	// four pipeline stages.
	ErrInvalidStage = errors.New("invalid pipeline stage")

	// ErrInvalidInput covers empty or malformed caller input, such as
	// a blank comment body.
	ErrInvalidInput = errors.New("invalid input")
)
