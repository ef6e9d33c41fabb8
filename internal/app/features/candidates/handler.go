// internal/app/features/candidates/handler.go
package candidates

import (
	candidatefilestore "github.com/nimble-la/stars/internal/app/store/candidatefiles"
	candidatepositionstore "github.com/nimble-la/stars/internal/app/store/candidatepositions"
	candidatestore "github.com/nimble-la/stars/internal/app/store/candidates"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for candidates.
type Handler struct {
	Candidates         *candidatestore.Store
	Files              *candidatefilestore.Store
	CandidatePositions *candidatepositionstore.Store
	Log                *zap.Logger
}

// NewHandler constructs a Candidates handler.
func NewHandler(cs *candidatestore.Store, fs *candidatefilestore.Store, cps *candidatepositionstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Candidates:         cs,
		Files:              fs,
		CandidatePositions: cps,
		Log:                logger,
	}
}
