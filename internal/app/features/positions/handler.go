// internal/app/features/positions/handler.go
package positions

import (
	candidatepositionstore "github.com/nimble-la/stars/internal/app/store/candidatepositions"
	organizationstore "github.com/nimble-la/stars/internal/app/store/organizations"
	positionstore "github.com/nimble-la/stars/internal/app/store/positions"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for positions.
type Handler struct {
	Positions          *positionstore.Store
	Orgs               *organizationstore.Store
	CandidatePositions *candidatepositionstore.Store
	Log                *zap.Logger
}

// NewHandler constructs a Positions handler.
func NewHandler(ps *positionstore.Store, orgs *organizationstore.Store, cps *candidatepositionstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Positions:          ps,
		Orgs:               orgs,
		CandidatePositions: cps,
		Log:                logger,
	}
}
