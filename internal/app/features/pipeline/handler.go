// internal/app/features/pipeline/handler.go
package pipeline

import (
	"context"
	"errors"
	"net/http"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	"github.com/nimble-la/stars/internal/app/store/activity"
	candidatepositionstore "github.com/nimble-la/stars/internal/app/store/candidatepositions"
	commentstore "github.com/nimble-la/stars/internal/app/store/comments"
	positionstore "github.com/nimble-la/stars/internal/app/store/positions"
	"github.com/nimble-la/stars/internal/app/system/pipeline"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the recruiting pipeline:
// assignments, stage moves, comments, and the audit trail.
type Handler struct {
	Pipeline           *pipeline.Service
	CandidatePositions *candidatepositionstore.Store
	Positions          *positionstore.Store
	Comments           *commentstore.Store
	Activity           *activity.Store
	Log                *zap.Logger
}

// NewHandler constructs a pipeline handler.
func NewHandler(ps *pipeline.Service, cps *candidatepositionstore.Store, pos *positionstore.Store, cs *commentstore.Store, act *activity.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Pipeline:           ps,
		CandidatePositions: cps,
		Positions:          pos,
		Comments:           cs,
		Activity:           act,
		Log:                logger,
	}
}

// loadScoped fetches a pipeline row and verifies the request's user may
// touch it. Admins may touch any row; clients only rows whose position
// belongs to their organization.
func (h *Handler) loadScoped(ctx context.Context, r *http.Request, w http.ResponseWriter) (*models.CandidatePosition, bool) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	cp, err := h.CandidatePositions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "assignment not found")
			return nil, false
		}
		h.Log.Error("load assignment failed", zap.Error(err))
		apiutil.ServerError(w)
		return nil, false
	}

	if !apiutil.IsAdmin(r) {
		orgID, ok := apiutil.SessionOrgID(r)
		if !ok {
			apiutil.Error(w, http.StatusForbidden, "forbidden")
			return nil, false
		}
		p, err := h.Positions.GetByID(ctx, cp.PositionID)
		if err != nil {
			h.Log.Error("load position failed", zap.Error(err))
			apiutil.ServerError(w)
			return nil, false
		}
		if p.OrganizationID != orgID {
			apiutil.Error(w, http.StatusForbidden, "forbidden")
			return nil, false
		}
	}
	return cp, true
}
