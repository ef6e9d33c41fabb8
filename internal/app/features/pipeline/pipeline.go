// internal/app/features/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"net/http"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	syspipeline "github.com/nimble-la/stars/internal/app/system/pipeline"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type assignRequest struct {
	CandidateID string `json:"candidate_id"`
	PositionID  string `json:"position_id"`
}

type stageRequest struct {
	Stage string `json:"stage"`
}

type commentRequest struct {
	Body string `json:"body"`
}

// HandleAssign handles POST /pipeline/assign. Admin-only; assigning a
// candidate notifies the organization's client users.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	candidateID, err := primitive.ObjectIDFromHex(req.CandidateID)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "invalid candidate_id")
		return
	}
	positionID, err := primitive.ObjectIDFromHex(req.PositionID)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "invalid position_id")
		return
	}
	actorID, ok := apiutil.SessionUserID(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cp, err := h.Pipeline.AssignCandidate(ctx, candidateID, positionID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, syspipeline.ErrNotFound):
			apiutil.Error(w, http.StatusNotFound, "candidate or position not found")
		case errors.Is(err, syspipeline.ErrDuplicateAssignment):
			apiutil.Error(w, http.StatusConflict, "candidate is already assigned to this position")
		default:
			h.Log.Error("assign candidate failed", zap.Error(err))
			apiutil.ServerError(w)
		}
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, cp)
}

// HandleStage handles PUT /pipeline/{id}/stage. Any stage-to-stage move
// is allowed, including re-selecting the current stage; every move is
// audited and fanned out.
func (h *Handler) HandleStage(w http.ResponseWriter, r *http.Request) {
	var req stageRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	actorID, ok := apiutil.SessionUserID(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cp, ok := h.loadScoped(ctx, r, w)
	if !ok {
		return
	}

	if err := h.Pipeline.ChangeStage(ctx, cp.ID, req.Stage, actorID); err != nil {
		switch {
		case errors.Is(err, syspipeline.ErrInvalidStage):
			apiutil.Error(w, http.StatusBadRequest, "invalid stage")
		case errors.Is(err, syspipeline.ErrNotFound):
			apiutil.Error(w, http.StatusNotFound, "assignment not found")
		default:
			h.Log.Error("change stage failed", zap.Error(err))
			apiutil.ServerError(w)
		}
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, map[string]string{"stage": req.Stage})
}

// ServeView handles GET /pipeline/{id}: the row plus its comments and
// activity trail.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cp, ok := h.loadScoped(ctx, r, w)
	if !ok {
		return
	}

	comments, err := h.Comments.ListByCandidatePosition(ctx, cp.ID)
	if err != nil {
		h.Log.Error("list comments failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	trail, err := h.Activity.ListByCandidatePosition(ctx, cp.ID)
	if err != nil {
		h.Log.Error("list activity failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	apiutil.RespondJSON(w, http.StatusOK, map[string]any{
		"assignment": cp,
		"comments":   comments,
		"activity":   trail,
	})
}

// HandleComment handles POST /pipeline/{id}/comments.
func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	actorID, ok := apiutil.SessionUserID(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cp, ok := h.loadScoped(ctx, r, w)
	if !ok {
		return
	}

	c, err := h.Pipeline.AddComment(ctx, cp.ID, req.Body, actorID)
	if err != nil {
		switch {
		case errors.Is(err, syspipeline.ErrInvalidInput):
			apiutil.Error(w, http.StatusBadRequest, "comment body must not be empty")
		case errors.Is(err, syspipeline.ErrNotFound):
			apiutil.Error(w, http.StatusNotFound, "assignment not found")
		default:
			h.Log.Error("add comment failed", zap.Error(err))
			apiutil.ServerError(w)
		}
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, c)
}

// ServeComments handles GET /pipeline/{id}/comments.
func (h *Handler) ServeComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cp, ok := h.loadScoped(ctx, r, w)
	if !ok {
		return
	}

	comments, err := h.Comments.ListByCandidatePosition(ctx, cp.ID)
	if err != nil {
		h.Log.Error("list comments failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, comments)
}

// ServeActivity handles GET /pipeline/{id}/activity.
func (h *Handler) ServeActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cp, ok := h.loadScoped(ctx, r, w)
	if !ok {
		return
	}

	trail, err := h.Activity.ListByCandidatePosition(ctx, cp.ID)
	if err != nil {
		h.Log.Error("list activity failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, trail)
}

// ServeByStage handles GET /pipeline?stage=<stage>. Admin-only; an
// empty stage filter is rejected rather than dumping every row.
func (h *Handler) ServeByStage(w http.ResponseWriter, r *http.Request) {
	stage := r.URL.Query().Get("stage")
	if !models.ValidStage(stage) {
		apiutil.Error(w, http.StatusBadRequest, "invalid stage")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.CandidatePositions.ListByStage(ctx, stage)
	if err != nil {
		h.Log.Error("list by stage failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, rows)
}

// ServeRecentActivity handles GET /pipeline/activity/recent, the
// admin dashboard feed.
func (h *Handler) ServeRecentActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	trail, err := h.Activity.Recent(ctx, 50)
	if err != nil {
		h.Log.Error("list recent activity failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, trail)
}
