// internal/app/features/positions/crud.go
package positions

import (
	"context"
	"errors"
	"net/http"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	positionstore "github.com/nimble-la/stars/internal/app/store/positions"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createPositionRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	OrganizationID string `json:"organization_id"`
}

type updatePositionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// ServeList handles GET /positions.
//
// Admins see every position, optionally filtered by ?org=<id>. Client
// users always see only their own organization's positions.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		list []models.Position
		err  error
	)
	switch {
	case !apiutil.IsAdmin(r):
		orgID, ok := apiutil.SessionOrgID(r)
		if !ok {
			apiutil.Error(w, http.StatusForbidden, "forbidden")
			return
		}
		list, err = h.Positions.ListByOrg(ctx, orgID)
	case r.URL.Query().Get("org") != "":
		orgID, perr := primitive.ObjectIDFromHex(r.URL.Query().Get("org"))
		if perr != nil {
			apiutil.Error(w, http.StatusBadRequest, "invalid org filter")
			return
		}
		list, err = h.Positions.ListByOrg(ctx, orgID)
	default:
		list, err = h.Positions.List(ctx)
	}
	if err != nil {
		h.Log.Error("list positions failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, list)
}

// ServeView handles GET /positions/{id} and includes the position's
// pipeline rows.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Positions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "position not found")
			return
		}
		h.Log.Error("load position failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	if !h.canAccess(r, p) {
		apiutil.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	rows, err := h.CandidatePositions.ListByPosition(ctx, id)
	if err != nil {
		h.Log.Error("list pipeline rows failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	apiutil.RespondJSON(w, http.StatusOK, map[string]any{
		"position":   p,
		"candidates": rows,
	})
}

// HandleCreate handles POST /positions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPositionRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "invalid organization_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Orgs.GetByID(ctx, orgID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusBadRequest, "organization not found")
			return
		}
		h.Log.Error("load organization failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	p, err := h.Positions.Create(ctx, models.Position{
		Title:          req.Title,
		Description:    req.Description,
		OrganizationID: orgID,
	})
	if err != nil {
		if errors.Is(err, positionstore.ErrEmptyTitle) {
			apiutil.Error(w, http.StatusBadRequest, "position title is required")
			return
		}
		h.Log.Error("create position failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, p)
}

// HandleUpdate handles PUT /positions/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req updatePositionRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Positions.UpdateByID(ctx, id, positionstore.Update{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, positionstore.ErrEmptyTitle) {
			apiutil.Error(w, http.StatusBadRequest, "position title is required")
			return
		}
		h.Log.Error("update position failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	p, err := h.Positions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "position not found")
			return
		}
		h.Log.Error("load position failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, p)
}

// HandleStatus handles PUT /positions/{id}/status (open or closed).
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req statusRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status != models.PositionOpen && req.Status != models.PositionClosed {
		apiutil.Error(w, http.StatusBadRequest, `status must be "open" or "closed"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Positions.UpdateStatus(ctx, id, req.Status); err != nil {
		h.Log.Error("update position status failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// canAccess reports whether the request's user may view the position.
// Admins may view any position; clients only their own organization's.
func (h *Handler) canAccess(r *http.Request, p *models.Position) bool {
	if apiutil.IsAdmin(r) {
		return true
	}
	orgID, ok := apiutil.SessionOrgID(r)
	return ok && orgID == p.OrganizationID
}
