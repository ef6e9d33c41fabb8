// internal/app/features/candidates/crud.go
package candidates

import (
	"context"
	"errors"
	"net/http"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	candidatestore "github.com/nimble-la/stars/internal/app/store/candidates"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type candidateRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	CurrentRole    string `json:"current_role"`
	CurrentCompany string `json:"current_company"`
	Summary        string `json:"summary"`
}

// ServeList handles GET /candidates with optional ?q= name search.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Candidates.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.Log.Error("search candidates failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, list)
}

// ServeView handles GET /candidates/{id} and includes stored files and
// pipeline assignments.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "candidate not found")
			return
		}
		h.Log.Error("load candidate failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	files, err := h.Files.ListByCandidate(ctx, id)
	if err != nil {
		h.Log.Error("list candidate files failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	assignments, err := h.CandidatePositions.ListByCandidate(ctx, id)
	if err != nil {
		h.Log.Error("list candidate assignments failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	apiutil.RespondJSON(w, http.StatusOK, map[string]any{
		"candidate":   c,
		"files":       files,
		"assignments": assignments,
	})
}

// HandleCreate handles POST /candidates (manual creation, as opposed to
// importing from Manatal).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Candidates.Create(ctx, models.Candidate{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		CurrentRole:    req.CurrentRole,
		CurrentCompany: req.CurrentCompany,
		Summary:        req.Summary,
	})
	if err != nil {
		if errors.Is(err, candidatestore.ErrEmptyFullName) {
			apiutil.Error(w, http.StatusBadRequest, "candidate full name is required")
			return
		}
		h.Log.Error("create candidate failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, c)
}

// HandleUpdate handles PUT /candidates/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req candidateRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Candidates.UpdateByID(ctx, id, candidatestore.Update{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		CurrentRole:    req.CurrentRole,
		CurrentCompany: req.CurrentCompany,
		Summary:        req.Summary,
	})
	if err != nil {
		if errors.Is(err, candidatestore.ErrEmptyFullName) {
			apiutil.Error(w, http.StatusBadRequest, "candidate full name is required")
			return
		}
		h.Log.Error("update candidate failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	c, err := h.Candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "candidate not found")
			return
		}
		h.Log.Error("load candidate failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, c)
}
