// internal/app/features/organizations/crud.go
package organizations

import (
	"context"
	"errors"
	"net/http"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	organizationstore "github.com/nimble-la/stars/internal/app/store/organizations"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type orgRequest struct {
	Name         string `json:"name"`
	LogoURL      string `json:"logo_url"`
	PrimaryColor string `json:"primary_color"`
}

// ServeList handles GET /organizations.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	orgs, err := h.Orgs.List(ctx)
	if err != nil {
		h.Log.Error("list organizations failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, orgs)
}

// ServeView handles GET /organizations/{id} and includes the org's
// client users.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "organization not found")
			return
		}
		h.Log.Error("load organization failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	members, err := h.Users.ListByOrg(ctx, id)
	if err != nil {
		h.Log.Error("list organization users failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	apiutil.RespondJSON(w, http.StatusOK, map[string]any{
		"organization": org,
		"users":        members,
	})
}

// HandleCreate handles POST /organizations.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req orgRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.Create(ctx, models.Organization{
		Name:         req.Name,
		LogoURL:      req.LogoURL,
		PrimaryColor: req.PrimaryColor,
	})
	if err != nil {
		if errors.Is(err, organizationstore.ErrEmptyName) {
			apiutil.Error(w, http.StatusBadRequest, "organization name is required")
			return
		}
		if errors.Is(err, organizationstore.ErrDuplicateOrganization) {
			apiutil.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("create organization failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, org)
}

// HandleUpdate handles PUT /organizations/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req orgRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Orgs.UpdateByID(ctx, id, organizationstore.Update{
		Name:         req.Name,
		LogoURL:      req.LogoURL,
		PrimaryColor: req.PrimaryColor,
	})
	if err != nil {
		if errors.Is(err, organizationstore.ErrEmptyName) {
			apiutil.Error(w, http.StatusBadRequest, "organization name is required")
			return
		}
		h.Log.Error("update organization failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "organization not found")
			return
		}
		h.Log.Error("load organization failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, org)
}

// HandleDelete handles DELETE /organizations/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Orgs.DeleteByID(ctx, id)
	if err != nil {
		h.Log.Error("delete organization failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	if n == 0 {
		apiutil.Error(w, http.StatusNotFound, "organization not found")
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
