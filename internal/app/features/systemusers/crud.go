// internal/app/features/systemusers/crud.go
package systemusers

import (
	"context"
	"errors"
	"net/http"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	userstore "github.com/nimble-la/stars/internal/app/store/users"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"github.com/nimble-la/stars/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createUserRequest struct {
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	Password       string `json:"password"`
	OrganizationID string `json:"organization_id"`
}

type updateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

const minPasswordLen = 8

// ServeList handles GET /users, optionally filtered by ?org=<id>.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		list []models.User
		err  error
	)
	if hex := r.URL.Query().Get("org"); hex != "" {
		orgID, perr := primitive.ObjectIDFromHex(hex)
		if perr != nil {
			apiutil.Error(w, http.StatusBadRequest, "invalid org filter")
			return
		}
		list, err = h.Users.ListByOrg(ctx, orgID)
	} else {
		list, err = h.Users.List(ctx)
	}
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, list)
}

// ServeView handles GET /users/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("load user failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, u)
}

// HandleCreate handles POST /users.
//
// Role and organization are fixed at creation: admins carry no
// organization, clients require one.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < minPasswordLen {
		apiutil.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	u := models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         req.Role,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if req.OrganizationID != "" {
		orgID, perr := primitive.ObjectIDFromHex(req.OrganizationID)
		if perr != nil {
			apiutil.Error(w, http.StatusBadRequest, "invalid organization_id")
			return
		}
		u.OrganizationID = &orgID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, u)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrBadRole),
			errors.Is(err, userstore.ErrOrgNeeded),
			errors.Is(err, userstore.ErrOrgForbidden):
			apiutil.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, userstore.ErrDuplicateEmail):
			apiutil.Error(w, http.StatusConflict, err.Error())
		default:
			h.Log.Error("create user failed", zap.Error(err))
			apiutil.ServerError(w)
		}
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /users/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req updateUserRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Users.UpdateByID(ctx, id, userstore.Update{
		FullName: req.FullName,
		Email:    req.Email,
		IsActive: req.IsActive,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			apiutil.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("update user failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("load user failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, u)
}
