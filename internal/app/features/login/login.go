// internal/app/features/login/login.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	"github.com/nimble-la/stars/internal/app/system/auth"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"golang.org/x/crypto/bcrypt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /auth/login.
//
// Failed lookups and bad passwords return the same message so the
// endpoint does not leak which emails exist. A successful client login
// feeds the pipeline's login notification, which is fire-and-forget
// from the caller's point of view.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		apiutil.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if ok, reason := h.Limiter.Check(r, email); !ok {
		apiutil.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	if !u.IsActive {
		apiutil.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		apiutil.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.Sessions.SignIn(w, r, u); err != nil {
		h.Log.Error("session sign-in failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	h.Limiter.ResetEmail(email)

	if err := h.Pipeline.RecordLogin(ctx, u.ID); err != nil {
		h.Log.Warn("record login failed",
			zap.String("user_id", u.ID.Hex()),
			zap.Error(err))
	}

	apiutil.RespondJSON(w, http.StatusOK, u)
}

// HandleLogout handles POST /auth/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Error("session sign-out failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// ServeMe handles GET /auth/me and returns the signed-in user's record.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	uid, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		apiutil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.Log.Error("load current user failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, u)
}
