// internal/app/features/notifications/notifications.go
package notifications

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList handles GET /notifications for the signed-in user.
// ?filter= accepts "unread" or a notification type; ?limit= caps the
// page size.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	userID, ok := apiutil.SessionUserID(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			apiutil.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Notifications.ListFiltered(ctx, userID, r.URL.Query().Get("filter"), limit)
	if err != nil {
		h.Log.Error("list notifications failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, list)
}

// ServeUnreadCount handles GET /notifications/unread_count.
func (h *Handler) ServeUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := apiutil.SessionUserID(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Notifications.CountUnread(ctx, userID)
	if err != nil {
		h.Log.Error("count unread failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, map[string]int64{"unread": n})
}

// HandleMarkRead handles POST /notifications/{id}/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkAsRead(ctx, id); err != nil {
		h.Log.Error("mark notification read failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// HandleMarkAllRead handles POST /notifications/read_all.
func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := apiutil.SessionUserID(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Notifications.MarkAllAsRead(ctx, userID)
	if err != nil {
		h.Log.Error("mark all read failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, map[string]int64{"marked": n})
}
