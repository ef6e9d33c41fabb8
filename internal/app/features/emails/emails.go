// internal/app/features/emails/emails.go
package emails

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeLog handles GET /emails/log.
//
// With no filters it returns the latest entries (?limit= caps the
// page). ?event= narrows by event type, optionally scoped to one
// pipeline row with ?candidate_position=.
func (h *Handler) ServeLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if event := r.URL.Query().Get("event"); event != "" {
		var cpID *primitive.ObjectID
		if hex := r.URL.Query().Get("candidate_position"); hex != "" {
			id, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				apiutil.Error(w, http.StatusBadRequest, "invalid candidate_position filter")
				return
			}
			cpID = &id
		}
		entries, err := h.EmailLog.ListByEvent(ctx, event, cpID)
		if err != nil {
			h.Log.Error("list email log failed", zap.Error(err))
			apiutil.ServerError(w)
			return
		}
		apiutil.RespondJSON(w, http.StatusOK, entries)
		return
	}

	var limit int64 = 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			apiutil.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	entries, err := h.EmailLog.Recent(ctx, limit)
	if err != nil {
		h.Log.Error("list email log failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, entries)
}

// ServeOutboxStatus handles GET /emails/outbox: how many jobs are
// waiting for the dispatcher.
func (h *Handler) ServeOutboxStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pending, err := h.Outbox.CountPending(ctx)
	if err != nil {
		h.Log.Error("count pending emails failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, map[string]int64{"pending": pending})
}
