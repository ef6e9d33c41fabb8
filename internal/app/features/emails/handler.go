// internal/app/features/emails/handler.go
package emails

import (
	"github.com/nimble-la/stars/internal/app/store/emaillog"
	"github.com/nimble-la/stars/internal/app/store/outbox"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for email delivery
// inspection: the append-only send log and the outbox backlog.
type Handler struct {
	EmailLog *emaillog.Store
	Outbox   *outbox.Store
	Log      *zap.Logger
}

// NewHandler constructs an Emails handler.
func NewHandler(el *emaillog.Store, ob *outbox.Store, logger *zap.Logger) *Handler {
	return &Handler{EmailLog: el, Outbox: ob, Log: logger}
}
