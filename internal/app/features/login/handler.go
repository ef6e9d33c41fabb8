// internal/app/features/login/handler.go
package login

import (
	userstore "github.com/nimble-la/stars/internal/app/store/users"
	"github.com/nimble-la/stars/internal/app/system/auth"
	"github.com/nimble-la/stars/internal/app/system/pipeline"
	"github.com/nimble-la/stars/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for sign-in and session
// inspection.
type Handler struct {
	Users    *userstore.Store
	Sessions *auth.SessionManager
	Pipeline *pipeline.Service
	Limiter  *ratelimit.LoginLimiter
	Log      *zap.Logger
}

// NewHandler constructs a login handler with a fresh login limiter.
func NewHandler(us *userstore.Store, sm *auth.SessionManager, ps *pipeline.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    us,
		Sessions: sm,
		Pipeline: ps,
		Limiter:  ratelimit.NewLoginLimiter(),
		Log:      logger,
	}
}
