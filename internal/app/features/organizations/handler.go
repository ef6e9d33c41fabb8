// internal/app/features/organizations/handler.go
package organizations

import (
	organizationstore "github.com/nimble-la/stars/internal/app/store/organizations"
	userstore "github.com/nimble-la/stars/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for client organizations.
type Handler struct {
	Orgs  *organizationstore.Store
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs an Organizations handler.
func NewHandler(orgs *organizationstore.Store, us *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Orgs: orgs, Users: us, Log: logger}
}
