// internal/app/features/systemusers/handler.go
package systemusers

import (
	userstore "github.com/nimble-la/stars/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for user administration.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a user-administration handler.
func NewHandler(us *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: us, Log: logger}
}
