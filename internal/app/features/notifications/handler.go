// internal/app/features/notifications/handler.go
package notifications

import (
	notificationstore "github.com/nimble-la/stars/internal/app/store/notifications"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for in-app notifications.
type Handler struct {
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

// NewHandler constructs a Notifications handler.
func NewHandler(ns *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Notifications: ns, Log: logger}
}
