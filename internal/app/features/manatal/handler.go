// internal/app/features/manatal/handler.go
package manatal

import (
	"github.com/nimble-la/stars/internal/app/system/importer"
	"github.com/nimble-la/stars/internal/app/system/manatal"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for browsing the Manatal ATS
// and importing candidates from it.
type Handler struct {
	ATS      *manatal.Client
	Importer *importer.Service
	Log      *zap.Logger
}

// NewHandler constructs a Manatal handler.
func NewHandler(ats *manatal.Client, imp *importer.Service, logger *zap.Logger) *Handler {
	return &Handler{ATS: ats, Importer: imp, Log: logger}
}
