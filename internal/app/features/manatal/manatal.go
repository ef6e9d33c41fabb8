// internal/app/features/manatal/manatal.go
package manatal

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nimble-la/stars/internal/app/features/apiutil"
	candidatestore "github.com/nimble-la/stars/internal/app/store/candidates"
	"github.com/nimble-la/stars/internal/app/system/manatal"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeSearch handles GET /manatal/candidates?q=&page=&page_size=.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	if !h.ATS.Configured() {
		apiutil.Error(w, http.StatusServiceUnavailable, manatal.ErrNotConfigured.Error())
		return
	}

	page := intQuery(r, "page", 1)
	pageSize := intQuery(r, "page_size", 20)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.ATS.SearchCandidates(ctx, r.URL.Query().Get("q"), page, pageSize)
	if err != nil {
		h.respondProviderError(w, "manatal search failed", err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, res)
}

// ServeCandidate handles GET /manatal/candidates/{manatalID}: the
// candidate plus education and work history.
func (h *Handler) ServeCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.ATS.Configured() {
		apiutil.Error(w, http.StatusServiceUnavailable, manatal.ErrNotConfigured.Error())
		return
	}
	manatalID, err := idParam(r)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	c, err := h.ATS.GetCandidate(ctx, manatalID)
	if err != nil {
		h.respondProviderError(w, "manatal candidate fetch failed", err)
		return
	}

	educations, err := h.ATS.ListEducations(ctx, manatalID)
	if err != nil {
		h.Log.Warn("manatal educations fetch failed",
			zap.Int64("manatal_id", manatalID), zap.Error(err))
		educations = nil
	}
	experiences, err := h.ATS.ListExperiences(ctx, manatalID)
	if err != nil {
		h.Log.Warn("manatal experiences fetch failed",
			zap.Int64("manatal_id", manatalID), zap.Error(err))
		experiences = nil
	}

	apiutil.RespondJSON(w, http.StatusOK, map[string]any{
		"candidate":   c,
		"educations":  educations,
		"experiences": experiences,
	})
}

// HandleImport handles POST /manatal/candidates/{manatalID}/import.
//
// Non-fatal problems (resume, history) come back as warnings on a 200;
// a candidate that was imported before is a 409.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if !h.ATS.Configured() {
		apiutil.Error(w, http.StatusServiceUnavailable, manatal.ErrNotConfigured.Error())
		return
	}
	manatalID, err := idParam(r)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	res, err := h.Importer.ImportCandidate(ctx, manatalID)
	if err != nil {
		if errors.Is(err, candidatestore.ErrAlreadyImported) {
			apiutil.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.respondProviderError(w, "manatal import failed", err)
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, res)
}

// ServeOpenJobs handles GET /manatal/jobs, the open requisitions in the
// ATS (useful when matching positions to Manatal jobs).
func (h *Handler) ServeOpenJobs(w http.ResponseWriter, r *http.Request) {
	if !h.ATS.Configured() {
		apiutil.Error(w, http.StatusServiceUnavailable, manatal.ErrNotConfigured.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	jobs, err := h.ATS.ListOpenJobs(ctx)
	if err != nil {
		h.respondProviderError(w, "manatal jobs fetch failed", err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, jobs)
}

// respondProviderError maps Manatal client errors onto HTTP statuses.
func (h *Handler) respondProviderError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, manatal.ErrInvalidCredential):
		apiutil.Error(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, manatal.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, manatal.ErrRateLimited):
		apiutil.Error(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, manatal.ErrTimeout):
		apiutil.Error(w, http.StatusGatewayTimeout, err.Error())
	default:
		h.Log.Error(msg, zap.Error(err))
		apiutil.Error(w, http.StatusBadGateway, "ATS request failed")
	}
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "manatalID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid manatal id")
	}
	return id, nil
}

func intQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
