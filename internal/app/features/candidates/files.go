// internal/app/features/candidates/files.go
package candidates

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/nimble-la/stars/internal/app/features/apiutil"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fileRequest struct {
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

// HandleAddFile handles POST /candidates/{id}/files. The file itself
// lives in object storage; this records the pointer.
func (h *Handler) HandleAddFile(w http.ResponseWriter, r *http.Request) {
	candidateID, err := apiutil.IDParam(r, "id")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var req fileRequest
	if err := apiutil.Decode(w, r, &req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.FileURL) == "" || strings.TrimSpace(req.FileName) == "" {
		apiutil.Error(w, http.StatusBadRequest, "file_url and file_name are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Candidates.GetByID(ctx, candidateID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusNotFound, "candidate not found")
			return
		}
		h.Log.Error("load candidate failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}

	f, err := h.Files.Create(ctx, models.CandidateFile{
		CandidateID: candidateID,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileType:    req.FileType,
	})
	if err != nil {
		h.Log.Error("record candidate file failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, f)
}

// HandleDeleteFile handles DELETE /candidates/{id}/files/{fileID}.
func (h *Handler) HandleDeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID, err := apiutil.IDParam(r, "fileID")
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Files.DeleteByID(ctx, fileID)
	if err != nil {
		h.Log.Error("delete candidate file failed", zap.Error(err))
		apiutil.ServerError(w)
		return
	}
	if n == 0 {
		apiutil.Error(w, http.StatusNotFound, "file not found")
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
