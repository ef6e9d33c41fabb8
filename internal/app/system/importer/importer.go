// internal/app/system/importer/importer.go
//
// Import adapter: translates Manatal candidate records into a local
// Candidate plus an optional resume CandidateFile. Only the core
// candidate fetch is fatal; education/experience enrichment and the
// resume path degrade to warnings.
package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nimble-la/stars/internal/app/store/candidatefiles"
	"github.com/nimble-la/stars/internal/app/store/candidates"
	"github.com/nimble-la/stars/internal/app/system/limits"
	"github.com/nimble-la/stars/internal/app/system/manatal"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ResumeBucket is the object-storage bucket for imported resumes.
const ResumeBucket = "resumes"

// Fetcher is the ATS read surface the importer needs. The Manatal
// client satisfies it; tests substitute a fake.
type Fetcher interface {
	GetCandidate(ctx context.Context, manatalID int64) (*manatal.Candidate, error)
	ListEducations(ctx context.Context, manatalID int64) ([]manatal.Education, error)
	ListExperiences(ctx context.Context, manatalID int64) ([]manatal.Experience, error)
}

// Uploader stores resume bytes and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
}

// Result reports what an import achieved. Success is true whenever the
// core candidate record was created, regardless of enrichment outcome.
type Result struct {
	CandidateID primitive.ObjectID `json:"candidate_id"`
	Success     bool               `json:"success"`
	HasResume   bool               `json:"has_resume"`
	Warnings    []string           `json:"warnings"`
}

// Service performs candidate imports.
type Service struct {
	ats        Fetcher
	storage    Uploader
	candidates *candidatestore.Store
	files      *candidatefilestore.Store
	downloader *http.Client
	log        *zap.Logger
}

func New(ats Fetcher, storage Uploader, cands *candidatestore.Store, files *candidatefilestore.Store, logger *zap.Logger) *Service {
	return &Service{
		ats:        ats,
		storage:    storage,
		candidates: cands,
		files:      files,
		downloader: &http.Client{Timeout: 60 * time.Second},
		log:        logger,
	}
}

// ImportCandidate pulls one candidate from the ATS into the local
// store. Returns candidatestore.ErrAlreadyImported when the Manatal id
// is already present; ATS errors on the core fetch propagate as-is.
func (s *Service) ImportCandidate(ctx context.Context, manatalID int64) (Result, error) {
	var result Result

	core, err := s.ats.GetCandidate(ctx, manatalID)
	if err != nil {
		return result, err
	}

	educations, err := s.ats.ListEducations(ctx, manatalID)
	if err != nil {
		result.Warnings = append(result.Warnings, "could not fetch education history: "+err.Error())
		educations = nil
	}
	experiences, err := s.ats.ListExperiences(ctx, manatalID)
	if err != nil {
		result.Warnings = append(result.Warnings, "could not fetch work history: "+err.Error())
		experiences = nil
	}

	now := time.Now().UTC()
	cand, err := s.candidates.Create(ctx, models.Candidate{
		FullName:          core.FullName,
		Email:             core.Email,
		Phone:             core.PhoneNumber,
		CurrentRole:       core.CurrentPosition,
		CurrentCompany:    core.CurrentCompany,
		Summary:           BuildSummary(core.Description, educations, experiences),
		ManatalID:         &manatalID,
		ManatalURL:        fmt.Sprintf("https://app.manatal.com/candidate/%d", manatalID),
		ManatalImportedAt: &now,
	})
	if err != nil {
		return result, err
	}

	result.CandidateID = cand.ID
	result.Success = true

	if core.Resume != "" {
		if warning := s.importResume(ctx, cand.ID, manatalID, core.Resume); warning != "" {
			result.Warnings = append(result.Warnings, warning)
		} else {
			result.HasResume = true
		}
	}
	return result, nil
}

// importResume downloads and re-uploads the resume. Any failure
// returns a warning string; an empty return means the file record was
// created.
func (s *Service) importResume(ctx context.Context, candidateID primitive.ObjectID, manatalID int64, resumeURL string) string {
	data, contentType, err := s.download(ctx, resumeURL)
	if err != nil {
		return "resume download failed: " + err.Error()
	}

	fileName := resumeFileName(resumeURL)
	// Unique object key so a re-import never clobbers an earlier upload.
	storagePath := fmt.Sprintf("%s/%s-%s", candidateID.Hex(), uuid.NewString(), fileName)

	publicURL, err := s.storage.Upload(ctx, ResumeBucket, storagePath, data, contentType)
	if err != nil {
		return "resume upload failed: " + err.Error()
	}

	if _, err := s.files.Create(ctx, models.CandidateFile{
		CandidateID: candidateID,
		FileURL:     publicURL,
		FileName:    fileName,
		FileType:    contentType,
	}); err != nil {
		s.log.Error("record resume file",
			zap.Int64("manatal_id", manatalID),
			zap.Error(err))
		return "resume file record failed: " + err.Error()
	}
	return ""
}

func (s *Service) download(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.downloader.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limits.MaxResumeSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > limits.MaxResumeSize {
		return nil, "", fmt.Errorf("resume exceeds %d MB limit", limits.MaxResumeSize>>20)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

func resumeFileName(rawURL string) string {
	name := path.Base(rawURL)
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "." || name == "/" {
		name = "resume.pdf"
	}
	return name
}

// BuildSummary assembles the candidate's free-text summary from the
// ATS description plus education and experience blocks. Missing fields
// render literal fallbacks so every line stays readable.
func BuildSummary(description string, educations []manatal.Education, experiences []manatal.Experience) string {
	var parts []string

	if strings.TrimSpace(description) != "" {
		parts = append(parts, strings.TrimSpace(description))
	}

	if len(educations) > 0 {
		lines := make([]string, 0, len(educations)+1)
		lines = append(lines, "Education:")
		for _, e := range educations {
			degree := e.Degree
			if degree == "" {
				degree = "Degree"
			}
			school := e.School
			if school == "" {
				school = "Unknown"
			}
			line := fmt.Sprintf("%s at %s", degree, school)
			if year := yearOf(e.EndDate, e.StartDate); year != "" {
				line += fmt.Sprintf(" (%s)", year)
			}
			lines = append(lines, line)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	if len(experiences) > 0 {
		lines := make([]string, 0, len(experiences)+1)
		lines = append(lines, "Experience:")
		for _, x := range experiences {
			title := x.Title
			if title == "" {
				title = "Role"
			}
			company := x.Company
			if company == "" {
				company = "Company"
			}
			end := yearOf(x.EndDate)
			if end == "" || x.IsCurrent {
				end = "Present"
			}
			line := fmt.Sprintf("%s at %s", title, company)
			if start := yearOf(x.StartDate); start != "" {
				line += fmt.Sprintf(" (%s - %s)", start, end)
			}
			lines = append(lines, line)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// yearOf returns the year of the first non-empty ISO date.
func yearOf(dates ...string) string {
	for _, d := range dates {
		if len(d) >= 4 {
			return d[:4]
		}
	}
	return ""
}
