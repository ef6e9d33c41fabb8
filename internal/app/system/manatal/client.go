// internal/app/system/manatal/client.go
//
// Client for the Manatal open API (v3). Token auth, JSON bodies, 10s
// request timeout. Status codes map to the typed errors in errors.go.
package manatal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the production Manatal open API root.
	DefaultBaseURL = "https://api.manatal.com/open/v3"

	requestTimeout = 10 * time.Second
)

// Candidate is the ATS candidate core record.
type Candidate struct {
	ID              int64  `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	CurrentPosition string `json:"current_position"`
	CurrentCompany  string `json:"current_company"`
	Description     string `json:"description"`
	Resume          string `json:"resume"`
	ProfileImage    string `json:"profile_image"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// Education is one entry of a candidate's education history.
type Education struct {
	ID           int64  `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
}

// Experience is one entry of a candidate's work history.
type Experience struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	IsCurrent   bool   `json:"is_current"`
}

// Job is an open role tracked in the ATS.
type Job struct {
	ID           int64  `json:"id"`
	PositionName string `json:"position_name"`
	Status       string `json:"status"`
}

// SearchResponse is Manatal's paginated candidate listing.
type SearchResponse struct {
	Results  []Candidate `json:"results"`
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
}

type listResponse[T any] struct {
	Results []T `json:"results"`
}

// Client talks to the Manatal open API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New builds a client. An empty baseURL uses production; tests point it
// at an httptest server.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// SearchCandidates searches by full name, case-insensitive, paginated.
func (c *Client) SearchCandidates(ctx context.Context, query string, page, pageSize int) (*SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	params := url.Values{}
	params.Set("full_name", query)
	params.Set("case_insensitive", "true")
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	var out SearchResponse
	if err := c.get(ctx, "/candidates/?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCandidate fetches one candidate's core record.
func (c *Client) GetCandidate(ctx context.Context, manatalID int64) (*Candidate, error) {
	var out Candidate
	if err := c.get(ctx, fmt.Sprintf("/candidates/%d/", manatalID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEducations fetches a candidate's education history.
func (c *Client) ListEducations(ctx context.Context, manatalID int64) ([]Education, error) {
	var out listResponse[Education]
	if err := c.get(ctx, fmt.Sprintf("/candidates/%d/educations/", manatalID), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ListExperiences fetches a candidate's work history.
func (c *Client) ListExperiences(ctx context.Context, manatalID int64) ([]Experience, error) {
	var out listResponse[Experience]
	if err := c.get(ctx, fmt.Sprintf("/candidates/%d/experiences/", manatalID), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ListOpenJobs lists roles currently open in the ATS.
func (c *Client) ListOpenJobs(ctx context.Context) ([]Job, error) {
	var out listResponse[Job]
	if err := c.get(ctx, "/jobs/?status=open", &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ErrTimeout
		}
		return fmt.Errorf("could not connect to Manatal: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrInvalidCredential
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &ProviderError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode Manatal response: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr) && uerr.Timeout()
}
