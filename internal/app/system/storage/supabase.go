// internal/app/system/storage/supabase.go
//
// Minimal Supabase Storage client covering what the candidate-file
// paths need: upload with upsert, public URL construction, signed
// download URLs, and delete.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured means the storage URL or service key is missing.
var ErrNotConfigured = errors.New("object storage is not configured")

// Supabase talks to the Supabase Storage HTTP API using the service
// role key.
type Supabase struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

// NewSupabase builds a client for the project at baseURL (e.g.
// "https://xyz.supabase.co").
func NewSupabase(baseURL, serviceKey string) *Supabase {
	return &Supabase{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the client can make requests.
func (s *Supabase) Configured() bool {
	return s.baseURL != "" && s.serviceKey != ""
}

// Upload stores data at bucket/path (overwriting any existing object)
// and returns the public URL.
func (s *Supabase) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload failed: %s", readError(resp))
	}
	return s.PublicURL(bucket, path), nil
}

// PublicURL returns the unauthenticated URL for an object in a public
// bucket.
func (s *Supabase) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}

// SignedURL creates a temporary download URL. expiresIn <= 0 defaults
// to one hour.
func (s *Supabase) SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}

	body, err := json.Marshal(map[string]int{"expiresIn": int(expiresIn.Seconds())})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", s.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage sign: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to get signed URL: %s", readError(resp))
	}

	var parsed struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode signed URL response: %w", err)
	}
	if parsed.SignedURL == "" {
		return "", errors.New("failed to get signed URL: empty response")
	}
	return s.baseURL + "/storage/v1" + parsed.SignedURL, nil
}

// Delete removes an object.
func (s *Supabase) Delete(ctx context.Context, bucket, path string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delete failed: %s", readError(resp))
	}
	return nil
}

func readError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var parsed struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		return parsed.Message
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
