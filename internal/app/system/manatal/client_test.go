package manatal_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nimble-la/stars/internal/app/system/manatal"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *manatal.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, manatal.New("test-key", srv.URL)
}

func TestSearchCandidates(t *testing.T) {
	var gotQuery map[string]string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/candidates/" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Token test-key" {
			t.Errorf("auth header: got %q", auth)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"full_name":        q.Get("full_name"),
			"case_insensitive": q.Get("case_insensitive"),
			"page":             q.Get("page"),
			"page_size":        q.Get("page_size"),
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": 42, "full_name": "Ada Lovelace"}},
			"count":   1,
		})
	})

	res, err := client.SearchCandidates(context.Background(), "ada", 2, 25)
	if err != nil {
		t.Fatalf("SearchCandidates: %v", err)
	}
	if res.Count != 1 || len(res.Results) != 1 {
		t.Fatalf("unexpected response: %+v", res)
	}
	if res.Results[0].ID != 42 || res.Results[0].FullName != "Ada Lovelace" {
		t.Errorf("candidate: %+v", res.Results[0])
	}
	if gotQuery["full_name"] != "ada" || gotQuery["case_insensitive"] != "true" {
		t.Errorf("query params: %+v", gotQuery)
	}
	if gotQuery["page"] != "2" || gotQuery["page_size"] != "25" {
		t.Errorf("pagination params: %+v", gotQuery)
	}
}

func TestGetCandidate(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/candidates/42/" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 42, "full_name": "Ada Lovelace", "email": "ada@example.com",
		})
	})

	c, err := client.GetCandidate(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetCandidate: %v", err)
	}
	if c.Email != "ada@example.com" {
		t.Errorf("email: got %q", c.Email)
	}
}

func TestListOpenJobs(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if status := r.URL.Query().Get("status"); status != "open" {
			t.Errorf("status filter: got %q", status)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": 7, "position_name": "Backend Engineer", "status": "open"}},
		})
	})

	jobs, err := client.ListOpenJobs(context.Background())
	if err != nil {
		t.Fatalf("ListOpenJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].PositionName != "Backend Engineer" {
		t.Errorf("jobs: %+v", jobs)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, manatal.ErrInvalidCredential},
		{"not found", http.StatusNotFound, manatal.ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, manatal.ErrRateLimited},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, err := client.GetCandidate(context.Background(), 42)
			if !errors.Is(err, tc.want) {
				t.Fatalf("status %d: got %v, want %v", tc.status, err, tc.want)
			}
		})
	}
}

func TestServerError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetCandidate(context.Background(), 42)
	var perr *manatal.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Status != http.StatusBadGateway {
		t.Errorf("status: got %d", perr.Status)
	}
}

func TestNotConfigured(t *testing.T) {
	client := manatal.New("", "")
	if client.Configured() {
		t.Error("empty key should not be configured")
	}
	_, err := client.GetCandidate(context.Background(), 42)
	if !errors.Is(err, manatal.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
