package githubactions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pipeguard/src/contracts"
	"pipeguard/src/provider"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-token")
	client.baseURL = server.URL
	return client, server
}

func TestListWorkflowRuns(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
				t.Errorf("Authorization = %q, want bearer token", auth)
			}
			fmt.Fprint(w, `{
				"total_count": 2,
				"workflow_runs": [
					{"id": 101, "conclusion": "success", "head_branch": "main",
					 "created_at": "2025-06-15T10:00:00Z", "updated_at": "2025-06-15T10:02:00Z"},
					{"id": 100, "conclusion": "failure", "head_branch": "main",
					 "created_at": "2025-06-15T09:00:00Z", "updated_at": "2025-06-15T09:01:00Z"}
				]
			}`)
		})
		defer server.Close()

		runs, err := client.ListWorkflowRuns(context.Background(), "owner", "repo", 10)
		if err != nil {
			t.Fatalf("ListWorkflowRuns() unexpected error: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("got %d runs, want 2", len(runs))
		}
		if runs[0].ID != 101 {
			t.Errorf("runs[0].ID = %d, want 101", runs[0].ID)
		}
		if runs[1].Conclusion != "failure" {
			t.Errorf("runs[1].Conclusion = %q, want failure", runs[1].Conclusion)
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"total_count": 3,
				"workflow_runs": [
					{"id": 3, "conclusion": "success"},
					{"id": 2, "conclusion": "success"},
					{"id": 1, "conclusion": "success"}
				]
			}`)
		})
		defer server.Close()

		runs, err := client.ListWorkflowRuns(context.Background(), "owner", "repo", 2)
		if err != nil {
			t.Fatalf("ListWorkflowRuns() unexpected error: %v", err)
		}
		if len(runs) != 2 {
			t.Errorf("got %d runs, want 2", len(runs))
		}
	})

	t.Run("timeout maps to network timeout sentinel", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		})
		defer server.Close()
		client.httpClient.Timeout = 20 * time.Millisecond

		_, err := client.ListWorkflowRuns(context.Background(), "owner", "repo", 10)
		if !errors.Is(err, provider.ErrNetworkTimeout) {
			t.Errorf("error = %v, want ErrNetworkTimeout", err)
		}
	})

	t.Run("error statuses map to sentinel errors", func(t *testing.T) {
		tests := []struct {
			status int
			want   error
		}{
			{http.StatusUnauthorized, provider.ErrAuthFailed},
			{http.StatusNotFound, provider.ErrRepoNotFound},
			{http.StatusForbidden, provider.ErrRateLimited},
		}

		for _, tt := range tests {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.ListWorkflowRuns(context.Background(), "owner", "repo", 10)
			server.Close()

			if !errors.Is(err, tt.want) {
				t.Errorf("status %d: error = %v, want %v", tt.status, err, tt.want)
			}
		}
	})
}

func TestRunProviderFetchRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"total_count": 3,
			"workflow_runs": [
				{"id": 3, "conclusion": "", "status": "in_progress",
				 "created_at": "2025-06-15T10:00:00Z", "updated_at": "2025-06-15T10:00:30Z"},
				{"id": 2, "conclusion": "success", "head_branch": "main", "head_sha": "abc123",
				 "actor": {"login": "dev"},
				 "created_at": "2025-06-15T09:00:00Z", "updated_at": "2025-06-15T09:02:05Z"},
				{"id": 1, "conclusion": "timed_out",
				 "created_at": "2025-06-15T08:00:00Z", "updated_at": "2025-06-15T08:10:00Z"}
			]
		}`)
	}))
	defer srv.Close()

	p := NewRunProvider("token", "owner", "repo")
	p.client.baseURL = srv.URL

	runs, err := p.FetchRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchRuns() unexpected error: %v", err)
	}

	// In-progress run (no conclusion) is skipped.
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	if runs[0].ID != "2" || runs[0].Status != contracts.StatusSuccess {
		t.Errorf("runs[0] = %+v, want successful run 2", runs[0])
	}
	if runs[0].Duration != 125 {
		t.Errorf("runs[0].Duration = %d, want 125", runs[0].Duration)
	}
	if runs[0].Branch != "main" || runs[0].Commit != "abc123" || runs[0].Author != "dev" {
		t.Errorf("runs[0] metadata = %+v, want branch/commit/author set", runs[0])
	}

	// Any non-success conclusion is recorded as failure.
	if runs[1].Status != contracts.StatusFailure {
		t.Errorf("runs[1].Status = %q, want failure", runs[1].Status)
	}
}

func TestConvertRunNegativeDuration(t *testing.T) {
	created := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	wr := WorkflowRun{
		ID:         7,
		Conclusion: "success",
		CreatedAt:  created,
		UpdatedAt:  created.Add(-time.Minute), // clock skew from the API
	}

	run := ConvertRun(wr)
	if run.Duration != 0 {
		t.Errorf("Duration = %d, want clamp to 0", run.Duration)
	}
}
