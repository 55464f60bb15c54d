package githubactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"pipeguard/src/provider"
)

// Client is a GitHub Actions API client
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new GitHub Actions client
func NewClient(token string) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.github.com",
	}
}

// ListWorkflowRuns fetches workflow runs for a repository, newest first
// (handles pagination up to limit runs).
func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo string, limit int) ([]WorkflowRun, error) {
	if limit <= 0 {
		limit = 30
	}

	var allRuns []WorkflowRun
	page := 1
	perPage := 100 // GitHub's max per page
	if limit < perPage {
		perPage = limit
	}

	for len(allRuns) < limit {
		url := fmt.Sprintf("%s/repos/%s/%s/actions/runs?per_page=%d&page=%d",
			c.baseURL, owner, repo, perPage, page)

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return nil, fmt.Errorf("%w: %v", provider.ErrNetworkTimeout, err)
			}
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, statusError(resp.StatusCode, string(body))
		}

		var runsResp WorkflowRunsResponse
		if err := json.NewDecoder(resp.Body).Decode(&runsResp); err != nil {
			resp.Body.Close()
			return nil, err
		}
		resp.Body.Close()

		allRuns = append(allRuns, runsResp.WorkflowRuns...)

		// Check if we've fetched everything available
		if len(allRuns) >= runsResp.TotalCount || len(runsResp.WorkflowRuns) < perPage {
			break
		}

		page++
	}

	if len(allRuns) > limit {
		allRuns = allRuns[:limit]
	}

	return allRuns, nil
}

// statusError maps HTTP status codes to sentinel provider errors so callers
// can present friendly hints.
func statusError(code int, body string) error {
	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: GitHub API error %d: %s", provider.ErrAuthFailed, code, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: GitHub API error %d: %s", provider.ErrRepoNotFound, code, body)
	case http.StatusForbidden, http.StatusTooManyRequests:
		return fmt.Errorf("%w: GitHub API error %d: %s", provider.ErrRateLimited, code, body)
	default:
		return fmt.Errorf("GitHub API error %d: %s", code, body)
	}
}
