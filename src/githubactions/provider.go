package githubactions

import (
	"context"
	"strconv"
	"time"

	"pipeguard/src/contracts"
)

// ProviderName identifies this provider in events and logs.
const ProviderName = "github-actions"

// RunProvider adapts the GitHub Actions client to the provider.Provider
// interface, converting workflow runs into pipeline Run records.
type RunProvider struct {
	client *Client
	owner  string
	repo   string
}

// NewRunProvider creates a Provider for one repository's workflow runs.
func NewRunProvider(token, owner, repo string) *RunProvider {
	return &RunProvider{
		client: NewClient(token),
		owner:  owner,
		repo:   repo,
	}
}

// Name returns the provider name.
func (p *RunProvider) Name() string {
	return ProviderName
}

// FetchRuns retrieves recent workflow runs and converts them to Run records.
// Runs still in progress (no conclusion yet) are skipped.
func (p *RunProvider) FetchRuns(ctx context.Context, limit int) ([]contracts.Run, error) {
	workflowRuns, err := p.client.ListWorkflowRuns(ctx, p.owner, p.repo, limit)
	if err != nil {
		return nil, err
	}

	runs := make([]contracts.Run, 0, len(workflowRuns))
	for _, wr := range workflowRuns {
		if wr.Conclusion == "" {
			continue
		}
		runs = append(runs, ConvertRun(wr))
	}

	return runs, nil
}

// ConvertRun maps one workflow run onto the Run record shape. Duration is
// the wall-clock gap between creation and the last update; any conclusion
// other than "success" is recorded as a failure.
func ConvertRun(wr WorkflowRun) contracts.Run {
	status := contracts.StatusFailure
	if wr.Conclusion == "success" {
		status = contracts.StatusSuccess
	}

	duration := int(wr.UpdatedAt.Sub(wr.CreatedAt).Seconds())
	if duration < 0 {
		duration = 0
	}

	return contracts.Run{
		ID:        strconv.FormatInt(wr.ID, 10),
		Status:    status,
		Duration:  duration,
		Timestamp: time.Now().UTC(),
		Branch:    wr.HeadBranch,
		Commit:    wr.HeadSHA,
		Author:    wr.Actor.Login,
	}
}
