package provider

import (
	"errors"
	"fmt"
)

var (
	ErrAuthFailed     = errors.New("authentication failed")
	ErrRepoNotFound   = errors.New("repository not found")
	ErrRateLimited    = errors.New("rate limited")
	ErrNetworkTimeout = errors.New("network timeout")
)

// UserError wraps errors with user-friendly messages
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// WrapError converts API errors to user-friendly messages
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrAuthFailed) {
		return &UserError{
			Message: "Authentication failed",
			Hint:    "Check that GITHUB_TOKEN is valid and has the actions:read scope.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrRepoNotFound) {
		return &UserError{
			Message: "Repository not found",
			Hint:    "Check GITHUB_USER and GITHUB_REPO, and that the token can access the repository.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrRateLimited) {
		return &UserError{
			Message: "GitHub API rate limit exceeded",
			Hint:    "Wait for the limit to reset or use a token with a higher quota.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrNetworkTimeout) {
		return &UserError{
			Message: "GitHub API request timed out",
			Hint:    "Check network connectivity and retry.",
			Err:     err,
		}
	}

	return err
}
