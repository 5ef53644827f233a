// Package jira provides a minimal read-only Jira REST client.
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fsds-tools/reviewmail/internal/logging"
)

// ErrRequestFailed indicates the Jira API could not be reached or
// rejected the request. Failures are fatal; there are no retries.
var ErrRequestFailed = errors.New("jira request failed")

const requestTimeout = 15 * time.Second

// Client fetches issues from a Jira instance using a personal access
// token read from a token file.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Issue is the subset of a Jira issue we care about.
type Issue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary  string `json:"summary"`
		Reporter struct {
			DisplayName string `json:"displayName"`
		} `json:"reporter"`
	} `json:"fields"`
}

// NewClient creates a client for baseURL, reading the bearer token from
// tokenPath.
func NewClient(baseURL, tokenPath string) (*Client, error) {
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("read jira token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return nil, fmt.Errorf("jira token file %s is empty", tokenPath)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}, nil
}

// GetIssue retrieves an issue by key, e.g. "FSDS-189". Only the summary
// and reporter fields are requested.
func (c *Client) GetIssue(ctx context.Context, key string) (*Issue, error) {
	endpoint := fmt.Sprintf("%s/rest/api/2/issue/%s?fields=summary,reporter",
		c.baseURL, url.PathEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	logging.Debug("fetching jira issue", "key", key, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: issue %s not found", ErrRequestFailed, key)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: authentication rejected (%d)", ErrRequestFailed, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: %d - %s", ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var issue Issue
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrRequestFailed, err)
	}
	return &issue, nil
}
