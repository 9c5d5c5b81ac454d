package jira

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when the backend reports a missing entity.
var ErrNotFound = errors.New("not found")

// ErrNoTransition is returned when the requested transition is not available
// for the issue in its current status. No state-changing call has been made.
var ErrNoTransition = errors.New("no matching transition")

// Service is the subset of the Jira API consumed by the MCP dispatcher.
type Service interface {
	Myself(ctx context.Context) (json.RawMessage, error)
	Projects(ctx context.Context) ([]Project, error)
	SearchIssues(ctx context.Context, opts SearchOptions) ([]Issue, error)
	GetIssue(ctx context.Context, key string) (Issue, error)
	CreateIssue(ctx context.Context, projectKey, summary, description, issueType string) (string, error)
	TransitionIssue(ctx context.Context, key, name string) error
	AssignIssue(ctx context.Context, key, assignee string) error
}

// Client handles communication with the Jira REST API.
type Client struct {
	APIURL *url.URL     // Base API URL (must include /rest/api/X)
	Client *http.Client // Underlying HTTP client
	auth   AuthFunc
}

var _ Service = (*Client)(nil)

// NewClient returns a Jira client with the given base URL and authentication function.
func NewClient(apiURL *url.URL, auth AuthFunc, skipVerify bool, timeout time.Duration) *Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: skipVerify,
		},
	}
	return &Client{
		APIURL: apiURL,
		Client: &http.Client{Transport: tr, Timeout: timeout},
		auth:   auth,
	}
}

// doRequest performs an authenticated HTTP request and returns response body, status, and error.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (response []byte, statusCode int, err error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	// Parse path into relative URL with optional query
	relURL, err := url.Parse(path)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("parse path: %w", err)
	}
	fullURL := c.APIURL.ResolveReference(relURL).String()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("create request: %w", err)
	}

	c.auth(req) // apply authentication

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, http.StatusBadGateway, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return respBody, resp.StatusCode, fmt.Errorf("jira error: %s", string(respBody))
	}
	return respBody, resp.StatusCode, nil
}
