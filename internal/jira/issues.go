package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// issueFields is the fixed field set requested for every issue read.
const issueFields = "summary,status,assignee,priority,issuetype,created,updated,description"

// defaultMaxResults bounds a search page when no limit is given.
const defaultMaxResults = 50

// SearchOptions are the high-level filters accepted by SearchIssues.
type SearchOptions struct {
	JQL        string // raw JQL; wins over Assignee/Project
	Assignee   string // display name, or the literal "me"
	Project    string // project key
	MaxResults int    // page size; defaults to 50
}

// SearchIssues runs a bounded JQL search and returns issues in backend order.
func (c *Client) SearchIssues(ctx context.Context, opts SearchOptions) ([]Issue, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	params := url.Values{}
	params.Set("jql", BuildJQL(opts.JQL, opts.Assignee, opts.Project))
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("fields", issueFields)

	body, _, err := c.doRequest(ctx, http.MethodGet, "search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	var result searchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode search result: %w", err)
	}

	issues := make([]Issue, 0, len(result.Issues))
	for _, raw := range result.Issues {
		issues = append(issues, issueFromWire(raw))
	}
	return issues, nil
}

// GetIssue fetches a single issue by key. A backend 404 is reported as
// ErrNotFound.
func (c *Client) GetIssue(ctx context.Context, key string) (Issue, error) {
	params := url.Values{}
	params.Set("fields", issueFields)

	body, statusCode, err := c.doRequest(ctx, http.MethodGet, "issue/"+url.PathEscape(key)+"?"+params.Encode(), nil)
	if err != nil {
		if statusCode == http.StatusNotFound {
			return Issue{}, fmt.Errorf("issue %s: %w", key, ErrNotFound)
		}
		return Issue{}, fmt.Errorf("get issue %s: %w", key, err)
	}

	var raw rawIssue
	if err := json.Unmarshal(body, &raw); err != nil {
		return Issue{}, fmt.Errorf("decode issue: %w", err)
	}
	return issueFromWire(raw), nil
}

// CreateIssue submits a new issue and returns the backend-assigned key. The
// description is wrapped in a single-paragraph rich-text document; the issue
// type defaults to "Task".
func (c *Client) CreateIssue(ctx context.Context, projectKey, summary, description, issueType string) (string, error) {
	if issueType == "" {
		issueType = "Task"
	}

	payload := map[string]any{
		"fields": map[string]any{
			"project":     map[string]string{"key": projectKey},
			"summary":     summary,
			"description": NewDoc(description),
			"issuetype":   map[string]string{"name": issueType},
		},
	}

	body, _, err := c.doRequest(ctx, http.MethodPost, "issue", payload)
	if err != nil {
		return "", fmt.Errorf("create issue: %w", err)
	}

	var created struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	return created.Key, nil
}

// TransitionIssue moves an issue through the transition matching name
// (case-insensitive). It first lists the transitions currently available, so
// an unmatched name fails with ErrNoTransition before any mutating call.
func (c *Client) TransitionIssue(ctx context.Context, key, name string) error {
	path := "issue/" + url.PathEscape(key) + "/transitions"

	body, _, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("list transitions for %s: %w", key, err)
	}

	var result transitionsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode transitions: %w", err)
	}

	var id string
	for _, t := range result.Transitions {
		if strings.EqualFold(t.Name, name) {
			id = t.ID
			break
		}
	}
	if id == "" {
		return fmt.Errorf("transition %q on %s: %w", name, key, ErrNoTransition)
	}

	payload := map[string]any{"transition": map[string]string{"id": id}}
	if _, _, err := c.doRequest(ctx, http.MethodPost, path, payload); err != nil {
		return fmt.Errorf("apply transition %q on %s: %w", name, key, err)
	}
	return nil
}

// AssignIssue sets the issue assignee by account id. The literal "me" is sent
// as a null accountId, which the backend interprets as the current user.
func (c *Client) AssignIssue(ctx context.Context, key, assignee string) error {
	var accountID *string
	if assignee != "me" {
		accountID = &assignee
	}

	payload := map[string]any{"accountId": accountID}
	if _, _, err := c.doRequest(ctx, http.MethodPut, "issue/"+url.PathEscape(key)+"/assignee", payload); err != nil {
		return fmt.Errorf("assign issue %s: %w", key, err)
	}
	return nil
}
