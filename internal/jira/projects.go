package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Myself returns the authenticated user's profile exactly as the backend
// returned it.
func (c *Client) Myself(ctx context.Context) (json.RawMessage, error) {
	body, _, err := c.doRequest(ctx, http.MethodGet, "myself", nil)
	if err != nil {
		return nil, fmt.Errorf("get myself: %w", err)
	}
	return json.RawMessage(body), nil
}

// Projects returns all projects, preserving backend order.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	body, _, err := c.doRequest(ctx, http.MethodGet, "project", nil)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var raw []rawProject
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]Project, 0, len(raw))
	for _, p := range raw {
		projects = append(projects, projectFromWire(p))
	}
	return projects, nil
}
