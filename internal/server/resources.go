package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gi8lino/jiramcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs exposed by the dispatcher.
const (
	uriMyIssues     = "jira://my-issues"
	uriProjects     = "jira://projects"
	uriRecentIssues = "jira://recent-issues"
)

// registerResources adds the read-only resource surface to the MCP server.
// All URIs route through the same reader.
func (h *handler) registerResources(s *server.MCPServer) {
	s.AddResource(mcp.NewResource(uriMyIssues, "My Issues",
		mcp.WithResourceDescription("Issues assigned to me"),
		mcp.WithMIMEType("application/json"),
	), h.readResource)

	s.AddResource(mcp.NewResource(uriProjects, "Projects",
		mcp.WithResourceDescription("List of Jira projects"),
		mcp.WithMIMEType("application/json"),
	), h.readResource)

	s.AddResource(mcp.NewResource(uriRecentIssues, "Recent Issues",
		mcp.WithResourceDescription("Recently updated issues"),
		mcp.WithMIMEType("application/json"),
	), h.readResource)
}

// readResource adapts the URI router to the MCP resource handler signature.
func (h *handler) readResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.read(ctx, req.Params.URI), nil
}

// read routes a resource read by URI. Failures, including an unknown URI,
// are rendered as a JSON error payload instead of a protocol fault so the
// assistant always receives content.
func (h *handler) read(ctx context.Context, uri string) []mcp.ResourceContents {
	var payload any
	var err error

	switch uri {
	case uriMyIssues:
		var issues []jira.Issue
		issues, err = h.api.SearchIssues(ctx, jira.SearchOptions{Assignee: "me", MaxResults: h.settings.ResourceLimit})
		if err == nil {
			items := make([]map[string]string, 0, len(issues))
			for _, issue := range issues {
				items = append(items, map[string]string{
					"key":      issue.Key,
					"summary":  issue.Summary,
					"status":   issue.Status,
					"priority": issue.Priority,
					"type":     issue.Type,
					"updated":  issue.Updated,
				})
			}
			payload = items
		}

	case uriProjects:
		var projects []jira.Project
		projects, err = h.api.Projects(ctx)
		if err == nil {
			items := make([]map[string]string, 0, len(projects))
			for _, project := range projects {
				items = append(items, map[string]string{
					"key":  project.Key,
					"name": project.Name,
					"type": project.Type,
					"lead": project.Lead,
				})
			}
			payload = items
		}

	case uriRecentIssues:
		var issues []jira.Issue
		issues, err = h.api.SearchIssues(ctx, jira.SearchOptions{JQL: "order by updated DESC", MaxResults: h.settings.ResourceLimit})
		if err == nil {
			items := make([]map[string]string, 0, len(issues))
			for _, issue := range issues {
				items = append(items, map[string]string{
					"key":      issue.Key,
					"summary":  issue.Summary,
					"status":   issue.Status,
					"assignee": issue.Assignee,
					"updated":  issue.Updated,
				})
			}
			payload = items
		}

	default:
		err = fmt.Errorf("unknown resource: %s", uri)
	}

	if err != nil {
		h.logger.Error("resource read failed", "uri", uri, "err", err)
		payload = map[string]string{"error": err.Error()}
	}
	return jsonContents(uri, payload)
}

// jsonContents marshals payload into a single JSON resource content block.
func jsonContents(uri string, payload any) []mcp.ResourceContents {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		data = fmt.Appendf(nil, `{"error": %q}`, err.Error())
	}
	return []mcp.ResourceContents{mcp.TextResourceContents{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(data),
	}}
}
