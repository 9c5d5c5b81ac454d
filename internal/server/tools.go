package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gi8lino/jiramcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerTools adds the callable tool surface to the MCP server.
func (h *handler) registerTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("search_issues",
		mcp.WithDescription("Search issues with filters or raw JQL"),
		mcp.WithString("jql", mcp.Description("Raw JQL query (optional, wins over the other filters)")),
		mcp.WithString("assignee", mcp.Description("Assignee display name, or 'me' for the current user")),
		mcp.WithString("project", mcp.Description("Project key (e.g. ABC)")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of results (default: 20)")),
	), h.searchIssues)

	s.AddTool(mcp.NewTool("get_issue",
		mcp.WithDescription("Get details of a specific issue"),
		mcp.WithString("issue_key", mcp.Required(), mcp.Description("Issue key (e.g. PROJ-123)")),
	), h.getIssue)

	s.AddTool(mcp.NewTool("create_issue",
		mcp.WithDescription("Create a new issue"),
		mcp.WithString("project_key", mcp.Required(), mcp.Description("Project key")),
		mcp.WithString("summary", mcp.Required(), mcp.Description("Issue title")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Issue description")),
		mcp.WithString("issue_type", mcp.Description("Issue type (Task, Bug, Story, ...)")),
	), h.createIssue)

	s.AddTool(mcp.NewTool("transition_issue",
		mcp.WithDescription("Move an issue to another status"),
		mcp.WithString("issue_key", mcp.Required(), mcp.Description("Issue key")),
		mcp.WithString("transition", mcp.Required(), mcp.Description("Target transition name (In Progress, Done, ...)")),
	), h.transitionIssue)

	s.AddTool(mcp.NewTool("get_my_issues",
		mcp.WithDescription("List all issues assigned to the current user"),
		mcp.WithString("status", mcp.Description("Filter by status (optional)")),
	), h.getMyIssues)
}

// searchIssues handles the search_issues tool.
func (h *handler) searchIssues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := jira.SearchOptions{
		JQL:        req.GetString("jql", ""),
		Assignee:   req.GetString("assignee", ""),
		Project:    req.GetString("project", ""),
		MaxResults: req.GetInt("max_results", h.settings.SearchLimit),
	}

	issues, err := h.api.SearchIssues(ctx, opts)
	if err != nil {
		h.logger.Error("search_issues failed", "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(issues) == 0 {
		return mcp.NewToolResultText("No issues found matching those criteria"), nil
	}

	text, err := renderIssueList(issues)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// getIssue handles the get_issue tool.
func (h *handler) getIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("issue_key")
	if err != nil {
		return mcp.NewToolResultError("issue_key is required"), nil
	}

	issue, err := h.api.GetIssue(ctx, key)
	if errors.Is(err, jira.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("issue not found: %s", key)), nil
	}
	if err != nil {
		h.logger.Error("get_issue failed", "key", key, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("get issue failed: %v", err)), nil
	}

	text, err := renderIssueDetail(issue, h.baseURL)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// createIssue handles the create_issue tool. All required arguments are
// validated before any backend call is made.
func (h *handler) createIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectKey, err := req.RequireString("project_key")
	if err != nil {
		return mcp.NewToolResultError("project_key is required"), nil
	}
	summary, err := req.RequireString("summary")
	if err != nil {
		return mcp.NewToolResultError("summary is required"), nil
	}
	description, err := req.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError("description is required"), nil
	}
	issueType := req.GetString("issue_type", h.settings.DefaultIssueType)

	key, err := h.api.CreateIssue(ctx, projectKey, summary, description, issueType)
	if err != nil {
		h.logger.Error("create_issue failed", "project", projectKey, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("create issue failed: %v", err)), nil
	}

	text, err := renderCreatedIssue(key, summary, h.baseURL)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

// transitionIssue handles the transition_issue tool.
func (h *handler) transitionIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("issue_key")
	if err != nil {
		return mcp.NewToolResultError("issue_key is required"), nil
	}
	name, err := req.RequireString("transition")
	if err != nil {
		return mcp.NewToolResultError("transition is required"), nil
	}

	switch err := h.api.TransitionIssue(ctx, key, name); {
	case errors.Is(err, jira.ErrNoTransition):
		return mcp.NewToolResultError(fmt.Sprintf("could not move %s to %q: transition not available in the current status", key, name)), nil
	case err != nil:
		h.logger.Error("transition_issue failed", "key", key, "transition", name, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("transition failed: %v", err)), nil
	default:
		return mcp.NewToolResultText(fmt.Sprintf("Issue %s moved to %q", key, name)), nil
	}
}

// getMyIssues handles the get_my_issues tool.
func (h *handler) getMyIssues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jql := "assignee = currentUser()"
	if status := req.GetString("status", ""); status != "" {
		jql += fmt.Sprintf(" AND status = '%s'", status)
	}
	jql += " ORDER BY updated DESC"

	issues, err := h.api.SearchIssues(ctx, jira.SearchOptions{JQL: jql, MaxResults: h.settings.MyIssuesLimit})
	if err != nil {
		h.logger.Error("get_my_issues failed", "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(issues) == 0 {
		return mcp.NewToolResultText("You have no assigned issues"), nil
	}

	text, err := renderMyIssues(issues)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}
