package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/gi8lino/jiramcp/internal/config"
	"github.com/gi8lino/jiramcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

// fakeService is a scriptable jira.Service. It counts every backend call so
// tests can assert that validation failures never reach the network.
type fakeService struct {
	calls int

	myselfFn     func(ctx context.Context) (json.RawMessage, error)
	projectsFn   func(ctx context.Context) ([]jira.Project, error)
	searchFn     func(ctx context.Context, opts jira.SearchOptions) ([]jira.Issue, error)
	getFn        func(ctx context.Context, key string) (jira.Issue, error)
	createFn     func(ctx context.Context, projectKey, summary, description, issueType string) (string, error)
	transitionFn func(ctx context.Context, key, name string) error
	assignFn     func(ctx context.Context, key, assignee string) error
}

var _ jira.Service = (*fakeService)(nil)

func (f *fakeService) Myself(ctx context.Context) (json.RawMessage, error) {
	f.calls++
	if f.myselfFn == nil {
		return json.RawMessage(`{}`), nil
	}
	return f.myselfFn(ctx)
}

func (f *fakeService) Projects(ctx context.Context) ([]jira.Project, error) {
	f.calls++
	if f.projectsFn == nil {
		return nil, nil
	}
	return f.projectsFn(ctx)
}

func (f *fakeService) SearchIssues(ctx context.Context, opts jira.SearchOptions) ([]jira.Issue, error) {
	f.calls++
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, opts)
}

func (f *fakeService) GetIssue(ctx context.Context, key string) (jira.Issue, error) {
	f.calls++
	if f.getFn == nil {
		return jira.Issue{}, nil
	}
	return f.getFn(ctx, key)
}

func (f *fakeService) CreateIssue(ctx context.Context, projectKey, summary, description, issueType string) (string, error) {
	f.calls++
	if f.createFn == nil {
		return "", nil
	}
	return f.createFn(ctx, projectKey, summary, description, issueType)
}

func (f *fakeService) TransitionIssue(ctx context.Context, key, name string) error {
	f.calls++
	if f.transitionFn == nil {
		return nil
	}
	return f.transitionFn(ctx, key, name)
}

func (f *fakeService) AssignIssue(ctx context.Context, key, assignee string) error {
	f.calls++
	if f.assignFn == nil {
		return nil
	}
	return f.assignFn(ctx, key, assignee)
}

// newTestHandler returns a handler wired to the given fake with defaults.
func newTestHandler(api jira.Service) *handler {
	return &handler{
		api:      api,
		baseURL:  "https://jira.example.com",
		settings: config.Default(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// newRequest builds a CallToolRequest carrying the given arguments.
func newRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the first text content block of a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}
