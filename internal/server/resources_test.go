package server

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gi8lino/jiramcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeContents unmarshals the single JSON content block of a read result.
func decodeContents(t *testing.T, contents []mcp.ResourceContents, v any) string {
	t.Helper()

	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "expected text resource contents, got %T", contents[0])
	assert.Equal(t, "application/json", tc.MIMEType)
	require.NoError(t, json.Unmarshal([]byte(tc.Text), v))
	return tc.URI
}

func TestReadResource(t *testing.T) {
	t.Parallel()

	t.Run("my-issues searches for the current user", func(t *testing.T) {
		t.Parallel()

		var gotOpts jira.SearchOptions
		fake := &fakeService{
			searchFn: func(ctx context.Context, opts jira.SearchOptions) ([]jira.Issue, error) {
				gotOpts = opts
				return []jira.Issue{
					{Key: "ABC-1", Summary: "First", Status: "To Do", Priority: "High", Type: "Task", Updated: "u1"},
				}, nil
			},
		}
		h := newTestHandler(fake)

		var items []map[string]string
		uri := decodeContents(t, h.read(context.Background(), uriMyIssues), &items)

		assert.Equal(t, uriMyIssues, uri)
		assert.Equal(t, "me", gotOpts.Assignee)
		assert.Equal(t, 20, gotOpts.MaxResults)
		require.Len(t, items, 1)
		assert.Equal(t, map[string]string{
			"key": "ABC-1", "summary": "First", "status": "To Do",
			"priority": "High", "type": "Task", "updated": "u1",
		}, items[0])
	})

	t.Run("projects lists all projects", func(t *testing.T) {
		t.Parallel()

		fake := &fakeService{
			projectsFn: func(ctx context.Context) ([]jira.Project, error) {
				return []jira.Project{
					{Key: "ABC", Name: "Alpha", Type: "software", Lead: "Alice"},
					{Key: "XYZ", Name: "Zulu", Type: "unknown", Lead: jira.Unassigned},
				}, nil
			},
		}
		h := newTestHandler(fake)

		var items []map[string]string
		decodeContents(t, h.read(context.Background(), uriProjects), &items)

		require.Len(t, items, 2)
		assert.Equal(t, "Alpha", items[0]["name"])
		assert.Equal(t, "unassigned", items[1]["lead"])
	})

	t.Run("recent-issues uses the ordering query", func(t *testing.T) {
		t.Parallel()

		var gotOpts jira.SearchOptions
		fake := &fakeService{
			searchFn: func(ctx context.Context, opts jira.SearchOptions) ([]jira.Issue, error) {
				gotOpts = opts
				return []jira.Issue{{Key: "ABC-2", Summary: "s", Status: "Done", Assignee: "Bob", Updated: "u2"}}, nil
			},
		}
		h := newTestHandler(fake)

		var items []map[string]string
		decodeContents(t, h.read(context.Background(), uriRecentIssues), &items)

		assert.Equal(t, "order by updated DESC", gotOpts.JQL)
		require.Len(t, items, 1)
		assert.Equal(t, "Bob", items[0]["assignee"])
	})

	t.Run("unknown uri yields an error payload, not a fault", func(t *testing.T) {
		t.Parallel()

		fake := &fakeService{}
		h := newTestHandler(fake)

		var payload map[string]string
		decodeContents(t, h.read(context.Background(), "jira://nope"), &payload)

		assert.Contains(t, payload["error"], "unknown resource")
		assert.Zero(t, fake.calls)
	})

	t.Run("backend failure yields an error payload", func(t *testing.T) {
		t.Parallel()

		fake := &fakeService{
			searchFn: func(ctx context.Context, opts jira.SearchOptions) ([]jira.Issue, error) {
				return nil, fmt.Errorf("jira error: auth required")
			},
		}
		h := newTestHandler(fake)

		var payload map[string]string
		decodeContents(t, h.read(context.Background(), uriMyIssues), &payload)

		assert.Contains(t, payload["error"], "auth required")
	})

	t.Run("handler never returns a protocol error", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeService{})
		req := mcp.ReadResourceRequest{}
		req.Params.URI = "jira://nope"

		contents, err := h.readResource(context.Background(), req)
		require.NoError(t, err)
		require.NotEmpty(t, contents)
	})
}
