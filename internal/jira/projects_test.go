package jira

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyself(t *testing.T) {
	t.Parallel()

	t.Run("returns the raw profile unmodified", func(t *testing.T) {
		t.Parallel()

		profile := `{"accountId": "abc123", "displayName": "Bob", "emailAddress": "bob@example.com"}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/3/myself", r.URL.Path)
			w.Write([]byte(profile)) // nolint:errcheck
		}))
		defer srv.Close()

		c := newTestClient(t, srv)
		raw, err := c.Myself(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, profile, string(raw))
	})
}

func TestProjects(t *testing.T) {
	t.Parallel()

	t.Run("preserves backend order", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/api/3/project", r.URL.Path)
			w.Write([]byte(`[
				{"key": "ZZZ", "name": "Zulu", "projectTypeKey": "software", "lead": {"displayName": "Alice"}},
				{"key": "AAA", "name": "Alpha", "projectTypeKey": "business"}
			]`)) // nolint:errcheck
		}))
		defer srv.Close()

		c := newTestClient(t, srv)
		projects, err := c.Projects(context.Background())
		require.NoError(t, err)
		require.Len(t, projects, 2)

		assert.Equal(t, "ZZZ", projects[0].Key)
		assert.Equal(t, "Alice", projects[0].Lead)
		assert.Equal(t, "AAA", projects[1].Key)
		assert.Equal(t, Unassigned, projects[1].Lead)
	})

	t.Run("backend error propagates", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"errorMessages":["auth required"]}`)) // nolint:errcheck
		}))
		defer srv.Close()

		c := newTestClient(t, srv)
		_, err := c.Projects(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list projects")
	})
}
