package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient_ResolvesProjectID(t *testing.T) {
	var seenPath, seenToken string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.EscapedPath()
		seenToken = r.Header.Get("PRIVATE-TOKEN")
		writeJSON(t, w, Project{ID: 42, PathWithNamespace: "platform/api"})
	})

	c, err := NewClient(context.Background(), srv.URL, "platform/api", "secret")
	require.NoError(t, err)

	assert.Equal(t, "/api/v4/projects/platform%2Fapi", seenPath)
	assert.Equal(t, "secret", seenToken)
	assert.Equal(t, "42", c.projectID)
}

func TestClient_APIError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"404 Project Not Found"}`)
	})

	_, err := NewClient(context.Background(), srv.URL, "no/such", "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Project Not Found")
}

// mrServer serves the project lookup plus canned merge-request pages.
func mrServer(t *testing.T, pages map[string][]MergeRequest, commits map[string]Commit) *httptest.Server {
	t.Helper()
	return newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v4/projects/7/merge_requests":
			page := r.URL.Query().Get("page")
			writeJSON(t, w, pages[page])
		case strings.HasPrefix(r.URL.Path, "/api/v4/projects/7/repository/commits/"):
			sha := strings.TrimPrefix(r.URL.Path, "/api/v4/projects/7/repository/commits/")
			commit, ok := commits[sha]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			writeJSON(t, w, commit)
		default:
			writeJSON(t, w, Project{ID: 7})
		}
	})
}

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), srv.URL, "group/proj", "")
	require.NoError(t, err)
	return c
}

func TestMergedMergeRequests_Pagination(t *testing.T) {
	// Two full pages of size 2, then a short page ends pagination.
	pages := map[string][]MergeRequest{
		"1": {{ID: 4, TargetBranch: "master"}, {ID: 3, TargetBranch: "master"}},
		"2": {{ID: 2, TargetBranch: "master"}, {ID: 1, TargetBranch: "master"}},
		"3": {},
	}
	srv := mrServer(t, pages, nil)
	c := testClient(t, srv)

	var progress []int
	mrs, err := c.MergedMergeRequests(context.Background(), ListOptions{
		PerPage:  2,
		Progress: func(n int) { progress = append(progress, n) },
	})
	require.NoError(t, err)

	require.Len(t, mrs, 4)
	assert.Equal(t, []int{2, 4, 4}, progress)
}

func TestMergedMergeRequests_BranchFilter(t *testing.T) {
	pages := map[string][]MergeRequest{
		"1": {
			{ID: 3, TargetBranch: "master"},
			{ID: 2, TargetBranch: "feature/x"},
			{ID: 1, TargetBranch: "staging"},
		},
	}
	srv := mrServer(t, pages, nil)
	c := testClient(t, srv)

	mrs, err := c.MergedMergeRequests(context.Background(), ListOptions{
		Branches: []string{"master", "staging"},
	})
	require.NoError(t, err)

	require.Len(t, mrs, 2)
	assert.Equal(t, 3, mrs[0].ID)
	assert.Equal(t, 1, mrs[1].ID)
}

func TestMergedMergeRequests_SinceCutoffStopsPagination(t *testing.T) {
	cutoff := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	requested := map[string]bool{}
	pages := map[string][]MergeRequest{
		"1": {
			{ID: 2, TargetBranch: "master", UpdatedAt: cutoff.Add(24 * time.Hour)},
			{ID: 1, TargetBranch: "master", UpdatedAt: cutoff.Add(-24 * time.Hour)},
		},
	}
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v4/projects/7/merge_requests" {
			page := r.URL.Query().Get("page")
			requested[page] = true
			writeJSON(t, w, pages[page])
			return
		}
		writeJSON(t, w, Project{ID: 7})
	})
	c := testClient(t, srv)

	mrs, err := c.MergedMergeRequests(context.Background(), ListOptions{
		Since:   cutoff,
		PerPage: 2,
	})
	require.NoError(t, err)

	require.Len(t, mrs, 1)
	assert.Equal(t, 2, mrs[0].ID)
	assert.False(t, requested["2"], "pagination should stop at the cutoff")
}

func TestFilterByMergeCommit(t *testing.T) {
	cutoff := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	commits := map[string]Commit{
		"new": {ID: "new", CreatedAt: cutoff.Add(time.Hour)},
		"old": {ID: "old", CreatedAt: cutoff.Add(-time.Hour)},
	}
	srv := mrServer(t, nil, commits)
	c := testClient(t, srv)

	mrs := []MergeRequest{
		{ID: 1, IID: 11, MergeCommitSHA: "new"},
		{ID: 2, IID: 12, MergeCommitSHA: "old"},
		{ID: 3, IID: 13, MergeCommitSHA: "new"},
	}
	kept, err := c.FilterByMergeCommit(context.Background(), mrs, cutoff)
	require.NoError(t, err)

	require.Len(t, kept, 2)
	assert.Equal(t, 1, kept[0].ID)
	assert.Equal(t, 3, kept[1].ID)
}

func TestFilterByMergeCommit_ZeroCutoffIsNoop(t *testing.T) {
	srv := mrServer(t, nil, nil)
	c := testClient(t, srv)

	mrs := []MergeRequest{{ID: 1}}
	kept, err := c.FilterByMergeCommit(context.Background(), mrs, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, mrs, kept)
}

func TestTag(t *testing.T) {
	committed := time.Date(2020, 2, 14, 12, 0, 0, 0, time.UTC)
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v4/projects/7/repository/tags/v1.0.0" {
			writeJSON(t, w, Tag{Name: "v1.0.0", Commit: Commit{ID: "abc", CommittedDate: committed}})
			return
		}
		writeJSON(t, w, Project{ID: 7})
	})
	c := testClient(t, srv)

	tag, err := c.Tag(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", tag.Name)
	assert.True(t, tag.Commit.CommittedDate.Equal(committed))
}
