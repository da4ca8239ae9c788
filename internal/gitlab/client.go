// Package gitlab is a minimal GitLab API v4 client covering the resources
// relog needs: project lookup, merged merge requests, tags and commits.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIError is returned when the GitLab API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gitlab: %s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client talks to one GitLab project. The project slug is resolved to a
// numeric ID once, at construction, so later requests survive renames.
type Client struct {
	baseURL   string
	token     string
	projectID string
	http      *http.Client
}

// NewClient builds a client for repo ("group/project") on the given GitLab
// instance and resolves the numeric project ID.
func NewClient(ctx context.Context, baseURL, repo, token string) (*Client, error) {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		projectID: url.PathEscape(repo),
		http:      &http.Client{Timeout: 30 * time.Second},
	}

	project, err := c.Project(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving project %q: %w", repo, err)
	}
	c.projectID = strconv.Itoa(project.ID)
	return c, nil
}

// Project fetches the project resource the client is bound to.
func (c *Client) Project(ctx context.Context) (*Project, error) {
	var project Project
	if err := c.get(ctx, "", nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Tag fetches a repository tag by name.
func (c *Client) Tag(ctx context.Context, name string) (*Tag, error) {
	var tag Tag
	if err := c.get(ctx, "repository/tags/"+url.PathEscape(name), nil, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Commit fetches a single commit by SHA.
func (c *Client) Commit(ctx context.Context, sha string) (*Commit, error) {
	var commit Commit
	if err := c.get(ctx, "repository/commits/"+url.PathEscape(sha), nil, &commit); err != nil {
		return nil, err
	}
	return &commit, nil
}

// get issues a GET under /api/v4/projects/<id>/ and decodes the JSON
// response into v.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	u := fmt.Sprintf("%s/api/v4/projects/%s", c.baseURL, c.projectID)
	if path != "" {
		u += "/" + path
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, URL: u, Body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", u, err)
	}
	return nil
}
