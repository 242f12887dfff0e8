// Package client is a typed gateway for the folio HTTP API. After Login the
// bearer token is attached to every outgoing request; the client never
// inspects the token itself, a rejected call surfaces as an *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/folio/folio/server/internal/post"
	"github.com/folio/folio/server/internal/project"
	"github.com/folio/folio/server/internal/stats"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client calls the folio API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the given base URL (e.g. "http://localhost:5000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs a previously obtained bearer token.
func (c *Client) SetToken(token string) { c.token = token }

// Login exchanges the admin password for a token and stores it on the client.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"password": password}, &out)
	if err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

// Logout revokes the stored token server-side and clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) ListPosts(ctx context.Context) ([]*post.Post, error) {
	var out []*post.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*post.Post, error) {
	var out post.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, f post.Fields) (*post.Post, error) {
	var out post.Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, f post.Fields) (*post.Post, error) {
	var out post.Post
	if err := c.do(ctx, http.MethodPut, "/api/posts/"+id, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+id, nil, nil)
}

func (c *Client) ListProjects(ctx context.Context) ([]*project.Project, error) {
	var out []*project.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, p *project.Project) (*project.Project, error) {
	var out project.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, p *project.Project) (*project.Project, error) {
	var out project.Project
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+id, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}

// RecordVisit fires the public visit counter.
func (c *Client) RecordVisit(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/stats/visit", nil, nil)
}

// Stats returns the aggregate counters (admin only).
func (c *Client) Stats(ctx context.Context) (*stats.Stats, error) {
	var out stats.Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
