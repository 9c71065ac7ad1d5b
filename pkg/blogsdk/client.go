package blogsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client is a typed client for the blog service. The zero value is not
// usable; construct with NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a cookie jar so the session cookie
// set by Login rides along on subsequent requests.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs a request with an optional JSON body and decodes the
// response into target when it is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, in, target any, expectedStatus int) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, raw)
	}

	if target != nil {
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Register creates a local account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", req, nil, http.StatusOK)
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, req LoginRequest) (User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &user, http.StatusOK)
	return user, err
}

// Logout clears the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, http.StatusOK)
}

// SessionUser probes the current session. It always succeeds at the
// HTTP level; inspect Authenticated on the response.
func (c *Client) SessionUser(ctx context.Context) (SessionResponse, error) {
	var resp SessionResponse
	err := c.doJSON(ctx, http.MethodGet, "/auth/google/user", nil, &resp, http.StatusOK)
	return resp, err
}

// ListPosts returns all posts, optionally filtered by category.
func (c *Client) ListPosts(ctx context.Context, cat string) ([]Post, error) {
	path := "/posts"
	if cat != "" {
		path += "?cat=" + url.QueryEscape(cat)
	}
	var posts []Post
	err := c.doJSON(ctx, http.MethodGet, path, nil, &posts, http.StatusOK)
	return posts, err
}

// GetPost returns a single post with its author's public attributes.
func (c *Client) GetPost(ctx context.Context, id string) (Post, error) {
	var post Post
	err := c.doJSON(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, &post, http.StatusOK)
	return post, err
}

// CreatePost creates a post authored by the session user.
func (c *Client) CreatePost(ctx context.Context, req PostRequest) (Post, error) {
	var post Post
	err := c.doJSON(ctx, http.MethodPost, "/posts", req, &post, http.StatusCreated)
	return post, err
}

// UpdatePost updates a post owned by the session user.
func (c *Client) UpdatePost(ctx context.Context, id string, req PostRequest) error {
	return c.doJSON(ctx, http.MethodPatch, "/posts/"+url.PathEscape(id), req, nil, http.StatusOK)
}

// DeletePost deletes a post owned by the session user.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// Livez checks the liveness endpoint.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &resp, http.StatusOK)
	return resp, err
}

// Readyz checks the readiness endpoint.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &resp, http.StatusOK)
	return resp, err
}
