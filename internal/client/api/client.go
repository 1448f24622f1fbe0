package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spec-kit/codepulse/internal/api/dto"
	"github.com/spec-kit/codepulse/internal/auth"
	"github.com/spec-kit/codepulse/internal/client/session"
	"github.com/spec-kit/codepulse/internal/domain"
)

// Client talks to the CodePulse API on behalf of the admin console. Every
// outbound call rides through the bearer transport.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
}

// NewClient builds a client around the session store.
func NewClient(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: newBearerTransport(store, nil),
		},
		store: store,
	}
}

// APIError carries the server's validation payload.
type APIError struct {
	StatusCode int
	Errors     map[string][]string
}

func (e *APIError) Error() string {
	var msgs []string
	for _, fieldMsgs := range e.Errors {
		msgs = append(msgs, fieldMsgs...)
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return strings.Join(msgs, "; ")
}

// Register creates an account. A nil error means the server accepted it.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register",
		dto.RegisterRequest{Email: email, Password: password}, nil)
}

// Login authenticates, decodes the issued credential and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login",
		dto.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	roles, err := domain.ParseRoles(resp.Roles)
	if err != nil {
		return nil, err
	}

	claims, err := auth.DecodeClaims(resp.Token)
	if err != nil {
		return nil, err
	}

	sess := &domain.Session{
		Email:     resp.Email,
		Roles:     roles,
		Token:     resp.Token,
		IssuedAt:  claims.IssuedAtTime(),
		ExpiresAt: claims.ExpiresAtTime(),
	}
	c.store.Set(sess)
	return sess, nil
}

// Logout destroys the local session. The server holds no session state.
func (c *Client) Logout() {
	c.store.Clear()
}

// ListCategories fetches categories with the given query parameters.
func (c *Client) ListCategories(ctx context.Context, query string) ([]dto.CategoryResponse, error) {
	path := "/api/categories"
	if query != "" {
		path += "?query=" + query
	}
	var resp []dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, name, urlHandle string) (*dto.CategoryResponse, error) {
	var resp dto.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "/api/categories",
		dto.CategoryRequest{Name: name, URLHandle: urlHandle}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPosts fetches blog posts.
func (c *Client) ListPosts(ctx context.Context) ([]dto.BlogPostResponse, error) {
	var resp []dto.BlogPostResponse
	if err := c.do(ctx, http.MethodGet, "/api/blogposts", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreatePost creates a blog post.
func (c *Client) CreatePost(ctx context.Context, req dto.BlogPostRequest) (*dto.BlogPostResponse, error) {
	var resp dto.BlogPostResponse
	if err := c.do(ctx, http.MethodPost, "/api/blogposts", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload dto.ValidationErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			apiErr.Errors = payload.Errors
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
