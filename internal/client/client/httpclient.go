package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/interestnet/internal/common"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type statusResponse struct {
	Status   string `json:"status"`
	Affected *int64 `json:"affected"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPClient returns a client for the API at endpoint. A bare host:port
// is treated as http.
func NewHTTPClient(endpoint string, timeout time.Duration) (*HTTPClient, error) {
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Authenticated() bool {
	return c.currentToken() != ""
}

func (c *HTTPClient) Logout() {
	c.setToken("")
}

// do sends the request and decodes a 2xx body into out (when out is non-nil).
func (c *HTTPClient) do(req *http.Request, auth bool, out any) error {
	if auth {
		token := c.currentToken()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		if resp.StatusCode == http.StatusUnauthorized {
			if e.Message != "" {
				return fmt.Errorf("%w: %s", ErrUnauthorized, e.Message)
			}
			return ErrUnauthorized
		}
		if e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *HTTPClient) call(ctx context.Context, method, path string, auth bool, payload, out any) error {
	req, err := c.newJSONRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	return c.do(req, auth, out)
}

func (c *HTTPClient) Check(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/check", false, nil, nil)
}

// Register creates the account and keeps the token issued with it.
func (c *HTTPClient) Register(ctx context.Context, in models.SignupRequest) (*models.UserView, error) {
	var view models.UserView
	if err := c.call(ctx, http.MethodPost, "/api/user/sign-up", false, in, &view); err != nil {
		return nil, err
	}
	c.setToken(view.Token.Token)
	return &view, nil
}

// Login posts the password form and keeps the returned access token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok models.AccessToken
	if err := c.do(req, false, &tok); err != nil {
		return err
	}
	c.setToken(tok.AccessToken)
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.call(ctx, http.MethodGet, "/api/user/auth/my_page", true, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteMe removes the account and forgets the token.
func (c *HTTPClient) DeleteMe(ctx context.Context) error {
	if err := c.call(ctx, http.MethodDelete, "/api/user/auth/my_page/delete_my_page", true, nil, nil); err != nil {
		return err
	}
	c.Logout()
	return nil
}

func (c *HTTPClient) Interests(ctx context.Context) (*models.Interests, error) {
	var in models.Interests
	if err := c.call(ctx, http.MethodGet, "/api/user/auth/my_page/interests", true, nil, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (c *HTTPClient) UpdateInterests(ctx context.Context, interests string) (*models.Interests, error) {
	var in models.Interests
	upd := models.InterestsUpdate{Interests: interests}
	if err := c.call(ctx, http.MethodPatch, "/api/user/auth/my_page/update_interests", true, upd, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (c *HTTPClient) Similar(ctx context.Context) (map[string][]string, error) {
	out := map[string][]string{}
	if err := c.call(ctx, http.MethodGet, "/api/user/auth/get_me_users", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AllUsers(ctx context.Context) ([]models.UserInterests, error) {
	users := []models.UserInterests{}
	if err := c.call(ctx, http.MethodGet, "/api/user/auth/get_all_users", true, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminUsers lists every account with its token. The server answers 403
// unless the caller is a superuser.
func (c *HTTPClient) AdminUsers(ctx context.Context) ([]models.AdminUserView, error) {
	users := []models.AdminUserView{}
	if err := c.call(ctx, http.MethodGet, "/api/admin/all_users", true, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	var p models.Post
	if err := c.call(ctx, http.MethodPost, "/api/user/auth/update_posts/", true, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) MyPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.call(ctx, http.MethodGet, "/api/user/auth/my_page/posts/", true, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) PostsOf(ctx context.Context, name string) ([]models.Post, error) {
	var posts []models.Post
	path := "/api/user/auth/update_posts/get_posts/" + url.PathEscape(name)
	if err := c.call(ctx, http.MethodGet, path, true, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost replaces the content of the caller's posts titled title and
// returns how many were changed.
func (c *HTTPClient) UpdatePost(ctx context.Context, title, content string) (int64, error) {
	var st statusResponse
	path := "/api/user/auth/update_posts/patch_mine_post/" + url.PathEscape(title)
	in := models.PostInput{Title: title, Content: content}
	if err := c.call(ctx, http.MethodPatch, path, true, in, &st); err != nil {
		return 0, err
	}
	return affected(st), nil
}

func (c *HTTPClient) DeletePosts(ctx context.Context) (int64, error) {
	var st statusResponse
	if err := c.call(ctx, http.MethodDelete, "/api/user/auth/update_posts/delete", true, nil, &st); err != nil {
		return 0, err
	}
	return affected(st), nil
}

func affected(st statusResponse) int64 {
	if st.Affected == nil {
		return 0
	}
	return *st.Affected
}
