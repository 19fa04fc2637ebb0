package gateway

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"fittrack/internal/auth"
	"fittrack/internal/models"
	"fittrack/internal/storage"
)

// Client wraps every remote call behind one interface and owns session
// persistence. All methods are safe for concurrent use; the session is a
// single shared cell with last-writer-wins semantics.
type Client struct {
	baseURL    string
	httpClient *http.Client
	db         *sql.DB

	mu    sync.RWMutex
	token string
	user  *models.Profile

	// onUnauthorized fires after a 401 has cleared the session. It is the
	// controller's cue to fall back to the login screen.
	onUnauthorized func()
}

// New creates a client against baseURL (".../api/v1") and restores any
// session persisted in the local store. A restored token that is a JWT
// past its expiry is discarded up front rather than guaranteeing a 401.
func New(baseURL string, db *sql.DB) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		db:         db,
	}

	sess, err := storage.LoadSession(db)
	if err != nil {
		if !errors.Is(err, storage.ErrNoSession) {
			log.Printf("Failed to restore session: %v", err)
		}
		return c
	}
	if auth.TokenExpired(sess.Token) {
		log.Println("Stored session token expired, clearing")
		_ = storage.ClearSession(db)
		return c
	}
	c.token = sess.Token
	c.user = sess.User
	return c
}

// OnUnauthorized registers the hook invoked when a 401 clears the session.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) setAuth(token string, user *models.Profile) {
	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()

	if err := storage.SaveSession(c.db, token, user); err != nil {
		log.Printf("Failed to persist session: %v", err)
	}
}

// ClearAuth drops the session from memory and the local store. It never
// leaves stale credentials behind, even if the store write fails.
func (c *Client) ClearAuth() {
	c.mu.Lock()
	c.token = ""
	c.user = nil
	c.mu.Unlock()

	if err := storage.ClearSession(c.db); err != nil {
		log.Printf("Failed to clear persisted session: %v", err)
	}
}

// IsAuthenticated reports whether both token and user are present.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != "" && c.user != nil
}

// CurrentUser returns the cached profile, or nil when logged out.
func (c *Client) CurrentUser() *models.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

func (c *Client) setUser(user models.Profile) {
	c.mu.Lock()
	c.user = &user
	token := c.token
	c.mu.Unlock()

	if token != "" {
		if err := storage.SaveSession(c.db, token, &user); err != nil {
			log.Printf("Failed to persist profile: %v", err)
		}
	}
}

// do issues one request and decodes the response into out (when non-nil).
// A non-2xx status becomes an *APIError carrying the server's message or
// detail field; transport and parse failures become *NetworkError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, includeAuth bool) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: "encode request", Err: err}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &NetworkError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	if includeAuth {
		c.mu.RLock()
		token := c.token
		c.mu.RUnlock()
		if token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if json.Unmarshal(respBody, &errBody) == nil {
			if errBody.Message != "" {
				apiErr.Message = errBody.Message
			} else if errBody.Detail != "" {
				apiErr.Message = errBody.Detail
			}
		}
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &NetworkError{Op: "decode response", Err: err}
		}
	}
	return nil
}

// HandleError applies the single automatic recovery path: an unauthorized
// error clears the session and fires the registered hook. All other
// errors pass through unchanged.
func (c *Client) HandleError(err error) error {
	if err == nil {
		return nil
	}
	if IsUnauthorized(err) {
		c.ClearAuth()
		c.mu.RLock()
		hook := c.onUnauthorized
		c.mu.RUnlock()
		if hook != nil {
			hook()
		}
	}
	return err
}

// Login authenticates and, on success, atomically stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login/", models.LoginRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		c.setAuth(resp.Token, &resp.User)
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register/", req, &resp, false)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		c.setAuth(resp.Token, &resp.User)
	}
	return &resp, nil
}

// Logout invalidates the session remotely on a best-effort basis and
// always clears local state regardless of the remote outcome.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil, true)
	if err != nil {
		log.Printf("Logout error: %v", err)
	}
	c.ClearAuth()
	return err
}

func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, &profile, true); err != nil {
		return nil, err
	}
	c.setUser(profile)
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodPatch, "/auth/profile/", update, &profile, true); err != nil {
		return nil, err
	}
	c.setUser(profile)
	return &profile, nil
}
