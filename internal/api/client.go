// Package api implements the service.API interface over the TaskFlow REST
// contract. It is the single chokepoint for HTTP: bearer injection, response
// normalization and 401 credential invalidation all live here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"taskflow/internal/config"
	"taskflow/internal/service"
)

// GenericErrorMessage is surfaced when a failure response carries no
// server-supplied message.
const GenericErrorMessage = "Something went wrong. Please try again."

// Error is the normalized shape of every failed API call.
type Error struct {
	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int

	// Message is human-readable: the server's message when present,
	// otherwise a generic fallback.
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsAuth reports whether the error is an authentication failure.
func (e *Error) IsAuth() bool { return e.StatusCode == http.StatusUnauthorized }

// Client implements service.API against a TaskFlow server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	cfg        *config.Config

	// token is the in-memory credential. nil means anonymous: requests
	// carry no Authorization header at all.
	token *oauth2.Token
}

// New creates a client from settings, loading any persisted credential.
func New(cfg *config.Config, settings config.Settings) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(settings.BaseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    settings.RequestTimeout,
		cfg:        cfg,
	}
	if cfg.HasToken() {
		if token, err := cfg.LoadToken(); err == nil {
			c.token = token
		}
	}
	return c
}

// NewWithHTTPClient creates a client against an explicit endpoint with a
// custom HTTP client (for testing).
func NewWithHTTPClient(cfg *config.Config, baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		timeout:    config.DefaultRequestTimeout,
		cfg:        cfg,
	}
}

// SetToken installs a bearer credential for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
}

// ClearToken drops the in-memory credential.
func (c *Client) ClearToken() {
	c.token = nil
}

// HasToken reports whether a credential is held in memory.
func (c *Client) HasToken() bool {
	return c.token != nil
}

// invalidateCredential erases the credential everywhere: in memory and on
// disk. Called on every 401 regardless of which operation triggered it.
// Navigation is not this layer's job; callers observe the anonymous state.
func (c *Client) invalidateCredential() {
	c.token = nil
	if c.cfg != nil {
		// Best effort; a failed remove leaves a dead token behind,
		// which the next restore discards anyway.
		_ = c.cfg.RemoveToken()
	}
}

// do issues one API call and normalizes the response. A non-nil out receives
// the decoded success payload. Every failure comes back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: GenericErrorMessage}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Message: GenericErrorMessage}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		c.token.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return &Error{Message: "request timed out"}
		}
		return &Error{Message: GenericErrorMessage}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: GenericErrorMessage}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateCredential()
		}
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Message: GenericErrorMessage}
		}
	}
	return nil
}

// errorMessage extracts the server-supplied message from a failure body,
// falling back to the generic one.
func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return GenericErrorMessage
}

// messagePayload is a `{message}` response body.
type messagePayload struct {
	Message string `json:"message"`
}

// Register creates an account. It does not authenticate the caller.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", body, nil)
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (service.Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var creds service.Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &creds); err != nil {
		return service.Credentials{}, err
	}
	return creds, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (service.User, error) {
	var user service.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return service.User{}, err
	}
	return user, nil
}

// UpdateProfile replaces mutable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, name string) (service.User, error) {
	body := map[string]string{"name": name}
	var user service.User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", body, &user); err != nil {
		return service.User{}, err
	}
	return user, nil
}

// RequestPasswordReset asks for an out-of-band reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var msg messagePayload
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password", body, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// CompletePasswordReset sets a new password keyed by a one-time reset token.
func (c *Client) CompletePasswordReset(ctx context.Context, resetToken, newPassword string) (string, error) {
	body := map[string]string{"password": newPassword}
	path := "/auth/reset-password/" + url.PathEscape(resetToken)
	var msg messagePayload
	if err := c.do(ctx, http.MethodPost, path, body, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// ListTasks returns the full task collection in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns it with its assigned ID.
func (c *Client) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", draft, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces the task with the given ID with a complete snapshot.
func (c *Client) UpdateTask(ctx context.Context, id string, draft service.TaskDraft) (service.Task, error) {
	var task service.Task
	path := fmt.Sprintf("/tasks/%s", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPut, path, draft, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	path := fmt.Sprintf("/tasks/%s", url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// TaskStats fetches the server-computed aggregate snapshot.
func (c *Client) TaskStats(ctx context.Context) (service.Stats, error) {
	var stats service.Stats
	if err := c.do(ctx, http.MethodGet, "/tasks/stats", nil, &stats); err != nil {
		return service.Stats{}, err
	}
	return stats, nil
}
