// Package api is a typed HTTP client for the TaskY REST surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/taskyhq/tasky-be/internal/models"
)

// APIError is a non-2xx response; Message carries the server's message
// verbatim so views can surface it to the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client calls the TaskY server. Set a token to reach protected routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a Client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the bearer token sent on subsequent requests. An empty
// token reverts to unauthenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// AuthResponse is the body of a successful register or login.
type AuthResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	apiErr := &APIError{Status: resp.StatusCode, Message: "request failed"}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	}
	return apiErr
}

// Register creates an account and returns the issued session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates by email or username.
func (c *Client) Login(ctx context.Context, emailOrUsername, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"emailOrUsername": emailOrUsername, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword replaces the current password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPatch, "/api/v1/auth/password", body, nil)
}

// ForgotPassword requests a reset mail; the returned message is neutral.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ResetPassword consumes a mailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/reset-password", body, nil)
}

// GetProfile returns the caller's public fields.
func (c *Client) GetProfile(ctx context.Context) (models.PublicUser, error) {
	var out models.PublicUser
	err := c.do(ctx, http.MethodGet, "/api/v1/user/", nil, &out)
	return out, err
}

// UpdateProfile replaces the four profile fields.
func (c *Client) UpdateProfile(ctx context.Context, firstName, lastName, username, email string) (models.PublicUser, error) {
	var out struct {
		User models.PublicUser `json:"user"`
	}
	body := map[string]string{
		"firstName": firstName, "lastName": lastName,
		"username": username, "email": email,
	}
	err := c.do(ctx, http.MethodPatch, "/api/v1/user/", body, &out)
	return out.User, err
}

// UploadAvatar sends an image as the new avatar.
func (c *Client) UploadAvatar(ctx context.Context, filename string, file io.Reader) (models.PublicUser, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", filename)
	if err != nil {
		return models.PublicUser{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.PublicUser{}, err
	}
	if err := mw.Close(); err != nil {
		return models.PublicUser{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/api/v1/user/avatar", &buf)
	if err != nil {
		return models.PublicUser{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.PublicUser{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return models.PublicUser{}, decodeError(resp)
	}
	var out struct {
		User models.PublicUser `json:"user"`
	}
	err = json.NewDecoder(resp.Body).Decode(&out)
	return out.User, err
}

// CreateTask creates an active task.
func (c *Client) CreateTask(ctx context.Context, title, description string) (models.Task, error) {
	var out struct {
		Task models.Task `json:"task"`
	}
	body := map[string]string{"title": title, "description": description}
	err := c.do(ctx, http.MethodPost, "/api/v1/tasks/", body, &out)
	return out.Task, err
}

// ListTasks fetches the caller's tasks for a status filter.
func (c *Client) ListTasks(ctx context.Context, status string) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, http.MethodGet, "/api/v1/tasks/?status="+status, nil, &out)
	return out, err
}

// GetTask fetches a single task.
func (c *Client) GetTask(ctx context.Context, id string) (models.Task, error) {
	var out models.Task
	err := c.do(ctx, http.MethodGet, "/api/v1/tasks/"+id, nil, &out)
	return out, err
}

// UpdateTask applies a partial update; nil fields are left unchanged.
func (c *Client) UpdateTask(ctx context.Context, id string, title, description *string) (models.Task, error) {
	var out struct {
		Task models.Task `json:"task"`
	}
	body := map[string]*string{"title": title, "description": description}
	err := c.do(ctx, http.MethodPatch, "/api/v1/tasks/"+id, body, &out)
	return out.Task, err
}

// SoftDeleteTask moves a task to the trash.
func (c *Client) SoftDeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+id, nil, nil)
}

// RestoreTask brings a trashed task back as active.
func (c *Client) RestoreTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/api/v1/tasks/restore/"+id, nil, nil)
}

// CompleteTask marks a task done.
func (c *Client) CompleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/api/v1/tasks/complete/"+id, nil, nil)
}

// IncompleteTask marks a task not done.
func (c *Client) IncompleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/api/v1/tasks/incomplete/"+id, nil, nil)
}

// HardDeleteTask permanently removes a trashed task.
func (c *Client) HardDeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks/hard-delete/"+id, nil, nil)
}

// RecentActivity fetches the caller's latest recorded task events.
func (c *Client) RecentActivity(ctx context.Context) ([]models.Activity, error) {
	var out []models.Activity
	err := c.do(ctx, http.MethodGet, "/api/v1/activity", nil, &out)
	return out, err
}
