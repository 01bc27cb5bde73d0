// StockHub API implementation of [Service]
//
// Endpoint shapes follow the deployed StockHub backend: JSON bodies with an
// optional "message" field on failure, bearer auth on protected routes.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/shared"
	"golang.org/x/oauth2"
)

const (
	loginEndpoint          = "/api/auth/login"
	signupEndpoint         = "/api/auth/signup"
	changePasswordEndpoint = "/api/auth/change-password"
	mediaEndpoint          = "/api/media"
	uploadEndpoint         = "/api/upload"
)

// StockHubService implements the Service interface for the StockHub DAM backend.
//
// Authenticated requests go through an [oauth2.Transport] built from a
// static token source, which attaches the bearer header on every call.
type StockHubService struct {
	baseURL    string
	httpClient *http.Client
	authClient *http.Client
	token      string
}

// NewStockHubService creates a new StockHub service against the given base
// URL. A nil client defaults to [http.DefaultClient].
func NewStockHubService(baseURL string, client *http.Client) *StockHubService {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &StockHubService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (s *StockHubService) Name() string {
	return "StockHub"
}

// SetToken installs a session token for subsequent authenticated requests.
func (s *StockHubService) SetToken(token string) {
	s.token = token
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	s.authClient = oauth2.NewClient(
		context.WithValue(context.Background(), oauth2.HTTPClient, s.httpClient),
		src,
	)
}

// Token returns the currently installed session token, if any.
func (s *StockHubService) Token() string {
	return s.token
}

// client returns the HTTP client for authenticated calls.
func (s *StockHubService) client() (*http.Client, error) {
	if s.authClient == nil {
		return nil, fmt.Errorf("%w: call Login or SetToken first", shared.ErrNotAuthenticated)
	}
	return s.authClient, nil
}

// decodeError extracts the backend's error message from a failed response,
// falling back to the given generic message.
func decodeError(resp *http.Response, fallback string) error {
	var apiErr apiError
	body, err := io.ReadAll(resp.Body)
	if err == nil {
		_ = json.Unmarshal(body, &apiErr)
	}
	if apiErr.Message != "" {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, apiErr.Message)
	}
	return fmt.Errorf("%w: %s (status %d)", shared.ErrAPIRequest, fallback, resp.StatusCode)
}

// postJSON performs a JSON POST with the given client and decodes the
// response body into result when it is non-nil.
func (s *StockHubService) postJSON(ctx context.Context, client *http.Client, endpoint string, payload, result any, fallback string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, fallback)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Login exchanges credentials for a session token and installs it.
func (s *StockHubService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrInvalidInput)
	}

	payload := map[string]string{"email": email, "password": password}

	var session Session
	if err := s.postJSON(ctx, s.httpClient, loginEndpoint, payload, &session, "login failed"); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, fmt.Errorf("%w: backend returned no token", shared.ErrAuthFailed)
	}

	s.SetToken(session.Token)
	return &session, nil
}

// Signup registers a new account and installs the returned session token.
func (s *StockHubService) Signup(ctx context.Context, fullName, email, password string) (*Session, error) {
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", shared.ErrInvalidInput)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", shared.ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", shared.ErrInvalidInput)
	}

	payload := map[string]string{"fullName": fullName, "email": email, "password": password}

	var session Session
	if err := s.postJSON(ctx, s.httpClient, signupEndpoint, payload, &session, "signup failed"); err != nil {
		return nil, err
	}
	if session.Token != "" {
		s.SetToken(session.Token)
	}

	return &session, nil
}

// ChangePassword rotates the authenticated user's password.
func (s *StockHubService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if currentPassword == "" {
		return fmt.Errorf("%w: current password is required", shared.ErrInvalidInput)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: new password must be at least 6 characters", shared.ErrInvalidInput)
	}

	client, err := s.client()
	if err != nil {
		return err
	}

	payload := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}

	return s.postJSON(ctx, client, changePasswordEndpoint, payload, nil, "failed to change password")
}

// ListMedia retrieves the full media catalog.
func (s *StockHubService) ListMedia(ctx context.Context) ([]models.MediaItem, error) {
	client, err := s.client()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+mediaEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp, "failed to fetch media")
	}

	var items []models.MediaItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode media list: %w", err)
	}

	return items, nil
}

// Fetch retrieves raw bytes from a resolved media URL with the bearer
// credential attached.
func (s *StockHubService) Fetch(ctx context.Context, url string) ([]byte, error) {
	client, err := s.client()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d for %s", shared.ErrDownloadFailed, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// Upload submits a new asset as a multipart request with fields "file" and
// "type".
func (s *StockHubService) Upload(ctx context.Context, file io.Reader, filename, typeTag string) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if file == nil {
		return fmt.Errorf("%w: no file selected", shared.ErrInvalidInput)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := writer.WriteField("type", typeTag); err != nil {
		return fmt.Errorf("failed to write type field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+uploadEndpoint, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, "upload failed")
	}

	return nil
}
