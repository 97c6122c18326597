// HTTP implementation of [Service] for the Torrentio API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:5001"

// TorrentioService implements [Service] against the Torrentio REST API.
type TorrentioService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTorrentioService creates a service for the API at baseURL.
//
// A non-positive requestsPerSecond disables client-side throttling.
func NewTorrentioService(baseURL string, client *http.Client, requestsPerSecond float64) *TorrentioService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &TorrentioService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    limiter,
	}
}

// Name returns the name of the service
func (t *TorrentioService) Name() string { return "Torrentio" }

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// Register creates a new identity via POST /api/users.
func (t *TorrentioService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	payload := registerRequest{Name: name, Email: email, Password: password}

	if err := t.do(ctx, http.MethodPost, "/api/users", payload, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login authenticates via POST /api/users/login and returns the session token.
func (t *TorrentioService) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	payload := loginRequest{Email: email, Password: password}

	if err := t.do(ctx, http.MethodPost, "/api/users/login", payload, &resp); err != nil {
		return "", err
	}

	if resp.Token == "" {
		return "", fmt.Errorf("%w: response carried no token", shared.ErrAuthFailed)
	}

	return resp.Token, nil
}

// Games retrieves the full game catalog from GET /api/games.
func (t *TorrentioService) Games(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := t.do(ctx, http.MethodGet, "/api/games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// SearchGames retrieves games matching query from GET /api/games?search=...
func (t *TorrentioService) SearchGames(ctx context.Context, query string) ([]models.Game, error) {
	params := url.Values{}
	params.Set("search", query)

	var games []models.Game
	if err := t.do(ctx, http.MethodGet, "/api/games?"+params.Encode(), nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Developers retrieves the developer catalog from GET /api/developers.
func (t *TorrentioService) Developers(ctx context.Context) ([]models.Developer, error) {
	var developers []models.Developer
	if err := t.do(ctx, http.MethodGet, "/api/developers", nil, &developers); err != nil {
		return nil, err
	}
	return developers, nil
}

// do performs one JSON round trip against the API.
//
// Non-2xx responses become [*APIError] with the payload's message when the
// body parses as an error payload.
func (t *TorrentioService) do(ctx context.Context, method, path string, payload, out any) error {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait cancelled: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var rejection errorPayload
		_ = json.Unmarshal(data, &rejection)
		return &APIError{StatusCode: resp.StatusCode, Message: rejection.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
