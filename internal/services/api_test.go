package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/torrentio/cli/internal/models"
	tu "github.com/torrentio/cli/internal/testing"
)

func TestTorrentioService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewTorrentioService("http://example.com", customClient, 0)

			if srv.baseURL != "http://example.com" {
				t.Errorf("expected baseURL 'http://example.com', got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
			if srv.limiter != nil {
				t.Error("expected throttling disabled for zero rate")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewTorrentioService("", nil, 0)

			if srv.baseURL != defaultBaseURL {
				t.Errorf("expected default baseURL %s, got %s", defaultBaseURL, srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("With Rate Limit", func(t *testing.T) {
			srv := NewTorrentioService("", nil, 5)

			if srv.limiter == nil {
				t.Error("expected limiter to be configured")
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Success Returns Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST method, got %s", r.Method)
				}
				if r.URL.Path != "/api/users/login" {
					t.Errorf("expected path '/api/users/login', got %s", r.URL.Path)
				}

				var req loginRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				if req.Email != "ana@example.com" || req.Password != "abcd" {
					t.Errorf("unexpected credentials: %+v", req)
				}

				json.NewEncoder(w).Encode(map[string]string{"token": "T"})
			}))
			defer server.Close()

			srv := NewTorrentioService(server.URL, nil, 0)
			token, err := srv.Login(context.Background(), "ana@example.com", "abcd")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != "T" {
				t.Errorf("expected token T, got %s", token)
			}
		})

		t.Run("Rejection Carries Server Message", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			}))
			defer server.Close()

			srv := NewTorrentioService(server.URL, nil, 0)
			_, err := srv.Login(context.Background(), "ana@example.com", "wrong")

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Message != "invalid credentials" {
				t.Errorf("expected server message, got %s", apiErr.Message)
			}
			if apiErr.StatusCode != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", apiErr.StatusCode)
			}
		})

		t.Run("Rejection Without Message Falls Back", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("boom"))
			}))
			defer server.Close()

			srv := NewTorrentioService(server.URL, nil, 0)
			_, err := srv.Login(context.Background(), "ana@example.com", "abcd")

			if got := RejectionMessage(err, "login failed"); got != "login failed" {
				t.Errorf("expected fallback message, got %s", got)
			}
		})

		t.Run("Missing Token Is An Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{})
			}))
			defer server.Close()

			srv := NewTorrentioService(server.URL, nil, 0)
			if _, err := srv.Login(context.Background(), "ana@example.com", "abcd"); err == nil {
				t.Error("expected error for empty token")
			}
		})
	})

	t.Run("Register", func(t *testing.T) {
		t.Run("Created", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/users" {
					t.Errorf("expected path '/api/users', got %s", r.URL.Path)
				}

				var req registerRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}

				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(models.User{ID: "u1", Name: req.Name, Email: req.Email, Role: "user"})
			}))
			defer server.Close()

			srv := NewTorrentioService(server.URL, nil, 0)
			user, err := srv.Register(context.Background(), "Ana", "ana@example.com", "abcd")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if user.ID != "u1" || user.Role != "user" {
				t.Errorf("unexpected identity: %+v", user)
			}
		})

		t.Run("Duplicate Email Rejected", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]string{"message": "email already registered"})
			}))
			defer server.Close()

			srv := NewTorrentioService(server.URL, nil, 0)
			_, err := srv.Register(context.Background(), "Ana", "ana@example.com", "abcd")

			if got := RejectionMessage(err, "registration failed"); got != "email already registered" {
				t.Errorf("expected server message, got %s", got)
			}
		})
	})

	t.Run("Games", func(t *testing.T) {
		t.Run("Decodes Catalog In Order", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/games" {
					t.Errorf("expected path '/api/games', got %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode([]models.Game{
					{ID: "g1", Title: "Doom", Genre: "FPS"},
					{ID: "g2", Title: "Hades", Genre: "Roguelike"},
				})
			}))
			defer server.Close()

			srv := NewTorrentioService(server.URL, nil, 0)
			games, err := srv.Games(context.Background())

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(games) != 2 || games[0].ID != "g1" || games[1].ID != "g2" {
				t.Errorf("expected fetch order preserved, got %v", games)
			}
		})

		t.Run("Transport Failure", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewTorrentioService("http://example.com", client, 0)
			_, err := srv.Games(context.Background())

			if err == nil {
				t.Error("expected error for failed request")
			}
			if !strings.Contains(err.Error(), "API request failed") {
				t.Errorf("expected wrapped transport error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			srv := NewTorrentioService("http://example.com", client, 0)
			_, err := srv.Games(context.Background())

			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected read error, got %v", err)
			}
		})
	})

	t.Run("SearchGames", func(t *testing.T) {
		t.Run("Sends Opaque Query Parameter", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("search"); got != "dark souls" {
					t.Errorf("expected search 'dark souls', got %q", got)
				}
				json.NewEncoder(w).Encode([]models.Game{{ID: "g9", Title: "Dark Souls"}})
			}))
			defer server.Close()

			srv := NewTorrentioService(server.URL, nil, 0)
			games, err := srv.SearchGames(context.Background(), "dark souls")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(games) != 1 || games[0].Title != "Dark Souls" {
				t.Errorf("unexpected result: %v", games)
			}
		})

		t.Run("No Matches Is Empty Not Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode([]models.Game{})
			}))
			defer server.Close()

			srv := NewTorrentioService(server.URL, nil, 0)
			games, err := srv.SearchGames(context.Background(), "nothing")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(games) != 0 {
				t.Errorf("expected empty result, got %v", games)
			}
		})
	})

	t.Run("Developers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/developers" {
				t.Errorf("expected path '/api/developers', got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]models.Developer{
				{ID: "d1", Name: "FromSoftware", Founded: 1986, Country: "Japan"},
			})
		}))
		defer server.Close()

		srv := NewTorrentioService(server.URL, nil, 0)
		developers, err := srv.Developers(context.Background())

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(developers) != 1 || developers[0].Founded != 1986 {
			t.Errorf("unexpected result: %v", developers)
		}
	})

	t.Run("RejectionMessage", func(t *testing.T) {
		t.Run("Plain Error Uses Fallback", func(t *testing.T) {
			if got := RejectionMessage(errors.New("dial tcp"), "generic"); got != "generic" {
				t.Errorf("expected fallback, got %s", got)
			}
		})

		t.Run("Wrapped APIError Surfaces Message", func(t *testing.T) {
			err := &APIError{StatusCode: 400, Message: "bad request"}
			if got := RejectionMessage(err, "generic"); got != "bad request" {
				t.Errorf("expected server message, got %s", got)
			}
		})
	})
}
