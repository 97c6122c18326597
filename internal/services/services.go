// package services defines interface Service for the remote Torrentio API
package services

import (
	"context"
	"errors"

	"github.com/torrentio/cli/internal/models"
)

// Service defines the interface for the remote catalog and identity provider.
type Service interface {
	// Register creates a new identity via POST /api/users.
	// Returns the created identity, or an [*APIError] carrying the server's message.
	Register(ctx context.Context, name, email, password string) (*models.User, error)

	// Login authenticates via POST /api/users/login and returns the session token.
	Login(ctx context.Context, email, password string) (string, error)

	// Games retrieves the full game catalog.
	Games(ctx context.Context) ([]models.Game, error)

	// SearchGames retrieves games matching a free-text query.
	// The query is an opaque fetch parameter resolved by the server, not matched locally.
	SearchGames(ctx context.Context, query string) ([]models.Game, error)

	// Developers retrieves the developer catalog.
	Developers(ctx context.Context) ([]models.Developer, error)

	// Name returns the name of the service
	Name() string
}

// APIError is a server-side rejection carrying the human-readable message from
// the error payload, if the response included one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "API request failed"
}

// RejectionMessage extracts the user-visible message from err: the remote
// message when err is an [*APIError] that carries one, otherwise fallback.
func RejectionMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
