// package services defines interface Service for interacting with the
// StockHub HTTP API
package services

import (
	"context"
	"io"

	"github.com/desertthunder/damx/internal/models"
)

// Service defines the interface for DAM backends that can authenticate
// users, list the media catalog, deliver bytes, and accept uploads.
type Service interface {
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Signup registers a new account and returns its first session.
	Signup(ctx context.Context, fullName, email, password string) (*Session, error)

	// ChangePassword rotates the authenticated user's password.
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	// ListMedia retrieves the full media catalog for the authenticated user.
	ListMedia(ctx context.Context) ([]models.MediaItem, error)

	// Fetch retrieves the raw bytes behind a resolved media URL with the
	// caller's auth credential attached.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Upload submits a new asset with its category tag as a multipart request.
	Upload(ctx context.Context, file io.Reader, filename, typeTag string) error

	// Name returns the name of the backend (e.g., "StockHub")
	Name() string
}

// Session represents an authenticated session against the backend.
type Session struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// apiError is the backend's error envelope; Message is optional.
type apiError struct {
	Message string `json:"message"`
}
