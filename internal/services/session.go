package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionPath returns the default location of the persisted session
// file under the user config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "damx", "session.json"), nil
}

// SaveSession writes the session to path as JSON, creating parent
// directories as needed. The file is user-readable only since it carries
// the bearer token.
func SaveSession(path string, session *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// LoadSession reads a previously saved session from path.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, shared.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if session.Token == "" {
		return nil, shared.ErrNoSession
	}

	return &session, nil
}

// ClearSession removes the session file. A missing file is not an error.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ProfileFromToken decodes the user profile from the session token's JWT
// claims without verifying the signature.
//
// Display-only: authorization decisions belong to the backend, which
// verifies the token on every request.
func ProfileFromToken(token string) (*models.UserProfile, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	profile := &models.UserProfile{}
	if sub, err := claims.GetSubject(); err == nil {
		profile.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		profile.Email = email
	}
	if name, ok := claims["fullName"].(string); ok {
		profile.FullName = name
	}
	if role, ok := claims["role"].(string); ok {
		profile.Role = role
	}

	return profile, nil
}
