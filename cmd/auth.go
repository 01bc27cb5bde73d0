package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/damx/internal/services"
	"github.com/desertthunder/damx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in with email and password and saves the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if r.stockhub == nil {
		return fmt.Errorf("%w: StockHub service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("signing in as %v", email)

	session, err := r.stockhub.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if r.api != nil {
		r.api.SetToken(session.Token)
	}

	if err := services.SaveSession(r.sessionPath, session); err != nil {
		r.logger.Warn("failed to save session", "error", err)
	} else {
		r.logger.Info("session saved", "path", r.sessionPath)
	}

	r.writePlain("✓ Signed in\n")
	if session.User.Email != "" {
		r.writePlain("  Email: %s\n", session.User.Email)
	}
	if session.User.FullName != "" {
		r.writePlain("  Name: %s\n", session.User.FullName)
	}
	return nil
}

// AuthSignup registers a new account and saves its first session.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	fullName := cmd.String("name")
	email := cmd.String("email")
	password := cmd.String("password")

	if r.stockhub == nil {
		return fmt.Errorf("%w: StockHub service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("registering account for %v", email)

	session, err := r.stockhub.Signup(ctx, fullName, email, password)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	if r.api != nil {
		r.api.SetToken(session.Token)
	}

	if err := services.SaveSession(r.sessionPath, session); err != nil {
		r.logger.Warn("failed to save session", "error", err)
	}

	r.writePlain("✓ Account created\n")
	r.writePlain("  Email: %s\n", email)
	return nil
}

// AuthChangePassword rotates the signed-in user's password.
func (r *Runner) AuthChangePassword(ctx context.Context, cmd *cli.Command) error {
	current := cmd.String("current")
	next := cmd.String("new")

	if r.stockhub == nil {
		return fmt.Errorf("%w: StockHub service not initialized", shared.ErrServiceUnavailable)
	}

	if confirm := cmd.String("confirm"); confirm != "" && confirm != next {
		return fmt.Errorf("%w: new passwords do not match", shared.ErrInvalidInput)
	}

	if err := r.stockhub.ChangePassword(ctx, current, next); err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}

	r.logger.Info("password changed")
	return r.writePlain("✓ Password changed\n")
}

// AuthWhoami shows the saved session's user profile.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	session, err := services.LoadSession(r.sessionPath)
	if err != nil {
		if errors.Is(err, shared.ErrNoSession) {
			return fmt.Errorf("%w: run 'damx auth login' first", shared.ErrNotAuthenticated)
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	profile := session.User
	if profile.Email == "" {
		if decoded, err := services.ProfileFromToken(session.Token); err == nil {
			profile = *decoded
		}
	}

	r.writePlainHeader("Signed in")
	if profile.FullName != "" {
		r.writePlain("Name: %s\n", profile.FullName)
	}
	if profile.Email != "" {
		r.writePlain("Email: %s\n", profile.Email)
	}
	if profile.Role != "" {
		r.writePlain("Role: %s\n", profile.Role)
	}
	r.writePlain("Session: %s\n", r.sessionPath)
	return nil
}

// AuthLogout clears the saved session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := services.ClearSession(r.sessionPath); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	r.logger.Info("session cleared", "path", r.sessionPath)
	return r.writePlain("✓ Signed out\n")
}

// AuthImport bootstraps a session token from a browser request captured
// with "Copy as cURL".
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	r.logger.Info("parsing cURL command for session token")

	var curlHeaders *shared.CurlHeaders
	var err error

	if curlFile != "" {
		curlHeaders, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		curlHeaders, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	token, ok := curlHeaders.BearerToken()
	if !ok {
		return fmt.Errorf("%w: no Authorization bearer header in cURL command", shared.ErrInvalidInput)
	}

	session := &services.Session{Token: token}
	if profile, err := services.ProfileFromToken(token); err == nil {
		session.User = *profile
	}

	if r.stockhub != nil {
		r.stockhub.SetToken(token)
	}
	if r.api != nil {
		r.api.SetToken(token)
	}

	if err := services.SaveSession(r.sessionPath, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.writePlain("✓ Session imported\n")
	r.writePlain("Session saved to: %s\n", r.sessionPath)
	if session.User.Email != "" {
		r.writePlain("Email: %s\n", session.User.Email)
	}
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'damx media list' to browse the catalog\n")
	r.writePlain("2. Run 'damx tui' for the interactive library\n")

	return nil
}
