package main

import (
	"context"
	"fmt"

	"github.com/torrentio/cli/internal/forms"
	"github.com/torrentio/cli/internal/services"
	"github.com/torrentio/cli/internal/session"
	"github.com/torrentio/cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates a new account after validating the input locally.
//
// Validation failures are printed in field order without touching the network,
// mirroring form-level feedback.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	email := cmd.String("email")
	password := cmd.String("password")

	if violations := forms.ValidateRegistration(name, email, password); len(violations) > 0 {
		for _, violation := range violations {
			r.writePlain("✗ %s\n", violation)
		}
		return fmt.Errorf("%w: registration rejected", shared.ErrInvalidInput)
	}

	if r.api == nil {
		return fmt.Errorf("%w: identity service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("registering account", "email", email)

	user, err := r.api.Register(ctx, name, email, password)
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrAuthFailed,
			services.RejectionMessage(err, session.GenericRegisterMessage))
	}

	r.writePlain("✓ Account created for %s\n", user.Name)
	r.writePlain("Run 'torrentio auth login' to start a session.\n")
	return nil
}

// AuthLogin authenticates and stores the session token in the shared store.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if violations := forms.ValidateLogin(email, password); len(violations) > 0 {
		for _, violation := range violations {
			r.writePlain("✗ %s\n", violation)
		}
		return fmt.Errorf("%w: login rejected", shared.ErrInvalidInput)
	}

	mgr, cleanup, err := r.openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := mgr.Login(ctx, email, password); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrAuthFailed,
			services.RejectionMessage(err, session.GenericLoginMessage))
	}

	return r.writePlain("✓ Logged in\n")
}

// AuthLogout clears the shared session token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	mgr, cleanup, err := r.openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	if !mgr.Authenticated() {
		return r.writePlain("No session token stored.\n")
	}

	if err := mgr.Logout(); err != nil {
		return err
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports whether a session token is stored.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	mgr, cleanup, err := r.openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	if mgr.Authenticated() {
		return r.writePlain("✓ Authenticated\n")
	}
	return r.writePlain("✗ Not authenticated\n")
}
