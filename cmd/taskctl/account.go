package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/taskboard/internal/session"
)

func newRegisterCmd(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := a.authService(cmd.Context())
			if err != nil {
				return err
			}
			out, err := auth.Register(cmd.Context(), name, email, passwordOrEnv(password))
			if err != nil {
				return err
			}
			if out.Confirmed {
				fmt.Fprintln(a.out, "Account created. You can log in now.")
				return nil
			}
			fmt.Fprintf(a.out, "Account created. A confirmation code was sent to %s.\n", out.CodeDelivery)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (or set TASKCTL_PASSWORD)")
	return cmd
}

func newConfirmCmd(a *app) *cobra.Command {
	var email, code string
	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm an account with the emailed code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := a.authService(cmd.Context())
			if err != nil {
				return err
			}
			if err := auth.ConfirmRegistration(cmd.Context(), email, code); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Email confirmed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&code, "code", "", "confirmation code")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			auth, err := a.authService(ctx)
			if err != nil {
				return err
			}
			res, err := auth.Login(ctx, email, passwordOrEnv(password))
			if err != nil {
				return err
			}

			tokens := session.Tokens{
				AccessToken:  res.Tokens.AccessToken,
				IDToken:      res.Tokens.IDToken,
				RefreshToken: res.Tokens.RefreshToken,
				ExpiresAt:    time.Now().Add(time.Duration(res.Tokens.ExpiresIn) * time.Second),
			}
			if err := a.session.SignIn(res.Principal, tokens); err != nil {
				return err
			}
			if err := session.Persist(ctx, a.session, a.sessions); err != nil {
				return fmt.Errorf("signed in, but the session could not be saved: %w", err)
			}
			fmt.Fprintf(a.out, "Logged in as %s.\n", displayName(res.Principal.DisplayName, res.Principal.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (or set TASKCTL_PASSWORD)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if token := a.session.Tokens().AccessToken; token != "" {
				// Local sign-out proceeds even when the identity service is unreachable.
				if auth, err := a.authService(ctx); err != nil {
					a.logger.Warn("skipping global sign-out", "error", err)
				} else if err := auth.Logout(ctx, token); err != nil {
					a.logger.Warn("global sign-out failed", "error", err)
				}
			}
			a.session.SignOut()
			if err := session.Persist(ctx, a.session, a.sessions); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.principal()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s (%s)\n", displayName(p.DisplayName, p.Email, p.ID), p.ID)
			return nil
		},
	}
}

func passwordOrEnv(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("TASKCTL_PASSWORD")
}

func displayName(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return "unknown"
}
