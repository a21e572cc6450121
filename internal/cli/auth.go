package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/pkg/renderers/tui"
	"github.com/formdeck/formdeck/pkg/session"
)

func (c *CLI) newLoginCommand() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the forms backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prompts := tui.NewPromptDriver()

			if username == "" {
				answer, err := prompts.Input(ctx, tui.InputConfig{Message: "Username"})
				if err != nil {
					return err
				}
				username = answer
			}
			password, err := prompts.Password(ctx, tui.InputConfig{Message: "Password"})
			if err != nil {
				return err
			}

			creds, err := c.client().Login(ctx, username, password)
			if err != nil {
				return err
			}
			sess, err := session.Establish(creds.Access, creds.Refresh)
			if err != nil {
				return err
			}
			if err := c.sessions.Save(sess); err != nil {
				return err
			}
			c.session = sess

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", sess.Claims.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username to log in with")
	return cmd
}

func (c *CLI) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.session != nil && c.session.Refresh != "" {
				if err := c.client().Logout(cmd.Context(), c.session.Refresh); err != nil {
					slog.Debug("server-side logout failed", "error", err)
				}
			}
			if err := c.sessions.Clear(); err != nil {
				return err
			}
			c.session = nil
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func (c *CLI) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			claims := c.session.Claims
			role := "user"
			if claims.IsAdmin {
				role = "admin"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d, %s)\n", claims.Username, claims.UserID, role)
			return nil
		},
	}
}
