// Package cli wires the formdeck commands: authentication, form management,
// interactive fills, HTML rendering, and preset handling.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/pkg/api"
	"github.com/formdeck/formdeck/pkg/session"
)

// CLI encapsulates the command tree with its dependencies.
type CLI struct {
	version     string
	verbose     bool
	silent      bool
	configPath  string
	initialized bool
	rootCmd     *cobra.Command

	config   Config
	sessions *session.Store
	session  *session.Session
}

// New creates a CLI instance with the given version string.
func New(version string) *CLI {
	c := &CLI{version: version}
	c.setupCommands()
	return c
}

func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:           "formdeck",
		Short:         "Build, fill, and manage custom data-entry forms",
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initApp()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	c.rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose/debug output")
	c.rootCmd.PersistentFlags().BoolVarP(&c.silent, "silent", "s", false, "Suppress all logging")
	c.rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to the config file")

	c.rootCmd.AddCommand(c.newLoginCommand())
	c.rootCmd.AddCommand(c.newLogoutCommand())
	c.rootCmd.AddCommand(c.newWhoamiCommand())
	c.rootCmd.AddCommand(c.newFormsCommand())
	c.rootCmd.AddCommand(c.newFillCommand())
	c.rootCmd.AddCommand(c.newRenderCommand())
	c.rootCmd.AddCommand(c.newPresetsCommand())
	c.rootCmd.AddCommand(c.newImportCommand())
}

// Run executes the CLI and returns any error.
func (c *CLI) Run() error {
	if err := c.rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

// initApp configures logging, loads the config, and restores the session.
func (c *CLI) initApp() error {
	if c.initialized {
		return nil
	}
	c.initialized = true

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.silent {
		level = slog.Level(100)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.sessions = session.NewStore(cfg.SessionDir)

	restored, ok, err := c.sessions.Load()
	if err != nil {
		slog.Warn("session restore failed", "error", err)
	} else if ok {
		c.session = restored
	}
	return nil
}

// client builds an API client bound to the current session. A 401/403 clears
// the stored session so the next command starts unauthenticated.
func (c *CLI) client() *api.Client {
	options := []api.Option{
		api.WithUnauthorizedHook(func() {
			slog.Warn("session rejected by backend, logging out")
			if err := c.sessions.Clear(); err != nil {
				slog.Debug("session clear failed", "error", err)
			}
			c.session = nil
		}),
	}
	if c.session != nil {
		options = append(options, api.WithTokenSource(c.session))
	}
	return api.New(c.config.BaseURL, options...)
}

func (c *CLI) requireSession() error {
	if c.session == nil {
		return fmt.Errorf("not logged in, run 'formdeck login' first")
	}
	return nil
}

func (c *CLI) isAdmin() bool {
	return c.session != nil && c.session.Claims.IsAdmin
}
