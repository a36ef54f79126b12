// Package main is the entry point for the akiba terminal client.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"akiba/internal/api"
	"akiba/internal/config"
	"akiba/internal/debuglog"
	"akiba/internal/session"
	"akiba/internal/tui"
	"akiba/internal/validation"
)

// Version is set at build time.
var Version = "dev"

// Global flags.
var (
	configPath  string
	sessionPath string
	allowLocal  bool
	quiet       bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "akiba",
		Short: "Terminal client for your chama's savings platform",
		Long: `akiba browses your savings group's education library, learning
paths, webinars, and challenges from the terminal, and keeps an eye on
the group ledger.

Running without a subcommand starts the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	root.PersistentFlags().StringVar(&sessionPath, "session", "", "Path to session file (overrides config)")
	root.PersistentFlags().BoolVar(&allowLocal, "allow-local", false, "Permit localhost and private-network API addresses")
	root.Flags().BoolVar(&quiet, "quiet", false, "Skip startup banner")

	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// bootstrap loads the config, validates it, and opens the session store.
// Every command that talks to the platform goes through it.
func bootstrap() (*config.Config, *api.Client, *session.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	urlValidator := validation.NewBaseURLValidator()
	if allowLocal {
		urlValidator = validation.NewPermissiveBaseURLValidator()
	}
	baseURL, err := urlValidator.ValidateAndNormalize(cfg.API.BaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("api.base_url: %w", err)
	}
	cfg.API.BaseURL = baseURL

	if sessionPath != "" {
		cfg.Session.Path = sessionPath
	}
	storePath, err := validation.NewDataPathValidator().SessionPath(cfg.Session.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("session path: %w", err)
	}

	sessions, err := session.NewStore(storePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening session store: %w", err)
	}

	return cfg, api.NewClient(cfg), sessions, nil
}

func runTUI() error {
	cfg, client, sessions, err := bootstrap()
	if err != nil {
		return err
	}
	defer sessions.Close()

	if err := debuglog.Setup(debuglog.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer debuglog.Close()

	if !quiet {
		tui.ShowBanner(Version)
	}

	app := tui.NewApp(cfg, client, sessions)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
