package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/app"
	"github.com/ovalabs/ovaterm/internal/config"
	"github.com/ovalabs/ovaterm/internal/session"
	"github.com/ovalabs/ovaterm/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "ovaterm",
	Short: "Terminal client for the OVA Ondas y Partículas platform",
	Long:  "Ovaterm — terminal client for the OVA educational platform: students take graded activities, docentes author content, admins manage the whole catalog.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the platform API (overrides OVATERM_API_BASE_URL)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves settings, letting the --api-url flag win over
// env and file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.API.BaseURL = u
	}
	return cfg, nil
}

// runApp opens the session cache, restores any cached login, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := app.Options{Client: client, Store: st}
	sess, err := session.Load(ctx, st)
	switch {
	case err == nil:
		opts.Session = &sess
	case errors.Is(err, store.ErrNoSession):
		// Start at the login screen.
	default:
		fmt.Fprintf(os.Stderr, "warning: failed to restore cached session: %v\n", err)
	}

	return app.Run(opts)
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := store.DefaultDBPath(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session cache: %w", err)
	}
	return st, nil
}
