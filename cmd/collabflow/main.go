package main

import (
	"fmt"
	"os"

	"collabflow/cmd/collabflow/dashboard"
	"collabflow/internal/config"
	"collabflow/internal/extract"
	"collabflow/internal/logging"
	"collabflow/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "collabflow",
	Short: "CollabFlow - brand collaboration inbox for content creators",
	Long: `CollabFlow turns pasted emails and chat logs into a triaged list of
brand collaboration inquiries.

It extracts brand, contact, date, summary and budget with Gemini,
tracks reply status, renders accept/decline reply templates, and
exports date-ranged CSV summaries.

Run without arguments to start the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; environment wins over file config either way.
		_ = godotenv.Load()

		path := configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		dir := cfg.ResolveDataDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to prepare data dir: %w", err)
		}
		if err := logging.Initialize(dir, verbose || cfg.Logging.Debug); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		// The dashboard has its own UI; zap would fight the terminal.
		if cmd.Use == "collabflow" && cmd.CalledAs() == "collabflow" {
			return nil
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.collabflow/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.collabflow)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(templatesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStores opens the local database and both stores. Callers must
// Close the returned Local.
func openStores() (*store.Local, *store.RequestStore, *store.TemplateStore, error) {
	local, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	requests, err := store.NewRequestStore(local)
	if err != nil {
		local.Close()
		return nil, nil, nil, err
	}
	templates, err := store.NewTemplateStore(local)
	if err != nil {
		local.Close()
		return nil, nil, nil, err
	}
	return local, requests, templates, nil
}

// newGateway builds the extraction gateway, or nil when no API key is
// configured.
func newGateway() (*extract.Gateway, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, nil
	}
	return extract.NewGateway(cfg.Gemini.APIKey, cfg.Gemini.Model)
}

func runDashboard() error {
	local, requests, templates, err := openStores()
	if err != nil {
		return err
	}
	defer local.Close()

	gateway, err := newGateway()
	if err != nil {
		return err
	}
	if gateway != nil {
		defer gateway.Close()
	}

	var parser dashboard.Parser
	if gateway != nil {
		parser = gateway
	}

	model, err := dashboard.New(requests, templates, local, parser)
	if err != nil {
		return err
	}

	logging.Boot("dashboard starting: records=%d", requests.Len())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
