// Command kpiawards keeps the registry of faculty awards: manual entry,
// search, spreadsheet import and export over an HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kpiawards/internal/config"
	"kpiawards/internal/journal"
	"kpiawards/internal/logging"
	"kpiawards/internal/server"
)

// Global flags
var (
	configPath string
	dataDir    string
	memory     bool
)

var rootCmd = &cobra.Command{
	Use:   "kpiawards",
	Short: "Registry of faculty awards",
	Long: `kpiawards keeps the registry of awards received by faculty members.

Without a subcommand it starts the HTTP server.

Examples:
  kpiawards                            # serve on the configured port
  kpiawards serve --memory --port 8080 # serve from memory, references from data/references.toml
  kpiawards import awards.xlsx         # replace all records with a spreadsheet
  kpiawards export awards.csv          # write all records`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (default: next to the executable)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides the config file)")
	rootCmd.PersistentFlags().BoolVar(&memory, "memory", false, "Use the in-memory backend instead of MongoDB")
	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}

// environment shared by every subcommand
type environment struct {
	cfg     *config.AppConfig
	info    config.LoadConfigInfo
	dataDir string
	log     *zap.Logger
}

func loadEnvironment() (*environment, error) {
	cfg, info, err := config.LoadConfigWithInfo(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}
	if memory {
		cfg.Data.Backend = config.BackendMemory
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &environment{cfg: cfg, info: info, dataDir: dir, log: log}, nil
}

func (e *environment) openBackend(ctx context.Context) (*server.Backend, error) {
	return server.OpenBackend(ctx, e.cfg, e.dataDir, e.log)
}

// openJournal returns nil when the journal is unavailable
func (e *environment) openJournal() *journal.Journal {
	j, err := journal.Open(filepath.Join(e.dataDir, "journal.db"))
	if err != nil {
		e.log.Warn("operation journal disabled", zap.Error(err))
		return nil
	}
	return j
}
