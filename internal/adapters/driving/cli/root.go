// Package cli is the bodacc command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bodacc/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driving"
	"github.com/custodia-labs/bodacc/internal/core/services"
	"github.com/custodia-labs/bodacc/internal/logger"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "BODACC_LOG_LEVEL"

var version = "dev"

var (
	configDir     string
	archiveDirArg string
	logLevel      string
	verbose       bool
)

// Resolved in PersistentPreRunE.
var (
	settingsService driving.SettingsService
	settings        *domain.Settings
)

var rootCmd = &cobra.Command{
	Use:   "bodacc",
	Short: "Normalise BODACC bulletin documents",
	Long: `bodacc turns BODACC bulletin documents (RCS-A, PCL, DIV, RCS-B and
BILAN) into one normalised announcement record format.

Envelopes are read as newline-delimited JSON and records are written to
stdout, one JSON object per line. Diagnostics go to stderr.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.bodacc)")
	rootCmd.PersistentFlags().StringVar(&archiveDirArg, "archive-dir", "",
		"archive data directory (default ~/.bodacc/data)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn or error (env "+EnvLogLevel+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug output")
}

// SetVersion sets the version reported by `bodacc version`.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup loads configuration and applies the log level. Precedence is
// flag, environment, config file, default.
func setup(_ *cobra.Command, _ []string) error {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settingsService = services.NewSettingsService(store)

	settings, err = settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	name := settings.Log.Level
	if env := os.Getenv(EnvLogLevel); env != "" {
		name = env
	}
	if logLevel != "" {
		name = logLevel
	}
	level, err := logger.ParseLevel(name)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	if verbose {
		logger.SetVerbose(true)
	}
	return nil
}

// archiveDir returns the archive directory from the flag or settings. An
// empty result selects the store default.
func archiveDir() string {
	if archiveDirArg != "" {
		return archiveDirArg
	}
	if settings != nil {
		return settings.Archive.Path
	}
	return ""
}
