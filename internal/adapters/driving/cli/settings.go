package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bodacc/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Command-line flags override stored settings for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsSetCmd.Long = "Change a setting. Keys: " + strings.Join(services.SettingKeys(), ", ") + "."
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[Log]")
	cmd.Printf("  Level: %s\n", s.Log.Level)
	cmd.Println()

	cmd.Println("[Archive]")
	cmd.Printf("  Enabled: %s\n", yesNo(s.Archive.Enabled))
	cmd.Printf("  Path: %s\n", orDefault(s.Archive.Path, "~/.bodacc/data"))
	cmd.Println()

	cmd.Println("[Vocabulary]")
	cmd.Printf("  Path: %s\n", orDefault(s.Vocabulary.Path, "(embedded)"))
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Strict: %s\n", yesNo(s.Pipeline.Strict))
	cmd.Printf("  Skip processed: %s\n", yesNo(s.Pipeline.SkipProcessed))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
