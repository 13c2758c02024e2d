package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var formatsJSON bool

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported bulletin formats",
	Long:  `Lists the schema families bodacc normalises with the root elements each accepts.`,
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	formatsCmd.Flags().BoolVar(&formatsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) error {
	catalogue := newDispatcher(nil).Catalogue()

	if formatsJSON {
		data, err := json.MarshalIndent(catalogue, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal formats: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, info := range catalogue {
		fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", info.Format, strings.Join(info.RootElements, ", "))
	}
	return nil
}
