package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bodacc/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/bodacc/internal/core/domain"
)

var recordsUID string

var recordsCmd = &cobra.Command{
	Use:   "records [issue]",
	Short: "Print archived records",
	Long: `Prints the records archived for an issue identifier, ordered by
announcement number, exactly as they were emitted. With --uid, prints a
single record.

Records are archived by "bodacc normalise --archive".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().StringVar(&recordsUID, "uid", "", "print the record with this uid")
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (recordsUID == "") {
		return errors.New("give either an issue identifier or --uid")
	}

	store, err := sqlite.NewStore(archiveDir())
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if recordsUID != "" {
		rec, err := store.GetRecord(cmd.Context(), recordsUID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("record %s: %w", recordsUID, err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rec.Line)
		return nil
	}

	records, err := store.ListRecords(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	for _, rec := range records {
		fmt.Fprintln(out, rec.Line)
	}
	return nil
}
