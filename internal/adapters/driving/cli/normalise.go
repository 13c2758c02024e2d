package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/bodacc/internal/adapters/driven/sink/jsonl"
	"github.com/custodia-labs/bodacc/internal/adapters/driven/source/watch"
	"github.com/custodia-labs/bodacc/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bodacc/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
	"github.com/custodia-labs/bodacc/internal/core/services"
	"github.com/custodia-labs/bodacc/internal/logger"
)

var (
	normaliseStrict        bool
	normaliseArchive       bool
	normaliseSkipProcessed bool
	normaliseWatch         string
	normaliseVocabulary    string
)

var normaliseCmd = &cobra.Command{
	Use:   "normalise [file...]",
	Short: "Normalise envelopes into announcement records",
	Long: `Reads newline-delimited JSON envelopes from the given files, or from
stdin when no file (or "-") is given, and writes one record per line to
stdout.

A document that fails emits nothing. With --archive, records are archived
before they are written to stdout. Unknown formats and issue identifier
mismatches abort the run; with --strict, so do contract violations.

With --watch DIR, envelope files (*.jsonl, *.ndjson) already in DIR are
processed and new files are picked up as they are renamed into it, until
interrupted.`,
	Aliases: []string{"normalize"},
	RunE:    runNormalise,
}

func init() {
	f := normaliseCmd.Flags()
	f.BoolVar(&normaliseStrict, "strict", false, "abort on contract violations")
	f.BoolVar(&normaliseArchive, "archive", false, "archive records and processed envelopes in SQLite")
	f.BoolVar(&normaliseSkipProcessed, "skip-processed", false, "skip envelopes whose uid was already processed")
	f.StringVar(&normaliseWatch, "watch", "", "watch a directory for envelope files")
	f.StringVar(&normaliseVocabulary, "vocabulary", "", "TOML vocabulary merged over the defaults")
	rootCmd.AddCommand(normaliseCmd)
}

func runNormalise(cmd *cobra.Command, args []string) error {
	if settings == nil {
		return errors.New("settings not loaded")
	}
	if normaliseWatch != "" && len(args) > 0 {
		return errors.New("--watch takes no file arguments")
	}

	flags := cmd.Flags()
	strict := settings.Pipeline.Strict
	if flags.Changed("strict") {
		strict = normaliseStrict
	}
	archiving := settings.Archive.Enabled
	if flags.Changed("archive") {
		archiving = normaliseArchive
	}
	skip := settings.Pipeline.SkipProcessed
	if flags.Changed("skip-processed") {
		skip = normaliseSkipProcessed
	}
	vocabularyPath := settings.Vocabulary.Path
	if flags.Changed("vocabulary") {
		vocabularyPath = normaliseVocabulary
	}

	values, err := loadValues(vocabularyPath)
	if err != nil {
		return err
	}

	var sinks []driven.RecordSink
	var ledger driven.EnvelopeLedger
	if archiving {
		store, err := sqlite.NewStore(archiveDir())
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer store.Close()
		logger.Info("archive path=%s", store.Path())
		sinks = append(sinks, store)
		ledger = store
	} else if skip {
		// Without an archive, skipping only spans this run.
		ledger = memory.NewArchive()
	}
	// Stdout goes last so an archive failure prints nothing for the document.
	sinks = append(sinks, jsonl.New(cmd.OutOrStdout()))

	pipeline := services.NewPipeline(newDispatcher(values), values,
		services.WithStrict(strict),
		services.WithSinks(sinks...),
		services.WithLedger(ledger, skip),
	)
	logger.Debug("run id=%s strict=%t archive=%t skip=%t", pipeline.RunID(), strict, archiving, skip)

	var stats domain.RunStats
	run := func(name string, r io.Reader) error {
		logger.Section(name)
		s, err := pipeline.Run(cmd.Context(), r)
		stats.Add(s)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	if normaliseWatch != "" {
		err = watch.New(normaliseWatch).Each(cmd.Context(), run)
	} else {
		err = eachInput(cmd, args, run)
	}

	summarise(cmd, stats)
	return err
}

// eachInput feeds the named files, or stdin, to fn in order.
func eachInput(cmd *cobra.Command, args []string, fn func(name string, r io.Reader) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		if name == "-" {
			if err := fn("stdin", cmd.InOrStdin()); err != nil {
				return err
			}
			continue
		}

		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		err = fn(name, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// summarise logs the run counters, and prints them when stderr is a
// terminal.
func summarise(cmd *cobra.Command, stats domain.RunStats) {
	logger.Info("run %s", stats)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintf(cmd.ErrOrStderr(), "bodacc: %s\n", stats)
	}
}
