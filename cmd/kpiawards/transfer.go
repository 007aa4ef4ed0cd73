package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kpiawards/internal/exporter"
	"kpiawards/internal/importer"
	"kpiawards/internal/journal"
	"kpiawards/internal/model"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all records with a spreadsheet (.xlsx or .csv)",
	Long: `Replace all records with a spreadsheet (.xlsx or .csv).

Every row is checked against the reference sequences first; the stored
records are only replaced when all rows are valid.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write all records to a spreadsheet; the format follows the extension",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := model.FormatOf(path)
	if err != nil {
		return err
	}

	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = env.log.Sync() }()

	backend, err := env.openBackend(cmd.Context())
	if err != nil {
		return err
	}
	defer backend.Close(context.Background())

	j := env.openJournal()
	if j != nil {
		defer j.Close()
	}
	id := journalStart(env, j, journal.KindImport, path, string(format))

	report, err := backend.Service.ImportFile(cmd.Context(), importer.ImportOptions{FilePath: path, Format: format}, func(e importer.ProgressEvent) {
		if e.Type == "info" {
			fmt.Fprintln(cmd.OutOrStdout(), e.Message)
		}
	})
	if err != nil {
		journalFinish(env, j, id, 0, err)
		return err
	}
	journalFinish(env, j, id, report.Rows, nil)

	fmt.Fprintf(cmd.OutOrStdout(), "Імпортовано записів: %d\n", report.Rows)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := model.FormatOf(path)
	if err != nil {
		return err
	}

	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = env.log.Sync() }()

	backend, err := env.openBackend(cmd.Context())
	if err != nil {
		return err
	}
	defer backend.Close(context.Background())

	j := env.openJournal()
	if j != nil {
		defer j.Close()
	}
	id := journalStart(env, j, journal.KindExport, path, string(format))

	recs, err := backend.Service.Search(cmd.Context(), nil)
	if err == nil {
		err = exporter.ExportFile(path, recs)
	}
	journalFinish(env, j, id, len(recs), err)
	if err != nil {
		return err
	}

	env.log.Info("export completed", zap.String("path", path), zap.Int("records", len(recs)))
	fmt.Fprintf(cmd.OutOrStdout(), "Експортовано записів: %d\n", len(recs))
	return nil
}

func journalStart(env *environment, j *journal.Journal, kind, filename, format string) string {
	if j == nil {
		return ""
	}
	id, err := j.Start(kind, filename, format)
	if err != nil {
		env.log.Warn("journal start failed", zap.Error(err))
	}
	return id
}

func journalFinish(env *environment, j *journal.Journal, id string, rows int, opErr error) {
	if j == nil || id == "" {
		return
	}
	if opErr != nil {
		rows = 0
	}
	if err := j.Finish(id, rows, opErr); err != nil {
		env.log.Warn("journal finish failed", zap.Error(err))
	}
}
