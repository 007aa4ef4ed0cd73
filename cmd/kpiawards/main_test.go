package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpiawards/internal/exporter"
	"kpiawards/internal/model"
	"kpiawards/internal/server"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestImportAndExportCommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, server.ReferenceFileName),
		[]byte("facs = [\"ФІОТ\"]\nkpi_awards = [\"Подяка\", \"Грамота\"]\n"), 0644))

	src := filepath.Join(dir, "in.csv")
	require.NoError(t, exporter.ExportFile(src, []model.AwardRecord{
		{Teacher: "A", Fac: "ФІОТ", Gram: "Подяка", Year: "2020"},
	}))

	common := []string{"--memory", "--data-dir", dir, "--config", filepath.Join(dir, "config.toml")}

	out, err := runCLI(t, append([]string{"import", src}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Імпортовано записів: 1")

	// each invocation starts from an empty in-memory store
	dst := filepath.Join(dir, "out.xlsx")
	out, err = runCLI(t, append([]string{"export", dst}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Експортовано записів: 0")
	assert.FileExists(t, dst)
	assert.FileExists(t, filepath.Join(dir, "journal.db"))
}

func TestImportCommand_UnsupportedFormat(t *testing.T) {
	_, err := runCLI(t, "import", "awards.ods")
	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
}
