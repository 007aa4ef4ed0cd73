package journal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestStartFinish(t *testing.T) {
	j := openTestJournal(t)

	id, err := j.Start(KindImport, "awards.xlsx", "xlsx")
	require.NoError(t, err)
	require.NoError(t, j.Finish(id, 42, nil))

	failed, err := j.Start(KindImport, "broken.csv", "csv")
	require.NoError(t, err)
	require.NoError(t, j.Finish(failed, 0, errors.New("рядок 3: У КПІ не існує такої нагороди: X")))

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, failed, entries[0].ID)
	assert.Equal(t, StatusFailed, entries[0].Status)
	assert.Contains(t, entries[0].ErrorMessage, "рядок 3")
	assert.Equal(t, 42, entries[1].Rows)
	assert.NotNil(t, entries[1].CompletedAt)

	last, err := j.LastSuccessful(KindImport)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, id, last.ID)
	assert.Equal(t, "awards.xlsx", last.Filename)
}

func TestLastSuccessful_None(t *testing.T) {
	j := openTestJournal(t)

	last, err := j.LastSuccessful(KindExport)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestFinishUnknown(t *testing.T) {
	j := openTestJournal(t)
	assert.Error(t, j.Finish("missing", 0, nil))
}
