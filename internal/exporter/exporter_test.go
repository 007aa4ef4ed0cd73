package exporter

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kpiawards/internal/model"
)

func sampleRecords() []model.AwardRecord {
	return []model.AwardRecord{
		{Teacher: "Іваненко І.І.", Fac: "ФІОТ", Gram: "Подяка ректора 'КПІ'", Num: "5", Year: "2020", Prog: "Грамота"},
		{Teacher: "Петренко П.П.", Fac: "ФЕЛ", StateGram: "Орден 'За заслуги'", Num: "7", StateYear: "2019"},
	}
}

func TestHeaders(t *testing.T) {
	t.Parallel()

	h := Headers()
	require.Len(t, h, 9)
	assert.Equal(t, "", h[0])
	assert.Equal(t, "Прізвище, ім'я, по-батькові співробітника", h[1])
	assert.Equal(t, "Прогнозування", h[8])
}

func TestRows_QuotesAndIndex(t *testing.T) {
	t.Parallel()

	rows := Rows(sampleRecords())
	require.Len(t, rows, 2)
	assert.Equal(t, "0", rows[0][0])
	assert.Equal(t, "Подяка ректора `КПІ`", rows[0][3])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Орден `За заслуги`", rows[1][4])
	// teacher names keep their apostrophes
	assert.Equal(t, "Іваненко І.І.", rows[0][1])
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var stages []int
	err := Export(&buf, sampleRecords(), ExportOptions{
		Format:   model.FormatCSV,
		Progress: func(p ProgressEvent) { stages = append(stages, p.Percent) },
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 30, 100}, stages)

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	rows, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers(), rows[0])
	assert.Equal(t, []string{"1", "Петренко П.П.", "ФЕЛ", "", "Орден `За заслуги`", "7", "", "2019", ""}, rows[2])
}

func TestExportXLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "awards.xlsx")
	require.NoError(t, ExportFile(path, sampleRecords()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Факультет/ННІ", rows[0][2])
	assert.Equal(t, "Іваненко І.І.", rows[1][1])
	assert.Equal(t, "2020", rows[1][6])
}

func TestExportUnsupportedFormat(t *testing.T) {
	t.Parallel()

	err := ExportFile(filepath.Join(t.TempDir(), "awards.json"), sampleRecords())
	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)

	err = Export(&bytes.Buffer{}, nil, ExportOptions{Format: "ods"})
	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
}
