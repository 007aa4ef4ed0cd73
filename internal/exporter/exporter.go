package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"kpiawards/internal/model"
)

// SheetName name of the single sheet written to xlsx exports
const SheetName = "Нагороди"

// ExportOptions export options
type ExportOptions struct {
	Format   model.Format
	Progress func(ProgressEvent) // optional
}

// Headers returns the header row: an empty index header followed by the
// localized field headers.
func Headers() []string {
	out := make([]string, 0, len(model.Fields)+1)
	out = append(out, "")
	for _, f := range model.Fields {
		out = append(out, model.ExportHeaders[f])
	}
	return out
}

// Rows returns the data rows: a 0-based index followed by the field values,
// award names with apostrophes turned into backticks.
func Rows(recs []model.AwardRecord) [][]string {
	out := make([][]string, len(recs))
	for i, r := range recs {
		r.Gram = exportQuotes.Replace(r.Gram)
		r.StateGram = exportQuotes.Replace(r.StateGram)
		out[i] = append([]string{strconv.Itoa(i)}, r.Values()...)
	}
	return out
}

var exportQuotes = strings.NewReplacer("'", "`")

// Export writes recs to w
func Export(w io.Writer, recs []model.AwardRecord, opts ExportOptions) error {
	reportProgress(opts.Progress, 0, "Підготовка даних")
	rows := Rows(recs)
	reportProgress(opts.Progress, 30, "Запис файлу")

	var err error
	switch opts.Format {
	case model.FormatXLSX:
		err = writeXLSX(w, rows)
	case model.FormatCSV:
		err = writeCSV(w, rows)
	default:
		return fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, opts.Format)
	}
	if err != nil {
		return err
	}

	reportProgress(opts.Progress, 100, "Експорт завершено")
	return nil
}

// ExportFile writes recs to path, the format follows the extension
func ExportFile(path string, recs []model.AwardRecord) error {
	format, err := model.FormatOf(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Export(f, recs, ExportOptions{Format: format}); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func writeXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	})
	f.SetRowStyle(SheetName, 1, 1, headerStyle)

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if c == 0 {
				f.SetCellValue(SheetName, cell, r)
				continue
			}
			f.SetCellStr(SheetName, cell, v)
		}
	}

	f.SetColWidth(SheetName, "A", "A", 6)
	f.SetColWidth(SheetName, "B", "B", 40)
	f.SetColWidth(SheetName, "C", "E", 30)
	f.SetColWidth(SheetName, "F", "I", 18)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write excel: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
