package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format spreadsheet file type
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ErrUnsupportedFormat the file is neither .xlsx nor .csv
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseFormat accepts "xlsx", ".xlsx", "csv", ".csv" in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatOf derives the format from a file name
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}
