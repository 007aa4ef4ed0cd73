package validator

import (
	"errors"
	"strings"

	"kpiawards/internal/model"
)

// Code identifies a single record rule violation
type Code string

const (
	CodeMissingTeacher    Code = "MissingTeacher"
	CodeMultipleAwards    Code = "MultipleAwards"
	CodeMissingAward      Code = "MissingAward"
	CodeMultipleYears     Code = "MultipleYears"
	CodeMissingYear       Code = "MissingYear"
	CodeAwardYearMismatch Code = "AwardYearMismatch"
)

var (
	ErrMissingTeacher    = &ValidationError{Code: CodeMissingTeacher, Message: "Помилка: потрібно внести ПІБ викладача"}
	ErrMultipleAwards    = &ValidationError{Code: CodeMultipleAwards, Message: "Помилка: можна вносити лише одну нагороду"}
	ErrMissingAward      = &ValidationError{Code: CodeMissingAward, Message: "Помилка: потрібно внести нагороду"}
	ErrMultipleYears     = &ValidationError{Code: CodeMultipleYears, Message: "Помилка: можна вносити лише один рік"}
	ErrMissingYear       = &ValidationError{Code: CodeMissingYear, Message: "Помилка: потрібно внести рік"}
	ErrAwardYearMismatch = &ValidationError{Code: CodeAwardYearMismatch, Message: "Помилка: потрібно внести нагороду й рік її отримання або від КПІ, або від держави"}
)

// ValidationError a record rule violation with a user-facing message
type ValidationError struct {
	Code    Code
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches validation errors by code.
func (e *ValidationError) Is(target error) bool {
	var t *ValidationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Validate checks the award/year rules of a candidate record.
// Checks run teacher, award count, year count, then award/year pairing;
// the first violation wins.
func Validate(rec model.AwardRecord) error {
	if blank(rec.Teacher) {
		return ErrMissingTeacher
	}

	hasGram, hasStateGram := !blank(rec.Gram), !blank(rec.StateGram)
	switch {
	case hasGram && hasStateGram:
		return ErrMultipleAwards
	case !hasGram && !hasStateGram:
		return ErrMissingAward
	}

	hasYear, hasStateYear := !blank(rec.Year), !blank(rec.StateYear)
	switch {
	case hasYear && hasStateYear:
		return ErrMultipleYears
	case !hasYear && !hasStateYear:
		return ErrMissingYear
	}

	if (hasGram && hasStateYear) || (hasStateGram && hasYear) {
		return ErrAwardYearMismatch
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
