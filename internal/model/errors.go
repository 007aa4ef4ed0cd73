package model

import "errors"

var (
	// ErrDuplicateAward the teacher already has an award recorded for that year
	ErrDuplicateAward = errors.New("Помилка: викладач вже отримав нагороду у вказаному році")
	// ErrStorage the backing store failed; wrapped with the driver error
	ErrStorage = errors.New("storage failure")
	// ErrNotFound a reference entry or successor does not exist
	ErrNotFound = errors.New("not found")
)
