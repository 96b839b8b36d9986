package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both missing rows and rows owned by another teacher.
	ErrNotFound         = errors.New("not found")
	ErrInsufficientPool = errors.New("not enough vocabularies for test")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("concurrent session update conflict")
	ErrAlreadyExists    = errors.New("already exists")
	ErrStore            = errors.New("store failure")
)

// storeError classifies a repository error for subject (e.g. "student 4").
// Unique index violations surface as ErrAlreadyExists; the database must be opened with TranslateError.
func storeError(subject string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", subject, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", subject, ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w: %w", subject, ErrStore, err)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
