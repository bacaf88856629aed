package service

import (
	"errors"
	"fmt"

	"golang-stock-analyzer/internal/analyzer/repository"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrNoTickers        = fmt.Errorf("%w: at least one ticker is required", ErrValidation)
	ErrMissingStartDate = fmt.Errorf("%w: start date is required", ErrValidation)
	ErrInvalidStartDate = fmt.Errorf("%w: start date must use the YYYY-MM-DD format", ErrValidation)

	ErrRunNotFound     = repository.ErrRunNotFound
	ErrHistoryDisabled = errors.New("analysis history is not configured")
)

// MessageKey returns the label key describing a validation error.
func MessageKey(err error) string {
	switch {
	case errors.Is(err, ErrNoTickers):
		return "validation.no_tickers"
	case errors.Is(err, ErrMissingStartDate):
		return "validation.missing_start"
	case errors.Is(err, ErrInvalidStartDate):
		return "validation.invalid_start"
	default:
		return "validation.invalid_request"
	}
}
