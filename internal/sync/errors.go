package sync

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/estantedigital/plataforma/internal/database/pessoas"
)

// Code is the machine-readable error class surfaced to callers.
type Code string

const (
	CodeValidation        Code = "MISSING_REQUIRED_FIELDS"
	CodeDuplicateEmail    Code = "DUPLICATE_EMAIL"
	CodeDuplicateUsername Code = "DUPLICATE_USERNAME"
	CodeNotFound          Code = "USER_NOT_FOUND"
	CodeConsistency       Code = "CONSISTENCY_ERROR"
	CodeStoreUnavailable  Code = "STORE_UNAVAILABLE"
)

// SyncError is the uniform envelope for failures crossing the
// synchronizer boundary. Detail carries the store-level diagnostic for
// operator visibility; handlers strip it in production.
type SyncError struct {
	Code    Code
	Message string
	Field   string // offending field for duplicate errors
	Detail  string // original store diagnostic
	Err     error
}

func (e *SyncError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SyncError) Unwrap() error { return e.Err }

// HTTPStatus maps an error code to its response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeDuplicateEmail, CodeDuplicateUsername:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// classify wraps a store error into a SyncError, detecting duplicate-key
// sentinels from the relational layer.
func classify(err error, fallback Code, message string) *SyncError {
	switch {
	case errors.Is(err, pessoas.ErrDuplicateUsername):
		return &SyncError{
			Code:    CodeDuplicateUsername,
			Message: "username já está em uso",
			Field:   "username",
			Detail:  err.Error(),
			Err:     err,
		}
	case errors.Is(err, pessoas.ErrDuplicateEmail):
		return &SyncError{
			Code:    CodeDuplicateEmail,
			Message: "email já está cadastrado",
			Field:   "email_institucional",
			Detail:  err.Error(),
			Err:     err,
		}
	case errors.Is(err, pessoas.ErrNotFound):
		return &SyncError{
			Code:    CodeNotFound,
			Message: "pessoa não encontrada",
			Err:     err,
		}
	}
	return &SyncError{
		Code:    fallback,
		Message: message,
		Detail:  err.Error(),
		Err:     err,
	}
}

// AsSyncError extracts a *SyncError from an error chain.
func AsSyncError(err error) (*SyncError, bool) {
	var se *SyncError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
