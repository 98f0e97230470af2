package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes shared across the service. They form the complete taxonomy a
// ledger operation may return; INSUFFICIENT_FUNDS is reserved for payment
// settlement, which the ledger only records.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidOperation  = "INVALID_OPERATION"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeSoldOut           = "SOLD_OUT"
	CodeLimitExceeded     = "LIMIT_EXCEEDED"
	CodeInternal          = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewNotFound(resource string, details map[string]any) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, details)
}

func NewAlreadyExists(resource string, details map[string]any) error {
	return NewDomainError(CodeAlreadyExists, fmt.Sprintf("%s already exists", resource), http.StatusConflict, details)
}

// NewUnauthenticated covers missing or unparseable credentials.
func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

// NewUnauthorized covers a caller whose identity or role fails the check
// required by the operation.
func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusForbidden, nil)
}

func NewInvalidInput(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidInput, message, http.StatusBadRequest, details)
}

func NewInvalidOperation(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidOperation, message, http.StatusConflict, details)
}

func NewInsufficientFunds(message string, details map[string]any) error {
	return NewDomainError(CodeInsufficientFunds, message, http.StatusPaymentRequired, details)
}

func NewSoldOut(eventID uint64) error {
	return NewDomainError(CodeSoldOut, "event sold out", http.StatusConflict, map[string]any{"event_id": eventID})
}

func NewLimitExceeded(message string, details map[string]any) error {
	return NewDomainError(CodeLimitExceeded, message, http.StatusUnprocessableEntity, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// HasCode reports whether err carries the given domain error code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == code
}
