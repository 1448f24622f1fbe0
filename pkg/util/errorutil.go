package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// ErrInvalidCredentials is the single login failure. Unknown email and wrong
// password both map here so the response never distinguishes them.
var ErrInvalidCredentials = errors.New("invalid credentials")

// GlobalField keys validation messages that are not tied to a single field.
const GlobalField = ""

// ValidationErrors accumulates field-level messages for a rejected request.
// One message per violated constraint.
type ValidationErrors struct {
	Fields map[string][]string
}

// NewValidationErrors returns an empty accumulator.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Fields: map[string][]string{}}
}

// Add appends a message under the given field name.
func (e *ValidationErrors) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// AddGlobal appends a message not tied to a field.
func (e *ValidationErrors) AddGlobal(message string) {
	e.Add(GlobalField, message)
}

// Empty reports whether no messages were recorded.
func (e *ValidationErrors) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationErrors) Error() string {
	total := 0
	for _, msgs := range e.Fields {
		total += len(msgs)
	}
	return fmt.Sprintf("validation failed (%d errors)", total)
}

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
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewBadRequest(message string) error {
	return NewDomainError("BAD_REQUEST", message, http.StatusBadRequest, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
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
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
