package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
)

const defaultProperty = "error"

// FieldViolation describes a single violated constraint on a property.
type FieldViolation struct {
	Property    string   `json:"property"`
	Constraints []string `json:"constraints"`
}

// DomainError standardizes application errors. Violations carry the
// per-property constraint messages surfaced to the client.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Violations []FieldViolation
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

// NewDomainError constructs a DomainError with a single violation entry.
func NewDomainError(code, message string, status int, property string) *DomainError {
	if property == "" {
		property = defaultProperty
	}
	return &DomainError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
		Violations: []FieldViolation{{Property: property, Constraints: []string{message}}},
	}
}

func NewBadRequest(message, property string) error {
	return NewDomainError("BAD_REQUEST", message, http.StatusBadRequest, property)
}

func NewUnauthorized(message, property string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, property)
}

func NewNotFound(resource, property string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, property)
}

// NewValidationFailed batches several field violations under one BadRequest.
func NewValidationFailed(violations []FieldViolation) error {
	return &DomainError{
		Code:       "BAD_REQUEST",
		Message:    "validation failed",
		HTTPStatus: http.StatusBadRequest,
		Violations: violations,
	}
}

// NewExternalError re-surfaces an external service failure with its original
// status code, annotated with the outbound request method and URL.
func NewExternalError(status int, messages []string, method, url string) error {
	constraints := messages
	if len(constraints) == 0 {
		constraints = []string{"external service error"}
	}
	return &DomainError{
		Code:       "EXTERNAL_SERVICE_ERROR",
		Message:    strings.Join(constraints, "; "),
		HTTPStatus: status,
		Violations: []FieldViolation{
			{Property: "license_key_service", Constraints: constraints},
			{Property: "request", Constraints: []string{fmt.Sprintf("%s %s", method, url)}},
		},
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Violations: []FieldViolation{{Property: defaultProperty, Constraints: []string{"internal server error"}}},
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
		if de, ok := NewNotFound("resource", "").(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
