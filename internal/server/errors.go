package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alfandoo/Attrition-Predict/internal/features"
	"github.com/alfandoo/Attrition-Predict/internal/prediction"
)

// ErrInvalidToken indicates a bearer token that could not be validated.
type ErrInvalidToken struct {
	Reason string
	Cause  error
}

func (e *ErrInvalidToken) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *ErrInvalidToken) Unwrap() error {
	return e.Cause
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidBody indicates a request body that is not a JSON object.
type ErrInvalidBody struct {
	Cause error
}

func (e *ErrInvalidBody) Error() string {
	return fmt.Sprintf("request body must be a JSON object: %v", e.Cause)
}

func (e *ErrInvalidBody) Unwrap() error {
	return e.Cause
}

// ErrBodyTooLarge indicates the request exceeded the upload limit.
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ErrHistoryDisabled indicates no history store is configured.
type ErrHistoryDisabled struct{}

func (e *ErrHistoryDisabled) Error() string {
	return "prediction history is not enabled"
}

// HTTPStatus returns the appropriate HTTP status code for an error. File processing and
// model failures fall through to 500.
func HTTPStatus(err error) int {
	var (
		encodeErr  *features.EncodeError
		missing    *features.MissingValueError
		category   *features.InvalidCategoryError
		numeric    *features.InvalidNumericError
		noFile     *prediction.NoFileUploadedError
		noName     *prediction.EmptyFilenameError
		columns    *prediction.MissingColumnsError
		token      *ErrInvalidToken
		validation *ErrValidation
		body       *ErrInvalidBody
		tooLarge   *ErrBodyTooLarge
		disabled   *ErrHistoryDisabled
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &encodeErr), errors.As(err, &missing), errors.As(err, &category),
		errors.As(err, &numeric), errors.As(err, &noFile), errors.As(err, &noName),
		errors.As(err, &columns), errors.As(err, &validation), errors.As(err, &body):
		return http.StatusBadRequest
	case errors.As(err, &token):
		return http.StatusUnauthorized
	case errors.As(err, &disabled):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
