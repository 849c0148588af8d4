package util

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
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

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
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

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewInvalidInterval signals a malformed time range (start >= end).
func NewInvalidInterval(message string) error {
	return NewDomainError("INVALID_INTERVAL", message, http.StatusBadRequest, nil)
}

// NewPastStartTime signals a start time that precedes now.
func NewPastStartTime() error {
	return NewDomainError("PAST_START_TIME", "start time cannot be in the past", http.StatusBadRequest, nil)
}

// NewRoomNotAvailable signals an overlap with a confirmed reservation.
// Details carry the room id and the requested interval for diagnostics.
func NewRoomNotAvailable(roomID string, start, end time.Time) error {
	return NewDomainError("ROOM_NOT_AVAILABLE",
		fmt.Sprintf("room %s is not available from %s to %s",
			roomID, start.Format(time.RFC3339), end.Format(time.RFC3339)),
		http.StatusConflict,
		map[string]any{
			"room_id":    roomID,
			"start_time": start.Format(time.RFC3339),
			"end_time":   end.Format(time.RFC3339),
		})
}

// NewInvalidEnumValue signals an unrecognized location/status/role string.
func NewInvalidEnumValue(err error) error {
	return &DomainError{
		Code:       "INVALID_ENUM",
		Message:    err.Error(),
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
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

func MapError(err error) error {
	return ToDomainError(err)
}
