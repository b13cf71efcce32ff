package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed caller input. Never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// Validation builds a ValidationError.
func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PermissionError reports an attempt to mutate data the caller does not own.
type PermissionError struct {
	Action string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Action
}

// Permission builds a PermissionError.
func Permission(action string) error {
	return &PermissionError{Action: action}
}

// NotFoundError reports an operation on a missing or soft-deleted entity.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NotFound builds a NotFoundError.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// TransientStoreError wraps a connectivity or timeout failure talking to the
// backing store. Reads may be retried with backoff; writes must not be.
type TransientStoreError struct {
	Err error
}

func (e *TransientStoreError) Error() string {
	return "transient store error: " + e.Err.Error()
}

func (e *TransientStoreError) Unwrap() error {
	return e.Err
}

// Transient wraps err as a TransientStoreError.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientStoreError{Err: err}
}

// NotificationDispatchError wraps a failure of the best-effort notification
// side effect. Logged by the dispatcher, never propagated to the caller of
// the primary operation.
type NotificationDispatchError struct {
	Err error
}

func (e *NotificationDispatchError) Error() string {
	return "notification dispatch: " + e.Err.Error()
}

func (e *NotificationDispatchError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsPermission reports whether err is a PermissionError.
func IsPermission(err error) bool {
	var target *PermissionError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsTransient reports whether err is a TransientStoreError.
func IsTransient(err error) bool {
	var target *TransientStoreError
	return errors.As(err, &target)
}
