package apperror

import (
	"errors"
	"fmt"
)

// ValidationError signals malformed or missing input. The caller can always
// recover by correcting the request.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// DomainError signals a business-rule violation on otherwise valid input,
// e.g. paying an obligation that is already settled.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return e.Msg }

// DuplicateError signals a uniqueness violation, surfaced with a user-facing
// message instead of the raw storage error.
type DuplicateError struct {
	Msg string
}

func (e *DuplicateError) Error() string { return e.Msg }

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// StorageError wraps an infrastructure failure from the persistence layer.
// Handlers report it distinctly from the domain errors above.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// --- Constructors ---

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func Domain(format string, args ...interface{}) error {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}

func Duplicate(format string, args ...interface{}) error {
	return &DuplicateError{Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// --- Predicates used by handlers and tests ---

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsDomain(err error) bool {
	var e *DomainError
	return errors.As(err, &e)
}

func IsDuplicate(err error) bool {
	var e *DuplicateError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsStorage(err error) bool {
	var e *StorageError
	return errors.As(err, &e)
}
