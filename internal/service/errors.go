package service

import (
	"errors"

	"fiscaltrack/internal/apperror"

	"gorm.io/gorm"
)

// The repositories return raw store errors; the services own the translation
// into the domain taxonomy so handlers never see gorm internals.

// notFoundOr maps a missing row onto NotFoundError with msg; anything else
// is an infrastructure failure.
func notFoundOr(op string, err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("%s", msg)
	}
	return apperror.Storage(op, err)
}

// duplicateOr maps a uniqueness violation onto DuplicateError with msg;
// anything else is an infrastructure failure.
func duplicateOr(op string, err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Duplicate("%s", msg)
	}
	return apperror.Storage(op, err)
}
