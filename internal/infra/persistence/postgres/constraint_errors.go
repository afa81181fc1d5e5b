package postgres

import (
	"strings"

	domainerrors "agromart/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for constraint error checking. Drivers that implement
// gorm's error translator return the gorm sentinel errors; the message
// checks cover drivers that do not.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	// SQLite reports "CHECK constraint failed: chk_..."
	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}

func isForbidden(err error) bool {
	return errors.Is(err, domainerrors.ErrForbidden)
}

// translateWriteError converts a failed insert, update or delete into a domain error.
func translateWriteError(err error, details string) error {
	switch {
	case isForbidden(err):
		return err
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrConflict.WrapMessage(details)
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrInvalidReference.WrapMessage(details)
	case isCheckConstraintViolation(err), isNotNullConstraintViolation(err):
		return domainerrors.ErrConstraintViolation.WrapMessage(details)
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

// translateReadError maps a missing row to notFound.
func translateReadError(err error, notFound error, details string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if isForbidden(err) {
		return err
	}

	return errors.Wrap(err, details)
}
