package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store-level failure taxonomy. The store never recovers locally: every
// engine failure is classified once and passed upward untouched.
var (
	// ErrStorageUnavailable means the engine could not be opened at all.
	// Fatal for the session; callers must surface it, not retry silently.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConstraintViolation means an insert broke a unique index declared
	// on the collection (invoice number, client email).
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrTransactionAborted means the engine aborted a read or write after
	// the store was open (disk full, malformed statement, closed handle).
	ErrTransactionAborted = errors.New("transaction aborted")
)

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return fmt.Errorf("%w: %v", ErrTransactionAborted, err)
}
