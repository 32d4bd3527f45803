package sqlstore

import (
	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

// storageError wraps a datastore failure. It matches driven.ErrStorage and
// the underlying error with errors.Is, and reads as the underlying message so
// handlers can echo it to clients.
type storageError struct {
	err error
}

func (e *storageError) Error() string { return e.err.Error() }

func (e *storageError) Unwrap() []error { return []error{driven.ErrStorage, e.err} }

func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return &storageError{err: err}
}
