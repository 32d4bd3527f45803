// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"
)

// Sentinel errors returned by RecordStore implementations.
var (
	// ErrStorage marks any failure reported by the datastore. Not-found on
	// update and on returning deletes is reported as ErrStorage as well.
	ErrStorage = errors.New("storage error")

	// ErrNoRows indicates the filter matched no row. It is always wrapped
	// together with ErrStorage.
	ErrNoRows = errors.New("no rows matched")
)

// RecordStore defines the driven port for one resource table. T is the
// record type; pointer fields left nil are treated as "not provided" by
// Create and Update.
type RecordStore[T any] interface {
	// List returns every row ordered by the table's order column, newest first.
	List(ctx context.Context) ([]T, error)
	// Create inserts a row with a generated id and created_at and returns it.
	Create(ctx context.Context, record T) (T, error)
	// Update writes the provided fields of patch to the row with the given id
	// and returns the updated row. Fields named in cleared are set to NULL;
	// names are the record's column names.
	Update(ctx context.Context, id string, patch T, cleared []string) (T, error)
	// Delete removes the row with the given id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteReturning removes the row with the given id and returns its prior contents.
	DeleteReturning(ctx context.Context, id string) (T, error)
}
