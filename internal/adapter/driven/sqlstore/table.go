package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Table is a RecordStore over a single table. Columns come from the `db`
// tags of T; a record's nil pointer fields are left out of inserts and updates.
type Table[T any] struct {
	db      *DB
	name    string
	orderBy string
	meta    *tableMeta
	columns string
	now     func() time.Time
	newID   func() string
}

// NewTable creates a Table for the record type T stored in table name and
// listed by orderBy descending. It panics if T is not a valid record type,
// since record types are fixed at compile time.
func NewTable[T any](db *DB, name, orderBy string) *Table[T] {
	meta, err := parseRecordType(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		panic(fmt.Sprintf("sqlstore: table %s: %v", name, err))
	}
	if _, ok := meta.byName[orderBy]; !ok {
		panic(fmt.Sprintf("sqlstore: table %s: unknown order column %q", name, orderBy))
	}

	names := make([]string, len(meta.columns))
	for i, c := range meta.columns {
		names[i] = c.name
	}

	return &Table[T]{
		db:      db,
		name:    name,
		orderBy: orderBy,
		meta:    meta,
		columns: strings.Join(names, ", "),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}

// List returns every row ordered by the order column, newest first.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`, t.columns, t.name, t.orderBy)

	rows, err := t.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapStorage(fmt.Errorf("list %s: %w", t.name, err))
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		record, err := t.scan(rows)
		if err != nil {
			return nil, wrapStorage(fmt.Errorf("scan %s: %w", t.name, err))
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStorage(fmt.Errorf("iterate %s: %w", t.name, err))
	}

	return records, nil
}

// Latest returns the most recently created row, or nil if the table is empty.
func (t *Table[T]) Latest(ctx context.Context) (*T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC LIMIT 1`, t.columns, t.name, colCreatedAt)

	record, err := t.scan(t.db.Reader.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage(fmt.Errorf("latest %s: %w", t.name, err))
	}

	return &record, nil
}

// Create inserts record with a fresh id and created_at and returns the stored row.
// Any id, created_at or updated_at on record is ignored.
func (t *Table[T]) Create(ctx context.Context, record T) (T, error) {
	v := reflect.ValueOf(&record).Elem()

	names := []string{colID, colCreatedAt}
	args := []any{t.newID(), t.db.Dialect.timeArg(t.now())}
	for _, c := range t.meta.columns {
		if isGenerated(c.name) {
			continue
		}
		if value, ok := providedValue(v.Field(c.index), t.db.Dialect); ok {
			names = append(names, c.name)
			args = append(args, value)
		}
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = t.db.Dialect.placeholder(i + 1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		t.name, strings.Join(names, ", "), strings.Join(placeholders, ", "), t.columns)

	created, err := t.scan(t.db.Writer.QueryRowContext(ctx, query, args...))
	if err != nil {
		var zero T
		return zero, wrapStorage(fmt.Errorf("insert into %s: %w", t.name, err))
	}

	return created, nil
}

// Update writes the provided fields of patch and updated_at to the row with
// the given id. Columns listed in cleared and not provided by patch are set
// to NULL; generated and unknown names are ignored. A missing row is reported
// as driven.ErrNoRows wrapped in a storage error, the same kind as any other
// datastore failure.
func (t *Table[T]) Update(ctx context.Context, id string, patch T, cleared []string) (T, error) {
	var zero T
	v := reflect.ValueOf(&patch).Elem()

	var sets []string
	var args []any
	for _, c := range t.meta.columns {
		if isGenerated(c.name) {
			continue
		}
		if value, ok := providedValue(v.Field(c.index), t.db.Dialect); ok {
			args = append(args, value)
			sets = append(sets, c.name+" = "+t.db.Dialect.placeholder(len(args)))
		} else if slices.Contains(cleared, c.name) {
			sets = append(sets, c.name+" = NULL")
		}
	}
	args = append(args, t.db.Dialect.timeArg(t.now()))
	sets = append(sets, colUpdatedAt+" = "+t.db.Dialect.placeholder(len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = %s RETURNING %s`,
		t.name, strings.Join(sets, ", "), colID, t.db.Dialect.placeholder(len(args)), t.columns)

	updated, err := t.scan(t.db.Writer.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, wrapStorage(fmt.Errorf("update %s %q: %w", t.name, id, driven.ErrNoRows))
	}
	if err != nil {
		return zero, wrapStorage(fmt.Errorf("update %s %q: %w", t.name, id, err))
	}

	return updated, nil
}

// Delete removes the row with the given id. Deleting an absent id succeeds.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = %s`, t.name, colID, t.db.Dialect.placeholder(1))

	if _, err := t.db.Writer.ExecContext(ctx, query, id); err != nil {
		return wrapStorage(fmt.Errorf("delete from %s %q: %w", t.name, id, err))
	}

	return nil
}

// DeleteReturning removes the row with the given id and returns what it held.
func (t *Table[T]) DeleteReturning(ctx context.Context, id string) (T, error) {
	var zero T
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = %s RETURNING %s`,
		t.name, colID, t.db.Dialect.placeholder(1), t.columns)

	deleted, err := t.scan(t.db.Writer.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, wrapStorage(fmt.Errorf("delete from %s %q: %w", t.name, id, driven.ErrNoRows))
	}
	if err != nil {
		return zero, wrapStorage(fmt.Errorf("delete from %s %q: %w", t.name, id, err))
	}

	return deleted, nil
}

// scan reads one row in column order into a new T.
func (t *Table[T]) scan(row rowScanner) (T, error) {
	var record T
	v := reflect.ValueOf(&record).Elem()

	dest := make([]any, len(t.meta.columns))
	for i, c := range t.meta.columns {
		dest[i] = &fieldScanner{field: v.Field(c.index)}
	}

	if err := row.Scan(dest...); err != nil {
		var zero T
		return zero, err
	}

	return record, nil
}
