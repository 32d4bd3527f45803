package sqlstore

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// columnTagKey is the struct tag naming a field's column (e.g. `db:"bank_name"`).
const columnTagKey = "db"

// Columns every record carries; they are never taken from client input.
const (
	colID        = "id"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
)

var (
	timeType        = reflect.TypeOf(time.Time{})
	timePtrType     = reflect.TypeOf((*time.Time)(nil))
	stringType      = reflect.TypeOf("")
	stringPtrType   = reflect.TypeOf((*string)(nil))
	int64PtrType    = reflect.TypeOf((*int64)(nil))
	float64PtrType  = reflect.TypeOf((*float64)(nil))
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})
)

type column struct {
	name  string
	index int
}

// tableMeta lists the tagged columns of a record type in declaration order.
type tableMeta struct {
	columns []column
	byName  map[string]int
}

// parseRecordType extracts column metadata from the `db` tags of a struct type.
// The type must declare id, created_at and updated_at columns.
func parseRecordType(t reflect.Type) (*tableMeta, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record must be a struct, got %s", t.Kind())
	}

	meta := &tableMeta{byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get(columnTagKey)
		if name == "" || name == "-" {
			continue
		}
		if !supportedFieldType(field.Type) {
			return nil, fmt.Errorf("field %s: unsupported column type %s", field.Name, field.Type)
		}
		meta.byName[name] = len(meta.columns)
		meta.columns = append(meta.columns, column{name: name, index: i})
	}

	for _, required := range []string{colID, colCreatedAt, colUpdatedAt} {
		if _, ok := meta.byName[required]; !ok {
			return nil, fmt.Errorf("record %s has no %q column", t.Name(), required)
		}
	}

	return meta, nil
}

func supportedFieldType(t reflect.Type) bool {
	switch t {
	case timeType, timePtrType, stringType, stringPtrType, int64PtrType, float64PtrType, nullDecimalType:
		return true
	}
	return false
}

// isGenerated reports whether the column is managed by the store.
func isGenerated(name string) bool {
	return name == colID || name == colCreatedAt || name == colUpdatedAt
}

// providedValue returns the bind value for a field and whether the client set it.
// Nil pointers and invalid decimals count as not provided.
func providedValue(field reflect.Value, d Dialect) (any, bool) {
	switch field.Type() {
	case nullDecimalType:
		nd := field.Interface().(decimal.NullDecimal)
		if !nd.Valid {
			return nil, false
		}
		return nd.Decimal.String(), true
	case timeType:
		return d.timeArg(field.Interface().(time.Time)), true
	case timePtrType:
		if field.IsNil() {
			return nil, false
		}
		return d.timeArg(*field.Interface().(*time.Time)), true
	case stringType:
		return field.String(), true
	}

	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return nil, false
		}
		return field.Elem().Interface(), true
	}
	return nil, false
}

// fieldScanner scans one column into a struct field, normalizing the value
// types SQLite and Postgres drivers hand back.
type fieldScanner struct {
	field reflect.Value
}

func (s fieldScanner) Scan(src any) error {
	if scanner, ok := s.field.Addr().Interface().(sql.Scanner); ok {
		return scanner.Scan(src)
	}
	if src == nil {
		s.field.SetZero()
		return nil
	}

	switch s.field.Type() {
	case timeType, timePtrType:
		t, err := toTime(src)
		if err != nil {
			return err
		}
		if s.field.Type() == timeType {
			s.field.Set(reflect.ValueOf(t))
		} else {
			s.field.Set(reflect.ValueOf(&t))
		}
	case stringType, stringPtrType:
		str := toString(src)
		if s.field.Type() == stringType {
			s.field.SetString(str)
		} else {
			s.field.Set(reflect.ValueOf(&str))
		}
	case int64PtrType:
		n, err := toInt64(src)
		if err != nil {
			return err
		}
		s.field.Set(reflect.ValueOf(&n))
	case float64PtrType:
		f, err := toFloat64(src)
		if err != nil {
			return err
		}
		s.field.Set(reflect.ValueOf(&f))
	default:
		return fmt.Errorf("cannot scan %T into %s", src, s.field.Type())
	}
	return nil
}

func toString(src any) string {
	switch v := src.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func toInt64(src any) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case []byte, string:
		s := toString(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("parse integer %q: %w", s, err)
		}
		return int64(f), nil
	}
	return 0, fmt.Errorf("cannot convert %T to integer", src)
}

func toFloat64(src any) (float64, error) {
	switch v := src.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case []byte, string:
		s := toString(v)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("parse float %q: %w", s, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot convert %T to float", src)
}

func toTime(src any) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v.UTC(), nil
	case []byte:
		return parseTime(string(v))
	case string:
		return parseTime(v)
	}
	return time.Time{}, fmt.Errorf("cannot convert %T to time", src)
}

// parseTime parses a timestamp stored as TEXT in SQLite.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		sqliteTimeLayout,
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
