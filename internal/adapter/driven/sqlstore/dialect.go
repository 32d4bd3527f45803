package sqlstore

import (
	"strconv"
	"time"
)

// Dialect selects placeholder syntax and timestamp encoding.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// sqliteTimeLayout is fixed width so that TEXT timestamps sort chronologically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// placeholder returns the bind parameter for the n-th argument (1-based).
func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// timeArg converts t to the value stored in a timestamp column.
func (d Dialect) timeArg(t time.Time) any {
	if d == DialectPostgres {
		return t.UTC()
	}
	return t.UTC().Format(sqliteTimeLayout)
}
