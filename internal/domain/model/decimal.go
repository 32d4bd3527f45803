package model

import "github.com/shopspring/decimal"

// Amount columns are sent to clients as JSON numbers, the way the datastore
// returns numeric columns, rather than decimal's default quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
