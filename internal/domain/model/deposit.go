package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is a single cash or cheque deposit into a bank.
type Deposit struct {
	ID          string              `json:"id" db:"id"`
	DepositDate *string             `json:"deposit_date" db:"deposit_date"`
	Amount      decimal.NullDecimal `json:"amount" db:"amount"`
	BankName    *string             `json:"bank_name" db:"bank_name"`
	Branch      *string             `json:"branch" db:"branch"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at" db:"updated_at"`
}
