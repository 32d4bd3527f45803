package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditCard is a stored credit card record.
type CreditCard struct {
	ID                string              `json:"id" db:"id"`
	BankName          *string             `json:"bank_name" db:"bank_name"`
	CreditCardNumber  *string             `json:"credit_card_number" db:"credit_card_number"`
	IssueDate         *string             `json:"issue_date" db:"issue_date"`
	ExpiryDate        *string             `json:"expiry_date" db:"expiry_date"`
	CVVNumber         *string             `json:"cvv_number" db:"cvv_number"`
	BillingCycle      *string             `json:"billing_cycle" db:"billing_cycle"`
	LastDate          *string             `json:"last_date" db:"last_date"`
	TransactionLimit  decimal.NullDecimal `json:"transaction_limit" db:"transaction_limit"`
	Pin               *string             `json:"pin" db:"pin"`
	InternetBankingID *string             `json:"internet_banking_id" db:"internet_banking_id"`
	LoginPassword     *string             `json:"login_password" db:"login_password"`
	Status            *string             `json:"status" db:"status"`
	CreatedAt         time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt         *time.Time          `json:"updated_at" db:"updated_at"`
}
