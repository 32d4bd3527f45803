package model

import "time"

// BankAccount is a stored bank account record. Credentials are kept as entered.
type BankAccount struct {
	ID                  string     `json:"id" db:"id"`
	BankName            *string    `json:"bank_name" db:"bank_name"`
	AccountNumber       *string    `json:"account_number" db:"account_number"`
	IFSCCode            *string    `json:"ifsc_code" db:"ifsc_code"`
	Branch              *string    `json:"branch" db:"branch"`
	CardNumber          *string    `json:"card_number" db:"card_number"`
	ExpiryDate          *string    `json:"expiry_date" db:"expiry_date"`
	CVV                 *string    `json:"cvv" db:"cvv"`
	CustomerID          *string    `json:"customer_id" db:"customer_id"`
	Username            *string    `json:"username" db:"username"`
	LoginPassword       *string    `json:"login_password" db:"login_password"`
	AccountOwner        *string    `json:"account_owner" db:"account_owner"`
	UPIPin              *string    `json:"upi_pin" db:"upi_pin"`
	ATMPin              *string    `json:"atm_pin" db:"atm_pin"`
	TransactionPassword *string    `json:"transaction_password" db:"transaction_password"`
	Status              *string    `json:"status" db:"status"`
	IssueDate           *string    `json:"issue_date" db:"issue_date"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at" db:"updated_at"`
}
