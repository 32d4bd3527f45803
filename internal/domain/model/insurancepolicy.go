package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsurancePolicy is a stored insurance policy with its nominee details.
type InsurancePolicy struct {
	ID             string              `json:"id" db:"id"`
	PolicyType     *string             `json:"policy_type" db:"policy_type"`
	PolicyName     *string             `json:"policy_name" db:"policy_name"`
	PolicyNumber   *string             `json:"policy_number" db:"policy_number"`
	StartDate      *string             `json:"start_date" db:"start_date"`
	ExpiryDate     *string             `json:"expiry_date" db:"expiry_date"`
	InsuredAmount  decimal.NullDecimal `json:"insured_amount" db:"insured_amount"`
	PremiumAmount  decimal.NullDecimal `json:"premium_amount" db:"premium_amount"`
	PolicyYear     *string             `json:"policy_year" db:"policy_year"`
	PaymentYear    *string             `json:"payment_year" db:"payment_year"`
	Frequency      *string             `json:"frequency" db:"frequency"`
	NomineeName    *string             `json:"nominee_name" db:"nominee_name"`
	NomineeDOB     *string             `json:"nominee_dob" db:"nominee_dob"`
	Notes          *string             `json:"notes" db:"notes"`
	PolicyDocument *string             `json:"policy_document" db:"policy_document"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time          `json:"updated_at" db:"updated_at"`
}
