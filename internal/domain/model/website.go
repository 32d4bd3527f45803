package model

import "time"

// Website holds login details for an online account.
type Website struct {
	ID              string     `json:"id" db:"id"`
	AccountOwner    *string    `json:"account_owner" db:"account_owner"`
	AccountType     *string    `json:"account_type" db:"account_type"`
	ShortWebName    *string    `json:"short_web_name" db:"short_web_name"`
	Number          *string    `json:"number" db:"number"`
	WebsiteAddress  *string    `json:"website_address" db:"website_address"`
	LoginID         *string    `json:"login_id" db:"login_id"`
	LoginPassword   *string    `json:"login_password" db:"login_password"`
	TwoStepPassword *string    `json:"two_step_password" db:"two_step_password"`
	OtherPassword   *string    `json:"other_password" db:"other_password"`
	Notes           *string    `json:"notes" db:"notes"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at" db:"updated_at"`
}
