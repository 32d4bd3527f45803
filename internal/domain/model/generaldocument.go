package model

import "time"

// GeneralDocument is an identity or ownership document with an optional attachment reference.
type GeneralDocument struct {
	ID             string     `json:"id" db:"id"`
	DocumentName   *string    `json:"document_name" db:"document_name"`
	AccountOwner   *string    `json:"account_owner" db:"account_owner"`
	DocumentNumber *string    `json:"document_number" db:"document_number"`
	IssueDate      *string    `json:"issue_date" db:"issue_date"`
	ExpiryDate     *string    `json:"expiry_date" db:"expiry_date"`
	FileAttachment *string    `json:"file_attachment" db:"file_attachment"`
	Notes          *string    `json:"notes" db:"notes"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at" db:"updated_at"`
}
