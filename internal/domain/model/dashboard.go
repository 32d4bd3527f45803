package model

// Dashboard is the merged view of every resource except deposits.
type Dashboard struct {
	BankAccounts      []BankAccount     `json:"bank_accounts"`
	CreditCards       []CreditCard      `json:"credit_cards"`
	GeneralDocuments  []GeneralDocument `json:"general_documents"`
	InsurancePolicies []InsurancePolicy `json:"insurance_policies"`
	Websites          []Website         `json:"websites"`
}
