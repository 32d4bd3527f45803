package sqlstore

import "github.com/mehtaportfolio/data-backend/internal/domain/model"

// Table names as they exist in the datastore.
const (
	TableBankAccounts      = "bank_accounts"
	TableCreditCards       = "credit_cards"
	TableGeneralDocuments  = "general_documents"
	TableInsurancePolicies = "insurance_policies"
	TableDeposits          = "deposits"
	TableWebsites          = "website"
	TableDummy             = "dummy_table"
)

// Tables groups one store per persisted resource.
type Tables struct {
	BankAccounts      *Table[model.BankAccount]
	CreditCards       *Table[model.CreditCard]
	GeneralDocuments  *Table[model.GeneralDocument]
	InsurancePolicies *Table[model.InsurancePolicy]
	Deposits          *Table[model.Deposit]
	Websites          *Table[model.Website]
	Dummy             *Table[model.DummyRow]
}

// NewTables binds every resource table to db. Deposits are listed by deposit
// date; every other table by creation time.
func NewTables(db *DB) *Tables {
	return &Tables{
		BankAccounts:      NewTable[model.BankAccount](db, TableBankAccounts, colCreatedAt),
		CreditCards:       NewTable[model.CreditCard](db, TableCreditCards, colCreatedAt),
		GeneralDocuments:  NewTable[model.GeneralDocument](db, TableGeneralDocuments, colCreatedAt),
		InsurancePolicies: NewTable[model.InsurancePolicy](db, TableInsurancePolicies, colCreatedAt),
		Deposits:          NewTable[model.Deposit](db, TableDeposits, "deposit_date"),
		Websites:          NewTable[model.Website](db, TableWebsites, colCreatedAt),
		Dummy:             NewTable[model.DummyRow](db, TableDummy, colCreatedAt),
	}
}
