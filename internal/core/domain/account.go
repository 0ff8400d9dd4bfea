package domain

import "fmt"

// AccountType is the accounting class reported by the account store.
// The store may report types outside this list; they are kept verbatim.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents an account of the chart of accounts as fetched from the store.
// The ledger core never mutates accounts.
type Account struct {
	AccountID   string      `json:"id"`   // Canonical id
	Code        string      `json:"code"` // Intended unique, enforced by the store
	Name        string      `json:"name"`
	AccountType AccountType `json:"type"`
}

// Label is the composed "name (code)" form dashboards show in account pickers.
func (a Account) Label() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Code)
}

// AccountFilter narrows an account listing. Empty fields are ignored.
type AccountFilter struct {
	AccountType AccountType
	Search      string
}
