package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is one row of the accounts table.
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
}
