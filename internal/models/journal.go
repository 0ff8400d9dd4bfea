package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is one row of the journals table.
type Journal struct {
	JournalID   string    `db:"journal_id"`
	Name        string    `db:"name"`
	Code        string    `db:"code"`
	JournalType string    `db:"journal_type"`
	CreatedAt   time.Time `db:"created_at"`
}

// JournalEntry is one row of the journal_entries table joined with its journal's display fields.
type JournalEntry struct {
	EntryID     string          `db:"entry_id"`
	JournalID   string          `db:"journal_id"`
	JournalCode string          `db:"journal_code"`
	JournalName string          `db:"journal_name"`
	Description string          `db:"description"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
	CreatedAt   time.Time       `db:"created_at"`
}

// JournalLine is one row of the journal_lines table joined with its account's display fields.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	AccountCode string          `db:"account_code"`
	AccountName string          `db:"account_name"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}
