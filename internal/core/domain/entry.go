package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineInput is one debit or credit line as entered by the user.
type LineInput struct {
	Account     Reference `json:"account"`
	Description string    `json:"description"`
	Debit       Amount    `json:"debit"`
	Credit      Amount    `json:"credit"`
}

// EntryInput is a candidate journal entry before validation.
type EntryInput struct {
	Journal     Reference   `json:"journal"`
	Description string      `json:"description,omitempty"`
	Lines       []LineInput `json:"lines"`
}

// CanonicalLine is a validated line whose account reference has been
// rewritten to the canonical account id.
type CanonicalLine struct {
	AccountID   string          `json:"accountId"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CanonicalEntry is the balanced form submitted to the store's create call.
type CanonicalEntry struct {
	JournalID   string          `json:"journalId"`
	Description string          `json:"description,omitempty"`
	Lines       []CanonicalLine `json:"lines"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// JournalLine is a stored line. Account keeps the embedded display fields
// when the store sent them, so views need no second lookup.
type JournalLine struct {
	LineID      string          `json:"id,omitempty"`
	AccountID   string          `json:"accountId"`
	Account     *DisplayRef     `json:"account,omitempty"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntry is one stored double-entry transaction.
type JournalEntry struct {
	EntryID     string          `json:"id"`
	JournalID   string          `json:"journalId"`
	Journal     *DisplayRef     `json:"journal,omitempty"`
	Description string          `json:"description,omitempty"`
	Lines       []JournalLine   `json:"lines"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// IsBalanced reports whether total debit equals total credit and is positive.
func (e JournalEntry) IsBalanced() bool {
	return e.TotalDebit.Equal(e.TotalCredit) && e.TotalDebit.IsPositive()
}

// SumLines totals the debit and credit columns.
func SumLines(lines []JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}
