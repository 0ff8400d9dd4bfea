package mapping

import (
	"testing"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/SscSPs/ledger_desk/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelJournalLines_NumbersFromOne(t *testing.T) {
	n := 0
	newID := func() string { n++; return string(rune('a' + n - 1)) }

	rows := ToModelJournalLines("e1", []domain.CanonicalLine{
		{AccountID: "acc-cash", Debit: decimal.NewFromInt(3)},
		{AccountID: "acc-sales", Credit: decimal.NewFromInt(3)},
	}, newID)

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].LineNo)
	assert.Equal(t, 2, rows[1].LineNo)
	assert.Equal(t, "a", rows[0].LineID)
	assert.Equal(t, "b", rows[1].LineID)
	assert.Equal(t, "e1", rows[1].EntryID)
}

func TestToDomainJournalEntry_DisplayFields(t *testing.T) {
	entry := ToDomainJournalEntry(
		models.JournalEntry{EntryID: "e1", JournalID: "j1", JournalCode: "GJ", JournalName: "General"},
		[]models.JournalLine{
			{LineID: "l1", AccountID: "acc-cash", AccountCode: "1000", AccountName: "Cash"},
			{LineID: "l2", AccountID: "acc-gone"},
		},
	)

	assert.Equal(t, &domain.DisplayRef{ID: "j1", Code: "GJ", Name: "General"}, entry.Journal)
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, "Cash", entry.Lines[0].Account.Name)
	assert.Nil(t, entry.Lines[1].Account, "no display fields when the account join found nothing")
}

func TestJournalRoundTrip(t *testing.T) {
	j := domain.Journal{JournalID: "j1", Name: "Sales", Code: "SJ", JournalType: domain.SalesJournal}
	assert.Equal(t, j, ToDomainJournal(ToModelJournal(j)))
}
