// Package normalize turns loosely shaped store records into domain values.
//
// References may arrive as bare ids or as embedded objects, keys may use one of
// several spellings, and numbers may be strings. Totals are always recomputed from
// the lines a record carries; a precomputed total is only used when there are none.
package normalize

import (
	"strings"
	"time"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

var (
	idKeys          = []string{"id", "_id"}
	journalKeys     = []string{"journalId", "journal", "journal_id", "journalID"}
	accountKeys     = []string{"accountId", "account", "account_id", "accountID"}
	descriptionKeys = []string{"description", "narration", "memo"}
	createdAtKeys   = []string{"createdAt", "created_at", "date"}
)

// JournalKeys lists the accepted spellings of an entry's journal reference.
func JournalKeys() []string { return append([]string(nil), journalKeys...) }

// AccountKeys lists the accepted spellings of a line's account reference.
func AccountKeys() []string { return append([]string(nil), accountKeys...) }

// First returns the first key of v that is present and not null.
func First(v gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := v.Get(k); r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}

func firstString(v gjson.Result, keys ...string) string {
	return strings.TrimSpace(First(v, keys...).String())
}

// LooksLikeEntry reports whether v is shaped like a journal entry record.
func LooksLikeEntry(v gjson.Result) bool {
	if !v.IsObject() {
		return false
	}
	if v.Get("lines").IsArray() {
		return true
	}
	return First(v, idKeys...).Exists() && First(v, journalKeys...).Exists()
}

// LooksLikeAccount reports whether v is shaped like an account record.
func LooksLikeAccount(v gjson.Result) bool {
	return v.IsObject() && First(v, idKeys...).Exists() && (v.Get("code").Exists() || v.Get("name").Exists())
}

// LooksLikeJournal reports whether v is shaped like a journal record.
func LooksLikeJournal(v gjson.Result) bool {
	return v.IsObject() && First(v, idKeys...).Exists() && v.Get("code").Exists()
}

// Entry normalizes a raw journal entry record.
func Entry(v gjson.Result) domain.JournalEntry {
	e := domain.JournalEntry{
		EntryID:     firstString(v, idKeys...),
		Description: firstString(v, descriptionKeys...),
		CreatedAt:   parseTime(First(v, createdAtKeys...)),
	}
	e.JournalID, e.Journal = splitRef(domain.ReferenceFromJSON(First(v, journalKeys...)))

	rawLines := v.Get("lines").Array()
	e.Lines = make([]domain.JournalLine, 0, len(rawLines))
	for _, rl := range rawLines {
		if rl.IsObject() {
			e.Lines = append(e.Lines, Line(rl))
		}
	}

	if len(e.Lines) > 0 {
		e.TotalDebit, e.TotalCredit = domain.SumLines(e.Lines)
	} else {
		e.TotalDebit = domain.AmountFromJSON(v.Get("totalDebit")).Value
		e.TotalCredit = domain.AmountFromJSON(v.Get("totalCredit")).Value
	}
	return e
}

// Line normalizes a raw journal line record.
func Line(v gjson.Result) domain.JournalLine {
	l := domain.JournalLine{
		LineID:      firstString(v, idKeys...),
		Description: firstString(v, descriptionKeys...),
		Debit:       amount(v.Get("debit")),
		Credit:      amount(v.Get("credit")),
	}
	l.AccountID, l.Account = splitRef(domain.ReferenceFromJSON(First(v, accountKeys...)))
	return l
}

// Account normalizes a raw account record.
func Account(v gjson.Result) domain.Account {
	return domain.Account{
		AccountID:   firstString(v, idKeys...),
		Code:        firstString(v, "code"),
		Name:        firstString(v, "name"),
		AccountType: domain.AccountType(firstString(v, "type", "accountType", "account_type")),
	}
}

// Journal normalizes a raw journal record.
func Journal(v gjson.Result) domain.Journal {
	return domain.Journal{
		JournalID:   firstString(v, idKeys...),
		Name:        firstString(v, "name"),
		Code:        firstString(v, "code"),
		JournalType: domain.JournalType(firstString(v, "journalType", "type", "journal_type")),
		CreatedAt:   parseTime(First(v, createdAtKeys...)),
	}
}

// splitRef extracts the canonical id and, for embedded objects, the display fields.
func splitRef(r domain.Reference) (string, *domain.DisplayRef) {
	switch r.Kind {
	case domain.RefValue:
		return r.Value, nil
	case domain.RefObject:
		return r.ID, &domain.DisplayRef{ID: r.ID, Code: r.Code, Name: r.Name}
	default:
		return "", nil
	}
}

func amount(v gjson.Result) decimal.Decimal {
	a := domain.AmountFromJSON(v)
	if a.Invalid {
		return decimal.Zero
	}
	return a.Value
}

func parseTime(v gjson.Result) time.Time {
	switch v.Type {
	case gjson.String:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v.Str); err == nil {
				return t.UTC()
			}
		}
	case gjson.Number:
		return time.UnixMilli(v.Int()).UTC()
	}
	return time.Time{}
}
