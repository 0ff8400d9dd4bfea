package services_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyQueryJournalID = fetchKey("/journal-entries", url.Values{"journalId": {journalA}})
	keyQueryJournal   = fetchKey("/journal-entries", url.Values{"journal": {journalA}})
	keyNested         = "/journals/" + journalA + "/entries"
	keyFlat           = "/journal-entries/journal/" + journalA
	keyDirect         = "/journal-entries/" + journalA
)

const nestedEntriesBody = `{"success": true, "data": {"docs": [
	{"_id": "e1", "journal": {"_id": "` + journalA + `", "code": "GJ", "name": "General"},
	 "description": "Opening", "createdAt": "2024-03-01T10:00:00Z",
	 "lines": [
		{"account": {"_id": "acc-cash", "code": "1000", "name": "Cash"}, "description": "cash", "debit": "250.00", "credit": 0},
		{"accountId": "acc-sales", "description": "sale", "debit": null, "credit": 250}
	 ]},
	{"_id": "e2", "lines": [
		{"account_id": "acc-rent", "description": "rent", "debit": 10},
		{"account_id": "acc-cash", "description": "rent", "credit": 10}
	]}
]}}`

func TestFetchEntries_OnlyNestedPathWorks(t *testing.T) {
	fetcher := newFakeFetcher().
		on(keyQueryJournalID, `{"data": []}`, nil).
		on(keyQueryJournal, ``, &apperrors.NotFoundError{Resource: "journal-entries"}).
		on(keyNested, nestedEntriesBody, nil)

	resolver := services.NewEntryFetchResolver(fetcher)
	entries, err := resolver.FetchEntriesForJournal(context.Background(), journalA)
	require.NoError(t, err)

	assert.Equal(t, []string{keyQueryJournalID, keyQueryJournal, keyNested}, fetcher.Calls(), "strategies after the first success are never called")

	require.Len(t, entries, 2)
	first := entries[0]
	assert.Equal(t, "e1", first.EntryID)
	assert.Equal(t, journalA, first.JournalID)
	require.NotNil(t, first.Journal)
	assert.Equal(t, "GJ", first.Journal.Code)
	assert.Equal(t, "acc-cash", first.Lines[0].AccountID)
	require.NotNil(t, first.Lines[0].Account)
	assert.Equal(t, "Cash", first.Lines[0].Account.Name)
	assert.Equal(t, "acc-sales", first.Lines[1].AccountID)
	assert.Equal(t, "250", first.TotalDebit.String())
	assert.True(t, first.IsBalanced())

	assert.Equal(t, journalA, entries[1].JournalID, "records without a journal belong to the requested one")
	assert.Equal(t, "acc-rent", entries[1].Lines[0].AccountID)
}

func TestFetchEntries_ChainExhaustedIsEmptyNotError(t *testing.T) {
	fetcher := newFakeFetcher().
		on(keyQueryJournalID, `[]`, nil).
		on(keyQueryJournal, `{"success": false, "message": "Journal not found"}`, nil).
		on(keyNested, ``, &apperrors.TransientFetchError{Op: "nested", Status: 502}).
		on(keyFlat, `<html>oops</html>`, nil).
		on(keyDirect, ``, &apperrors.NotFoundError{Resource: "entry"})

	entries, err := services.NewEntryFetchResolver(fetcher).FetchEntriesForJournal(context.Background(), journalA)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.Len(t, fetcher.Calls(), 5)
}

func TestFetchEntries_TransportErrorsMoveOn(t *testing.T) {
	fetcher := newFakeFetcher().
		on(keyQueryJournalID, ``, &apperrors.TransientFetchError{Op: "q1", Err: errors.New("connection refused")}).
		on(keyQueryJournal, ``, &apperrors.RemoteError{Op: "q2", Status: 400, Message: "bad filter"}).
		on(keyNested, ``, &apperrors.TransientFetchError{Op: "nested", Status: 500}).
		on(keyFlat, `{"data": [{"_id": "e9", "journalId": "`+journalA+`", "lines": [{"accountId": "a", "debit": 1}, {"accountId": "b", "credit": 1}]}]}`, nil)

	entries, err := services.NewEntryFetchResolver(fetcher).FetchEntriesForJournal(context.Background(), journalA)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e9", entries[0].EntryID)
	assert.Len(t, fetcher.Calls(), 4)
}

func TestFetchEntries_DropsOtherJournalsAndIDlessRecords(t *testing.T) {
	body := `[
		{"_id": "mine", "journalId": "` + journalA + `", "lines": [{"accountId": "a", "debit": 5}, {"accountId": "b", "credit": 5}]},
		{"_id": "theirs", "journalId": "` + journalB + `", "lines": [{"accountId": "a", "debit": 5}, {"accountId": "b", "credit": 5}]},
		{"journalId": "` + journalA + `", "lines": []}
	]`
	fetcher := newFakeFetcher().on(keyQueryJournalID, body, nil)

	entries, err := services.NewEntryFetchResolver(fetcher).FetchEntriesForJournal(context.Background(), journalA)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mine", entries[0].EntryID)
}

func TestFetchEntries_DirectByIDSingleRecord(t *testing.T) {
	body := `{"data": {"_id": "solo", "journal": "` + journalA + `", "totalDebit": "7.5", "totalCredit": "7.5"}}`
	fetcher := newFakeFetcher().on(keyDirect, body, nil)

	entries, err := services.NewEntryFetchResolver(fetcher).FetchEntriesForJournal(context.Background(), journalA)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "solo", entries[0].EntryID)
	assert.Equal(t, "7.5", entries[0].TotalDebit.String(), "precomputed totals are used when there are no lines")
}

func TestFetchEntries_MalformedIDMakesNoCall(t *testing.T) {
	fetcher := newFakeFetcher()

	_, err := services.NewEntryFetchResolver(fetcher).FetchEntriesForJournal(context.Background(), "GJ")
	assert.ErrorIs(t, err, apperrors.ErrMalformedReference)
	assert.Empty(t, fetcher.Calls())
}

func TestFetchEntries_StrictMode(t *testing.T) {
	allFail := func() *fakeFetcher {
		f := newFakeFetcher()
		for _, k := range []string{keyQueryJournalID, keyQueryJournal, keyNested, keyFlat, keyDirect} {
			f.on(k, ``, &apperrors.TransientFetchError{Op: k, Status: 503})
		}
		return f
	}

	entries, err := services.NewEntryFetchResolver(allFail()).FetchEntriesForJournal(context.Background(), journalA)
	require.NoError(t, err, "lenient by default")
	assert.Empty(t, entries)

	_, err = services.NewEntryFetchResolver(allFail(), services.WithStrictMode(true)).FetchEntriesForJournal(context.Background(), journalA)
	assert.ErrorIs(t, err, apperrors.ErrTransient)

	mixed := allFail().on(keyDirect, ``, &apperrors.NotFoundError{Resource: "entry"})
	entries, err = services.NewEntryFetchResolver(mixed, services.WithStrictMode(true)).FetchEntriesForJournal(context.Background(), journalA)
	require.NoError(t, err, "a clean miss means the journal really has no entries")
	assert.Empty(t, entries)
}

func TestFetchEntries_CancelledContextStopsChain(t *testing.T) {
	fetcher := newFakeFetcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := services.NewEntryFetchResolver(fetcher).FetchEntriesForJournal(ctx, journalA)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.Calls())
}

func TestFetchEntries_CustomStrategies(t *testing.T) {
	fetcher := newFakeFetcher().on("/custom/"+journalA, `[{"_id": "c1", "lines": [{"accountId": "a", "debit": 2}, {"accountId": "b", "credit": 2}]}]`, nil)
	custom := services.FetchStrategy{
		Name: "custom",
		Request: func(id string) (string, url.Values) {
			return "/custom/" + id, nil
		},
		Unwrap: services.UnwrapEntries,
	}

	entries, err := services.NewEntryFetchResolver(fetcher, services.WithStrategies(custom)).ListEntriesByJournal(context.Background(), journalA)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"/custom/" + journalA}, fetcher.Calls())
}

func TestDefaultFetchStrategies_Order(t *testing.T) {
	var names []string
	for _, s := range services.DefaultFetchStrategies() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"query-journalId", "query-journal", "nested-journal-path", "flat-journal-path", "direct-by-id"}, names)
}
