package services

import (
	"net/url"

	"github.com/SscSPs/ledger_desk/internal/core/normalize"
	"github.com/SscSPs/ledger_desk/internal/utils/envelope"
	"github.com/tidwall/gjson"
)

// FetchStrategy is one way of asking the store for the entries of a journal.
type FetchStrategy struct {
	Name string
	// Request builds the path and query for journalID.
	Request func(journalID string) (string, url.Values)
	// Unwrap flattens the response body into raw entry records.
	Unwrap func(body []byte) []gjson.Result
}

// UnwrapEntries peels any supported envelope off an entry listing or an entry.
func UnwrapEntries(body []byte) []gjson.Result {
	return envelope.Records(body, normalize.LooksLikeEntry)
}

// DefaultFetchStrategies returns the fallback chain in the order it is tried:
// filtered listing by journalId, filtered listing by journal, nested path under
// the journal, flat path by journal, and direct fetch by id.
func DefaultFetchStrategies() []FetchStrategy {
	return []FetchStrategy{
		{
			Name: "query-journalId",
			Request: func(id string) (string, url.Values) {
				return "/journal-entries", url.Values{"journalId": {id}}
			},
			Unwrap: UnwrapEntries,
		},
		{
			Name: "query-journal",
			Request: func(id string) (string, url.Values) {
				return "/journal-entries", url.Values{"journal": {id}}
			},
			Unwrap: UnwrapEntries,
		},
		{
			Name: "nested-journal-path",
			Request: func(id string) (string, url.Values) {
				return "/journals/" + url.PathEscape(id) + "/entries", nil
			},
			Unwrap: UnwrapEntries,
		},
		{
			Name: "flat-journal-path",
			Request: func(id string) (string, url.Values) {
				return "/journal-entries/journal/" + url.PathEscape(id), nil
			},
			Unwrap: UnwrapEntries,
		},
		{
			Name: "direct-by-id",
			Request: func(id string) (string, url.Values) {
				return "/journal-entries/" + url.PathEscape(id), nil
			},
			Unwrap: UnwrapEntries,
		},
	}
}
