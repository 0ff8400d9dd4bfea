package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/SscSPs/ledger_desk/internal/core/normalize"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/utils/envelope"
)

// EntryRepository creates and deletes journal entries on the remote service.
// Listing by journal goes through services.EntryFetchResolver instead.
type EntryRepository struct {
	client *Client
}

// NewEntryRepository creates an entry repository over client.
func NewEntryRepository(client *Client) *EntryRepository {
	return &EntryRepository{client: client}
}

var _ portsrepo.EntryWriter = (*EntryRepository)(nil)

type entryLinePayload struct {
	AccountID   string      `json:"accountId"`
	Description string      `json:"description"`
	Debit       json.Number `json:"debit"`
	Credit      json.Number `json:"credit"`
}

type entryPayload struct {
	JournalID   string             `json:"journalId"`
	Description string             `json:"description,omitempty"`
	Lines       []entryLinePayload `json:"lines"`
}

// toPayload renders amounts as JSON numbers, which the service expects.
func toPayload(entry domain.CanonicalEntry) entryPayload {
	p := entryPayload{
		JournalID:   entry.JournalID,
		Description: entry.Description,
		Lines:       make([]entryLinePayload, len(entry.Lines)),
	}
	for i, l := range entry.Lines {
		p.Lines[i] = entryLinePayload{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       json.Number(l.Debit.String()),
			Credit:      json.Number(l.Credit.String()),
		}
	}
	return p
}

// CreateEntry implements portsrepo.EntryWriter.
func (r *EntryRepository) CreateEntry(ctx context.Context, entry domain.CanonicalEntry) (*domain.JournalEntry, error) {
	body, err := r.client.do(ctx, http.MethodPost, "/journal-entries", nil, toPayload(entry), "create journal entry")
	if err != nil {
		return nil, err
	}

	records := envelope.Records(body, normalize.LooksLikeEntry)
	if len(records) == 0 {
		return nil, &apperrors.RemoteError{Op: "create journal entry", Status: http.StatusOK, Message: "response carries no entry"}
	}
	created := normalize.Entry(records[0])
	if created.EntryID == "" {
		return nil, &apperrors.RemoteError{Op: "create journal entry", Status: http.StatusOK, Message: "response entry has no id"}
	}
	if created.JournalID == "" {
		created.JournalID = entry.JournalID
	}
	return &created, nil
}

// DeleteEntry implements portsrepo.EntryWriter.
func (r *EntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	_, err := r.client.do(ctx, http.MethodDelete, "/journal-entries/"+url.PathEscape(entryID), nil, nil, "delete journal entry")
	if errors.Is(err, apperrors.ErrNotFound) {
		return &apperrors.NotFoundError{Resource: "journal entry", ID: entryID}
	}
	return err
}
