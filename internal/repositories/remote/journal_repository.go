package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/SscSPs/ledger_desk/internal/core/normalize"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/utils/envelope"
)

// JournalRepository manages journals on the remote service.
type JournalRepository struct {
	client *Client
}

// NewJournalRepository creates a journal repository over client.
func NewJournalRepository(client *Client) *JournalRepository {
	return &JournalRepository{client: client}
}

var _ portsrepo.JournalRepositoryFacade = (*JournalRepository)(nil)

// ListJournals implements portsrepo.JournalReader.
func (r *JournalRepository) ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, error) {
	query := url.Values{}
	if filter.JournalType != "" {
		query.Set("journalType", string(filter.JournalType))
	}
	if filter.Code != "" {
		query.Set("code", filter.Code)
	}

	body, err := r.client.do(ctx, http.MethodGet, "/journals", query, nil, "list journals")
	if err != nil {
		return nil, err
	}

	records := envelope.Records(body, normalize.LooksLikeJournal)
	journals := make([]domain.Journal, 0, len(records))
	for _, rec := range records {
		if j := normalize.Journal(rec); j.JournalID != "" {
			journals = append(journals, j)
		}
	}
	return journals, nil
}

type createJournalPayload struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	JournalType string `json:"journalType"`
}

// CreateJournal implements portsrepo.JournalWriter.
func (r *JournalRepository) CreateJournal(ctx context.Context, journal domain.NewJournal) (*domain.Journal, error) {
	payload := createJournalPayload{
		Name:        journal.Name,
		Code:        journal.Code,
		JournalType: string(journal.JournalType),
	}
	body, err := r.client.do(ctx, http.MethodPost, "/journals", nil, payload, "create journal")
	if errors.Is(err, apperrors.ErrConflict) {
		return nil, &apperrors.DuplicateCodeError{Code: journal.Code, Cause: err}
	}
	if err != nil {
		return nil, err
	}

	records := envelope.Records(body, normalize.LooksLikeJournal)
	if len(records) == 0 {
		return nil, &apperrors.RemoteError{Op: "create journal", Status: http.StatusOK, Message: "response carries no journal"}
	}
	created := normalize.Journal(records[0])
	return &created, nil
}

// DeleteJournal implements portsrepo.JournalWriter.
func (r *JournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	_, err := r.client.do(ctx, http.MethodDelete, "/journals/"+url.PathEscape(journalID), nil, nil, "delete journal")
	if errors.Is(err, apperrors.ErrNotFound) {
		return &apperrors.NotFoundError{Resource: "journal", ID: journalID}
	}
	return err
}
