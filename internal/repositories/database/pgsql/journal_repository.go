package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/models"
	"github.com/SscSPs/ledger_desk/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalsCodeKey = "journals_code_key"

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// ListJournals returns the journals matching filter, newest first.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, error) {
	query := `
		SELECT journal_id, name, code, journal_type, created_at
		FROM journals
		WHERE ($1 = '' OR journal_type = $1)
		  AND ($2 = '' OR code = $2)
		ORDER BY created_at DESC, journal_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, string(filter.JournalType), filter.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journals: %w", err)
	}

	journals := make([]domain.Journal, len(found))
	for i, m := range found {
		journals[i] = mapping.ToDomainJournal(m)
	}
	return journals, nil
}

// CreateJournal inserts a journal. A taken code is reported as *apperrors.DuplicateCodeError.
func (r *PgxJournalRepository) CreateJournal(ctx context.Context, journal domain.NewJournal) (*domain.Journal, error) {
	created := domain.Journal{
		JournalID:   newRecordID(),
		Name:        journal.Name,
		Code:        journal.Code,
		JournalType: journal.JournalType,
		CreatedAt:   time.Now().UTC(),
	}
	m := mapping.ToModelJournal(created)

	query := `
		INSERT INTO journals (journal_id, name, code, journal_type, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, m.JournalID, m.Name, m.Code, m.JournalType, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, journalsCodeKey) {
			return nil, &apperrors.DuplicateCodeError{Code: journal.Code, Cause: err}
		}
		return nil, fmt.Errorf("failed to insert journal %s: %w", m.JournalID, err)
	}
	return &created, nil
}

// DeleteJournal removes a journal and, through the foreign keys, its entries and lines.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return &apperrors.NotFoundError{Resource: "journal", ID: journalID}
	}
	return nil
}
