package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/models"
	"github.com/SscSPs/ledger_desk/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	foreignKeyViolation   = "23503"
	entriesJournalFKey    = "journal_entries_journal_id_fkey"
	linesAccountFKey      = "journal_lines_account_id_fkey"
	selectEntryColumns    = `e.entry_id, e.journal_id, j.code AS journal_code, j.name AS journal_name, e.description, e.total_debit, e.total_credit, e.created_at`
	selectLineColumns     = `l.line_id, l.entry_id, l.line_no, l.account_id, COALESCE(a.code, '') AS account_code, COALESCE(a.name, '') AS account_name, l.description, l.debit, l.credit`
	selectLinesForEntries = `
		SELECT ` + selectLineColumns + `
		FROM journal_lines l
		LEFT JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = ANY($1)
		ORDER BY l.entry_id, l.line_no;
	`
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entries.
func newPgxEntryRepository(pool *pgxpool.Pool) *PgxEntryRepository {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

// CreateEntry inserts the entry header and its lines in one transaction and
// returns the stored record with display fields filled in.
func (r *PgxEntryRepository) CreateEntry(ctx context.Context, entry domain.CanonicalEntry) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	entryID := newRecordID()
	now := time.Now().UTC()

	_, err = tx.Exec(ctx, `
		INSERT INTO journal_entries (entry_id, journal_id, description, total_debit, total_credit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, entryID, entry.JournalID, entry.Description, entry.TotalDebit, entry.TotalCredit, now)
	if err != nil {
		return nil, classifyEntryWriteErr(err, entry.JournalID)
	}

	rows := mapping.ToModelJournalLines(entryID, entry.Lines, newRecordID)
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, line_no, account_id, description, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range rows {
		batch.Queue(lineQuery, l.LineID, l.EntryID, l.LineNo, l.AccountID, l.Description, l.Debit, l.Credit)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, classifyEntryWriteErr(err, entry.JournalID)
	}

	created, err := r.loadEntries(ctx, tx, `WHERE e.entry_id = $1`, entryID)
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("entry %s vanished before commit", entryID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &created[0], nil
}

// DeleteEntry removes an entry; its lines go with it.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return &apperrors.NotFoundError{Resource: "entry", ID: entryID}
	}
	return nil
}

// ListEntriesByJournal returns the entries of journalID, newest first.
// A journal without entries, or one that does not exist, yields an empty list.
func (r *PgxEntryRepository) ListEntriesByJournal(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	return r.loadEntries(ctx, r.Pool, `WHERE e.journal_id = $1`, journalID)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxEntryRepository) loadEntries(ctx context.Context, q querier, where string, arg string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + selectEntryColumns + `
		FROM journal_entries e
		JOIN journals j ON j.journal_id = e.journal_id
		` + where + `
		ORDER BY e.created_at DESC, e.entry_id DESC;
	`
	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries: %w", err)
	}
	if len(headers) == 0 {
		return []domain.JournalEntry{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	lineRows, err := q.Query(ctx, selectLinesForEntries, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry lines: %w", err)
	}
	lines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan entry lines: %w", err)
	}

	byEntry := make(map[string][]models.JournalLine, len(headers))
	for _, l := range lines {
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, byEntry[h.EntryID])
	}
	return entries, nil
}

// classifyEntryWriteErr turns foreign key failures into not-found errors for
// the journal or account the entry pointed at.
func classifyEntryWriteErr(err error, journalID string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		switch pgErr.ConstraintName {
		case entriesJournalFKey:
			return &apperrors.NotFoundError{Resource: "journal", ID: journalID}
		case linesAccountFKey:
			return &apperrors.NotFoundError{Resource: "account"}
		}
	}
	return fmt.Errorf("failed to insert entry: %w", err)
}
