package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/SscSPs/ledger_desk/internal/core/normalize"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/utils/envelope"
	"github.com/tidwall/gjson"
)

// EntryFetchResolver loads the entries of a journal from a store that has no
// single reliable listing route. Strategies are tried one after another and the
// first one producing entries wins; the rest are never called.
type EntryFetchResolver struct {
	BaseService
	fetcher    portsrepo.RawFetcher
	strategies []FetchStrategy
	strict     bool
}

// ResolverOption configures an EntryFetchResolver.
type ResolverOption func(*EntryFetchResolver)

// WithStrategies replaces the default fallback chain.
func WithStrategies(strategies ...FetchStrategy) ResolverOption {
	return func(r *EntryFetchResolver) {
		r.strategies = strategies
	}
}

// WithStrictMode makes the resolver report a TransientFetchError when every
// strategy failed at the transport level and none gave a clean answer.
func WithStrictMode(strict bool) ResolverOption {
	return func(r *EntryFetchResolver) {
		r.strict = strict
	}
}

// NewEntryFetchResolver creates a resolver over fetcher.
func NewEntryFetchResolver(fetcher portsrepo.RawFetcher, opts ...ResolverOption) *EntryFetchResolver {
	r := &EntryFetchResolver{
		fetcher:    fetcher,
		strategies: DefaultFetchStrategies(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ portsrepo.EntryLister = (*EntryFetchResolver)(nil)

// ListEntriesByJournal implements portsrepo.EntryLister.
func (r *EntryFetchResolver) ListEntriesByJournal(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	return r.FetchEntriesForJournal(ctx, journalID)
}

// FetchEntriesForJournal runs the fallback chain for journalID.
//
// A not-found answer, an empty or unusable body and a transport failure all
// move on to the next strategy. When the chain is exhausted the result is an
// empty list, not an error (unless strict mode applies). Cancellation of ctx
// stops the chain and is returned as ctx.Err().
func (r *EntryFetchResolver) FetchEntriesForJournal(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	journalID = strings.TrimSpace(journalID)
	if !domain.IsJournalID(journalID) {
		return nil, &apperrors.MalformedReferenceError{Kind: "journal", Value: journalID}
	}

	var (
		cleanMisses int
		lastErr     error
	)
	for _, strategy := range r.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attrs := []any{slog.String("strategy", strategy.Name), slog.String("journal_id", journalID)}

		path, query := strategy.Request(journalID)
		body, err := r.fetcher.FetchRaw(ctx, path, query)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if errors.Is(err, apperrors.ErrNotFound) {
				cleanMisses++
				r.LogDebug(ctx, "Entry fetch strategy found nothing", attrs...)
				continue
			}
			lastErr = err
			r.LogWarn(ctx, err, "Entry fetch strategy failed", attrs...)
			continue
		}

		if envelope.IsNotFound(body) {
			cleanMisses++
			r.LogDebug(ctx, "Entry fetch strategy reported no such resource", attrs...)
			continue
		}

		entries := r.normalizeFor(journalID, strategy.Unwrap(body))
		if len(entries) == 0 {
			cleanMisses++
			r.LogDebug(ctx, "Entry fetch strategy returned no entries", attrs...)
			continue
		}

		r.LogDebug(ctx, "Entry fetch strategy succeeded", append(attrs, slog.Int("entry_count", len(entries)))...)
		return entries, nil
	}

	if r.strict && cleanMisses == 0 && lastErr != nil {
		return nil, &apperrors.TransientFetchError{Op: "fetch entries for journal " + journalID, Err: lastErr}
	}
	return []domain.JournalEntry{}, nil
}

// normalizeFor keeps the records that are entries of journalID. Records without
// an id are dropped, records without a journal reference are attributed to
// journalID, and records of another journal (a store ignoring the filter) are
// dropped.
func (r *EntryFetchResolver) normalizeFor(journalID string, raw []gjson.Result) []domain.JournalEntry {
	entries := make([]domain.JournalEntry, 0, len(raw))
	for _, rec := range raw {
		e := normalize.Entry(rec)
		if e.EntryID == "" {
			continue
		}
		switch e.JournalID {
		case "":
			e.JournalID = journalID
		case journalID:
		default:
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
