package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/go-playground/validator/v10"
)

// errEmptyJournalRef marks a journal reference that carries nothing at all.
var errEmptyJournalRef = errors.New("journal reference is empty")

// JournalRegistry creates, lists and deletes journals. Code uniqueness is the
// store's job; the registry only recognises the store's duplicate signal.
type JournalRegistry struct {
	BaseService
	store    portsrepo.JournalRepositoryFacade
	cache    *LedgerCache
	validate *validator.Validate
}

// NewJournalRegistry creates a registry over store whose list lives in cache.
func NewJournalRegistry(store portsrepo.JournalRepositoryFacade, cache *LedgerCache) *JournalRegistry {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &JournalRegistry{store: store, cache: cache, validate: v}
}

// Create checks that name, code and type are present, then asks the store to
// create the journal. The list is only touched once the store confirmed.
func (r *JournalRegistry) Create(ctx context.Context, req domain.NewJournal) (*domain.Journal, error) {
	logger := r.GetLogger(ctx)
	req = req.Trimmed()

	if err := r.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		verrs := make(apperrors.ValidationErrors, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			verrs = append(verrs, apperrors.ValidationError{
				Code:    apperrors.CodeMissingField,
				Value:   fe.Field(),
				Message: fmt.Sprintf("%s is required", fe.Field()),
			})
		}
		return nil, verrs
	}

	journal, err := r.store.CreateJournal(ctx, req)
	if err != nil {
		var dup *apperrors.DuplicateCodeError
		if errors.As(err, &dup) {
			if dup.Code == "" {
				dup.Code = req.Code
			}
			logger.Warn("Journal code already in use", slog.String("code", req.Code))
			return nil, dup
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Journal code already in use", slog.String("code", req.Code))
			return nil, &apperrors.DuplicateCodeError{Code: req.Code, Cause: err}
		}
		r.LogError(ctx, err, "Failed to create journal", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	r.cache.PrependJournal(*journal)
	logger.Info("Journal created successfully", slog.String("journal_id", journal.JournalID), slog.String("code", journal.Code))
	return journal, nil
}

// List re-runs the journal listing. The filter is sent to the store and applied
// again locally, since not every store honours it.
func (r *JournalRegistry) List(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, error) {
	journals, err := r.store.ListJournals(ctx, filter)
	if err != nil {
		r.LogError(ctx, err, "Failed to list journals")
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	filtered := make([]domain.Journal, 0, len(journals))
	for _, j := range journals {
		if filter.Matches(j) {
			filtered = append(filtered, j)
		}
	}
	r.cache.SetJournals(filtered)
	return filtered, nil
}

// Delete removes a journal by id.
func (r *JournalRegistry) Delete(ctx context.Context, journalID string) error {
	journalID = strings.TrimSpace(journalID)
	if !domain.IsJournalID(journalID) {
		return &apperrors.MalformedReferenceError{Kind: "journal", Value: journalID}
	}
	if err := r.store.DeleteJournal(ctx, journalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			r.LogDebug(ctx, "Journal to delete not found", slog.String("journal_id", journalID))
			return err
		}
		r.LogError(ctx, err, "Failed to delete journal", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}
	r.cache.RemoveJournal(journalID)
	r.LogInfo(ctx, "Journal deleted successfully", slog.String("journal_id", journalID))
	return nil
}

// Journals returns the loaded list.
func (r *JournalRegistry) Journals() []domain.Journal {
	return r.cache.Journals()
}

// ResolveJournalRef turns a journal reference into a canonical journal id.
// Only a bare id or an embedded object's id field is accepted, and the id must
// have the store's identifier format. Codes and names are not resolved.
func ResolveJournalRef(ref domain.Reference) (string, error) {
	var candidate string
	switch ref.Kind {
	case domain.RefValue:
		candidate = ref.Value
	case domain.RefObject:
		candidate = ref.ID
	default:
		return "", errEmptyJournalRef
	}
	if !domain.IsJournalID(candidate) {
		return "", &apperrors.MalformedReferenceError{Kind: "journal", Value: ref.Raw()}
	}
	return candidate, nil
}
