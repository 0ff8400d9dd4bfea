package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_desk/internal/core/ports/services"
	"github.com/SscSPs/ledger_desk/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// EntryValidator checks a candidate journal entry before anything is sent to the
// store. It is pure: no network calls, no cache writes.
type EntryValidator struct {
	accounts portssvc.AccountResolver
}

// NewEntryValidator creates a validator resolving accounts through accounts.
func NewEntryValidator(accounts portssvc.AccountResolver) *EntryValidator {
	return &EntryValidator{accounts: accounts}
}

// ValidateAndPrepare returns the canonical form of input, or apperrors.ValidationErrors.
//
// Every structural problem of every line is collected before returning; the
// balance check only runs once the structure is clean and then yields a single
// UNBALANCED error. An entry with no amounts at all is not balanced.
func (v *EntryValidator) ValidateAndPrepare(input domain.EntryInput) (*domain.CanonicalEntry, error) {
	var errs apperrors.ValidationErrors

	journalID, err := ResolveJournalRef(input.Journal)
	if err != nil {
		errs = append(errs, journalError(input.Journal, err))
	}

	lines := make([]domain.CanonicalLine, len(input.Lines))
	for i, line := range input.Lines {
		n := i + 1

		switch {
		case line.Account.IsEmpty():
			errs = append(errs, apperrors.ValidationError{
				Code:    apperrors.CodeMissingAccount,
				Line:    n,
				Message: "account is required",
			})
		default:
			id, ok := v.accounts.Resolve(line.Account)
			if !ok {
				errs = append(errs, apperrors.ValidationError{
					Code:    apperrors.CodeUnknownAccount,
					Line:    n,
					Value:   line.Account.Raw(),
					Message: fmt.Sprintf("account %q not found", line.Account.Raw()),
				})
			}
			lines[i].AccountID = id
		}

		description := strings.TrimSpace(line.Description)
		if description == "" {
			errs = append(errs, apperrors.ValidationError{
				Code:    apperrors.CodeMissingDescription,
				Line:    n,
				Message: "description is required",
			})
		}
		lines[i].Description = description

		lines[i].Debit = checkAmount(&errs, n, "debit", line.Debit)
		lines[i].Credit = checkAmount(&errs, n, "credit", line.Credit)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	totalDebit, totalCredit := accounting.SumLines(lines)
	if err := accounting.ValidateBalance(totalDebit, totalCredit); err != nil {
		return nil, apperrors.ValidationErrors{{
			Code:    apperrors.CodeUnbalanced,
			Value:   fmt.Sprintf("debit=%s credit=%s", totalDebit.String(), totalCredit.String()),
			Message: err.Error(),
		}}
	}

	return &domain.CanonicalEntry{
		JournalID:   journalID,
		Description: strings.TrimSpace(input.Description),
		Lines:       lines,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

func journalError(ref domain.Reference, err error) apperrors.ValidationError {
	if errors.Is(err, errEmptyJournalRef) {
		return apperrors.ValidationError{
			Code:    apperrors.CodeMissingJournal,
			Message: "journal is required",
		}
	}
	return apperrors.ValidationError{
		Code:    apperrors.CodeMalformedJournal,
		Value:   ref.Raw(),
		Message: fmt.Sprintf("journal id %q is not a valid identifier", ref.Raw()),
	}
}

// amountScale is the number of decimal places an amount may carry. It matches
// the NUMERIC(20, 4) columns of the ledger tables.
const amountScale = 4

// checkAmount records unparseable, negative and over-precise amounts and returns
// the usable value.
func checkAmount(errs *apperrors.ValidationErrors, line int, column string, a domain.Amount) decimal.Decimal {
	switch {
	case a.Invalid:
		*errs = append(*errs, apperrors.ValidationError{
			Code:    apperrors.CodeInvalidAmount,
			Line:    line,
			Value:   a.Raw,
			Message: fmt.Sprintf("%s %q is not a number", column, a.Raw),
		})
		return decimal.Zero
	case a.Value.IsNegative():
		*errs = append(*errs, apperrors.ValidationError{
			Code:    apperrors.CodeNegativeAmount,
			Line:    line,
			Value:   a.Value.String(),
			Message: fmt.Sprintf("%s must not be negative", column),
		})
		return decimal.Zero
	case !a.Value.Equal(a.Value.Truncate(amountScale)):
		*errs = append(*errs, apperrors.ValidationError{
			Code:    apperrors.CodeInvalidAmount,
			Line:    line,
			Value:   a.Value.String(),
			Message: fmt.Sprintf("%s must not have more than %d decimal places", column, amountScale),
		})
		return decimal.Zero
	}
	return a.Value
}
