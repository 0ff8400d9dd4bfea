package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrTransient indicates a network or server failure that may succeed on a later attempt.
var ErrTransient = errors.New("transient remote failure")

// ErrMalformedReference indicates an account or journal reference that no supported shape could resolve.
var ErrMalformedReference = errors.New("malformed reference")

// ErrRemote indicates an unclassified failure reported by the remote store.
var ErrRemote = errors.New("remote store error")

// ErrConflict indicates that the remote store refused a change because it conflicts with stored data.
var ErrConflict = errors.New("conflicting change")

// ErrSuperseded indicates that a newer request from the same session replaced this one.
var ErrSuperseded = errors.New("superseded by a newer request")

// ValidationCode identifies the kind of problem found in a candidate journal entry.
type ValidationCode string

const (
	CodeMissingJournal     ValidationCode = "MISSING_JOURNAL"
	CodeMalformedJournal   ValidationCode = "MALFORMED_JOURNAL"
	CodeMissingAccount     ValidationCode = "MISSING_ACCOUNT"
	CodeUnknownAccount     ValidationCode = "UNKNOWN_ACCOUNT"
	CodeMissingDescription ValidationCode = "MISSING_DESCRIPTION"
	CodeInvalidAmount      ValidationCode = "INVALID_AMOUNT"
	CodeNegativeAmount     ValidationCode = "NEGATIVE_AMOUNT"
	CodeUnbalanced         ValidationCode = "UNBALANCED"
	CodeMissingField       ValidationCode = "MISSING_FIELD"
)

// ValidationError describes one structural problem. Line is 1-based; 0 means the problem
// concerns the entry (or request) as a whole.
type ValidationError struct {
	Code    ValidationCode `json:"code"`
	Line    int            `json:"line,omitempty"`
	Value   string         `json:"value,omitempty"`
	Message string         `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Is reports ErrValidation so callers can branch on the class without unpacking.
func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationErrors is the complete list of problems found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(msgs, "; "))
}

func (errs ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// HasCode reports whether any error in the list carries code.
func (errs ValidationErrors) HasCode(code ValidationCode) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

// DuplicateCodeError is returned when a journal code is already used.
type DuplicateCodeError struct {
	Code  string
	Cause error
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("journal code %q is already in use", e.Code)
}

func (e *DuplicateCodeError) Is(target error) bool { return target == ErrDuplicate }

func (e *DuplicateCodeError) Unwrap() error { return e.Cause }

// NotFoundError is returned when a delete or lookup target does not exist remotely.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// TransientFetchError wraps a network or 5xx failure of a single remote call.
type TransientFetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransientFetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: remote returned status %d", e.Op, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": transient failure"
}

func (e *TransientFetchError) Is(target error) bool { return target == ErrTransient }

func (e *TransientFetchError) Unwrap() error { return e.Err }

// MalformedReferenceError is returned when a reference cannot be turned into a canonical id.
type MalformedReferenceError struct {
	Kind  string // "account" or "journal"
	Value string
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("cannot resolve %s reference %q", e.Kind, e.Value)
}

func (e *MalformedReferenceError) Is(target error) bool { return target == ErrMalformedReference }

// RemoteError is an unclassified remote failure. Message is kept for logs only.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: remote returned status %d: %s", e.Op, e.Status, e.Message)
}

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

// ConflictError is a 409 or duplicate-key answer from the remote store. Only
// journal creation knows that it means a taken code.
type ConflictError struct {
	Op      string
	Status  int
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: remote reported a conflict (status %d): %s", e.Op, e.Status, e.Message)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// UserMessage maps an error to the message shown to the dashboard user.
// Transport details never leak through it.
func UserMessage(err error) string {
	var verrs ValidationErrors
	var dup *DuplicateCodeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verrs) && len(verrs) == 1 && verrs[0].Code == CodeUnbalanced:
		return "Total debit must equal total credit and be greater than zero."
	case errors.As(err, &dup):
		return "This journal code is already in use. Choose a different code."
	case errors.Is(err, ErrValidation):
		return "The entry has problems. Fix the highlighted lines and submit again."
	case errors.Is(err, ErrMalformedReference):
		return "The selected journal or account is not valid."
	case errors.Is(err, ErrNotFound):
		return "The item no longer exists. Refresh and try again."
	case errors.Is(err, ErrConflict):
		return "The change conflicts with existing data, for example a journal that still has entries. Refresh and try again."
	case errors.Is(err, ErrSuperseded):
		return "A newer journal selection replaced this one."
	case errors.Is(err, ErrTransient):
		return "The accounting service is unavailable. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
