package dto

import "github.com/SscSPs/ledger_desk/internal/apperrors"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string                     `json:"error"`
	Errors []apperrors.ValidationError `json:"errors,omitempty"`
}
