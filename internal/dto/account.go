package dto

import (
	"github.com/SscSPs/ledger_desk/internal/core/domain"
)

// ResolveAccountParams defines the query parameters of the resolve endpoint.
type ResolveAccountParams struct {
	Ref string `form:"ref" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"id"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"type"`
	Label       string             `json:"label"`
}

// ResolveAccountResponse carries the canonical id a reference resolved to.
type ResolveAccountResponse struct {
	Ref       string `json:"ref"`
	AccountID string `json:"accountId"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Code:        acc.Code,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Label:       acc.Label(),
	}
}

// ToAccountResponses converts a slice of domain.Account.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		res[i] = ToAccountResponse(a)
	}
	return res
}
