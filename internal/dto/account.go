package dto

import "github.com/finvo/invoice_ledger_app/internal/core/domain"

// AccountResponse defines the data returned for a chart-of-accounts entry.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	NormalBalance domain.EntrySide   `json:"normalBalance"`
	SmartCode     string             `json:"smartCode"`
	Description   string             `json:"description"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		NormalBalance: acc.NormalBalance,
		SmartCode:     acc.SmartCode,
		Description:   acc.Description,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
