// Package glmapping maps invoice operations onto balanced general-ledger
// postings. Every function is a pure, deterministic transformation of its
// inputs: there is no I/O, no retained state, and the account registry is
// read-only static data, so concurrent use needs no synchronization.
// Persisting the generated lines is the caller's job.
package glmapping

import "github.com/finvo/invoice_ledger_app/internal/core/domain"

// Account codes used by the invoice flows.
const (
	AccountsReceivableCode = "120000"
	ServiceRevenueCode     = "400000"
	CashOnHandCode         = "110000"
	BankAccountCode        = "110100"
	CardClearingCode       = "110200"
)

// accountRegistry is the canonical chart of accounts for invoice postings.
// Initialized once at process start and never mutated.
var accountRegistry = map[string]domain.GLAccount{
	AccountsReceivableCode: {
		Code:          AccountsReceivableCode,
		Name:          "Accounts Receivable",
		Type:          domain.Asset,
		NormalBalance: domain.Debit,
		SmartCode:     "FIN.AR.GL.ACCOUNT.ASSET.RECEIVABLE.v1",
		Description:   "Amounts owed by customers for invoiced services",
	},
	ServiceRevenueCode: {
		Code:          ServiceRevenueCode,
		Name:          "Service Revenue",
		Type:          domain.Revenue,
		NormalBalance: domain.Credit,
		SmartCode:     "FIN.AR.GL.ACCOUNT.REVENUE.SERVICE.v1",
		Description:   "Revenue earned from services rendered",
	},
	CashOnHandCode: {
		Code:          CashOnHandCode,
		Name:          "Cash on Hand",
		Type:          domain.Asset,
		NormalBalance: domain.Debit,
		SmartCode:     "FIN.AR.GL.ACCOUNT.ASSET.CASH.v1",
		Description:   "Physical cash received at point of sale",
	},
	BankAccountCode: {
		Code:          BankAccountCode,
		Name:          "Bank Account",
		Type:          domain.Asset,
		NormalBalance: domain.Debit,
		SmartCode:     "FIN.AR.GL.ACCOUNT.ASSET.BANK.v1",
		Description:   "Funds held at the bank, including cheque deposits",
	},
	CardClearingCode: {
		Code:          CardClearingCode,
		Name:          "Card Payment Clearing",
		Type:          domain.Asset,
		NormalBalance: domain.Debit,
		SmartCode:     "FIN.AR.GL.ACCOUNT.ASSET.CARD_CLEARING.v1",
		Description:   "Card receipts awaiting settlement from the processor",
	},
}

// AccountByCode returns the registry entry for the given account code.
func AccountByCode(code string) (domain.GLAccount, bool) {
	account, ok := accountRegistry[code]
	return account, ok
}

// Accounts returns every registry entry, ordered by account code.
func Accounts() []domain.GLAccount {
	codes := []string{
		CashOnHandCode,
		BankAccountCode,
		CardClearingCode,
		AccountsReceivableCode,
		ServiceRevenueCode,
	}
	accounts := make([]domain.GLAccount, 0, len(codes))
	for _, code := range codes {
		accounts = append(accounts, accountRegistry[code])
	}
	return accounts
}
