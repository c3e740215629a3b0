package glmapping_test

import (
	"testing"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/finvo/invoice_ledger_app/internal/core/glmapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItem(quantity, unitAmount, lineAmount float64) domain.InvoiceLineItem {
	return domain.InvoiceLineItem{
		Description: "Service",
		Quantity:    decimal.NewFromFloat(quantity),
		UnitAmount:  decimal.NewFromFloat(unitAmount),
		LineAmount:  decimal.NewFromFloat(lineAmount),
	}
}

func debitCreditTotals(lines []domain.GLTransactionLine) (decimal.Decimal, decimal.Decimal) {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.LineData.Side == domain.Debit {
			debits = debits.Add(line.LineData.Amount)
		} else {
			credits = credits.Add(line.LineData.Amount)
		}
	}
	return debits, credits
}

func TestGenerateInvoiceCreationLines(t *testing.T) {
	items := []domain.InvoiceLineItem{
		lineItem(1, 450, 450),
		lineItem(1, 300, 300),
	}
	total := decimal.NewFromInt(750)

	lines, err := glmapping.GenerateInvoiceCreationLines(items, total, "C1")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	dr := lines[0]
	assert.Equal(t, 1, dr.LineNumber)
	assert.Equal(t, "GL", dr.LineType)
	assert.Equal(t, glmapping.AccountsReceivableCode, dr.LineData.GLAccountCode)
	assert.Equal(t, domain.Debit, dr.LineData.Side)
	assert.Equal(t, domain.Asset, dr.LineData.AccountType)
	assert.True(t, dr.LineData.Amount.Equal(total), "debit amount should be the invoice total")
	assert.Equal(t, "C1", dr.EntityRef, "receivable line must carry the customer reference")
	assert.True(t, dr.Quantity.Equal(decimal.NewFromInt(1)))

	cr := lines[1]
	assert.Equal(t, 2, cr.LineNumber)
	assert.Equal(t, glmapping.ServiceRevenueCode, cr.LineData.GLAccountCode)
	assert.Equal(t, domain.Credit, cr.LineData.Side)
	assert.Equal(t, domain.Revenue, cr.LineData.AccountType)
	assert.True(t, cr.LineData.Amount.Equal(total))

	debits, credits := debitCreditTotals(lines)
	assert.True(t, debits.Equal(credits), "generated lines must balance")
}

func TestGenerateInvoiceCreationLinesAmountMismatch(t *testing.T) {
	items := []domain.InvoiceLineItem{lineItem(1, 100, 100)}

	_, err := glmapping.GenerateInvoiceCreationLines(items, decimal.NewFromInt(200), "C1")
	require.Error(t, err)
	assert.ErrorIs(t, err, glmapping.ErrAmountMismatch)
	assert.Contains(t, err.Error(), "100", "error should carry the actual line sum")
	assert.Contains(t, err.Error(), "200", "error should carry the expected total")
}

func TestGenerateInvoiceCreationLinesWithinTolerance(t *testing.T) {
	// A one-cent discrepancy is accepted; anything beyond is not.
	items := []domain.InvoiceLineItem{lineItem(1, 100, 100)}

	_, err := glmapping.GenerateInvoiceCreationLines(items, decimal.NewFromFloat(100.01), "C1")
	assert.NoError(t, err)

	_, err = glmapping.GenerateInvoiceCreationLines(items, decimal.NewFromFloat(100.02), "C1")
	assert.ErrorIs(t, err, glmapping.ErrAmountMismatch)
}

func TestGenerateInvoicePaymentLines(t *testing.T) {
	amount := decimal.NewFromInt(750)

	lines, err := glmapping.GenerateInvoicePaymentLines(amount, glmapping.PaymentBankTransfer, "C1", "INV1")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	dr := lines[0]
	assert.Equal(t, glmapping.BankAccountCode, dr.LineData.GLAccountCode)
	assert.Equal(t, domain.Debit, dr.LineData.Side)
	assert.True(t, dr.LineData.Amount.Equal(amount))
	assert.Equal(t, "BANK_TRANSFER", dr.LineData.PaymentMethod)

	cr := lines[1]
	assert.Equal(t, glmapping.AccountsReceivableCode, cr.LineData.GLAccountCode)
	assert.Equal(t, domain.Credit, cr.LineData.Side)
	assert.True(t, cr.LineData.Amount.Equal(amount))
	assert.Equal(t, "C1", cr.EntityRef)
	assert.Equal(t, "INV1", cr.LineData.InvoiceTransactionRef, "credit line must link back to the invoice")

	debits, credits := debitCreditTotals(lines)
	assert.True(t, debits.Equal(credits))
}

func TestGenerateInvoicePaymentLinesRouting(t *testing.T) {
	tests := []struct {
		method      glmapping.PaymentMethod
		accountCode string
	}{
		{glmapping.PaymentCash, glmapping.CashOnHandCode},
		{glmapping.PaymentBankTransfer, glmapping.BankAccountCode},
		{glmapping.PaymentCard, glmapping.CardClearingCode},
		{glmapping.PaymentCheque, glmapping.BankAccountCode},
	}
	for _, tc := range tests {
		t.Run(string(tc.method), func(t *testing.T) {
			lines, err := glmapping.GenerateInvoicePaymentLines(decimal.NewFromInt(100), tc.method, "C1", "INV1")
			require.NoError(t, err)
			assert.Equal(t, tc.accountCode, lines[0].LineData.GLAccountCode)
		})
	}
}

func TestGenerateInvoicePaymentLinesUnknownMethod(t *testing.T) {
	_, err := glmapping.GenerateInvoicePaymentLines(decimal.NewFromInt(100), "UNKNOWN", "C1", "INV1")
	require.Error(t, err)
	assert.ErrorIs(t, err, glmapping.ErrInvalidPaymentMethod)
	assert.Contains(t, err.Error(), "UNKNOWN")
}

func TestAccountForPaymentMethodIsDeterministic(t *testing.T) {
	first, err := glmapping.AccountForPaymentMethod(glmapping.PaymentCard)
	require.NoError(t, err)
	second, err := glmapping.AccountForPaymentMethod(glmapping.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAccountForPaymentMethodIsCaseSensitive(t *testing.T) {
	_, err := glmapping.AccountForPaymentMethod("cash")
	assert.ErrorIs(t, err, glmapping.ErrInvalidPaymentMethod)
}

func TestGenerateInvoiceCancellationLines(t *testing.T) {
	total := decimal.NewFromInt(500)

	lines, err := glmapping.GenerateInvoiceCancellationLines(total, "C1", "INV1")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, glmapping.ServiceRevenueCode, lines[0].LineData.GLAccountCode)
	assert.Equal(t, domain.Debit, lines[0].LineData.Side)
	assert.Equal(t, glmapping.AccountsReceivableCode, lines[1].LineData.GLAccountCode)
	assert.Equal(t, domain.Credit, lines[1].LineData.Side)
	assert.Equal(t, "C1", lines[1].EntityRef)
	assert.Equal(t, "INV1", lines[1].LineData.InvoiceTransactionRef)

	debits, credits := debitCreditTotals(lines)
	assert.True(t, debits.Equal(credits))
}

func TestRegistryAccounts(t *testing.T) {
	accounts := glmapping.Accounts()
	require.Len(t, accounts, 5)

	receivable, ok := glmapping.AccountByCode(glmapping.AccountsReceivableCode)
	require.True(t, ok)
	assert.Equal(t, domain.Asset, receivable.Type)
	assert.Equal(t, domain.Debit, receivable.NormalBalance)

	_, ok = glmapping.AccountByCode("999999")
	assert.False(t, ok)
}
