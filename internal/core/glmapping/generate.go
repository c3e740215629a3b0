package glmapping

import (
	"fmt"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// glLine builds a single GL transaction line for the given account.
func glLine(lineNumber int, account domain.GLAccount, side domain.EntrySide, amount decimal.Decimal, description string) domain.GLTransactionLine {
	return domain.GLTransactionLine{
		LineNumber:  lineNumber,
		LineType:    "GL",
		Description: description,
		Quantity:    decimal.NewFromInt(1),
		UnitAmount:  amount,
		LineAmount:  amount,
		LineData: domain.GLLineData{
			GLAccountCode: account.Code,
			GLAccountName: account.Name,
			Side:          side,
			AccountType:   account.Type,
			Amount:        amount,
			SmartCode:     account.SmartCode,
		},
	}
}

// ensureBalanced verifies that total debits equal total credits within
// tolerance. It is a safety net rather than an expected failure path: the
// generators emit symmetric pairs today, but any future extension (tax or
// discount lines) that breaks balance must be caught here, before the set is
// handed to the caller, never after posting.
func ensureBalanced(lines []domain.GLTransactionLine) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		switch line.LineData.Side {
		case domain.Debit:
			debits = debits.Add(line.LineData.Amount)
		case domain.Credit:
			credits = credits.Add(line.LineData.Amount)
		}
	}
	if !withinTolerance(debits, credits) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrLedgerImbalance, debits, credits)
	}
	return nil
}

// GenerateInvoiceCreationLines produces the two balanced GL lines that
// record an invoice: debit Accounts Receivable, credit Service Revenue.
// The receivable line carries the customer reference as its entity ref so
// the outstanding balance can be traced per customer.
//
// The line-sum check duplicates part of ValidateInvoiceData on purpose: the
// generator must not rely on the caller having validated first.
func GenerateInvoiceCreationLines(items []domain.InvoiceLineItem, totalAmount decimal.Decimal, customerRef string) ([]domain.GLTransactionLine, error) {
	lineSum := decimal.Zero
	for _, item := range items {
		lineSum = lineSum.Add(item.LineAmount)
	}
	if !withinTolerance(lineSum, totalAmount) {
		return nil, fmt.Errorf("%w: lines sum to %s, total is %s", ErrAmountMismatch, lineSum, totalAmount)
	}

	receivable := accountRegistry[AccountsReceivableCode]
	revenue := accountRegistry[ServiceRevenueCode]

	drLine := glLine(1, receivable, domain.Debit, totalAmount, fmt.Sprintf("Invoice receivable for %s", customerRef))
	drLine.EntityRef = customerRef

	crLine := glLine(2, revenue, domain.Credit, totalAmount, "Service revenue")

	lines := []domain.GLTransactionLine{drLine, crLine}
	if err := ensureBalanced(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// GenerateInvoicePaymentLines produces the two balanced GL lines that record
// a full-amount, single-method payment against an invoice: debit the
// cash/bank/card account the payment method routes to, credit Accounts
// Receivable. The credit line links back to the originating invoice through
// its line data so the settlement is auditable.
//
// Partial or split payments are out of scope; callers settle those as
// multiple payments and reconcile externally.
func GenerateInvoicePaymentLines(paymentAmount decimal.Decimal, method PaymentMethod, customerRef, invoiceTransactionRef string) ([]domain.GLTransactionLine, error) {
	paymentAccount, err := AccountForPaymentMethod(method)
	if err != nil {
		return nil, err
	}

	drLine := glLine(1, paymentAccount, domain.Debit, paymentAmount, fmt.Sprintf("Payment received via %s", method))
	drLine.LineData.PaymentMethod = string(method)

	receivable := accountRegistry[AccountsReceivableCode]
	crLine := glLine(2, receivable, domain.Credit, paymentAmount, fmt.Sprintf("Receivable settled for %s", customerRef))
	crLine.EntityRef = customerRef
	crLine.LineData.InvoiceTransactionRef = invoiceTransactionRef

	lines := []domain.GLTransactionLine{drLine, crLine}
	if err := ensureBalanced(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// GenerateInvoiceCancellationLines produces the exact reversal of the
// creation posting: debit Service Revenue, credit Accounts Receivable for
// the full invoice amount.
func GenerateInvoiceCancellationLines(totalAmount decimal.Decimal, customerRef, invoiceTransactionRef string) ([]domain.GLTransactionLine, error) {
	revenue := accountRegistry[ServiceRevenueCode]
	receivable := accountRegistry[AccountsReceivableCode]

	drLine := glLine(1, revenue, domain.Debit, totalAmount, "Service revenue reversed on cancellation")
	drLine.LineData.InvoiceTransactionRef = invoiceTransactionRef

	crLine := glLine(2, receivable, domain.Credit, totalAmount, fmt.Sprintf("Receivable reversed for %s", customerRef))
	crLine.EntityRef = customerRef
	crLine.LineData.InvoiceTransactionRef = invoiceTransactionRef

	lines := []domain.GLTransactionLine{drLine, crLine}
	if err := ensureBalanced(lines); err != nil {
		return nil, err
	}
	return lines, nil
}
