package glmapping

import (
	"fmt"
	"strings"
	"time"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DueDateLayout is the calendar date format accepted for invoice due dates.
const DueDateLayout = "2006-01-02"

// amountTolerance is the absolute tolerance for monetary comparisons.
// Amounts are decimals, but caller input may originate from float arithmetic
// upstream, so equality is always checked within a cent.
var amountTolerance = decimal.New(1, -2)

// WithinTolerance reports whether two amounts are equal within the engine's
// absolute tolerance. Callers reconciling against engine output should use
// this rather than exact equality.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(amountTolerance)
}

func withinTolerance(a, b decimal.Decimal) bool {
	return WithinTolerance(a, b)
}

// ValidateInvoiceData rejects malformed invoice input before any GL lines
// are produced. Validation is fail-fast: the first violated rule is
// returned, tagged with its own sentinel error.
func ValidateInvoiceData(customerRef string, totalAmount decimal.Decimal, dueDate string, items []domain.InvoiceLineItem) error {
	if strings.TrimSpace(customerRef) == "" {
		return ErrMissingCustomer
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrNonPositiveTotal, totalAmount)
	}
	if _, err := time.Parse(DueDateLayout, dueDate); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDueDate, dueDate)
	}
	if len(items) == 0 {
		return ErrEmptyLineItems
	}

	lineSum := decimal.Zero
	for i, item := range items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line %d has quantity %s", ErrInvalidQuantity, i+1, item.Quantity)
		}
		if item.UnitAmount.IsNegative() {
			return fmt.Errorf("%w: line %d has unit amount %s", ErrNegativeUnitAmount, i+1, item.UnitAmount)
		}
		expected := item.Quantity.Mul(item.UnitAmount)
		if !withinTolerance(item.LineAmount, expected) {
			return fmt.Errorf("%w: line %d has amount %s, expected %s", ErrLineAmountMismatch, i+1, item.LineAmount, expected)
		}
		lineSum = lineSum.Add(item.LineAmount)
	}

	if !withinTolerance(lineSum, totalAmount) {
		return fmt.Errorf("%w: lines sum to %s, total is %s", ErrTotalMismatch, lineSum, totalAmount)
	}
	return nil
}
