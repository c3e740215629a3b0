package glmapping

import "errors"

// Validation errors, one per rule so callers can branch with errors.Is
// instead of matching message strings. All are caller errors: the input must
// be corrected before resubmitting, nothing is retried automatically.
var (
	ErrMissingCustomer    = errors.New("customer reference is required")
	ErrNonPositiveTotal   = errors.New("total amount must be positive")
	ErrInvalidDueDate     = errors.New("due date is not a valid calendar date")
	ErrEmptyLineItems     = errors.New("at least one line item is required")
	ErrInvalidQuantity    = errors.New("line item quantity must be positive")
	ErrNegativeUnitAmount = errors.New("line item unit amount cannot be negative")
	ErrLineAmountMismatch = errors.New("line amount does not equal quantity times unit amount")
	ErrTotalMismatch      = errors.New("line amounts do not sum to the total amount")
)

// Generation errors. ErrLedgerImbalance means the generator produced an
// unbalanced set; nothing is handed back to the caller in that case, so an
// unbalanced posting can never reach the ledger.
var (
	ErrAmountMismatch       = errors.New("line amounts do not reconcile with the invoice total")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrLedgerImbalance      = errors.New("generated debit and credit totals do not balance")
	ErrInvalidOperation     = errors.New("unknown invoice operation")
)
