package glmapping

import "fmt"

// InvoiceOperation names a business operation on an invoice for smart-code
// purposes.
type InvoiceOperation string

const (
	OperationCreation     InvoiceOperation = "CREATION"
	OperationPayment      InvoiceOperation = "PAYMENT"
	OperationCancellation InvoiceOperation = "CANCELLATION"
)

// BuildInvoiceSmartCode builds the descriptive tag identifying an invoice
// operation, e.g. "FIN.TRANSACTION.INVOICE.CREATION.v1". All segments are
// uppercase except the lowercase version suffix.
//
// The code has five segments; consumers that require the surrounding
// system's six-segment convention prefix their own module segment. That
// contract belongs to the caller and is not enforced here.
func BuildInvoiceSmartCode(operation InvoiceOperation) (string, error) {
	switch operation {
	case OperationCreation, OperationPayment, OperationCancellation:
		return fmt.Sprintf("FIN.TRANSACTION.INVOICE.%s.v1", operation), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOperation, operation)
	}
}
