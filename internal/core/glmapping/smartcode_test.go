package glmapping_test

import (
	"strings"
	"testing"

	"github.com/finvo/invoice_ledger_app/internal/core/glmapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvoiceSmartCode(t *testing.T) {
	tests := []struct {
		operation glmapping.InvoiceOperation
		want      string
	}{
		{glmapping.OperationCreation, "FIN.TRANSACTION.INVOICE.CREATION.v1"},
		{glmapping.OperationPayment, "FIN.TRANSACTION.INVOICE.PAYMENT.v1"},
		{glmapping.OperationCancellation, "FIN.TRANSACTION.INVOICE.CANCELLATION.v1"},
	}

	for _, tc := range tests {
		t.Run(string(tc.operation), func(t *testing.T) {
			code, err := glmapping.BuildInvoiceSmartCode(tc.operation)
			require.NoError(t, err)
			assert.Equal(t, tc.want, code)

			segments := strings.Split(code, ".")
			require.Len(t, segments, 5)
			for _, segment := range segments[:len(segments)-1] {
				assert.Equal(t, strings.ToUpper(segment), segment, "segment %q must be uppercase", segment)
			}
			assert.Regexp(t, `^v\d+$`, segments[len(segments)-1])
		})
	}
}

func TestBuildInvoiceSmartCodeUnknownOperation(t *testing.T) {
	_, err := glmapping.BuildInvoiceSmartCode("REFUND")
	assert.ErrorIs(t, err, glmapping.ErrInvalidOperation)
}

func TestAccountSmartCodeShape(t *testing.T) {
	// Account-level smart codes carry the full six-plus-segment form.
	for _, account := range glmapping.Accounts() {
		segments := strings.Split(account.SmartCode, ".")
		assert.GreaterOrEqual(t, len(segments), 6, "account %s smart code too short", account.Code)
		assert.Regexp(t, `^v\d+$`, segments[len(segments)-1])
		for _, segment := range segments[:len(segments)-1] {
			assert.Equal(t, strings.ToUpper(segment), segment)
		}
	}
}
