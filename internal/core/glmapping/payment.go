package glmapping

import (
	"fmt"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
)

// PaymentMethod is a case-sensitive payment method token.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCard         PaymentMethod = "CARD"
	PaymentCheque       PaymentMethod = "CHEQUE"
)

// paymentMethodAccounts routes a payment method to the GL account debited
// when the payment is received. Cheques route to the bank account.
var paymentMethodAccounts = map[PaymentMethod]string{
	PaymentCash:         CashOnHandCode,
	PaymentBankTransfer: BankAccountCode,
	PaymentCard:         CardClearingCode,
	PaymentCheque:       BankAccountCode,
}

// AccountForPaymentMethod resolves a payment method token to its GL account.
// Unknown tokens fail; there is deliberately no fallback account.
func AccountForPaymentMethod(method PaymentMethod) (domain.GLAccount, error) {
	code, ok := paymentMethodAccounts[method]
	if !ok {
		return domain.GLAccount{}, fmt.Errorf("%w: %q (expected one of CASH, BANK_TRANSFER, CARD, CHEQUE)", ErrInvalidPaymentMethod, method)
	}
	return accountRegistry[code], nil
}
