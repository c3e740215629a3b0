package handlers

import (
	"errors"
	"net/http"

	"github.com/finvo/invoice_ledger_app/internal/apperrors"
	"github.com/finvo/invoice_ledger_app/internal/core/glmapping"
)

// engineValidationErrors are the glmapping sentinels that indicate bad
// caller input. They all map to 400, never to 500: the request must be
// corrected and resubmitted.
var engineValidationErrors = []error{
	glmapping.ErrMissingCustomer,
	glmapping.ErrNonPositiveTotal,
	glmapping.ErrInvalidDueDate,
	glmapping.ErrEmptyLineItems,
	glmapping.ErrInvalidQuantity,
	glmapping.ErrNegativeUnitAmount,
	glmapping.ErrLineAmountMismatch,
	glmapping.ErrTotalMismatch,
	glmapping.ErrAmountMismatch,
	glmapping.ErrInvalidPaymentMethod,
}

// statusForError maps service/engine errors to HTTP status codes.
// glmapping.ErrLedgerImbalance is deliberately a 500: it signals a defect in
// line generation, not a caller mistake.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	}
	for _, sentinel := range engineValidationErrors {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
