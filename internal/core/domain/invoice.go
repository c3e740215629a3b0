package domain

import "github.com/shopspring/decimal"

// InvoiceLineItem is a caller-supplied invoice line. It is validated and
// mapped to GL lines but never persisted as-is by this core.
type InvoiceLineItem struct {
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`   // Must be > 0
	UnitAmount     decimal.Decimal `json:"unitAmount"` // Must be >= 0
	LineAmount     decimal.Decimal `json:"lineAmount"` // Must equal Quantity * UnitAmount within tolerance
	ServiceRef     string          `json:"serviceRef,omitempty"`
	TaxAmount      decimal.Decimal `json:"taxAmount,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount,omitempty"`
}
