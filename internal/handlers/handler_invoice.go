package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/finvo/invoice_ledger_app/internal/core/glmapping"
	portssvc "github.com/finvo/invoice_ledger_app/internal/core/ports/services"
	"github.com/finvo/invoice_ledger_app/internal/dto"
	"github.com/finvo/invoice_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles HTTP requests for the invoice lifecycle.
type InvoiceHandler struct {
	invoiceService portssvc.InvoiceSvc
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService portssvc.InvoiceSvc) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// respond applies the shared error mapping and logs server-side failures.
func (h *InvoiceHandler) respondError(c *gin.Context, err error, internalMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": internalMsg})
		return
	}
	logger.Warn(internalMsg, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// CreateInvoice godoc
// @Summary Post an invoice
// @Description Validates invoice data, generates balanced GL lines, and persists them atomically
// @Tags invoices
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param invoice body dto.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /organizations/{orgID}/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	txn, err := h.invoiceService.CreateInvoice(c.Request.Context(), orgID, req, actorID)
	if err != nil {
		h.respondError(c, err, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// RecordPayment godoc
// @Summary Record an invoice payment
// @Description Settles an open invoice in full with a single payment method
// @Tags invoices
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param transactionID path string true "Invoice transaction ID"
// @Param payment body dto.RecordPaymentRequest true "Payment data"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice is not open"
// @Router /organizations/{orgID}/invoices/{transactionID}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	invoiceTxnID := c.Param("transactionID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	txn, err := h.invoiceService.RecordPayment(c.Request.Context(), orgID, invoiceTxnID, req, actorID)
	if err != nil {
		h.respondError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// CancelInvoice godoc
// @Summary Cancel an invoice
// @Description Posts the reversal of an open invoice and marks it cancelled
// @Tags invoices
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param transactionID path string true "Invoice transaction ID"
// @Success 201 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice is not open"
// @Router /organizations/{orgID}/invoices/{transactionID}/cancel [post]
func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	orgID := c.Param("orgID")
	invoiceTxnID := c.Param("transactionID")

	actorID, _ := middleware.GetActorIDFromContext(c)

	txn, err := h.invoiceService.CancelInvoice(c.Request.Context(), orgID, invoiceTxnID, actorID)
	if err != nil {
		h.respondError(c, err, "Failed to cancel invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// GetTransaction godoc
// @Summary Get a ledger transaction
// @Description Retrieves an invoice, payment, or cancellation with its GL lines
// @Tags invoices
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /organizations/{orgID}/invoices/{transactionID} [get]
func (h *InvoiceHandler) GetTransaction(c *gin.Context) {
	orgID := c.Param("orgID")
	transactionID := c.Param("transactionID")

	txn, err := h.invoiceService.GetTransactionByID(c.Request.Context(), orgID, transactionID)
	if err != nil {
		h.respondError(c, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// ListInvoices godoc
// @Summary List invoices
// @Description Retrieves invoice headers for an organization, newest first
// @Tags invoices
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /organizations/{orgID}/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid pagination parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), orgID, params.Limit, params.Offset)
	if err != nil {
		h.respondError(c, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(invoices))
}

// AgingReport godoc
// @Summary Receivables aging report
// @Description Buckets every open invoice by days past due
// @Tags invoices
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.AgingReportResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /organizations/{orgID}/invoices/reports/aging [get]
func (h *InvoiceHandler) AgingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(glmapping.DueDateLayout, raw)
		if err != nil {
			logger.Warn("Invalid asOf date", slog.String("as_of", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	report, err := h.invoiceService.AgingReport(c.Request.Context(), orgID, asOf)
	if err != nil {
		h.respondError(c, err, "Failed to build aging report")
		return
	}

	c.JSON(http.StatusOK, report)
}
