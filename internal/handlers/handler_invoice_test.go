package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finvo/invoice_ledger_app/internal/apperrors"
	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/finvo/invoice_ledger_app/internal/core/glmapping"
	portssvc "github.com/finvo/invoice_ledger_app/internal/core/ports/services"
	"github.com/finvo/invoice_ledger_app/internal/dto"
	"github.com/finvo/invoice_ledger_app/internal/handlers"
	"github.com/finvo/invoice_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, organizationID string, req dto.CreateInvoiceRequest, creatorID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, organizationID, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockInvoiceService) RecordPayment(ctx context.Context, organizationID, invoiceTxnID string, req dto.RecordPaymentRequest, creatorID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, organizationID, invoiceTxnID, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockInvoiceService) CancelInvoice(ctx context.Context, organizationID, invoiceTxnID, creatorID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, organizationID, invoiceTxnID, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockInvoiceService) GetTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, organizationID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, organizationID string, limit, offset int) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}

func (m *MockInvoiceService) AgingReport(ctx context.Context, organizationID string, asOf time.Time) (*dto.AgingReportResponse, error) {
	args := m.Called(ctx, organizationID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AgingReportResponse), args.Error(1)
}

var _ portssvc.InvoiceSvc = (*MockInvoiceService)(nil)

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockInvoiceService *MockInvoiceService
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.ActorMiddleware())

	suite.mockInvoiceService = new(MockInvoiceService)
	invoiceHandler := handlers.NewInvoiceHandler(suite.mockInvoiceService)

	// Mirrors the route layout of the API server.
	invoices := suite.router.Group("/api/v1/organizations/:orgID/invoices")
	invoices.POST("", invoiceHandler.CreateInvoice)
	invoices.GET("", invoiceHandler.ListInvoices)
	invoices.GET("/reports/aging", invoiceHandler.AgingReport)
	invoices.GET("/:transactionID", invoiceHandler.GetTransaction)
	invoices.POST("/:transactionID/payments", invoiceHandler.RecordPayment)
	invoices.POST("/:transactionID/cancel", invoiceHandler.CancelInvoice)
}

func (suite *InvoiceHandlerTestSuite) postJSON(url string, body any, actorID string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	orgID := uuid.NewString()
	body := dto.CreateInvoiceRequest{
		CustomerRef: "C1",
		TotalAmount: decimal.NewFromInt(750),
		DueDate:     "2026-09-30",
		LineItems: []dto.InvoiceLineItemRequest{
			{Description: "Color treatment", Quantity: decimal.NewFromInt(1), UnitAmount: decimal.NewFromInt(450), LineAmount: decimal.NewFromInt(450)},
			{Description: "Cut and style", Quantity: decimal.NewFromInt(1), UnitAmount: decimal.NewFromInt(300), LineAmount: decimal.NewFromInt(300)},
		},
	}

	created := &domain.LedgerTransaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: orgID,
		Kind:           domain.KindInvoice,
		SmartCode:      "FIN.TRANSACTION.INVOICE.CREATION.v1",
		TotalAmount:    decimal.NewFromInt(750),
		CustomerRef:    "C1",
		Status:         domain.StatusOpen,
	}

	suite.mockInvoiceService.On("CreateInvoice",
		mock.Anything,
		orgID,
		mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
			return req.CustomerRef == "C1" && len(req.LineItems) == 2
		}),
		"user-1",
	).Return(created, nil).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/organizations/%s/invoices", orgID), body, "user-1")

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal(domain.KindInvoice, resp.Kind)
	suite.Equal(domain.StatusOpen, resp.Status)

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_DefaultsActorToSystem() {
	orgID := uuid.NewString()
	body := dto.CreateInvoiceRequest{
		CustomerRef: "C1",
		TotalAmount: decimal.NewFromInt(100),
		DueDate:     "2026-09-30",
		LineItems: []dto.InvoiceLineItemRequest{
			{Description: "Consultation", Quantity: decimal.NewFromInt(1), UnitAmount: decimal.NewFromInt(100), LineAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, orgID, mock.Anything, "system").
		Return(&domain.LedgerTransaction{TransactionID: uuid.NewString()}, nil).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/organizations/%s/invoices", orgID), body, "")

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_EngineValidationError() {
	orgID := uuid.NewString()
	body := dto.CreateInvoiceRequest{
		CustomerRef: "C1",
		TotalAmount: decimal.NewFromInt(200),
		DueDate:     "2026-09-30",
		LineItems: []dto.InvoiceLineItemRequest{
			{Description: "Consultation", Quantity: decimal.NewFromInt(1), UnitAmount: decimal.NewFromInt(450), LineAmount: decimal.NewFromInt(450)},
		},
	}

	engineErr := fmt.Errorf("%w: line items sum to 450, invoice total is 200", glmapping.ErrTotalMismatch)
	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, orgID, mock.Anything, "user-1").
		Return(nil, engineErr).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/organizations/%s/invoices", orgID), body, "user-1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "line items sum to 450")
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_MissingLineItems() {
	orgID := uuid.NewString()
	body := map[string]any{
		"customerRef": "C1",
		"totalAmount": "100",
		"dueDate":     "2026-09-30",
	}

	w := suite.postJSON(fmt.Sprintf("/api/v1/organizations/%s/invoices", orgID), body, "user-1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestRecordPayment_ConflictWhenNotOpen() {
	orgID := uuid.NewString()
	invoiceID := uuid.NewString()
	body := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(750), PaymentMethod: "CASH"}

	conflictErr := fmt.Errorf("%w: invoice %s is PAID", apperrors.ErrConflict, invoiceID)
	suite.mockInvoiceService.On("RecordPayment", mock.Anything, orgID, invoiceID, body, "user-1").
		Return(nil, conflictErr).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/organizations/%s/invoices/%s/payments", orgID, invoiceID), body, "user-1")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestGetTransaction_NotFound() {
	orgID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockInvoiceService.On("GetTransactionByID", mock.Anything, orgID, txnID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/organizations/%s/invoices/%s", orgID, txnID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestAgingReport_Success() {
	orgID := uuid.NewString()
	report := &dto.AgingReportResponse{
		OrganizationID: orgID,
		AsOf:           "2026-08-29",
		Buckets: []dto.AgingBucketSummary{
			{Bucket: glmapping.BucketCurrent, InvoiceCount: 1, TotalAmount: decimal.NewFromInt(100)},
		},
	}

	asOf := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	suite.mockInvoiceService.On("AgingReport", mock.Anything, orgID, asOf).Return(report, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/invoices/reports/aging?asOf=2026-08-29", orgID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AgingReportResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2026-08-29", resp.AsOf)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestAgingReport_InvalidDate() {
	orgID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/organizations/%s/invoices/reports/aging?asOf=29-08-2026", orgID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "AgingReport", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
