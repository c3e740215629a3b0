package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finvo/invoice_ledger_app/internal/core/ports/services"
	"github.com/finvo/invoice_ledger_app/internal/dto"
	"github.com/finvo/invoice_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles HTTP requests for the chart of accounts.
type AccountHandler struct {
	accountService portssvc.AccountSvc
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService portssvc.AccountSvc) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// ListAccounts godoc
// @Summary List the chart of accounts
// @Description Retrieves every GL account for an organization
// @Tags accounts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /organizations/{orgID}/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), orgID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("organization_id", orgID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// GetAccount godoc
// @Summary Get a GL account
// @Description Retrieves one GL account by its code
// @Tags accounts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param accountCode path string true "GL account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /organizations/{orgID}/accounts/{accountCode} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	code := c.Param("accountCode")

	account, err := h.accountService.GetAccountByCode(c.Request.Context(), orgID, code)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusNotFound {
			c.JSON(status, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("organization_id", orgID), slog.String("account_code", code), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
