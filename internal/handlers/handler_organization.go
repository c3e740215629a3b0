package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finvo/invoice_ledger_app/internal/core/ports/services"
	"github.com/finvo/invoice_ledger_app/internal/dto"
	"github.com/finvo/invoice_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles HTTP requests related to organizations.
type OrganizationHandler struct {
	orgService portssvc.OrganizationSvc
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService portssvc.OrganizationSvc) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// CreateOrganization godoc
// @Summary Create an organization
// @Description Creates a new organization and seeds its chart of accounts
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to create organization"
// @Router /organizations [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	org, err := h.orgService.CreateOrganization(c.Request.Context(), req, actorID)
	if err != nil {
		status := statusForError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to create organization", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to create organization"})
			return
		}
		logger.Warn("Rejected organization creation", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// GetOrganization godoc
// @Summary Get an organization
// @Description Retrieves an organization by its ID
// @Tags organizations
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} map[string]string "Organization not found"
// @Router /organizations/{orgID} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	org, err := h.orgService.GetOrganizationByID(c.Request.Context(), orgID)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusNotFound {
			c.JSON(status, gin.H{"error": "Organization not found"})
			return
		}
		logger.Error("Failed to get organization", slog.String("organization_id", orgID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve organization"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// ListOrganizations godoc
// @Summary List organizations
// @Description Retrieves organizations, newest first
// @Tags organizations
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.OrganizationResponse
// @Failure 500 {object} map[string]string "Failed to list organizations"
// @Router /organizations [get]
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListOrganizationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid pagination parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	orgs, err := h.orgService.ListOrganizations(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list organizations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organizations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrganizationResponse(orgs))
}
