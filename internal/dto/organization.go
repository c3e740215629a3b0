package dto

import (
	"time"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create a new organization.
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToOrganizationResponse converts a domain.Organization to its response DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: org.OrganizationID,
		Name:           org.Name,
		CreatedAt:      org.CreatedAt,
		CreatedBy:      org.CreatedBy,
	}
}

// ToListOrganizationResponse converts a slice of organizations to DTOs.
func ToListOrganizationResponse(orgs []domain.Organization) []OrganizationResponse {
	res := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		res[i] = ToOrganizationResponse(&orgs[i])
	}
	return res
}

// ListOrganizationsParams defines query parameters for listing organizations.
type ListOrganizationsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}
