package domain

// Organization is the tenant boundary. Every account and ledger transaction
// belongs to exactly one organization; lookups are always scoped by it.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary key (UUID)
	Name           string `json:"name"`
	AuditFields
}
