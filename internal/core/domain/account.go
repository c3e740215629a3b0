package domain

// AccountType defines the fundamental accounting type of a GL account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// GLAccount is an immutable chart-of-accounts reference entry.
// The canonical set is defined in the glmapping registry at process start
// and never mutated.
type GLAccount struct {
	Code          string      `json:"code"` // Unique account code, e.g. "120000"
	Name          string      `json:"name"`
	Type          AccountType `json:"type"`
	NormalBalance EntrySide   `json:"normalBalance"` // DR for assets/expenses, CR otherwise
	SmartCode     string      `json:"smartCode"`     // Dot-segmented descriptive tag
	Description   string      `json:"description"`
}

// Account is a persisted chart-of-accounts row, scoped to an organization.
// Rows are seeded from the GLAccount registry when the organization is
// created; the invoice flows never mutate them.
type Account struct {
	AccountID      string      `json:"accountID"` // Primary key (UUID)
	OrganizationID string      `json:"organizationID"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"`
	NormalBalance  EntrySide   `json:"normalBalance"`
	SmartCode      string      `json:"smartCode"`
	Description    string      `json:"description"`
	AuditFields
}
