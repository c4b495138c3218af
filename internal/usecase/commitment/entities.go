package commitment

import (
	"github.com/shopspring/decimal"
)

type CreateInput struct {
	ProjectReferenceID  string
	OrganizationType    string
	OrganizationID      string
	CommittedBy         string
	Amount              decimal.Decimal
	Currency            string
	FundingMode         string
	InterestRate        *decimal.Decimal
	TenureMonths        *int
	TermsConditionsText string
	CreatedBy           string
}

// UpdateInput carries a partial edit; nil fields are left untouched.
type UpdateInput struct {
	Amount              *decimal.Decimal
	Currency            *string
	FundingMode         *string
	InterestRate        *decimal.Decimal
	TenureMonths        *int
	TermsConditionsText *string
	UpdatedBy           string
}

type ListInput struct {
	ProjectReferenceID string
	OrganizationID     string
	OrganizationType   string
	Status             string
	Limit              int
	Offset             int
}
