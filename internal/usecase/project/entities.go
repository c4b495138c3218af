package project

import (
	"github.com/shopspring/decimal"
)

type CreateInput struct {
	OrganizationType    string
	OrganizationID      string
	Title               string
	Department          string
	Category            string
	Description         string
	ContactPerson       string
	ContactPersonEmail  string
	State               string
	City                string
	FundingRequirement  decimal.Decimal
	AlreadySecuredFunds decimal.Decimal
	Currency            string
	CreatedBy           string
}

// UpdateInput carries a partial edit; nil fields are left untouched.
type UpdateInput struct {
	Title               *string
	Department          *string
	Category            *string
	Description         *string
	ContactPerson       *string
	ContactPersonEmail  *string
	State               *string
	City                *string
	FundingRequirement  *decimal.Decimal
	AlreadySecuredFunds *decimal.Decimal
	UpdatedBy           string
}

// ResubmitInput mirrors UpdateInput plus fields lenders sometimes send
// anyway. Status, currency and the reference id are backend-controlled and
// silently dropped when present.
type ResubmitInput struct {
	UpdateInput
	Status             *string
	Currency           *string
	ProjectReferenceID *string
	ResubmissionNotes  string
}

type ListInput struct {
	Status         string
	OrganizationID string
	Category       string
	Limit          int
	Offset         int
}
