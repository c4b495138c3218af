package commitment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
	StatusFunded      Status = "funded"
	StatusCompleted   Status = "completed"
)

type FundingMode string

const (
	ModeLoan  FundingMode = "loan"
	ModeGrant FundingMode = "grant"
	ModeCSR   FundingMode = "csr"
)

// allowedTransitions is the source of truth for the status machine.
// rejected, withdrawn and completed are terminal.
var allowedTransitions = map[Status][]Status{
	StatusUnderReview: {StatusApproved, StatusRejected, StatusWithdrawn},
	StatusApproved:    {StatusFunded},
	StatusFunded:      {StatusCompleted},
	StatusRejected:    {},
	StatusWithdrawn:   {},
	StatusCompleted:   {},
}

// CanTransition reports whether from→to is a legal move. Same→same is
// treated as allowed here; the concrete transition methods still reject
// re-approval and friends with their own status guard.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusUnderReview, StatusApproved, StatusRejected, StatusWithdrawn, StatusFunded, StatusCompleted:
		return true
	}
	return false
}

func ValidFundingMode(m string) bool {
	switch FundingMode(m) {
	case ModeLoan, ModeGrant, ModeCSR:
		return true
	}
	return false
}

// FundedStatuses are the statuses whose amounts count toward a project's
// funding_raised.
func FundedStatuses() []Status {
	return []Status{StatusApproved, StatusFunded, StatusCompleted}
}

// GapStatuses are the statuses counted against a project's commitment_gap
// when an approval is validated. under_review amounts are included so a
// commitment being approved counts itself exactly once.
func GapStatuses() []Status {
	return []Status{StatusUnderReview, StatusApproved, StatusFunded, StatusCompleted}
}

// Commitment is a lender's pledge of funds toward a project. It references
// the project by its business key (project_reference_id), not the numeric
// surrogate — external lenders only ever see the reference code.
type Commitment struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	ProjectID string `gorm:"column:project_id;size:100;not null;index" json:"project_reference_id"`

	OrganizationType string `gorm:"column:organization_type;size:255;not null" json:"organization_type"`
	OrganizationID   string `gorm:"column:organization_id;size:255;not null;index" json:"organization_id"`
	CommittedBy      string `gorm:"column:committed_by;size:255;not null" json:"committed_by"`

	Amount       decimal.Decimal  `gorm:"column:amount;type:decimal(15,2);not null" json:"amount"`
	Currency     string           `gorm:"column:currency;size:10;default:'INR'" json:"currency"`
	FundingMode  FundingMode      `gorm:"column:funding_mode;size:50;not null" json:"funding_mode"`
	InterestRate *decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2)" json:"interest_rate,omitempty"`
	TenureMonths *int             `gorm:"column:tenure_months" json:"tenure_months,omitempty"`

	TermsConditionsText string `gorm:"column:terms_conditions_text;type:text" json:"terms_conditions_text,omitempty"`

	Status Status `gorm:"column:status;size:50;not null;default:'under_review';index" json:"status"`

	ApprovedBy      string     `gorm:"column:approved_by;size:255" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectionReason string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	RejectionNotes  string     `gorm:"column:rejection_notes;type:text" json:"rejection_notes,omitempty"`

	UpdateCount int `gorm:"column:update_count;not null;default:0" json:"update_count"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatedBy string    `gorm:"column:created_by;size:255" json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	UpdatedBy string    `gorm:"column:updated_by;size:255" json:"updated_by,omitempty"`
}

func (Commitment) TableName() string { return "mp_commitments" }

// Modifiable reports whether the lender may still edit amount, terms and
// funding mode. Everything past under_review is immutable except through
// the status machine.
func (c *Commitment) Modifiable() bool { return c.Status == StatusUnderReview }

// History is an append-only snapshot of a commitment taken on every
// mutating event. Rows are never updated or deleted.
type History struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	CommitmentID uint64 `gorm:"column:commitment_id;not null;index" json:"commitment_id"`
	ProjectID    string `gorm:"column:project_id;size:100;not null;index" json:"project_reference_id"`

	OrganizationType string `gorm:"column:organization_type;size:255;not null" json:"organization_type"`
	OrganizationID   string `gorm:"column:organization_id;size:255;not null" json:"organization_id"`
	CommittedBy      string `gorm:"column:committed_by;size:255;not null" json:"committed_by"`

	Amount              decimal.Decimal  `gorm:"column:amount;type:decimal(15,2)" json:"amount"`
	FundingMode         FundingMode      `gorm:"column:funding_mode;size:50" json:"funding_mode"`
	InterestRate        *decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2)" json:"interest_rate,omitempty"`
	TenureMonths        *int             `gorm:"column:tenure_months" json:"tenure_months,omitempty"`
	TermsConditionsText string           `gorm:"column:terms_conditions_text;type:text" json:"terms_conditions_text,omitempty"`
	Status              Status           `gorm:"column:status;size:50" json:"status"`

	Action string `gorm:"column:action;size:50;not null" json:"action"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatedBy string    `gorm:"column:created_by;size:255" json:"created_by,omitempty"`
}

func (History) TableName() string { return "mp_commitment_history" }

// Snapshot produces the history row for one mutating event. Pure; the
// caller appends it inside the same transaction as the mutation.
func Snapshot(c *Commitment, action, actor string) *History {
	return &History{
		CommitmentID:        c.ID,
		ProjectID:           c.ProjectID,
		OrganizationType:    c.OrganizationType,
		OrganizationID:      c.OrganizationID,
		CommittedBy:         c.CommittedBy,
		Amount:              c.Amount,
		FundingMode:         c.FundingMode,
		InterestRate:        c.InterestRate,
		TenureMonths:        c.TenureMonths,
		TermsConditionsText: c.TermsConditionsText,
		Status:              c.Status,
		Action:              action,
		CreatedBy:           actor,
	}
}
