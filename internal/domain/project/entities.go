package project

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft             Status = "draft"
	StatusPendingValidation Status = "pending_validation"
	StatusActive            Status = "active"
	StatusFundingCompleted  Status = "funding_completed"
	StatusClosed            Status = "closed"
	StatusRejected          Status = "rejected"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusDraft, StatusPendingValidation, StatusActive, StatusFundingCompleted, StatusClosed, StatusRejected:
		return true
	}
	return false
}

// Project is the municipal funding aggregate. funding_raised and
// funding_percentage are derived fields: only the commitment approval
// flow writes them, via the funding aggregator.
type Project struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	OrganizationType string `gorm:"column:organization_type;size:255;not null" json:"organization_type"`
	OrganizationID   string `gorm:"column:organization_id;size:255;not null;index" json:"organization_id"`

	// Business key, format PROJ-{year}-{5-digit-sequence}. Immutable after
	// creation; commitments reference projects through it.
	ProjectReferenceID string `gorm:"column:project_reference_id;size:100;not null;uniqueIndex" json:"project_reference_id"`

	Title       string `gorm:"column:title;size:500;not null" json:"title"`
	Department  string `gorm:"column:department;size:200" json:"department,omitempty"`
	Category    string `gorm:"column:category;size:100" json:"category,omitempty"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`

	ContactPerson      string `gorm:"column:contact_person;size:255" json:"contact_person,omitempty"`
	ContactPersonEmail string `gorm:"column:contact_person_email;size:255" json:"contact_person_email,omitempty"`

	State string `gorm:"column:state;size:255" json:"state,omitempty"`
	City  string `gorm:"column:city;size:255" json:"city,omitempty"`

	FundingRequirement  decimal.Decimal `gorm:"column:funding_requirement;type:decimal(15,2);not null" json:"funding_requirement"`
	AlreadySecuredFunds decimal.Decimal `gorm:"column:already_secured_funds;type:decimal(15,2);default:0" json:"already_secured_funds"`
	CommitmentGap       decimal.Decimal `gorm:"column:commitment_gap;type:decimal(15,2)" json:"commitment_gap"`
	Currency            string          `gorm:"column:currency;size:10;default:'INR'" json:"currency"`

	FundingRaised     decimal.Decimal `gorm:"column:funding_raised;type:decimal(15,2);default:0" json:"funding_raised"`
	FundingPercentage decimal.Decimal `gorm:"column:funding_percentage;type:decimal(5,2)" json:"funding_percentage"`

	Status Status `gorm:"column:status;size:50;not null;default:'draft';index" json:"status"`

	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	ApprovedBy string     `gorm:"column:approved_by;size:255" json:"approved_by,omitempty"`
	AdminNotes string     `gorm:"column:admin_notes;type:text" json:"admin_notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatedBy string    `gorm:"column:created_by;size:255" json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	UpdatedBy string    `gorm:"column:updated_by;size:255" json:"updated_by,omitempty"`
}

func (Project) TableName() string { return "mp_projects" }

// RecomputeDerived refreshes commitment_gap and funding_percentage from the
// financial inputs. Call after any write to funding fields.
func (p *Project) RecomputeDerived() {
	p.CommitmentGap = p.FundingRequirement.Sub(p.AlreadySecuredFunds)
	if p.FundingRequirement.IsPositive() {
		p.FundingPercentage = p.FundingRaised.
			Div(p.FundingRequirement).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	} else {
		p.FundingPercentage = decimal.Zero
	}
}

// RejectionHistory records one admin rejection. resubmitted_at is stamped
// when the owner resubmits; rows are otherwise immutable.
type RejectionHistory struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	ProjectID uint64 `gorm:"column:project_id;not null;index" json:"project_id"`

	RejectedAt    time.Time  `gorm:"column:rejected_at;autoCreateTime" json:"rejected_at"`
	RejectedBy    string     `gorm:"column:rejected_by;size:255;not null" json:"rejected_by"`
	RejectionNote string     `gorm:"column:rejection_note;type:text;not null" json:"rejection_note"`
	ResubmittedAt *time.Time `gorm:"column:resubmitted_at" json:"resubmitted_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RejectionHistory) TableName() string { return "mp_project_rejection_history" }

// Note is a free-form annotation on a project.
type Note struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectID uint64    `gorm:"column:project_id;not null;index" json:"project_id"`
	Note      string    `gorm:"column:note;type:text;not null" json:"note"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatedBy string    `gorm:"column:created_by;size:255" json:"created_by,omitempty"`
}

func (Note) TableName() string { return "mp_project_notes" }
