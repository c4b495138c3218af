package mysql

import (
	"testing"

	commitmentDomain "munify-backend/internal/domain/commitment"
	projectDomain "munify-backend/internal/domain/project"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB and migrates every table the
// repositories touch. The domain models carry no MySQL-only column types,
// so they migrate cleanly on sqlite.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&projectDomain.Project{},
		&projectDomain.RejectionHistory{},
		&projectDomain.Note{},
		&commitmentDomain.Commitment{},
		&commitmentDomain.History{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeProject(refID string, gap int64) *projectDomain.Project {
	p := &projectDomain.Project{
		OrganizationType:   "Municipality",
		OrganizationID:     "org-1",
		ProjectReferenceID: refID,
		Title:              "Ward 12 drainage upgrade",
		FundingRequirement: decimal.NewFromInt(gap),
		Currency:           "INR",
		Status:             projectDomain.StatusActive,
	}
	p.RecomputeDerived()
	return p
}

func makeCommitment(projectRef string, amount int64, status commitmentDomain.Status) *commitmentDomain.Commitment {
	return &commitmentDomain.Commitment{
		ProjectID:        projectRef,
		OrganizationType: "Lender",
		OrganizationID:   "lender-1",
		CommittedBy:      "lender-user-1",
		Amount:           decimal.NewFromInt(amount),
		Currency:         "INR",
		FundingMode:      commitmentDomain.ModeLoan,
		Status:           status,
	}
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed create: %v", err)
	}
}
