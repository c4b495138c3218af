package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	projectDomain "munify-backend/internal/domain/project"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestProjectCreateAndGetByReferenceID(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	p := makeProject("PROJ-2026-00001", 100000)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("Create did not set auto-increment ID")
	}

	got, err := repo.GetByReferenceID(ctx, "PROJ-2026-00001")
	if err != nil {
		t.Fatalf("GetByReferenceID: %v", err)
	}
	if got.ID != p.ID || !got.CommitmentGap.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("unexpected project: %+v", got)
	}
}

func TestProjectGetByReferenceID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.GetByReferenceID(context.Background(), "PROJ-2026-09999")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestProjectList_StatusFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	active := makeProject("PROJ-2026-00001", 100000)
	mustCreate(t, db, active)

	funded := makeProject("PROJ-2026-00002", 50000)
	funded.Status = projectDomain.StatusFundingCompleted
	mustCreate(t, db, funded)

	items, total, err := repo.List(ctx, projectDomain.Filter{Status: projectDomain.StatusFundingCompleted}, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ProjectReferenceID != "PROJ-2026-00002" {
		t.Fatalf("unexpected listing: total=%d items=%+v", total, items)
	}
}

func TestProjectCountCreatedInYear(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	p1 := makeProject("PROJ-A", 1000)
	mustCreate(t, db, p1)

	// one project created last year must not count
	old := makeProject("PROJ-B", 1000)
	mustCreate(t, db, old)
	if err := db.Model(old).Update("created_at", now.AddDate(-1, 0, 0)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	count, err := repo.CountCreatedInYear(ctx, now.Year())
	if err != nil {
		t.Fatalf("CountCreatedInYear: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestRejectionLatestByProjectID(t *testing.T) {
	db := openTestDB(t)
	repo := NewRejectionRepository(db)
	ctx := context.Background()

	p := makeProject("PROJ-2026-00001", 1000)
	mustCreate(t, db, p)

	now := time.Now().UTC()
	first := &projectDomain.RejectionHistory{ProjectID: p.ID, RejectedBy: "admin-1", RejectionNote: "missing documents", RejectedAt: now.Add(-2 * time.Hour)}
	mustCreate(t, db, first)
	second := &projectDomain.RejectionHistory{ProjectID: p.ID, RejectedBy: "admin-2", RejectionNote: "budget unclear", RejectedAt: now.Add(-1 * time.Hour)}
	mustCreate(t, db, second)

	got, err := repo.LatestByProjectID(ctx, p.ID)
	if err != nil {
		t.Fatalf("LatestByProjectID: %v", err)
	}
	if got.RejectedBy != "admin-2" {
		t.Fatalf("latest = %+v, want the admin-2 rejection", got)
	}

	// stamping resubmitted_at persists
	stamp := now
	got.ResubmittedAt = &stamp
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := repo.LatestByProjectID(ctx, p.ID)
	if err != nil {
		t.Fatalf("LatestByProjectID after save: %v", err)
	}
	if again.ResubmittedAt == nil {
		t.Fatal("resubmitted_at not persisted")
	}
}

func TestNoteCreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	p := makeProject("PROJ-2026-00001", 1000)
	mustCreate(t, db, p)

	for _, text := range []string{"site visit pending", "rating confirmed"} {
		if err := repo.Create(ctx, &projectDomain.Note{ProjectID: p.ID, Note: text, CreatedBy: "admin-1"}); err != nil {
			t.Fatalf("Create note: %v", err)
		}
	}

	notes, err := repo.ListByProjectID(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByProjectID: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len = %d, want 2", len(notes))
	}
}
