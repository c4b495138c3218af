package mysql

import (
	"context"
	"time"

	projectDomain "munify-backend/internal/domain/project"

	"gorm.io/gorm"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) Create(ctx context.Context, p *projectDomain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) Save(ctx context.Context, p *projectDomain.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint64) (*projectDomain.Project, error) {
	var out projectDomain.Project
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*projectDomain.Project, error) {
	var out projectDomain.Project
	res := forUpdate(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) GetByReferenceID(ctx context.Context, referenceID string) (*projectDomain.Project, error) {
	var out projectDomain.Project
	res := r.db.WithContext(ctx).Where("project_reference_id = ?", referenceID).First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) GetByReferenceIDForUpdate(ctx context.Context, referenceID string) (*projectDomain.Project, error) {
	var out projectDomain.Project
	res := forUpdate(r.db.WithContext(ctx)).
		Where("project_reference_id = ?", referenceID).
		First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) List(ctx context.Context, f projectDomain.Filter, limit, offset int) ([]projectDomain.Project, int64, error) {
	base := r.db.WithContext(ctx).Model(&projectDomain.Project{})
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}
	if f.OrganizationID != "" {
		base = base.Where("organization_id = ?", f.OrganizationID)
	}
	if f.Category != "" {
		base = base.Where("category = ?", f.Category)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []projectDomain.Project
	err := base.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, total, err
}

// CountCreatedInYear uses a half-open created_at range so the same query
// plan works on MySQL and the sqlite test driver.
func (r *ProjectRepository) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&projectDomain.Project{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

type RejectionRepository struct{ db *gorm.DB }

func NewRejectionRepository(db *gorm.DB) *RejectionRepository { return &RejectionRepository{db: db} }

func (r *RejectionRepository) Append(ctx context.Context, h *projectDomain.RejectionHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *RejectionRepository) LatestByProjectID(ctx context.Context, projectID uint64) (*projectDomain.RejectionHistory, error) {
	var out projectDomain.RejectionHistory
	res := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("rejected_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *RejectionRepository) Save(ctx context.Context, h *projectDomain.RejectionHistory) error {
	return r.db.WithContext(ctx).Save(h).Error
}

type NoteRepository struct{ db *gorm.DB }

func NewNoteRepository(db *gorm.DB) *NoteRepository { return &NoteRepository{db: db} }

func (r *NoteRepository) Create(ctx context.Context, n *projectDomain.Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NoteRepository) ListByProjectID(ctx context.Context, projectID uint64) ([]projectDomain.Note, error) {
	var out []projectDomain.Note
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
