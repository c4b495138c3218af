package mysql

import (
	"context"

	commitmentDomain "munify-backend/internal/domain/commitment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CommitmentRepository struct{ db *gorm.DB }

func NewCommitmentRepository(db *gorm.DB) *CommitmentRepository {
	return &CommitmentRepository{db: db}
}

func (r *CommitmentRepository) Create(ctx context.Context, c *commitmentDomain.Commitment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommitmentRepository) Save(ctx context.Context, c *commitmentDomain.Commitment) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CommitmentRepository) GetByID(ctx context.Context, id uint64) (*commitmentDomain.Commitment, error) {
	var out commitmentDomain.Commitment
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CommitmentRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*commitmentDomain.Commitment, error) {
	var out commitmentDomain.Commitment
	res := forUpdate(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *CommitmentRepository) List(ctx context.Context, f commitmentDomain.Filter, limit, offset int) ([]commitmentDomain.Commitment, int64, error) {
	base := r.db.WithContext(ctx).Model(&commitmentDomain.Commitment{})
	if f.ProjectID != "" {
		base = base.Where("project_id = ?", f.ProjectID)
	}
	if f.OrganizationID != "" {
		base = base.Where("organization_id = ?", f.OrganizationID)
	}
	if f.OrganizationType != "" {
		base = base.Where("organization_type = ?", f.OrganizationType)
	}
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []commitmentDomain.Commitment
	err := base.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, total, err
}

func (r *CommitmentRepository) ListByProject(ctx context.Context, projectID string) ([]commitmentDomain.Commitment, error) {
	var out []commitmentDomain.Commitment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *CommitmentRepository) ListByProjectAndStatus(ctx context.Context, projectID string, status commitmentDomain.Status) ([]commitmentDomain.Commitment, error) {
	var out []commitmentDomain.Commitment
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, status).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *CommitmentRepository) SumAmountByStatuses(ctx context.Context, projectID string, statuses []commitmentDomain.Status) (decimal.Decimal, error) {
	row := r.db.WithContext(ctx).
		Model(&commitmentDomain.Commitment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("project_id = ? AND status IN ?", projectID, statuses).
		Row()
	var sum decimal.Decimal
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *CommitmentRepository) SumAmountAllProjects(ctx context.Context, statuses []commitmentDomain.Status) (decimal.Decimal, error) {
	row := r.db.WithContext(ctx).
		Model(&commitmentDomain.Commitment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status IN ?", statuses).
		Row()
	var sum decimal.Decimal
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *CommitmentRepository) CountByStatus(ctx context.Context, status commitmentDomain.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&commitmentDomain.Commitment{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *CommitmentRepository) DistinctProjectIDs(ctx context.Context, limit, offset int) ([]string, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&commitmentDomain.Commitment{}).
		Distinct("project_id").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var refs []string
	err := r.db.WithContext(ctx).
		Model(&commitmentDomain.Commitment{}).
		Distinct("project_id").
		Order("project_id ASC").
		Limit(limit).
		Offset(offset).
		Pluck("project_id", &refs).Error
	return refs, total, err
}

type HistoryRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Append(ctx context.Context, h *commitmentDomain.History) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// ListByCommitmentID returns entries oldest-first for audit replay, unlike
// the listing endpoints which show newest-first.
func (r *HistoryRepository) ListByCommitmentID(ctx context.Context, commitmentID uint64) ([]commitmentDomain.History, error) {
	var out []commitmentDomain.History
	err := r.db.WithContext(ctx).
		Where("commitment_id = ?", commitmentID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
