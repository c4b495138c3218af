package commitmentmock

import (
	"context"

	domain "munify-backend/internal/domain/commitment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ensure compile-time compliance
var (
	_ domain.Repository        = (*Repo)(nil)
	_ domain.HistoryRepository = (*HistoryRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository. Fill in
// the function fields a test needs; unfilled getters report not-found and
// unfilled writes succeed.
type Repo struct {
	CreateFn                 func(ctx context.Context, c *domain.Commitment) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Commitment, error)
	GetByIDForUpdateFn       func(ctx context.Context, id uint64) (*domain.Commitment, error)
	SaveFn                   func(ctx context.Context, c *domain.Commitment) error
	ListFn                   func(ctx context.Context, f domain.Filter, limit, offset int) ([]domain.Commitment, int64, error)
	ListByProjectFn          func(ctx context.Context, projectID string) ([]domain.Commitment, error)
	ListByProjectAndStatusFn func(ctx context.Context, projectID string, status domain.Status) ([]domain.Commitment, error)
	SumAmountByStatusesFn    func(ctx context.Context, projectID string, statuses []domain.Status) (decimal.Decimal, error)
	SumAmountAllProjectsFn   func(ctx context.Context, statuses []domain.Status) (decimal.Decimal, error)
	CountByStatusFn          func(ctx context.Context, status domain.Status) (int64, error)
	DistinctProjectIDsFn     func(ctx context.Context, limit, offset int) ([]string, int64, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Commitment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	c.ID = 1
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Commitment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Commitment, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, c *domain.Commitment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter, limit, offset int) ([]domain.Commitment, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, limit, offset)
	}
	return nil, 0, nil
}

func (m *Repo) ListByProject(ctx context.Context, projectID string) ([]domain.Commitment, error) {
	if m.ListByProjectFn != nil {
		return m.ListByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *Repo) ListByProjectAndStatus(ctx context.Context, projectID string, status domain.Status) ([]domain.Commitment, error) {
	if m.ListByProjectAndStatusFn != nil {
		return m.ListByProjectAndStatusFn(ctx, projectID, status)
	}
	return nil, nil
}

func (m *Repo) SumAmountByStatuses(ctx context.Context, projectID string, statuses []domain.Status) (decimal.Decimal, error) {
	if m.SumAmountByStatusesFn != nil {
		return m.SumAmountByStatusesFn(ctx, projectID, statuses)
	}
	return decimal.Zero, nil
}

func (m *Repo) SumAmountAllProjects(ctx context.Context, statuses []domain.Status) (decimal.Decimal, error) {
	if m.SumAmountAllProjectsFn != nil {
		return m.SumAmountAllProjectsFn(ctx, statuses)
	}
	return decimal.Zero, nil
}

func (m *Repo) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, nil
}

func (m *Repo) DistinctProjectIDs(ctx context.Context, limit, offset int) ([]string, int64, error) {
	if m.DistinctProjectIDsFn != nil {
		return m.DistinctProjectIDsFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

// HistoryRepo records appended snapshots in-memory by default so tests can
// assert on the audit trail without extra wiring.
type HistoryRepo struct {
	AppendFn             func(ctx context.Context, h *domain.History) error
	ListByCommitmentIDFn func(ctx context.Context, commitmentID uint64) ([]domain.History, error)

	Appended []domain.History
}

func (m *HistoryRepo) Append(ctx context.Context, h *domain.History) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, h)
	}
	m.Appended = append(m.Appended, *h)
	return nil
}

func (m *HistoryRepo) ListByCommitmentID(ctx context.Context, commitmentID uint64) ([]domain.History, error) {
	if m.ListByCommitmentIDFn != nil {
		return m.ListByCommitmentIDFn(ctx, commitmentID)
	}
	var out []domain.History
	for _, h := range m.Appended {
		if h.CommitmentID == commitmentID {
			out = append(out, h)
		}
	}
	return out, nil
}
