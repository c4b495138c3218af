package commitment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Filter narrows List results. Zero values mean "no filter".
type Filter struct {
	ProjectID        string
	OrganizationID   string
	OrganizationType string
	Status           Status
}

type Repository interface {
	Create(ctx context.Context, c *Commitment) error
	GetByID(ctx context.Context, id uint64) (*Commitment, error)
	// GetByIDForUpdate locks the row for the duration of the surrounding
	// transaction so concurrent transitions serialize.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Commitment, error)
	Save(ctx context.Context, c *Commitment) error

	List(ctx context.Context, f Filter, limit, offset int) ([]Commitment, int64, error)
	ListByProject(ctx context.Context, projectID string) ([]Commitment, error)
	ListByProjectAndStatus(ctx context.Context, projectID string, status Status) ([]Commitment, error)

	// SumAmountByStatuses totals amounts for one project across the given
	// statuses; used by the gap guard and the funding aggregator.
	SumAmountByStatuses(ctx context.Context, projectID string, statuses []Status) (decimal.Decimal, error)
	// SumAmountAllProjects totals amounts across every project (landing stats).
	SumAmountAllProjects(ctx context.Context, statuses []Status) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// DistinctProjectIDs pages over the set of projects that have at least
	// one commitment, ordered by business key.
	DistinctProjectIDs(ctx context.Context, limit, offset int) ([]string, int64, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, h *History) error
	// ListByCommitmentID returns entries oldest-first for audit replay.
	ListByCommitmentID(ctx context.Context, commitmentID uint64) ([]History, error)
}
