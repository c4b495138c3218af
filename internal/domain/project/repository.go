package project

import "context"

type Filter struct {
	Status         Status
	OrganizationID string
	Category       string
}

type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id uint64) (*Project, error)
	GetByReferenceID(ctx context.Context, referenceID string) (*Project, error)
	// GetByReferenceIDForUpdate locks the project row so concurrent
	// commitment approvals against the same project serialize on the gap
	// check.
	GetByReferenceIDForUpdate(ctx context.Context, referenceID string) (*Project, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Project, error)
	Save(ctx context.Context, p *Project) error

	List(ctx context.Context, f Filter, limit, offset int) ([]Project, int64, error)
	// CountCreatedInYear feeds the reference id sequence.
	CountCreatedInYear(ctx context.Context, year int) (int64, error)
}

type RejectionRepository interface {
	Append(ctx context.Context, r *RejectionHistory) error
	// LatestByProjectID returns the most recent rejection row.
	LatestByProjectID(ctx context.Context, projectID uint64) (*RejectionHistory, error)
	Save(ctx context.Context, r *RejectionHistory) error
}

type NoteRepository interface {
	Create(ctx context.Context, n *Note) error
	ListByProjectID(ctx context.Context, projectID uint64) ([]Note, error)
}
