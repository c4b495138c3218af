package uow

import (
	"context"

	"munify-backend/internal/domain/commitment"
	"munify-backend/internal/domain/project"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Projects    project.Repository
	Rejections  project.RejectionRepository
	Notes       project.NoteRepository
	Commitments commitment.Repository
	History     commitment.HistoryRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the commitment row first, then pass it in
	WithinCommitmentTx(ctx context.Context, commitmentID uint64, fn func(r Repos, c *commitment.Commitment) error) error
	// convenience: lock the project row first, then pass it in
	WithinProjectTx(ctx context.Context, projectID uint64, fn func(r Repos, p *project.Project) error) error
}
