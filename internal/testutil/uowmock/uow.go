package uowmock

import (
	"context"

	"munify-backend/internal/domain/commitment"
	"munify-backend/internal/domain/project"
	"munify-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

// UoW is a function-backed mock that satisfies uow.UnitOfWork. Set Repos
// and the default implementations behave like the real unit of work minus
// the transaction: WithinTx runs the callback directly and the convenience
// variants fetch through the locked getters. Override the Fn fields for
// anything else.
type UoW struct {
	Repos uow.Repos

	WithinTxFn           func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinCommitmentTxFn func(ctx context.Context, commitmentID uint64, fn func(r uow.Repos, c *commitment.Commitment) error) error
	WithinProjectTxFn    func(ctx context.Context, projectID uint64, fn func(r uow.Repos, p *project.Project) error) error
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinCommitmentTx(ctx context.Context, commitmentID uint64, fn func(r uow.Repos, c *commitment.Commitment) error) error {
	if m.WithinCommitmentTxFn != nil {
		return m.WithinCommitmentTxFn(ctx, commitmentID, fn)
	}
	c, err := m.Repos.Commitments.GetByIDForUpdate(ctx, commitmentID)
	if err != nil {
		return err
	}
	return fn(m.Repos, c)
}

func (m *UoW) WithinProjectTx(ctx context.Context, projectID uint64, fn func(r uow.Repos, p *project.Project) error) error {
	if m.WithinProjectTxFn != nil {
		return m.WithinProjectTxFn(ctx, projectID, fn)
	}
	p, err := m.Repos.Projects.GetByIDForUpdate(ctx, projectID)
	if err != nil {
		return err
	}
	return fn(m.Repos, p)
}
