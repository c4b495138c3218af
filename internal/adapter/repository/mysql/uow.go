package mysql

import (
	"context"

	"munify-backend/internal/domain/commitment"
	"munify-backend/internal/domain/project"
	"munify-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Projects:    &ProjectRepository{db: tx},
		Rejections:  &RejectionRepository{db: tx},
		Notes:       &NoteRepository{db: tx},
		Commitments: &CommitmentRepository{db: tx},
		History:     &HistoryRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinCommitmentTx(ctx context.Context, commitmentID uint64, fn func(r uow.Repos, c *commitment.Commitment) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the commitment row up-front so concurrent transitions serialize
		c, err := r.Commitments.GetByIDForUpdate(ctx, commitmentID)
		if err != nil {
			return err
		}
		return fn(r, c)
	})
}

func (u *GormUoW) WithinProjectTx(ctx context.Context, projectID uint64, fn func(r uow.Repos, p *project.Project) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		p, err := r.Projects.GetByIDForUpdate(ctx, projectID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
