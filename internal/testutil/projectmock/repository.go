package projectmock

import (
	"context"

	domain "munify-backend/internal/domain/project"

	"gorm.io/gorm"
)

// Ensure compile-time compliance
var (
	_ domain.Repository          = (*Repo)(nil)
	_ domain.RejectionRepository = (*RejectionRepo)(nil)
	_ domain.NoteRepository      = (*NoteRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, p *domain.Project) error
	GetByIDFn                   func(ctx context.Context, id uint64) (*domain.Project, error)
	GetByIDForUpdateFn          func(ctx context.Context, id uint64) (*domain.Project, error)
	GetByReferenceIDFn          func(ctx context.Context, referenceID string) (*domain.Project, error)
	GetByReferenceIDForUpdateFn func(ctx context.Context, referenceID string) (*domain.Project, error)
	SaveFn                      func(ctx context.Context, p *domain.Project) error
	ListFn                      func(ctx context.Context, f domain.Filter, limit, offset int) ([]domain.Project, int64, error)
	CountCreatedInYearFn        func(ctx context.Context, year int) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Project) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	p.ID = 1
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Project, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Project, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByReferenceID(ctx context.Context, referenceID string) (*domain.Project, error) {
	if m.GetByReferenceIDFn != nil {
		return m.GetByReferenceIDFn(ctx, referenceID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByReferenceIDForUpdate(ctx context.Context, referenceID string) (*domain.Project, error) {
	if m.GetByReferenceIDForUpdateFn != nil {
		return m.GetByReferenceIDForUpdateFn(ctx, referenceID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, p *domain.Project) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter, limit, offset int) ([]domain.Project, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, limit, offset)
	}
	return nil, 0, nil
}

func (m *Repo) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	if m.CountCreatedInYearFn != nil {
		return m.CountCreatedInYearFn(ctx, year)
	}
	return 0, nil
}

type RejectionRepo struct {
	AppendFn            func(ctx context.Context, h *domain.RejectionHistory) error
	LatestByProjectIDFn func(ctx context.Context, projectID uint64) (*domain.RejectionHistory, error)
	SaveFn              func(ctx context.Context, h *domain.RejectionHistory) error

	Appended []domain.RejectionHistory
}

func (m *RejectionRepo) Append(ctx context.Context, h *domain.RejectionHistory) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, h)
	}
	m.Appended = append(m.Appended, *h)
	return nil
}

func (m *RejectionRepo) LatestByProjectID(ctx context.Context, projectID uint64) (*domain.RejectionHistory, error) {
	if m.LatestByProjectIDFn != nil {
		return m.LatestByProjectIDFn(ctx, projectID)
	}
	for i := len(m.Appended) - 1; i >= 0; i-- {
		if m.Appended[i].ProjectID == projectID {
			return &m.Appended[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *RejectionRepo) Save(ctx context.Context, h *domain.RejectionHistory) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, h)
	}
	return nil
}

type NoteRepo struct {
	CreateFn          func(ctx context.Context, n *domain.Note) error
	ListByProjectIDFn func(ctx context.Context, projectID uint64) ([]domain.Note, error)

	Created []domain.Note
}

func (m *NoteRepo) Create(ctx context.Context, n *domain.Note) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	m.Created = append(m.Created, *n)
	return nil
}

func (m *NoteRepo) ListByProjectID(ctx context.Context, projectID uint64) ([]domain.Note, error) {
	if m.ListByProjectIDFn != nil {
		return m.ListByProjectIDFn(ctx, projectID)
	}
	var out []domain.Note
	for _, n := range m.Created {
		if n.ProjectID == projectID {
			out = append(out, n)
		}
	}
	return out, nil
}
