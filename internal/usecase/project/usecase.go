package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "munify-backend/internal/domain/project"
	"munify-backend/internal/domain/uow"
	"munify-backend/pkg/apperr"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Usecase struct {
	uow uow.UnitOfWork
	log zerolog.Logger
}

func NewUsecase(tx uow.UnitOfWork, log zerolog.Logger) *Usecase {
	return &Usecase{uow: tx, log: log}
}

// Create registers a new project in draft status and assigns its immutable
// reference id (PROJ-{year}-{5-digit-sequence}).
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Invalid("title is required")
	}
	if !in.FundingRequirement.IsPositive() {
		return nil, apperr.Invalid("funding_requirement must be greater than zero")
	}
	if in.AlreadySecuredFunds.IsNegative() {
		return nil, apperr.Invalid("already_secured_funds cannot be negative")
	}

	var out *domain.Project
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		refID, err := nextReferenceID(ctx, r.Projects)
		if err != nil {
			return err
		}

		currency := in.Currency
		if currency == "" {
			currency = "INR"
		}
		p := &domain.Project{
			OrganizationType:    in.OrganizationType,
			OrganizationID:      in.OrganizationID,
			ProjectReferenceID:  refID,
			Title:               strings.TrimSpace(in.Title),
			Department:          in.Department,
			Category:            in.Category,
			Description:         in.Description,
			ContactPerson:       in.ContactPerson,
			ContactPersonEmail:  in.ContactPersonEmail,
			State:               in.State,
			City:                in.City,
			FundingRequirement:  in.FundingRequirement,
			AlreadySecuredFunds: in.AlreadySecuredFunds,
			Currency:            currency,
			Status:              domain.StatusDraft,
			CreatedBy:           in.CreatedBy,
		}
		p.RecomputeDerived()
		if err := r.Projects.Create(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("reference_id", out.ProjectReferenceID).Msg("project created")
	return out, nil
}

func (u *Usecase) GetByID(ctx context.Context, projectID uint64) (*domain.Project, error) {
	var out *domain.Project
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, projectID)
	}
	return out, nil
}

func (u *Usecase) GetByReferenceID(ctx context.Context, referenceID string) (*domain.Project, error) {
	var out *domain.Project
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Projects.GetByReferenceID(ctx, referenceID)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("project with reference id %q not found", referenceID))
		}
		return nil, err
	}
	return out, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]domain.Project, int64, error) {
	if in.Status != "" && !domain.ValidStatus(in.Status) {
		return nil, 0, apperr.Invalid("invalid project status filter")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 100
	}
	var (
		items []domain.Project
		total int64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		items, total, err = r.Projects.List(ctx, domain.Filter{
			Status:         domain.Status(in.Status),
			OrganizationID: in.OrganizationID,
			Category:       in.Category,
		}, limit, in.Offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update applies a partial edit. The reference id, status and derived
// financial fields are not editable through this path.
func (u *Usecase) Update(ctx context.Context, projectID uint64, in UpdateInput) (*domain.Project, error) {
	var out *domain.Project
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *domain.Project) error {
		applyUpdate(p, in)
		if !p.FundingRequirement.IsPositive() {
			return apperr.Invalid("funding_requirement must be greater than zero")
		}
		if in.UpdatedBy != "" {
			p.UpdatedBy = in.UpdatedBy
		}
		p.RecomputeDerived()
		if err := r.Projects.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, projectID)
	}
	return out, nil
}

// Submit moves a draft project into review.
func (u *Usecase) Submit(ctx context.Context, projectID uint64, actor string) (*domain.Project, error) {
	var out *domain.Project
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *domain.Project) error {
		if p.Status != domain.StatusDraft {
			return apperr.Conflict(fmt.Sprintf("cannot submit a project with status %q", p.Status))
		}
		p.Status = domain.StatusPendingValidation
		if actor != "" {
			p.UpdatedBy = actor
		}
		if err := r.Projects.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, projectID)
	}
	u.log.Info().Uint64("project_id", projectID).Msg("project submitted for validation")
	return out, nil
}

// Approve activates a project. Only pending_validation projects qualify;
// resubmitted ones come back through the same state.
func (u *Usecase) Approve(ctx context.Context, projectID uint64, approvedBy, adminNotes string) (*domain.Project, error) {
	var out *domain.Project
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *domain.Project) error {
		if p.Status == domain.StatusActive {
			return apperr.Conflict("project is already approved and active")
		}
		if p.Status != domain.StatusPendingValidation {
			return apperr.Conflict(fmt.Sprintf("cannot approve a project with status %q; project must be in 'pending_validation' status", p.Status))
		}
		now := time.Now().UTC()
		p.Status = domain.StatusActive
		p.ApprovedAt = &now
		p.ApprovedBy = approvedBy
		if adminNotes != "" {
			p.AdminNotes = adminNotes
		}
		if err := r.Projects.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, projectID)
	}
	u.log.Info().Uint64("project_id", projectID).Str("approved_by", approvedBy).Msg("project approved")
	return out, nil
}

// Reject marks a project rejected and records one rejection history row.
// Active and already-rejected projects cannot be rejected.
func (u *Usecase) Reject(ctx context.Context, projectID uint64, rejectedBy, note string) (*domain.Project, error) {
	if strings.TrimSpace(note) == "" {
		return nil, apperr.Invalid("reject note is mandatory and cannot be empty")
	}

	var out *domain.Project
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *domain.Project) error {
		if p.Status == domain.StatusRejected {
			return apperr.Conflict("project is already rejected")
		}
		if p.Status == domain.StatusActive {
			return apperr.Conflict("cannot reject an active project")
		}

		p.Status = domain.StatusRejected
		p.AdminNotes = strings.TrimSpace(note)
		p.ApprovedBy = rejectedBy
		if err := r.Projects.Save(ctx, p); err != nil {
			return err
		}
		if err := r.Rejections.Append(ctx, &domain.RejectionHistory{
			ProjectID:     p.ID,
			RejectedBy:    rejectedBy,
			RejectionNote: strings.TrimSpace(note),
		}); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, projectID)
	}
	u.log.Info().Uint64("project_id", projectID).Str("rejected_by", rejectedBy).Msg("project rejected")
	return out, nil
}

// Resubmit sends a rejected project back into review. Field updates are
// applied, the prior rejection text is preserved in admin_notes with a
// resubmission marker appended, approved_at is cleared (approved_by is kept
// for audit lineage) and the matching rejection row is stamped.
func (u *Usecase) Resubmit(ctx context.Context, projectID uint64, in ResubmitInput) (*domain.Project, error) {
	var out *domain.Project
	err := u.uow.WithinProjectTx(ctx, projectID, func(r uow.Repos, p *domain.Project) error {
		if p.Status != domain.StatusRejected {
			return apperr.Conflict(fmt.Sprintf("cannot resubmit a project with status %q; project must be in 'rejected' status", p.Status))
		}

		latest, err := r.Rejections.LatestByProjectID(ctx, p.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("rejection history not found for this project")
			}
			return err
		}

		if in.Status != nil || in.Currency != nil || in.ProjectReferenceID != nil {
			u.log.Warn().Uint64("project_id", projectID).Msg("resubmission attempted to set backend-controlled fields; ignoring")
		}
		applyUpdate(p, in.UpdateInput)
		if !p.FundingRequirement.IsPositive() {
			return apperr.Invalid("funding_requirement must be greater than zero")
		}

		now := time.Now().UTC()
		p.Status = domain.StatusPendingValidation
		p.ApprovedAt = nil

		marker := fmt.Sprintf("[RESUBMITTED on %s by %s]", now.Format("2006-01-02 15:04:05"), in.UpdatedBy)
		if in.ResubmissionNotes != "" {
			marker += ": " + in.ResubmissionNotes
		}
		if p.AdminNotes != "" {
			p.AdminNotes = p.AdminNotes + "\n\n" + marker
		} else {
			p.AdminNotes = marker
		}

		if in.UpdatedBy != "" {
			p.UpdatedBy = in.UpdatedBy
		}
		p.RecomputeDerived()
		if err := r.Projects.Save(ctx, p); err != nil {
			return err
		}

		latest.ResubmittedAt = &now
		if err := r.Rejections.Save(ctx, latest); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, projectID)
	}
	u.log.Info().Uint64("project_id", projectID).Msg("project resubmitted")
	return out, nil
}

// AddNote attaches a free-form note to a project.
func (u *Usecase) AddNote(ctx context.Context, projectID uint64, note, actor string) (*domain.Note, error) {
	if strings.TrimSpace(note) == "" {
		return nil, apperr.Invalid("note cannot be empty")
	}
	var out *domain.Note
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Projects.GetByID(ctx, projectID); err != nil {
			return err
		}
		n := &domain.Note{ProjectID: projectID, Note: strings.TrimSpace(note), CreatedBy: actor}
		if err := r.Notes.Create(ctx, n); err != nil {
			return err
		}
		out = n
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, projectID)
	}
	return out, nil
}

func (u *Usecase) ListNotes(ctx context.Context, projectID uint64) ([]domain.Note, error) {
	var out []domain.Note
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Projects.GetByID(ctx, projectID); err != nil {
			return err
		}
		var err error
		out, err = r.Notes.ListByProjectID(ctx, projectID)
		return err
	})
	if err != nil {
		return nil, notFoundOr(err, projectID)
	}
	return out, nil
}

// nextReferenceID builds PROJ-{year}-{seq} from the count of projects
// created in the current year.
func nextReferenceID(ctx context.Context, repo domain.Repository) (string, error) {
	year := time.Now().UTC().Year()
	count, err := repo.CountCreatedInYear(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PROJ-%d-%05d", year, count+1), nil
}

func applyUpdate(p *domain.Project, in UpdateInput) {
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Department != nil {
		p.Department = *in.Department
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ContactPerson != nil {
		p.ContactPerson = *in.ContactPerson
	}
	if in.ContactPersonEmail != nil {
		p.ContactPersonEmail = *in.ContactPersonEmail
	}
	if in.State != nil {
		p.State = *in.State
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.FundingRequirement != nil {
		p.FundingRequirement = *in.FundingRequirement
	}
	if in.AlreadySecuredFunds != nil {
		p.AlreadySecuredFunds = *in.AlreadySecuredFunds
	}
}

func notFoundOr(err error, projectID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(fmt.Sprintf("project with id %d not found", projectID))
	}
	return err
}
