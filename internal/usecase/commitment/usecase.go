package commitment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "munify-backend/internal/domain/commitment"
	domainProject "munify-backend/internal/domain/project"
	"munify-backend/internal/domain/uow"
	"munify-backend/pkg/apperr"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	actionCreated   = "created"
	actionUpdated   = "updated"
	actionWithdrawn = "withdrawn"
	actionApproved  = "approved"
	actionRejected  = "rejected"
	actionFunded    = "funded"
	actionCompleted = "completed"
)

type Usecase struct {
	uow uow.UnitOfWork
	log zerolog.Logger
}

func NewUsecase(tx uow.UnitOfWork, log zerolog.Logger) *Usecase {
	return &Usecase{uow: tx, log: log}
}

// Create registers a new commitment in under_review status. The amount is
// accepted as-is here; positivity is enforced at approval time so lenders
// can refine a provisional pledge while it is under review.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.Commitment, error) {
	if !domain.ValidFundingMode(in.FundingMode) {
		return nil, apperr.Invalid("funding_mode must be one of: loan, grant, csr")
	}

	var out *domain.Commitment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Projects.GetByReferenceID(ctx, in.ProjectReferenceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(fmt.Sprintf("project with reference id %q not found", in.ProjectReferenceID))
			}
			return err
		}

		currency := in.Currency
		if currency == "" {
			currency = "INR"
		}
		c := &domain.Commitment{
			ProjectID:           p.ProjectReferenceID,
			OrganizationType:    in.OrganizationType,
			OrganizationID:      in.OrganizationID,
			CommittedBy:         in.CommittedBy,
			Amount:              in.Amount,
			Currency:            currency,
			FundingMode:         domain.FundingMode(in.FundingMode),
			InterestRate:        in.InterestRate,
			TenureMonths:        in.TenureMonths,
			TermsConditionsText: in.TermsConditionsText,
			Status:              domain.StatusUnderReview,
			CreatedBy:           in.CreatedBy,
		}
		if err := r.Commitments.Create(ctx, c); err != nil {
			return err
		}

		actor := in.CreatedBy
		if actor == "" {
			actor = in.CommittedBy
		}
		if err := r.History.Append(ctx, domain.Snapshot(c, actionCreated, actor)); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Uint64("commitment_id", out.ID).Str("project", out.ProjectID).Msg("commitment created")
	return out, nil
}

// Update edits a commitment while it is still under review. Every edit
// bumps update_count and appends a history row in the same transaction.
func (u *Usecase) Update(ctx context.Context, commitmentID uint64, in UpdateInput) (*domain.Commitment, error) {
	if in.FundingMode != nil && !domain.ValidFundingMode(*in.FundingMode) {
		return nil, apperr.Invalid("funding_mode must be one of: loan, grant, csr")
	}

	var out *domain.Commitment
	err := u.uow.WithinCommitmentTx(ctx, commitmentID, func(r uow.Repos, c *domain.Commitment) error {
		if !c.Modifiable() {
			return apperr.Conflict("commitment can only be modified while it is in 'under_review' status")
		}

		if in.Amount != nil {
			c.Amount = *in.Amount
		}
		if in.Currency != nil {
			c.Currency = *in.Currency
		}
		if in.FundingMode != nil {
			c.FundingMode = domain.FundingMode(*in.FundingMode)
		}
		if in.InterestRate != nil {
			c.InterestRate = in.InterestRate
		}
		if in.TenureMonths != nil {
			c.TenureMonths = in.TenureMonths
		}
		if in.TermsConditionsText != nil {
			c.TermsConditionsText = *in.TermsConditionsText
		}

		c.UpdateCount++
		if in.UpdatedBy != "" {
			c.UpdatedBy = in.UpdatedBy
		}
		if err := r.Commitments.Save(ctx, c); err != nil {
			return err
		}

		actor := in.UpdatedBy
		if actor == "" {
			actor = c.CommittedBy
		}
		if err := r.History.Append(ctx, domain.Snapshot(c, actionUpdated, actor)); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, commitmentID)
	}
	return out, nil
}

// Withdraw moves an under_review commitment to the withdrawn terminal
// state. No project-side validation applies.
func (u *Usecase) Withdraw(ctx context.Context, commitmentID uint64, actor string) (*domain.Commitment, error) {
	var out *domain.Commitment
	err := u.uow.WithinCommitmentTx(ctx, commitmentID, func(r uow.Repos, c *domain.Commitment) error {
		if c.Status != domain.StatusUnderReview {
			return apperr.Conflict("only commitments in 'under_review' status can be withdrawn")
		}
		c.Status = domain.StatusWithdrawn
		if actor != "" {
			c.UpdatedBy = actor
		}
		if err := r.Commitments.Save(ctx, c); err != nil {
			return err
		}
		if err := r.History.Append(ctx, domain.Snapshot(c, actionWithdrawn, fallback(actor, c.CommittedBy))); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, commitmentID)
	}
	u.log.Info().Uint64("commitment_id", commitmentID).Msg("commitment withdrawn")
	return out, nil
}

// Approve transitions under_review → approved. Validations run in a fixed
// order: amount positivity, project activity, then the gap guard. The gap
// sum includes the commitment being approved (still under_review at check
// time), so it counts itself exactly once. On success the funding
// aggregator recomputes the project's funding_raised inside the same
// transaction.
func (u *Usecase) Approve(ctx context.Context, commitmentID uint64, approvedBy, notes string) (*domain.Commitment, error) {
	var out *domain.Commitment
	err := u.uow.WithinCommitmentTx(ctx, commitmentID, func(r uow.Repos, c *domain.Commitment) error {
		if c.Status != domain.StatusUnderReview {
			return apperr.Conflict("only commitments in 'under_review' status can be approved")
		}

		p, err := r.Projects.GetByReferenceIDForUpdate(ctx, c.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(fmt.Sprintf("project with reference id %q not found", c.ProjectID))
			}
			return err
		}

		if !c.Amount.IsPositive() {
			return apperr.Invalid("commitment amount must be greater than zero")
		}
		if p.Status != domainProject.StatusActive {
			return apperr.Conflict("project must be active to approve commitments")
		}
		total, err := r.Commitments.SumAmountByStatuses(ctx, p.ProjectReferenceID, domain.GapStatuses())
		if err != nil {
			return err
		}
		if total.GreaterThan(p.CommitmentGap) {
			return apperr.Conflict(fmt.Sprintf(
				"total commitments %s exceed the project commitment gap %s",
				total.StringFixed(2), p.CommitmentGap.StringFixed(2)))
		}

		now := time.Now().UTC()
		c.Status = domain.StatusApproved
		c.ApprovedBy = approvedBy
		c.ApprovedAt = &now
		if notes != "" {
			c.RejectionNotes = notes
		}
		c.UpdatedBy = approvedBy
		if err := r.Commitments.Save(ctx, c); err != nil {
			return err
		}

		if err := recomputeFundingRaised(ctx, r, p); err != nil {
			return err
		}

		if err := r.History.Append(ctx, domain.Snapshot(c, actionApproved, approvedBy)); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, commitmentID)
	}
	u.log.Info().Uint64("commitment_id", commitmentID).Str("approved_by", approvedBy).Msg("commitment approved")
	return out, nil
}

// Reject transitions under_review → rejected. A non-empty reason is
// mandatory; the rejecting admin is recorded in approved_by.
func (u *Usecase) Reject(ctx context.Context, commitmentID uint64, rejectedBy, reason, notes string) (*domain.Commitment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Invalid("rejection reason is mandatory and cannot be empty")
	}

	var out *domain.Commitment
	err := u.uow.WithinCommitmentTx(ctx, commitmentID, func(r uow.Repos, c *domain.Commitment) error {
		if c.Status != domain.StatusUnderReview {
			return apperr.Conflict("only commitments in 'under_review' status can be rejected")
		}
		c.Status = domain.StatusRejected
		c.ApprovedBy = rejectedBy
		c.RejectionReason = strings.TrimSpace(reason)
		c.RejectionNotes = notes
		c.UpdatedBy = rejectedBy
		if err := r.Commitments.Save(ctx, c); err != nil {
			return err
		}
		if err := r.History.Append(ctx, domain.Snapshot(c, actionRejected, rejectedBy)); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, commitmentID)
	}
	u.log.Info().Uint64("commitment_id", commitmentID).Str("rejected_by", rejectedBy).Msg("commitment rejected")
	return out, nil
}

// MarkFunded transitions approved → funded. Membership in the
// funding_raised set is unchanged, so no recompute is needed.
func (u *Usecase) MarkFunded(ctx context.Context, commitmentID uint64, actor string) (*domain.Commitment, error) {
	return u.simpleTransition(ctx, commitmentID, actor,
		domain.StatusApproved, domain.StatusFunded, actionFunded,
		"only commitments in 'approved' status can be marked as funded")
}

// MarkCompleted transitions funded → completed.
func (u *Usecase) MarkCompleted(ctx context.Context, commitmentID uint64, actor string) (*domain.Commitment, error) {
	return u.simpleTransition(ctx, commitmentID, actor,
		domain.StatusFunded, domain.StatusCompleted, actionCompleted,
		"only commitments in 'funded' status can be marked as completed")
}

func (u *Usecase) simpleTransition(ctx context.Context, commitmentID uint64, actor string, from, to domain.Status, action, conflictMsg string) (*domain.Commitment, error) {
	var out *domain.Commitment
	err := u.uow.WithinCommitmentTx(ctx, commitmentID, func(r uow.Repos, c *domain.Commitment) error {
		if c.Status != from {
			return apperr.Conflict(conflictMsg)
		}
		c.Status = to
		if actor != "" {
			c.UpdatedBy = actor
		}
		if err := r.Commitments.Save(ctx, c); err != nil {
			return err
		}
		if err := r.History.Append(ctx, domain.Snapshot(c, action, fallback(actor, c.ApprovedBy))); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, commitmentID)
	}
	u.log.Info().Uint64("commitment_id", commitmentID).Str("action", action).Msg("commitment transitioned")
	return out, nil
}

func (u *Usecase) GetByID(ctx context.Context, commitmentID uint64) (*domain.Commitment, error) {
	var out *domain.Commitment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Commitments.GetByID(ctx, commitmentID)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, commitmentID)
	}
	return out, nil
}

// List returns commitments matching the filters, newest-first, plus the
// unpaginated total.
func (u *Usecase) List(ctx context.Context, in ListInput) ([]domain.Commitment, int64, error) {
	if in.Status != "" && !domain.ValidStatus(in.Status) {
		return nil, 0, apperr.Invalid("invalid commitment status filter")
	}
	f := domain.Filter{
		ProjectID:        in.ProjectReferenceID,
		OrganizationID:   in.OrganizationID,
		OrganizationType: in.OrganizationType,
		Status:           domain.Status(in.Status),
	}
	var (
		items []domain.Commitment
		total int64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		items, total, err = r.Commitments.List(ctx, f, limitOrDefault(in.Limit), in.Offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// History returns the audit trail oldest-first.
func (u *Usecase) History(ctx context.Context, commitmentID uint64) ([]domain.History, error) {
	var out []domain.History
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Commitments.GetByID(ctx, commitmentID); err != nil {
			return err
		}
		var err error
		out, err = r.History.ListByCommitmentID(ctx, commitmentID)
		return err
	})
	if err != nil {
		return nil, notFoundOr(err, commitmentID)
	}
	return out, nil
}

// recomputeFundingRaised is the funding aggregator: it rebuilds the
// project's funding_raised from the full commitment set rather than
// applying a delta, so a partial failure can never leave drift behind.
func recomputeFundingRaised(ctx context.Context, r uow.Repos, p *domainProject.Project) error {
	raised, err := r.Commitments.SumAmountByStatuses(ctx, p.ProjectReferenceID, domain.FundedStatuses())
	if err != nil {
		return err
	}
	p.FundingRaised = raised
	p.RecomputeDerived()
	return r.Projects.Save(ctx, p)
}

func notFoundOr(err error, commitmentID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(fmt.Sprintf("commitment with id %d not found", commitmentID))
	}
	return err
}

func fallback(actor, instead string) string {
	if actor != "" {
		return actor
	}
	return instead
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}
