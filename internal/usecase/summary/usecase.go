package summary

import (
	"context"

	domainCommitment "munify-backend/internal/domain/commitment"
	domainProject "munify-backend/internal/domain/project"
	"munify-backend/internal/domain/uow"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProjectSummary aggregates one project's commitments by status and picks
// the best deal on offer.
type ProjectSummary struct {
	ProjectReferenceID string                       `json:"project_reference_id"`
	TotalCommitments   int                          `json:"total_commitments"`
	CountByStatus      map[string]int               `json:"count_by_status"`
	AmountUnderReview  decimal.Decimal              `json:"amount_under_review"`
	BestDeal           *domainCommitment.Commitment `json:"best_deal,omitempty"`
}

// FundedProject is a funding_completed project with its realized funding
// statistics.
type FundedProject struct {
	Project             domainProject.Project `json:"project"`
	AverageInterestRate *decimal.Decimal      `json:"average_interest_rate"`
	NumberOfInvestors   int                   `json:"number_of_investors"`
}

// LandingStatistics are the marketplace-wide headline figures.
type LandingStatistics struct {
	TotalFundsCommitted      decimal.Decimal `json:"total_funds_committed"`
	TotalApprovedCommitments int64           `json:"total_approved_commitments"`
}

type Usecase struct {
	uow uow.UnitOfWork
	log zerolog.Logger
}

func NewUsecase(tx uow.UnitOfWork, log zerolog.Logger) *Usecase {
	return &Usecase{uow: tx, log: log}
}

// ProjectCommitmentsSummary pages over every project that has at least one
// commitment and summarizes its pipeline.
func (u *Usecase) ProjectCommitmentsSummary(ctx context.Context, limit, offset int) ([]ProjectSummary, int64, error) {
	if limit <= 0 {
		limit = 100
	}
	var (
		out   []ProjectSummary
		total int64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		refs, n, err := r.Commitments.DistinctProjectIDs(ctx, limit, offset)
		if err != nil {
			return err
		}
		total = n
		out = make([]ProjectSummary, 0, len(refs))
		for _, ref := range refs {
			items, err := r.Commitments.ListByProject(ctx, ref)
			if err != nil {
				return err
			}
			out = append(out, summarize(ref, items))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func summarize(ref string, items []domainCommitment.Commitment) ProjectSummary {
	s := ProjectSummary{
		ProjectReferenceID: ref,
		TotalCommitments:   len(items),
		CountByStatus:      make(map[string]int),
		AmountUnderReview:  decimal.Zero,
	}
	for i := range items {
		c := &items[i]
		s.CountByStatus[string(c.Status)]++
		if c.Status == domainCommitment.StatusUnderReview {
			s.AmountUnderReview = s.AmountUnderReview.Add(c.Amount)
		}
	}
	s.BestDeal = bestDeal(items)
	return s
}

// bestDeal prefers the loan with the lowest interest rate among live
// commitments; if no loan carries a rate it falls back to the single
// largest amount. Ties go to the first commitment found.
func bestDeal(items []domainCommitment.Commitment) *domainCommitment.Commitment {
	live := func(s domainCommitment.Status) bool {
		switch s {
		case domainCommitment.StatusUnderReview, domainCommitment.StatusApproved,
			domainCommitment.StatusFunded, domainCommitment.StatusCompleted:
			return true
		}
		return false
	}

	var lowestRate *domainCommitment.Commitment
	for i := range items {
		c := &items[i]
		if !live(c.Status) || c.FundingMode != domainCommitment.ModeLoan || c.InterestRate == nil {
			continue
		}
		if lowestRate == nil || c.InterestRate.LessThan(*lowestRate.InterestRate) {
			lowestRate = c
		}
	}
	if lowestRate != nil {
		return lowestRate
	}

	var largest *domainCommitment.Commitment
	for i := range items {
		c := &items[i]
		if !live(c.Status) {
			continue
		}
		if largest == nil || c.Amount.GreaterThan(largest.Amount) {
			largest = c
		}
	}
	return largest
}

// FullyFundedProjects lists funding_completed projects with the average
// interest rate over rate-bearing approved commitments and the investor
// count. The average is nil, not zero, when no approved commitment carries
// a rate.
func (u *Usecase) FullyFundedProjects(ctx context.Context, limit, offset int) ([]FundedProject, int64, error) {
	if limit <= 0 {
		limit = 100
	}
	var (
		out   []FundedProject
		total int64
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		projects, n, err := r.Projects.List(ctx, domainProject.Filter{Status: domainProject.StatusFundingCompleted}, limit, offset)
		if err != nil {
			return err
		}
		total = n
		out = make([]FundedProject, 0, len(projects))
		for i := range projects {
			p := projects[i]
			approved, err := r.Commitments.ListByProjectAndStatus(ctx, p.ProjectReferenceID, domainCommitment.StatusApproved)
			if err != nil {
				return err
			}
			out = append(out, FundedProject{
				Project:             p,
				AverageInterestRate: averageRate(approved),
				NumberOfInvestors:   countRateBearing(approved),
			})
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func averageRate(items []domainCommitment.Commitment) *decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for i := range items {
		if items[i].InterestRate != nil {
			sum = sum.Add(*items[i].InterestRate)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum.Div(decimal.NewFromInt(int64(n))).Round(2)
	return &avg
}

func countRateBearing(items []domainCommitment.Commitment) int {
	n := 0
	for i := range items {
		if items[i].InterestRate != nil {
			n++
		}
	}
	return n
}

// Landing computes the marketplace headline figures.
func (u *Usecase) Landing(ctx context.Context) (*LandingStatistics, error) {
	var out LandingStatistics
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		committed, err := r.Commitments.SumAmountAllProjects(ctx, domainCommitment.FundedStatuses())
		if err != nil {
			return err
		}
		approved, err := r.Commitments.CountByStatus(ctx, domainCommitment.StatusApproved)
		if err != nil {
			return err
		}
		out = LandingStatistics{
			TotalFundsCommitted:      committed,
			TotalApprovedCommitments: approved,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
