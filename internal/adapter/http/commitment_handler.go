package http

import (
	"net/http"

	"munify-backend/internal/usecase/commitment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CommitmentHandler struct{ uc *commitment.Usecase }

func NewCommitmentHandler(uc *commitment.Usecase) *CommitmentHandler {
	return &CommitmentHandler{uc: uc}
}

type createCommitmentReq struct {
	ProjectReferenceID  string           `json:"project_reference_id" validate:"required,projref"`
	OrganizationType    string           `json:"organization_type"    validate:"required"`
	OrganizationID      string           `json:"organization_id"      validate:"required"`
	CommittedBy         string           `json:"committed_by"         validate:"required"`
	Amount              decimal.Decimal  `json:"amount"               validate:"required,gt=0,dec2"`
	Currency            string           `json:"currency"`
	FundingMode         string           `json:"funding_mode"         validate:"required,fundingmode"`
	InterestRate        *decimal.Decimal `json:"interest_rate"        validate:"omitempty,gte=0,lte=100,dec2"`
	TenureMonths        *int             `json:"tenure_months"        validate:"omitempty,gte=1"`
	TermsConditionsText string           `json:"terms_conditions_text"`
	CreatedBy           string           `json:"created_by"`
}

func (h *CommitmentHandler) Create(c echo.Context) error {
	var req createCommitmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	out, err := h.uc.Create(c.Request().Context(), commitment.CreateInput{
		ProjectReferenceID:  req.ProjectReferenceID,
		OrganizationType:    req.OrganizationType,
		OrganizationID:      req.OrganizationID,
		CommittedBy:         req.CommittedBy,
		Amount:              req.Amount,
		Currency:            req.Currency,
		FundingMode:         req.FundingMode,
		InterestRate:        req.InterestRate,
		TenureMonths:        req.TenureMonths,
		TermsConditionsText: req.TermsConditionsText,
		CreatedBy:           actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CommitmentHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "commitment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid commitment_id path param"})
	}
	out, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CommitmentHandler) List(c echo.Context) error {
	items, total, err := h.uc.List(c.Request().Context(), commitment.ListInput{
		ProjectReferenceID: c.QueryParam("project_reference_id"),
		OrganizationID:     c.QueryParam("organization_id"),
		OrganizationType:   c.QueryParam("organization_type"),
		Status:             c.QueryParam("status"),
		Limit:              queryInt(c, "limit", 100),
		Offset:             queryInt(c, "offset", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total})
}

type updateCommitmentReq struct {
	Amount              *decimal.Decimal `json:"amount"        validate:"omitempty,gt=0,dec2"`
	Currency            *string          `json:"currency"`
	FundingMode         *string          `json:"funding_mode"  validate:"omitempty,fundingmode"`
	InterestRate        *decimal.Decimal `json:"interest_rate" validate:"omitempty,gte=0,lte=100,dec2"`
	TenureMonths        *int             `json:"tenure_months" validate:"omitempty,gte=1"`
	TermsConditionsText *string          `json:"terms_conditions_text"`
	UpdatedBy           string           `json:"updated_by"`
}

func (h *CommitmentHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "commitment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid commitment_id path param"})
	}
	var req updateCommitmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Update(c.Request().Context(), id, commitment.UpdateInput{
		Amount:              req.Amount,
		Currency:            req.Currency,
		FundingMode:         req.FundingMode,
		InterestRate:        req.InterestRate,
		TenureMonths:        req.TenureMonths,
		TermsConditionsText: req.TermsConditionsText,
		UpdatedBy:           actor(c, req.UpdatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type actorReq struct {
	UpdatedBy string `json:"updated_by"`
}

func (h *CommitmentHandler) Withdraw(c echo.Context) error {
	id, ok := pathID(c, "commitment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid commitment_id path param"})
	}
	var req actorReq
	_ = c.Bind(&req)
	out, err := h.uc.Withdraw(c.Request().Context(), id, actor(c, req.UpdatedBy))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type approveCommitmentReq struct {
	ApprovedBy    string `json:"approved_by"`
	ApprovalNotes string `json:"approval_notes"`
}

func (h *CommitmentHandler) Approve(c echo.Context) error {
	id, ok := pathID(c, "commitment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid commitment_id path param"})
	}
	var req approveCommitmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.Approve(c.Request().Context(), id, actor(c, req.ApprovedBy), req.ApprovalNotes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type rejectCommitmentReq struct {
	RejectedBy      string `json:"rejected_by"`
	RejectionReason string `json:"rejection_reason" validate:"required"`
	RejectionNotes  string `json:"rejection_notes"`
}

func (h *CommitmentHandler) Reject(c echo.Context) error {
	id, ok := pathID(c, "commitment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid commitment_id path param"})
	}
	var req rejectCommitmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Reject(c.Request().Context(), id, actor(c, req.RejectedBy), req.RejectionReason, req.RejectionNotes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CommitmentHandler) MarkFunded(c echo.Context) error {
	id, ok := pathID(c, "commitment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid commitment_id path param"})
	}
	var req actorReq
	_ = c.Bind(&req)
	out, err := h.uc.MarkFunded(c.Request().Context(), id, actor(c, req.UpdatedBy))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CommitmentHandler) MarkCompleted(c echo.Context) error {
	id, ok := pathID(c, "commitment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid commitment_id path param"})
	}
	var req actorReq
	_ = c.Bind(&req)
	out, err := h.uc.MarkCompleted(c.Request().Context(), id, actor(c, req.UpdatedBy))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CommitmentHandler) History(c echo.Context) error {
	id, ok := pathID(c, "commitment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid commitment_id path param"})
	}
	out, err := h.uc.History(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
