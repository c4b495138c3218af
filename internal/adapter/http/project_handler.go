package http

import (
	"net/http"

	"munify-backend/internal/usecase/project"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProjectHandler struct{ uc *project.Usecase }

func NewProjectHandler(uc *project.Usecase) *ProjectHandler { return &ProjectHandler{uc: uc} }

type createProjectReq struct {
	OrganizationType    string          `json:"organization_type"     validate:"required"`
	OrganizationID      string          `json:"organization_id"       validate:"required"`
	Title               string          `json:"title"                 validate:"required"`
	Department          string          `json:"department"`
	Category            string          `json:"category"`
	Description         string          `json:"description"`
	ContactPerson       string          `json:"contact_person"`
	ContactPersonEmail  string          `json:"contact_person_email"  validate:"omitempty,email"`
	State               string          `json:"state"`
	City                string          `json:"city"`
	FundingRequirement  decimal.Decimal `json:"funding_requirement"   validate:"required,gt=0,dec2"`
	AlreadySecuredFunds decimal.Decimal `json:"already_secured_funds" validate:"gte=0,dec2"`
	Currency            string          `json:"currency"`
	CreatedBy           string          `json:"created_by"`
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	p, err := h.uc.Create(c.Request().Context(), project.CreateInput{
		OrganizationType:    req.OrganizationType,
		OrganizationID:      req.OrganizationID,
		Title:               req.Title,
		Department:          req.Department,
		Category:            req.Category,
		Description:         req.Description,
		ContactPerson:       req.ContactPerson,
		ContactPersonEmail:  req.ContactPersonEmail,
		State:               req.State,
		City:                req.City,
		FundingRequirement:  req.FundingRequirement,
		AlreadySecuredFunds: req.AlreadySecuredFunds,
		Currency:            req.Currency,
		CreatedBy:           actor(c, req.CreatedBy),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	p, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) GetByReference(c echo.Context) error {
	ref := c.Param("reference_id")
	if ref == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing reference_id path param"})
	}
	p, err := h.uc.GetByReferenceID(c.Request().Context(), ref)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) List(c echo.Context) error {
	items, total, err := h.uc.List(c.Request().Context(), project.ListInput{
		Status:         c.QueryParam("status"),
		OrganizationID: c.QueryParam("organization_id"),
		Category:       c.QueryParam("category"),
		Limit:          queryInt(c, "limit", 100),
		Offset:         queryInt(c, "offset", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total})
}

type updateProjectReq struct {
	Title               *string          `json:"title"`
	Department          *string          `json:"department"`
	Category            *string          `json:"category"`
	Description         *string          `json:"description"`
	ContactPerson       *string          `json:"contact_person"`
	ContactPersonEmail  *string          `json:"contact_person_email"  validate:"omitempty,email"`
	State               *string          `json:"state"`
	City                *string          `json:"city"`
	FundingRequirement  *decimal.Decimal `json:"funding_requirement"   validate:"omitempty,gt=0,dec2"`
	AlreadySecuredFunds *decimal.Decimal `json:"already_secured_funds" validate:"omitempty,gte=0,dec2"`
	UpdatedBy           string           `json:"updated_by"`
}

func (r updateProjectReq) toInput(c echo.Context) project.UpdateInput {
	return project.UpdateInput{
		Title:               r.Title,
		Department:          r.Department,
		Category:            r.Category,
		Description:         r.Description,
		ContactPerson:       r.ContactPerson,
		ContactPersonEmail:  r.ContactPersonEmail,
		State:               r.State,
		City:                r.City,
		FundingRequirement:  r.FundingRequirement,
		AlreadySecuredFunds: r.AlreadySecuredFunds,
		UpdatedBy:           actor(c, r.UpdatedBy),
	}
}

func (h *ProjectHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	var req updateProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	p, err := h.uc.Update(c.Request().Context(), id, req.toInput(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type submitReq struct {
	SubmittedBy string `json:"submitted_by"`
}

func (h *ProjectHandler) Submit(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	var req submitReq
	_ = c.Bind(&req)
	p, err := h.uc.Submit(c.Request().Context(), id, actor(c, req.SubmittedBy))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type approveProjectReq struct {
	ApprovedBy string `json:"approved_by"`
	AdminNotes string `json:"admin_notes"`
}

func (h *ProjectHandler) Approve(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	var req approveProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	p, err := h.uc.Approve(c.Request().Context(), id, actor(c, req.ApprovedBy), req.AdminNotes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type rejectProjectReq struct {
	RejectedBy string `json:"rejected_by"`
	Note       string `json:"note" validate:"required"`
}

func (h *ProjectHandler) Reject(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	var req rejectProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	p, err := h.uc.Reject(c.Request().Context(), id, actor(c, req.RejectedBy), req.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type resubmitProjectReq struct {
	updateProjectReq
	Status             *string `json:"status"`
	Currency           *string `json:"currency"`
	ProjectReferenceID *string `json:"project_reference_id"`
	ResubmissionNotes  string  `json:"resubmission_notes"`
}

func (h *ProjectHandler) Resubmit(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	var req resubmitProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	p, err := h.uc.Resubmit(c.Request().Context(), id, project.ResubmitInput{
		UpdateInput:        req.toInput(c),
		Status:             req.Status,
		Currency:           req.Currency,
		ProjectReferenceID: req.ProjectReferenceID,
		ResubmissionNotes:  req.ResubmissionNotes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type addNoteReq struct {
	Note      string `json:"note" validate:"required"`
	CreatedBy string `json:"created_by"`
}

func (h *ProjectHandler) AddNote(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	var req addNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	n, err := h.uc.AddNote(c.Request().Context(), id, req.Note, actor(c, req.CreatedBy))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *ProjectHandler) ListNotes(c echo.Context) error {
	id, ok := pathID(c, "project_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project_id path param"})
	}
	notes, err := h.uc.ListNotes(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}
