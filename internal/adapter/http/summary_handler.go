package http

import (
	"net/http"

	"munify-backend/internal/usecase/summary"

	"github.com/labstack/echo/v4"
)

type SummaryHandler struct{ uc *summary.Usecase }

func NewSummaryHandler(uc *summary.Usecase) *SummaryHandler { return &SummaryHandler{uc: uc} }

func (h *SummaryHandler) ProjectCommitments(c echo.Context) error {
	items, total, err := h.uc.ProjectCommitmentsSummary(c.Request().Context(),
		queryInt(c, "limit", 100), queryInt(c, "offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *SummaryHandler) FullyFunded(c echo.Context) error {
	items, total, err := h.uc.FullyFundedProjects(c.Request().Context(),
		queryInt(c, "limit", 100), queryInt(c, "offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *SummaryHandler) Landing(c echo.Context) error {
	out, err := h.uc.Landing(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
