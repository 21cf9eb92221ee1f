package handlers

import (
	"Donation-Hub/domain"
	"Donation-Hub/internal/api/presenters"
	"Donation-Hub/pkg/report"

	"github.com/gofiber/fiber/v2"
)

type (
	ReportHandler interface {
		GetDonorDetails(c *fiber.Ctx) error
		GetDonorStats(c *fiber.Ctx) error
		GetDonorsByIDs(c *fiber.Ctx) error
		GetOrganizationStats(c *fiber.Ctx) error
		Leaderboard(c *fiber.Ctx) error
		MonthlyChart(c *fiber.Ctx) error
	}

	reportHandler struct {
		reportService report.ReportService
	}
)

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandler{reportService: reportService}
}

// GetDonorDetails serves the query-string form of GetDonorStats.
func (h *reportHandler) GetDonorDetails(c *fiber.Ctx) error {
	return h.donorStats(c, c.Query("donor_id"))
}

func (h *reportHandler) GetDonorStats(c *fiber.Ctx) error {
	return h.donorStats(c, c.Params("id"))
}

func (h *reportHandler) donorStats(c *fiber.Ctx, donorID string) error {
	res, err := h.reportService.GetDonorStats(c.Context(), donorID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDonorStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonorStats)
}

func (h *reportHandler) GetDonorsByIDs(c *fiber.Ctx) error {
	req := new(domain.DonorIDsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.reportService.GetDonorsByIDs(c.Context(), req.DonorIDs)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDonors, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonors)
}

func (h *reportHandler) GetOrganizationStats(c *fiber.Ctx) error {
	res, err := h.reportService.GetOrganizationStats(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetOrganizationStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrganizationStats)
}

func (h *reportHandler) Leaderboard(c *fiber.Ctx) error {
	res, err := h.reportService.Leaderboard(c.Context())
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetLeaderboard, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLeaderboard)
}

func (h *reportHandler) MonthlyChart(c *fiber.Ctx) error {
	res, err := h.reportService.MonthlyChart(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetMonthlyChart, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMonthlyChart)
}
