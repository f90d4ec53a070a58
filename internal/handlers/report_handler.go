package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ReportSubmitter is the user-facing side of the report service.
type ReportSubmitter interface {
	CreateReport(ctx context.Context, reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error)
	ListMyReports(ctx context.Context, reporterID uuid.UUID, page dto.PageRequest) (*dto.ReportPage, error)
}

type ReportHandler struct {
	reports ReportSubmitter
}

func NewReportHandler(reports ReportSubmitter) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateReportRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	report, err := h.reports.CreateReport(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err, "Failed to create report")
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) ListMyReports(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page, err := h.reports.ListMyReports(c.UserContext(), userID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "Failed to fetch reports")
	}
	return c.JSON(page)
}
