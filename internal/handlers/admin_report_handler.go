package handlers

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ReportAdministration is the moderator-facing side of the report service.
type ReportAdministration interface {
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListReports(ctx context.Context, filter dto.ReportFilter) (*dto.ReportPage, error)
	ReviewReport(ctx context.Context, id, adminID uuid.UUID, req *dto.ReviewReportRequest) (*models.Report, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error
	GetStatistics(ctx context.Context) (*dto.ReportStatistics, error)
}

type ReportGroups interface {
	ListGroups(ctx context.Context, filter dto.ReportFilter) (*dto.ReportGroupPage, error)
	GetGroup(ctx context.Context, targetType models.TargetType, targetID uuid.UUID) (*dto.ReportGroupDetail, error)
}

type AdminReportHandler struct {
	reports ReportAdministration
	groups  ReportGroups
}

func NewAdminReportHandler(reports ReportAdministration, groups ReportGroups) *AdminReportHandler {
	return &AdminReportHandler{reports: reports, groups: groups}
}

func (h *AdminReportHandler) ListReports(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid filter")
	}

	page, err := h.reports.ListReports(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "Failed to fetch reports")
	}
	return c.JSON(page)
}

func (h *AdminReportHandler) GetReport(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid report ID")
	}

	report, err := h.reports.GetReport(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch report")
	}
	return c.JSON(report)
}

func (h *AdminReportHandler) ReviewReport(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid report ID")
	}

	// Token-authenticated admins have no user id; the review is then
	// recorded against the nil UUID.
	adminID, _ := authctx.GetUserID(c)

	var req dto.ReviewReportRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	report, err := h.reports.ReviewReport(c.UserContext(), id, adminID, &req)
	if err != nil {
		return respondError(c, err, "Failed to review report")
	}
	return c.JSON(report)
}

func (h *AdminReportHandler) DeleteReport(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid report ID")
	}

	if err := h.reports.DeleteReport(c.UserContext(), id); err != nil {
		return respondError(c, err, "Failed to delete report")
	}
	return c.JSON(dto.MessageResponse{Message: "Report deleted successfully"})
}

func (h *AdminReportHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.reports.GetStatistics(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to compute statistics")
	}
	return c.JSON(stats)
}

func (h *AdminReportHandler) ListGroups(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid filter")
	}

	page, err := h.groups.ListGroups(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "Failed to fetch report groups")
	}
	return c.JSON(page)
}

func (h *AdminReportHandler) GetGroup(c *fiber.Ctx) error {
	targetType := models.TargetType(strings.ToUpper(c.Params("targetType")))
	targetID, ok := parseUUIDParam(c, "targetId")
	if !ok {
		return badRequest(c, "Invalid target ID")
	}

	detail, err := h.groups.GetGroup(c.UserContext(), targetType, targetID)
	if err != nil {
		return respondError(c, err, "Failed to fetch report group")
	}
	return c.JSON(detail)
}

// filterFromQuery reads status, report_type, action_type and paging.
// Unknown enum values are rejected rather than ignored.
func filterFromQuery(c *fiber.Ctx) (dto.ReportFilter, error) {
	filter := dto.ReportFilter{Page: pageFromQuery(c)}

	if raw := c.Query("status"); raw != "" {
		st, ok := models.ParseReportStatus(strings.ToUpper(raw))
		if !ok {
			return filter, services.ErrInvalidStatus
		}
		filter.Status = &st
	}
	if raw := c.Query("report_type"); raw != "" {
		rt, ok := models.ParseReportType(strings.ToUpper(raw))
		if !ok {
			return filter, services.ErrInvalidReportType
		}
		filter.ReportType = &rt
	}
	if raw := c.Query("action_type"); raw != "" {
		at, ok := models.ParseReportActionType(strings.ToUpper(raw))
		if !ok {
			return filter, services.ErrInvalidAction
		}
		filter.ActionType = &at
	}
	return filter, nil
}
