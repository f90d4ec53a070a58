package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService is the entry point for the user and admin report endpoints.
type ReportService struct {
	reports       ReportStore
	tx            Transactor
	validator     *ReportValidator
	statusManager *ReportStatusManager
	executor      *ReportActionExecutor
	autoModerator *ReportAutoModerator
	synchronizer  *ReportSynchronizer
	notifier      *ReportNotificationOrchestrator
	now           func() time.Time
}

func NewReportService(
	reports ReportStore,
	tx Transactor,
	validator *ReportValidator,
	statusManager *ReportStatusManager,
	executor *ReportActionExecutor,
	autoModerator *ReportAutoModerator,
	synchronizer *ReportSynchronizer,
	notifier *ReportNotificationOrchestrator,
) *ReportService {
	return &ReportService{
		reports:       reports,
		tx:            tx,
		validator:     validator,
		statusManager: statusManager,
		executor:      executor,
		autoModerator: autoModerator,
		synchronizer:  synchronizer,
		notifier:      notifier,
		now:           time.Now,
	}
}

func (s *ReportService) CreateReport(ctx context.Context, reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	reportType, ok := models.ParseReportType(strings.ToUpper(strings.TrimSpace(req.ReportType)))
	if !ok {
		return nil, ErrInvalidReportType
	}
	if err := s.validator.Validate(ctx, req, reporterID); err != nil {
		return nil, err
	}

	report := models.Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		ReportedID:  req.ReportedID,
		RecipeID:    req.RecipeID,
		ReportType:  reportType,
		Reason:      strings.TrimSpace(req.Reason),
		Description: strings.TrimSpace(req.Description),
		Status:      models.ReportStatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.reports.Create(ctx, &report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	metrics.RecordReportCreated(report.ReportType)

	// The report is stored either way; a failed threshold check must not
	// fail the submission.
	if err := s.autoModerator.CheckAutoModeration(ctx, report.ReportedID, report.RecipeID); err != nil {
		slog.Error("auto-moderation check failed", "report_id", report.ID.String(), "error", err.Error())
	}

	return &report, nil
}

func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return report, nil
}

func (s *ReportService) ListReports(ctx context.Context, filter dto.ReportFilter) (*dto.ReportPage, error) {
	filter.Page.Normalize()
	reports, total, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return &dto.ReportPage{Reports: reports, Total: total, Page: filter.Page.Page, Size: filter.Page.Size}, nil
}

func (s *ReportService) ListMyReports(ctx context.Context, reporterID uuid.UUID, page dto.PageRequest) (*dto.ReportPage, error) {
	return s.ListReports(ctx, dto.ReportFilter{ReporterID: &reporterID, Page: page})
}

// ReviewReport closes a pending report: it records the decision, enforces
// it, aligns every sibling report and queues reporter notifications. The
// save, the enforcement and the sibling sync commit together; a failure in
// any of them leaves the whole group pending. Notifications are queued only
// after the commit and are not awaited.
func (s *ReportService) ReviewReport(ctx context.Context, id, adminID uuid.UUID, req *dto.ReviewReportRequest) (*models.Report, error) {
	action, ok := models.ParseReportActionType(strings.ToUpper(strings.TrimSpace(req.ActionTaken)))
	if !ok {
		return nil, ErrInvalidAction
	}

	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if !report.IsPending() {
		return nil, ErrReportAlreadyReviewed
	}

	reviewedAt := s.now()
	report.Status = s.statusManager.DetermineStatusFromAction(action)
	report.ActionTaken = &action
	report.ActionDescription = strings.TrimSpace(req.ActionDescription)
	report.AdminNote = strings.TrimSpace(req.AdminNote)
	report.ReviewedBy = &adminID
	report.ReviewedAt = &reviewedAt

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.reports.Save(ctx, report); err != nil {
			return fmt.Errorf("failed to save review: %w", err)
		}
		if err := s.executor.Execute(ctx, report); err != nil {
			return err
		}
		return s.synchronizer.SyncRelatedReports(ctx, report)
	})
	if err != nil {
		slog.Error("report review rolled back", "report_id", report.ID.String(),
			"action", string(action), "error", err.Error())
		return nil, err
	}
	metrics.RecordReview(action)

	s.notifier.NotifyAllReportersAsync(report)

	slog.Info("report reviewed", "report_id", report.ID.String(), "user_id", adminID.String(),
		"action", string(action), "status", string(report.Status))
	return report, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetReport(ctx, id); err != nil {
		return err
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

func (s *ReportService) GetStatistics(ctx context.Context) (*dto.ReportStatistics, error) {
	byStatus, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports by status: %w", err)
	}
	byType, err := s.reports.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports by type: %w", err)
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	reviewedToday, err := s.reports.CountReviewedSince(ctx, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviewed reports: %w", err)
	}

	stats := &dto.ReportStatistics{
		ByStatus:      make(map[models.ReportStatus]int64, len(models.ReportStatuses)),
		ByType:        make(map[models.ReportType]int64, len(models.ReportTypes)),
		ReviewedToday: reviewedToday,
	}
	for _, st := range models.ReportStatuses {
		stats.ByStatus[st] = byStatus[st]
		stats.Total += byStatus[st]
	}
	for _, t := range models.ReportTypes {
		stats.ByType[t] = byType[t]
	}
	stats.Pending = stats.ByStatus[models.ReportStatusPending]
	return stats, nil
}
