package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

// ReportNotificationOrchestrator tells every reporter of a target that their
// report was reviewed, once per report.
type ReportNotificationOrchestrator struct {
	reports      ReportStore
	synchronizer *ReportSynchronizer
	users        UserStore
	notifier     ReporterNotifier
	pool         TaskSubmitter
}

func NewReportNotificationOrchestrator(
	reports ReportStore,
	synchronizer *ReportSynchronizer,
	users UserStore,
	notifier ReporterNotifier,
	pool TaskSubmitter,
) *ReportNotificationOrchestrator {
	return &ReportNotificationOrchestrator{
		reports:      reports,
		synchronizer: synchronizer,
		users:        users,
		notifier:     notifier,
		pool:         pool,
	}
}

// NotifyAllReportersAsync hands the fan-out to the worker pool and returns.
// Nothing that goes wrong inside reaches the caller.
func (o *ReportNotificationOrchestrator) NotifyAllReportersAsync(reviewed *models.Report) {
	snapshot := *reviewed
	o.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("reporter notification task panicked",
					"report_id", snapshot.ID.String(), "error", fmt.Sprint(r))
				sentry.CurrentHub().Recover(r)
			}
		}()

		if err := o.NotifyAllReporters(context.Background(), &snapshot); err != nil {
			slog.Error("reporter notification task failed",
				"report_id", snapshot.ID.String(), "error", err.Error())
			sentry.CaptureException(err)
		}
	})
}

// NotifyAllReporters runs the fan-out on the calling goroutine. Reports whose
// reporter was already told in an earlier cycle are skipped; the ones
// attempted here are flagged afterwards whatever the delivery outcome.
func (o *ReportNotificationOrchestrator) NotifyAllReporters(ctx context.Context, reviewed *models.Report) error {
	related, err := o.synchronizer.FindRelatedReports(ctx, reviewed)
	if err != nil {
		return fmt.Errorf("failed to load related reports: %w", err)
	}

	// A report filed after the sync is still pending and waits for its own
	// review.
	pending := make([]models.Report, 0, len(related))
	for _, r := range related {
		if !r.ReportersNotified && !r.IsPending() {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 {
		slog.Info("all reporters already notified", "report_id", reviewed.ID.String())
		return nil
	}

	reporterIDs := distinctReporterIDs(pending)
	usernames, err := o.users.FindUsernamesByIDs(ctx, reporterIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve reporter usernames: %w", err)
	}

	delivered := 0
	for _, reporterID := range reporterIDs {
		username, ok := usernames[reporterID]
		if !ok {
			slog.Warn("reporter no longer exists, skipping notification",
				"report_id", reviewed.ID.String(), "user_id", reporterID.String())
			continue
		}
		if o.deliver(ctx, reviewed, username, reporterID) {
			delivered++
		}
	}

	for i := range pending {
		pending[i].ReportersNotified = true
	}
	if err := o.reports.SaveAll(ctx, pending); err != nil {
		return fmt.Errorf("failed to mark reporters notified: %w", err)
	}

	slog.Info("reporters notified", "report_id", reviewed.ID.String(),
		"reporters", len(reporterIDs), "delivered", delivered, "reports_marked", len(pending))
	return nil
}

func (o *ReportNotificationOrchestrator) deliver(ctx context.Context, reviewed *models.Report, username string, reporterID uuid.UUID) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("reporter notification panicked",
				"report_id", reviewed.ID.String(), "user_id", reporterID.String(), "error", fmt.Sprint(r))
			metrics.RecordReporterNotification(fmt.Errorf("panic: %v", r))
			ok = false
		}
	}()

	err := o.notifier.NotifyReporterReviewComplete(ctx, reviewed, username, reporterID)
	metrics.RecordReporterNotification(err)
	if err != nil {
		slog.Error("failed to notify reporter",
			"report_id", reviewed.ID.String(), "user_id", reporterID.String(), "error", err.Error())
		return false
	}
	return true
}

func distinctReporterIDs(reports []models.Report) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(reports))
	ids := make([]uuid.UUID, 0, len(reports))
	for _, r := range reports {
		if seen[r.ReporterID] {
			continue
		}
		seen[r.ReporterID] = true
		ids = append(ids, r.ReporterID)
	}
	return ids
}
