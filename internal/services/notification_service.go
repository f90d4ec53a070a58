package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationService stores in-app notifications and serves them back to
// their recipients.
type NotificationService struct {
	store    NotificationStore
	resolver *ReportTargetResolver
	now      func() time.Time
}

func NewNotificationService(store NotificationStore, resolver *ReportTargetResolver) *NotificationService {
	return &NotificationService{store: store, resolver: resolver, now: time.Now}
}

func (s *NotificationService) NotifyReporterReviewComplete(ctx context.Context, report *models.Report, username string, reporterID uuid.UUID) error {
	targetType, targetName, err := s.resolver.Resolve(ctx, report)
	if err != nil {
		// The target may have been deleted since the review; the reporter
		// still gets told about the outcome.
		slog.Warn("could not resolve report target for notification",
			"report_id", report.ID.String(), "error", err.Error())
		targetType, targetName = report.TargetType(), unknownTargetName
	}

	payload := dto.ReportReviewedPayload{
		ReportID:   report.ID.String(),
		TargetType: string(targetType),
		TargetName: targetName,
		Status:     string(report.Status),
	}
	if report.ActionTaken != nil {
		payload.ActionTaken = string(*report.ActionTaken)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	n := &models.Notification{
		ID:          uuid.New(),
		RecipientID: reporterID,
		Type:        models.NotificationReportReviewed,
		Title:       "Your report has been reviewed",
		Message:     reviewMessage(username, targetType, targetName, report.Status),
		Payload:     datatypes.JSON(raw),
		CreatedAt:   s.now(),
	}
	if err := s.store.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

func reviewMessage(username string, targetType models.TargetType, targetName string, status models.ReportStatus) string {
	var subject string
	switch targetType {
	case models.TargetTypeUser:
		subject = fmt.Sprintf("the user %q", targetName)
	case models.TargetTypeRecipe:
		subject = fmt.Sprintf("the recipe %q", targetName)
	default:
		subject = "the reported content"
	}

	var outcome string
	switch status {
	case models.ReportStatusApproved:
		outcome = "action has been taken"
	case models.ReportStatusResolved:
		outcome = "it has been resolved"
	case models.ReportStatusRejected:
		outcome = "no violation was found"
	default:
		outcome = "it is being handled"
	}

	return fmt.Sprintf("Hi %s, thanks for reporting %s. Our moderators reviewed it and %s.", username, subject, outcome)
}

func (s *NotificationService) List(ctx context.Context, recipientID uuid.UUID, page dto.PageRequest) (*dto.NotificationPage, error) {
	page.Normalize()
	items, total, err := s.store.ListByRecipient(ctx, recipientID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return &dto.NotificationPage{Notifications: items, Total: total, Page: page.Page, Size: page.Size}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.store.CountUnread(ctx, recipientID)
}

func (s *NotificationService) MarkRead(ctx context.Context, recipientID, id uuid.UUID) error {
	ok, err := s.store.MarkRead(ctx, recipientID, id, s.now())
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}
