package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
)

// ReportSynchronizer keeps reports against the same target in the same
// review state.
//
// Two admins reviewing sibling reports at the same time can overwrite each
// other's outcome; the last sync wins.
type ReportSynchronizer struct {
	reports ReportStore
}

func NewReportSynchronizer(reports ReportStore) *ReportSynchronizer {
	return &ReportSynchronizer{reports: reports}
}

// FindRelatedReports returns every report sharing the report's target,
// including the report itself. Reports are related by recipe when one is
// set, otherwise by reported user.
func (s *ReportSynchronizer) FindRelatedReports(ctx context.Context, report *models.Report) ([]models.Report, error) {
	switch {
	case report.RecipeID != nil:
		return s.reports.FindAllByRecipeID(ctx, *report.RecipeID)
	case report.ReportedID != nil:
		return s.reports.FindAllByReportedID(ctx, *report.ReportedID)
	default:
		return []models.Report{}, nil
	}
}

// SyncRelatedReports copies the review outcome of reviewed onto all of its
// siblings and saves the whole group in one transaction.
func (s *ReportSynchronizer) SyncRelatedReports(ctx context.Context, reviewed *models.Report) error {
	related, err := s.FindRelatedReports(ctx, reviewed)
	if err != nil {
		return fmt.Errorf("failed to load related reports: %w", err)
	}
	if len(related) == 0 {
		return nil
	}

	synced := 0
	for i := range related {
		if related[i].ID == reviewed.ID {
			continue
		}
		related[i].Status = reviewed.Status
		related[i].ActionTaken = reviewed.ActionTaken
		related[i].ActionDescription = reviewed.ActionDescription
		related[i].ReviewedBy = reviewed.ReviewedBy
		related[i].ReviewedAt = reviewed.ReviewedAt
		synced++
	}

	if err := s.reports.SaveAll(ctx, related); err != nil {
		return fmt.Errorf("failed to save synced reports: %w", err)
	}

	if synced > 0 {
		slog.Info("synced related reports", "report_id", reviewed.ID.String(),
			"status", string(reviewed.Status), "synced", synced)
	}
	return nil
}
