package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/google/uuid"
)

// ReportValidator rejects malformed, duplicate and self-targeting reports.
// It never writes.
type ReportValidator struct {
	reports ReportStore
	users   UserStore
	recipes RecipeStore
}

func NewReportValidator(reports ReportStore, users UserStore, recipes RecipeStore) *ReportValidator {
	return &ReportValidator{reports: reports, users: users, recipes: recipes}
}

// Validate stops at the first failing check: target present, not self,
// no pending duplicate, target exists.
func (v *ReportValidator) Validate(ctx context.Context, req *dto.CreateReportRequest, reporterID uuid.UUID) error {
	if req.ReportedID == nil && req.RecipeID == nil {
		return ErrReportTargetRequired
	}

	if req.ReportedID != nil && *req.ReportedID == reporterID {
		return ErrCannotReportYourself
	}

	exists, err := v.reports.ExistsPendingByReporter(ctx, reporterID, req.ReportedID, req.RecipeID)
	if err != nil {
		return fmt.Errorf("failed to check duplicate report: %w", err)
	}
	if exists {
		return ErrReportAlreadyExists
	}

	if req.ReportedID != nil {
		ok, err := v.users.Exists(ctx, *req.ReportedID)
		if err != nil {
			return fmt.Errorf("failed to look up reported user: %w", err)
		}
		if !ok {
			return ErrReportedUserNotFound
		}
	}

	if req.RecipeID != nil {
		ok, err := v.recipes.Exists(ctx, *req.RecipeID)
		if err != nil {
			return fmt.Errorf("failed to look up reported recipe: %w", err)
		}
		if !ok {
			return ErrReportedRecipeNotFound
		}
	}

	return nil
}
