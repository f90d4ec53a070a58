package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AutoDisableUserThreshold     = 10
	AutoUnpublishRecipeThreshold = 5
)

// ReportAutoModerator disables users and unpublishes recipes once enough
// reports are pending against them. It only touches the target; the reports
// stay PENDING until an admin reviews them.
type ReportAutoModerator struct {
	reports ReportStore
	users   UserStore
	recipes RecipeStore
}

func NewReportAutoModerator(reports ReportStore, users UserStore, recipes RecipeStore) *ReportAutoModerator {
	return &ReportAutoModerator{reports: reports, users: users, recipes: recipes}
}

// CheckAutoModeration evaluates each non-nil target independently. It is safe
// to call after every new report; repeated enforcement is left to the stores
// to make idempotent.
func (m *ReportAutoModerator) CheckAutoModeration(ctx context.Context, reportedID, recipeID *uuid.UUID) error {
	var errs []error
	if reportedID != nil {
		if err := m.checkUser(ctx, *reportedID); err != nil {
			errs = append(errs, err)
		}
	}
	if recipeID != nil {
		if err := m.checkRecipe(ctx, *recipeID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *ReportAutoModerator) checkUser(ctx context.Context, userID uuid.UUID) error {
	count, err := m.reports.CountPendingByReportedID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count pending reports for user %s: %w", userID, err)
	}
	if count < AutoDisableUserThreshold {
		return nil
	}

	if err := m.users.DisableUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to auto-disable user %s: %w", userID, err)
	}
	metrics.RecordAutoModeration(metrics.AutoModerationUserDisabled)

	username, err := m.users.FindUsernameByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up auto-disabled user %s: %w", userID, err)
	}
	slog.Warn("user auto-disabled after pending reports",
		"user_id", userID.String(), "username", username, "pending_reports", count)
	return nil
}

func (m *ReportAutoModerator) checkRecipe(ctx context.Context, recipeID uuid.UUID) error {
	count, err := m.reports.CountPendingByRecipeID(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("failed to count pending reports for recipe %s: %w", recipeID, err)
	}
	if count < AutoUnpublishRecipeThreshold {
		return nil
	}

	if err := m.recipes.UnpublishRecipe(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to auto-unpublish recipe %s: %w", recipeID, err)
	}
	metrics.RecordAutoModeration(metrics.AutoModerationRecipeUnpublished)

	title, err := m.recipes.FindRecipeTitleByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportedRecipeNotFound
		}
		return fmt.Errorf("failed to look up auto-unpublished recipe %s: %w", recipeID, err)
	}
	slog.Warn("recipe auto-unpublished after pending reports",
		"recipe_id", recipeID.String(), "title", title, "pending_reports", count)
	return nil
}
