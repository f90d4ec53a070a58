package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
)

const DefaultSuspensionDays = 30

// ReportActionExecutor applies the enforcement side of an admin decision.
type ReportActionExecutor struct {
	users          UserStore
	recipes        RecipeStore
	suspensionDays int
}

func NewReportActionExecutor(users UserStore, recipes RecipeStore, suspensionDays int) *ReportActionExecutor {
	if suspensionDays <= 0 {
		suspensionDays = DefaultSuspensionDays
	}
	return &ReportActionExecutor{users: users, recipes: recipes, suspensionDays: suspensionDays}
}

// Execute is a no-op for unreviewed reports. An action whose target id is
// missing is logged and skipped, not treated as an error.
func (e *ReportActionExecutor) Execute(ctx context.Context, report *models.Report) error {
	if report.ActionTaken == nil {
		return nil
	}

	action := *report.ActionTaken
	log := slog.With("report_id", report.ID.String(), "action", string(action))

	switch action {
	case models.ActionNoAction:
		log.Info("report closed without action")

	case models.ActionUserWarned:
		if report.ReportedID == nil {
			log.Warn("cannot warn user: report has no reported user")
			return nil
		}
		log.Info("user warned", "user_id", report.ReportedID.String())

	case models.ActionUserSuspended:
		if report.ReportedID == nil {
			log.Warn("cannot suspend user: report has no reported user")
			return nil
		}
		if err := e.users.SuspendUser(ctx, *report.ReportedID, e.suspensionDays); err != nil {
			return fmt.Errorf("failed to suspend user %s: %w", report.ReportedID, err)
		}
		log.Info("user suspended", "user_id", report.ReportedID.String(), "days", e.suspensionDays)

	case models.ActionUserBanned:
		if report.ReportedID == nil {
			log.Warn("cannot ban user: report has no reported user")
			return nil
		}
		if err := e.users.DisableUser(ctx, *report.ReportedID); err != nil {
			return fmt.Errorf("failed to ban user %s: %w", report.ReportedID, err)
		}
		log.Info("user banned", "user_id", report.ReportedID.String())

	case models.ActionRecipeUnpublished:
		if report.RecipeID == nil {
			log.Warn("cannot unpublish recipe: report has no recipe")
			return nil
		}
		if err := e.recipes.UnpublishRecipe(ctx, *report.RecipeID); err != nil {
			return fmt.Errorf("failed to unpublish recipe %s: %w", report.RecipeID, err)
		}
		log.Info("recipe unpublished", "recipe_id", report.RecipeID.String())

	case models.ActionRecipeEdited:
		if report.RecipeID == nil {
			log.Warn("cannot request recipe edit: report has no recipe")
			return nil
		}
		log.Info("recipe edit requested from author", "recipe_id", report.RecipeID.String())

	case models.ActionContentRemoved:
		log.Info("reported content removed")

	case models.ActionOther:
		log.Info("custom moderation action", "description", report.ActionDescription)

	default:
		panic(fmt.Sprintf("unhandled report action %q", action))
	}

	return nil
}
