package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"gorm.io/gorm"
)

const unknownTargetName = "Unknown"

// ReportTargetResolver names a report's target for notification content.
type ReportTargetResolver struct {
	users   UserStore
	recipes RecipeStore
}

func NewReportTargetResolver(users UserStore, recipes RecipeStore) *ReportTargetResolver {
	return &ReportTargetResolver{users: users, recipes: recipes}
}

// Resolve returns the target type and display name. A reported user wins
// over a recipe when both are set; the name is the reported user's, never the
// reporter's.
func (r *ReportTargetResolver) Resolve(ctx context.Context, report *models.Report) (models.TargetType, string, error) {
	if report.ReportedID != nil {
		username, err := r.users.FindUsernameByID(ctx, *report.ReportedID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", ErrUserNotFound
			}
			return "", "", fmt.Errorf("failed to resolve reported user: %w", err)
		}
		return models.TargetTypeUser, username, nil
	}

	if report.RecipeID != nil {
		title, err := r.recipes.FindRecipeTitleByID(ctx, *report.RecipeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", ErrRecipeNotFound
			}
			return "", "", fmt.Errorf("failed to resolve reported recipe: %w", err)
		}
		return models.TargetTypeRecipe, title, nil
	}

	return models.TargetTypeUnknown, unknownTargetName, nil
}
