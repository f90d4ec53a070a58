package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *RecipeRepository) UnpublishRecipe(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Model(&models.Recipe{}).Where("id = ?", id).Update("published", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RecipeRepository) FindRecipeTitleByID(ctx context.Context, id uuid.UUID) (string, error) {
	var recipe models.Recipe
	if err := conn(ctx, r.db).Select("id", "title").Where("id = ?", id).Take(&recipe).Error; err != nil {
		return "", err
	}
	return recipe.Title, nil
}

func (r *RecipeRepository) FindRecipeTitlesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	titles := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	var recipes []models.Recipe
	if err := conn(ctx, r.db).Select("id", "title").Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}
	for _, rc := range recipes {
		titles[rc.ID] = rc.Title
	}
	return titles, nil
}
