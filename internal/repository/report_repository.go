package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	return conn(ctx, r.db).Create(report).Error
}

func (r *ReportRepository) Save(ctx context.Context, report *models.Report) error {
	return conn(ctx, r.db).Save(report).Error
}

// SaveAll writes the whole batch or nothing.
func (r *ReportRepository) SaveAll(ctx context.Context, reports []models.Report) error {
	if len(reports) == 0 {
		return nil
	}
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for i := range reports {
			if err := tx.Save(&reports[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := conn(ctx, r.db).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) FindAllByRecipeID(ctx context.Context, recipeID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := conn(ctx, r.db).
		Where("recipe_id = ?", recipeID).
		Order("created_at ASC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) FindAllByReportedID(ctx context.Context, userID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := conn(ctx, r.db).
		Where("reported_id = ?", userID).
		Order("created_at ASC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) CountPendingByReportedID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Report{}).
		Where("reported_id = ? AND status = ?", userID, models.ReportStatusPending).
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountPendingByRecipeID(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Report{}).
		Where("recipe_id = ? AND status = ?", recipeID, models.ReportStatusPending).
		Count(&count).Error
	return count, err
}

// ExistsPendingByReporter matches the exact (reported_id, recipe_id) pair,
// treating a nil id as SQL NULL.
func (r *ReportRepository) ExistsPendingByReporter(ctx context.Context, reporterID uuid.UUID, reportedID, recipeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&models.Report{}).
		Where("reporter_id = ? AND status = ?", reporterID, models.ReportStatusPending)
	if reportedID != nil {
		query = query.Where("reported_id = ?", *reportedID)
	} else {
		query = query.Where("reported_id IS NULL")
	}
	if recipeID != nil {
		query = query.Where("recipe_id = ?", *recipeID)
	} else {
		query = query.Where("recipe_id IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyReportFilter(query *gorm.DB, filter dto.ReportFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ReportType != nil {
		query = query.Where("report_type = ?", *filter.ReportType)
	}
	if filter.ActionType != nil {
		query = query.Where("action_taken = ?", *filter.ActionType)
	}
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	return query
}

func (r *ReportRepository) List(ctx context.Context, filter dto.ReportFilter) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := applyReportFilter(conn(ctx, r.db).Model(&models.Report{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Size).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *ReportRepository) FindMatching(ctx context.Context, filter dto.ReportFilter) ([]models.Report, error) {
	var reports []models.Report
	err := applyReportFilter(conn(ctx, r.db).Model(&models.Report{}), filter).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error) {
	var rows []struct {
		Status models.ReportStatus
		Count  int64
	}
	err := conn(ctx, r.db).Model(&models.Report{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ReportStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *ReportRepository) CountByType(ctx context.Context) (map[models.ReportType]int64, error) {
	var rows []struct {
		ReportType models.ReportType
		Count      int64
	}
	err := conn(ctx, r.db).Model(&models.Report{}).
		Select("report_type, count(*) AS count").
		Group("report_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ReportType]int64, len(rows))
	for _, row := range rows {
		counts[row.ReportType] = row.Count
	}
	return counts, nil
}

func (r *ReportRepository) CountReviewedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Report{}).
		Where("reviewed_at >= ?", since).
		Count(&count).Error
	return count, err
}
