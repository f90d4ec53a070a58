package logging

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"gorm.io/gorm"
)

// PruneSystemLogs deletes system_logs rows older than retentionDays and
// returns how many were removed.
func PruneSystemLogs(ctx context.Context, db *gorm.DB, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
