package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// SuspendUser pushes the suspension end to now+days. Calling it again
// restarts the clock.
func (r *UserRepository) SuspendUser(ctx context.Context, id uuid.UUID, days int) error {
	until := r.now().AddDate(0, 0, days)
	return r.updateUser(ctx, id, map[string]interface{}{"suspended_until": until})
}

// DisableUser is permanent and idempotent.
func (r *UserRepository) DisableUser(ctx context.Context, id uuid.UUID) error {
	return r.updateUser(ctx, id, map[string]interface{}{"enabled": false})
}

func (r *UserRepository) updateUser(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := conn(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) FindUsernameByID(ctx context.Context, id uuid.UUID) (string, error) {
	var user models.User
	if err := conn(ctx, r.db).Select("id", "username").Where("id = ?", id).Take(&user).Error; err != nil {
		return "", err
	}
	return user.Username, nil
}

func (r *UserRepository) FindUsernamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	if err := conn(ctx, r.db).Select("id", "username").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}

// ReinstateExpiredSuspensions clears every suspension that ended at or
// before now and returns how many users it touched.
func (r *UserRepository) ReinstateExpiredSuspensions(ctx context.Context, now time.Time) (int64, error) {
	result := conn(ctx, r.db).Model(&models.User{}).
		Where("suspended_until IS NOT NULL AND suspended_until <= ?", now).
		Update("suspended_until", nil)
	return result.RowsAffected, result.Error
}

// FindRoleByID returns the role of an active account. Disabled users
// report gorm.ErrRecordNotFound.
func (r *UserRepository) FindRoleByID(ctx context.Context, id uuid.UUID) (string, error) {
	var user models.User
	if err := conn(ctx, r.db).Select("id", "role").Where("id = ? AND enabled = ?", id, true).Take(&user).Error; err != nil {
		return "", err
	}
	return user.Role, nil
}
