package services

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/google/uuid"
)

// Stores the moderation core reads and writes through. Lookups that find
// nothing return gorm.ErrRecordNotFound.

type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	Save(ctx context.Context, report *models.Report) error
	// SaveAll persists every report in one transaction.
	SaveAll(ctx context.Context, reports []models.Report) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	FindAllByRecipeID(ctx context.Context, recipeID uuid.UUID) ([]models.Report, error)
	FindAllByReportedID(ctx context.Context, userID uuid.UUID) ([]models.Report, error)
	CountPendingByReportedID(ctx context.Context, userID uuid.UUID) (int64, error)
	CountPendingByRecipeID(ctx context.Context, recipeID uuid.UUID) (int64, error)
	ExistsPendingByReporter(ctx context.Context, reporterID uuid.UUID, reportedID, recipeID *uuid.UUID) (bool, error)
	List(ctx context.Context, filter dto.ReportFilter) ([]models.Report, int64, error)
	// FindMatching returns every report matching the filter, ignoring paging.
	FindMatching(ctx context.Context, filter dto.ReportFilter) ([]models.Report, error)
	CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error)
	CountByType(ctx context.Context) (map[models.ReportType]int64, error)
	CountReviewedSince(ctx context.Context, since time.Time) (int64, error)
}

type UserStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	SuspendUser(ctx context.Context, id uuid.UUID, days int) error
	DisableUser(ctx context.Context, id uuid.UUID) error
	FindUsernameByID(ctx context.Context, id uuid.UUID) (string, error)
	// FindUsernamesByIDs silently skips ids with no user.
	FindUsernamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type RecipeStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UnpublishRecipe(ctx context.Context, id uuid.UUID) error
	FindRecipeTitleByID(ctx context.Context, id uuid.UUID) (string, error)
	FindRecipeTitlesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, page dto.PageRequest) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, recipientID, id uuid.UUID, at time.Time) (bool, error)
}

// Transactor runs fn atomically. Store calls made with the context passed to
// fn take part in the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReporterNotifier delivers one "review complete" message to one reporter.
type ReporterNotifier interface {
	NotifyReporterReviewComplete(ctx context.Context, report *models.Report, username string, reporterID uuid.UUID) error
}

// TaskSubmitter runs fire-and-forget work off the request goroutine.
type TaskSubmitter interface {
	Submit(task func())
}
