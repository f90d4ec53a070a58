package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
	"github.com/google/uuid"
)

type CreateReportRequest struct {
	ReportedID  *uuid.UUID `json:"reported_id"`
	RecipeID    *uuid.UUID `json:"recipe_id"`
	ReportType  string     `json:"report_type" validate:"required"`
	Reason      string     `json:"reason" validate:"required,max=500"`
	Description string     `json:"description" validate:"max=2000"`
}

type ReviewReportRequest struct {
	ActionTaken       string `json:"action_taken" validate:"required"`
	ActionDescription string `json:"action_description" validate:"max=1000"`
	AdminNote         string `json:"admin_note" validate:"max=1000"`
}

// ReportFilter narrows report listings and group listings. Nil fields match
// everything.
type ReportFilter struct {
	Status     *models.ReportStatus
	ReportType *models.ReportType
	ActionType *models.ReportActionType
	ReporterID *uuid.UUID
	Page       PageRequest
}

type ReportPage struct {
	Reports []models.Report `json:"reports"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
}

type ReportStatistics struct {
	Total         int64                         `json:"total"`
	Pending       int64                         `json:"pending"`
	ReviewedToday int64                         `json:"reviewed_today"`
	ByStatus      map[models.ReportStatus]int64 `json:"by_status"`
	ByType        map[models.ReportType]int64   `json:"by_type"`
}

type TopReporter struct {
	ReporterID  uuid.UUID `json:"reporter_id"`
	Username    string    `json:"username,omitempty"`
	ReportCount int       `json:"report_count"`
}

// ReportGroup aggregates every report sharing one target.
type ReportGroup struct {
	TargetType     models.TargetType         `json:"target_type"`
	TargetID       uuid.UUID                 `json:"target_id"`
	TargetName     string                    `json:"target_name,omitempty"`
	ReportCount    int                       `json:"report_count"`
	PendingCount   int                       `json:"pending_count"`
	TypeBreakdown  map[models.ReportType]int `json:"type_breakdown"`
	WeightedScore  float64                   `json:"weighted_score"`
	Priority       models.ReportPriority     `json:"priority"`
	MostSevereType models.ReportType         `json:"most_severe_type"`
	LatestReportAt time.Time                 `json:"latest_report_at"`
	TopReporters   []TopReporter             `json:"top_reporters"`
}

type ReportGroupPage struct {
	Groups []ReportGroup `json:"groups"`
	Total  int           `json:"total"`
	Page   int           `json:"page"`
	Size   int           `json:"size"`
}

type ReportGroupDetail struct {
	ReportGroup
	Reports []models.Report `json:"reports"`
}
