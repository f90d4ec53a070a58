package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportType string

const (
	ReportTypeSpam          ReportType = "SPAM"
	ReportTypeInappropriate ReportType = "INAPPROPRIATE"
	ReportTypeCopyright     ReportType = "COPYRIGHT"
	ReportTypeHarassment    ReportType = "HARASSMENT"
	ReportTypeFake          ReportType = "FAKE"
	ReportTypeMisleading    ReportType = "MISLEADING"
	ReportTypeOther         ReportType = "OTHER"
)

// ReportTypes lists every report type in declaration order. Scans that need a
// stable iteration order (e.g. most-severe-type ties) walk this slice.
var ReportTypes = []ReportType{
	ReportTypeSpam,
	ReportTypeInappropriate,
	ReportTypeCopyright,
	ReportTypeHarassment,
	ReportTypeFake,
	ReportTypeMisleading,
	ReportTypeOther,
}

func ParseReportType(s string) (ReportType, bool) {
	for _, t := range ReportTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusResolved ReportStatus = "RESOLVED"
	ReportStatusRejected ReportStatus = "REJECTED"
	ReportStatusApproved ReportStatus = "APPROVED"
)

var ReportStatuses = []ReportStatus{
	ReportStatusPending,
	ReportStatusResolved,
	ReportStatusRejected,
	ReportStatusApproved,
}

func ParseReportStatus(s string) (ReportStatus, bool) {
	for _, st := range ReportStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type ReportActionType string

const (
	ActionNoAction          ReportActionType = "NO_ACTION"
	ActionUserWarned        ReportActionType = "USER_WARNED"
	ActionUserSuspended     ReportActionType = "USER_SUSPENDED"
	ActionUserBanned        ReportActionType = "USER_BANNED"
	ActionRecipeUnpublished ReportActionType = "RECIPE_UNPUBLISHED"
	ActionRecipeEdited      ReportActionType = "RECIPE_EDITED"
	ActionContentRemoved    ReportActionType = "CONTENT_REMOVED"
	ActionOther             ReportActionType = "OTHER"
)

var ReportActionTypes = []ReportActionType{
	ActionNoAction,
	ActionUserWarned,
	ActionUserSuspended,
	ActionUserBanned,
	ActionRecipeUnpublished,
	ActionRecipeEdited,
	ActionContentRemoved,
	ActionOther,
}

func ParseReportActionType(s string) (ReportActionType, bool) {
	for _, a := range ReportActionTypes {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// TargetType is what a report (or a group of reports) is about.
type TargetType string

const (
	TargetTypeUser    TargetType = "USER"
	TargetTypeRecipe  TargetType = "RECIPE"
	TargetTypeUnknown TargetType = "UNKNOWN"
)

// ReportPriority ranks how urgently a report group needs admin attention.
type ReportPriority string

const (
	PriorityCritical ReportPriority = "CRITICAL"
	PriorityHigh     ReportPriority = "HIGH"
	PriorityMedium   ReportPriority = "MEDIUM"
	PriorityLow      ReportPriority = "LOW"
)

// Report is one user's submission flagging a user or a recipe.
type Report struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReporterID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ReportedID        *uuid.UUID        `gorm:"type:uuid;index" json:"reported_id,omitempty"`
	RecipeID          *uuid.UUID        `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	ReportType        ReportType        `gorm:"size:30;not null;index" json:"report_type"`
	Reason            string            `gorm:"not null;size:500" json:"reason"`
	Description       string            `gorm:"type:text" json:"description,omitempty"`
	Status            ReportStatus      `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	ActionTaken       *ReportActionType `gorm:"size:30" json:"action_taken,omitempty"`
	ActionDescription string            `gorm:"size:1000" json:"action_description,omitempty"`
	AdminNote         string            `gorm:"size:1000" json:"admin_note,omitempty"`
	ReportersNotified bool              `gorm:"not null;default:false" json:"reporters_notified"`
	ReviewedBy        *uuid.UUID        `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt         time.Time         `gorm:"<-:create" json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) IsPending() bool {
	return r.Status == ReportStatusPending
}

// TargetType reports USER when a reported user is set, RECIPE when only a
// recipe is set.
func (r *Report) TargetType() TargetType {
	switch {
	case r.ReportedID != nil:
		return TargetTypeUser
	case r.RecipeID != nil:
		return TargetTypeRecipe
	default:
		return TargetTypeUnknown
	}
}

// GroupTarget returns the target used to relate sibling reports: the recipe
// when present, otherwise the reported user.
func (r *Report) GroupTarget() (TargetType, uuid.UUID, bool) {
	if r.RecipeID != nil {
		return TargetTypeRecipe, *r.RecipeID, true
	}
	if r.ReportedID != nil {
		return TargetTypeUser, *r.ReportedID, true
	}
	return TargetTypeUnknown, uuid.Nil, false
}
