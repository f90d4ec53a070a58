package services

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"
)

type ReportStatusManager struct{}

func NewReportStatusManager() *ReportStatusManager {
	return &ReportStatusManager{}
}

// DetermineStatusFromAction maps an admin decision to the terminal status.
// Every ReportActionType must have a case; an unknown value panics.
func (m *ReportStatusManager) DetermineStatusFromAction(action models.ReportActionType) models.ReportStatus {
	switch action {
	case models.ActionNoAction:
		return models.ReportStatusRejected
	case models.ActionUserWarned, models.ActionRecipeEdited, models.ActionOther:
		return models.ReportStatusResolved
	case models.ActionUserSuspended, models.ActionUserBanned, models.ActionRecipeUnpublished, models.ActionContentRemoved:
		return models.ReportStatusApproved
	}
	panic(fmt.Sprintf("unmapped report action %q", action))
}
