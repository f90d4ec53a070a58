package services

import (
	"errors"
	"net/http"
)

// DomainError is a client-facing failure with a machine-readable code. The
// HTTP layer maps it straight onto its status.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	ErrReportTargetRequired   = &DomainError{Code: "REPORT_TARGET_REQUIRED", Message: "either reported_id or recipe_id is required", Status: http.StatusBadRequest}
	ErrCannotReportYourself   = &DomainError{Code: "CANNOT_REPORT_YOURSELF", Message: "you cannot report yourself", Status: http.StatusBadRequest}
	ErrReportAlreadyExists    = &DomainError{Code: "REPORT_ALREADY_EXISTS", Message: "you already have a pending report for this target", Status: http.StatusConflict}
	ErrReportedUserNotFound   = &DomainError{Code: "REPORTED_USER_NOT_FOUND", Message: "reported user not found", Status: http.StatusNotFound}
	ErrReportedRecipeNotFound = &DomainError{Code: "REPORTED_RECIPE_NOT_FOUND", Message: "reported recipe not found", Status: http.StatusNotFound}
	ErrUserNotFound           = &DomainError{Code: "USER_NOT_FOUND", Message: "user not found", Status: http.StatusNotFound}
	ErrRecipeNotFound         = &DomainError{Code: "RECIPE_NOT_FOUND", Message: "recipe not found", Status: http.StatusNotFound}
	ErrReportNotFound         = &DomainError{Code: "REPORT_NOT_FOUND", Message: "report not found", Status: http.StatusNotFound}
	ErrReportAlreadyReviewed  = &DomainError{Code: "REPORT_ALREADY_REVIEWED", Message: "report has already been reviewed", Status: http.StatusConflict}
	ErrInvalidReportType      = &DomainError{Code: "INVALID_REPORT_TYPE", Message: "invalid report_type", Status: http.StatusBadRequest}
	ErrInvalidAction          = &DomainError{Code: "INVALID_ACTION", Message: "invalid action_taken", Status: http.StatusBadRequest}
	ErrNotificationNotFound   = &DomainError{Code: "NOTIFICATION_NOT_FOUND", Message: "notification not found", Status: http.StatusNotFound}
	ErrReportGroupNotFound    = &DomainError{Code: "REPORT_GROUP_NOT_FOUND", Message: "no reports found for this target", Status: http.StatusNotFound}
	ErrInvalidTargetType      = &DomainError{Code: "INVALID_TARGET_TYPE", Message: "target type must be USER or RECIPE", Status: http.StatusBadRequest}
	ErrInvalidStatus          = &DomainError{Code: "INVALID_STATUS", Message: "invalid status", Status: http.StatusBadRequest}
)

// AsDomainError unwraps err to a *DomainError if it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
