package dto

import "github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/models"

type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Page          int                   `json:"page"`
	Size          int                   `json:"size"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// ReportReviewedPayload is stored as the JSON payload of a report-review
// notification.
type ReportReviewedPayload struct {
	ReportID    string `json:"report_id"`
	TargetType  string `json:"target_type"`
	TargetName  string `json:"target_name"`
	Status      string `json:"status"`
	ActionTaken string `json:"action_taken,omitempty"`
}
