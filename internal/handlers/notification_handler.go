package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationInbox interface {
	List(ctx context.Context, recipientID uuid.UUID, page dto.PageRequest) (*dto.NotificationPage, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, recipientID, id uuid.UUID) error
}

type NotificationHandler struct {
	inbox NotificationInbox
}

func NewNotificationHandler(inbox NotificationInbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page, err := h.inbox.List(c.UserContext(), userID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "Failed to fetch notifications")
	}
	return c.JSON(page)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	n, err := h.inbox.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "Failed to count notifications")
	}
	return c.JSON(dto.UnreadCountResponse{Unread: n})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid notification ID")
	}

	if err := h.inbox.MarkRead(c.UserContext(), userID, id); err != nil {
		return respondError(c, err, "Failed to update notification")
	}
	return c.JSON(dto.MessageResponse{Message: "Notification marked as read"})
}
