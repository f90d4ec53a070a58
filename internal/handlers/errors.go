package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError writes a DomainError with its own status and code. Anything
// else is logged, sent to Sentry and hidden behind a 500.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	if de, ok := services.AsDomainError(err); ok {
		return c.Status(de.Status).JSON(dto.ErrorResponse{
			Error: true, Code: de.Code, Message: de.Message,
		})
	}

	slog.Error(fallback, "error", err.Error(), "request_id", authctx.RequestID(c), "path", c.Path())
	sentry.CaptureException(err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Code: "INTERNAL_ERROR", Message: fallback,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Code: "BAD_REQUEST", Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Code: "UNAUTHORIZED", Message: "Unauthorized",
	})
}

// parseAndValidate decodes the JSON body into req and runs struct
// validation. It writes the response itself and returns false on failure.
func parseAndValidate(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, badRequest(c, "Invalid request body")
	}
	fields, err := validateStruct(req)
	if err != nil {
		return false, badRequest(c, err.Error())
	}
	if fields != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "VALIDATION_FAILED", Message: "Request validation failed", Fields: fields,
		})
	}
	return true, nil
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page", 1), Size: c.QueryInt("size", dto.DefaultPageSize)}
}
