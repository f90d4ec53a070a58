package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// RoleLookup resolves a user's role from storage.
type RoleLookup interface {
	FindRoleByID(ctx context.Context, id uuid.UUID) (string, error)
}

// AdminRequired lets a request through when any of these holds:
// 1. X-Admin-Token matches ADMIN_TOKEN
// 2. the JWT sub is listed in ADMIN_USER_IDS
// 3. the user's stored role is admin
func AdminRequired(roles RoleLookup, cfg *config.Config) fiber.Handler {
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		if validAdminToken(c.Get("X-Admin-Token"), cfg.AdminToken) {
			return c.Next()
		}

		claims, ok := authctx.Claims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: "UNAUTHORIZED", Message: "Unauthorized",
			})
		}

		sub, _ := claims["sub"].(string)
		if contains(adminUserIDs, sub) {
			return c.Next()
		}

		if userID, err := uuid.Parse(sub); err == nil {
			role, err := roles.FindRoleByID(c.UserContext(), userID)
			if err == nil && role == RoleAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Code: "FORBIDDEN", Message: "Admin access required",
		})
	}
}

// validAdminToken compares in constant time. An unset ADMIN_TOKEN never
// matches.
func validAdminToken(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
