package authctx

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithLocals(t *testing.T, token *jwt.Token, check func(c *fiber.Ctx) error) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if token != nil {
			c.Locals("user", token)
		}
		return check(c)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetUserID(t *testing.T) {
	id := uuid.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": id.String()})

	runWithLocals(t, token, func(c *fiber.Ctx) error {
		got, err := GetUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, id, got)
		return c.SendStatus(fiber.StatusOK)
	})
}

func TestGetUserIDWithoutToken(t *testing.T) {
	runWithLocals(t, nil, func(c *fiber.Ctx) error {
		_, err := GetUserID(c)
		assert.ErrorIs(t, err, ErrNoUser)
		return c.SendStatus(fiber.StatusOK)
	})
}

func TestGetUserIDMissingSub(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@b.c"})
	runWithLocals(t, token, func(c *fiber.Ctx) error {
		_, err := GetUserID(c)
		assert.Error(t, err)
		return c.SendStatus(fiber.StatusOK)
	})
}
