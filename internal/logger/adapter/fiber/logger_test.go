package fiber_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/GoDocVault/GoDocVault/internal/logger/adapter/fiber"
	"github.com/GoDocVault/GoDocVault/internal/logger"
)

func TestNew(t *testing.T) {
	app := fiber.New()

	app.Use(adapter.New(adapter.Config{
		Config: logger.Log{
			AppName:     "test",
			ServiceName: "test",
		},
	}))

	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Performance"), "middleware should stamp timing header")
}

func TestNewSkipsWhenNextReturnsTrue(t *testing.T) {
	app := fiber.New()

	app.Use(adapter.New(adapter.Config{
		Next: func(_ *fiber.Ctx) bool { return true },
	}))

	app.Get("/skip", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/skip", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-Performance"), "skipped middleware must not stamp headers")
}
