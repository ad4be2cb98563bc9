package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Multitenant-api/internal/interfaces/http"
)

func TestRequestContext_DeadlineYCancelacion(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestContext(2 * time.Second))

	var captured context.Context
	app.Get("/", func(c *fiber.Ctx) error {
		captured = c.UserContext()
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.NotNil(t, captured)
	deadline, ok := captured.Deadline()
	require.True(t, ok, "el contexto del request debe tener deadline")
	assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, 2*time.Second)
	assert.ErrorIs(t, captured.Err(), context.Canceled, "el contexto se cancela al terminar el request")
}

func TestRequestContext_TimeoutPorDefecto(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestContext(0))

	var deadline time.Time
	app.Get("/", func(c *fiber.Ctx) error {
		deadline, _ = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusNoContent)
	})

	start := time.Now()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.WithinDuration(t, start.Add(apphttp.DefaultRequestTimeout), deadline, time.Second)
}
