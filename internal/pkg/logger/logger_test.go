package logger

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log, err := New("debug", "console")
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = New("loud", "json")
	assert.Error(t, err)
}

func TestRequestIDContext(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))
	assert.NotNil(t, FromContext(ctx))
}

func TestRequestLogger(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c.UserContext()))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "given-id")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "given-id", resp.Header.Get("X-Request-Id"))

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get("X-Request-Id"), 36)
}
