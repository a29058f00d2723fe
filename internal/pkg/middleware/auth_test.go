package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/usercontext"
)

func appWith(uc usercontext.UserContext, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		usercontext.Set(c, uc)
		return c.Next()
	})
	handlers := append(guards, func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/", handlers...)
	return app
}

func TestRequireAuth(t *testing.T) {
	resp, err := appWith(usercontext.UserContext{}, RequireAuth).Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = appWith(usercontext.UserContext{MemberID: 1, IsLoggedIn: true}, RequireAuth).Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	member := usercontext.UserContext{MemberID: 1, IsLoggedIn: true}
	resp, err := appWith(member, RequireAdmin).Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	member.IsAdmin = true
	resp, err = appWith(member, RequireAdmin).Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPIGuards(t *testing.T) {
	resp, err := appWith(usercontext.UserContext{}, RequireAPISessionAuth).Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	member := usercontext.UserContext{MemberID: 1, IsLoggedIn: true}
	resp, err = appWith(member, RequireAPISessionAuth, RequireAPIAdmin).Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
