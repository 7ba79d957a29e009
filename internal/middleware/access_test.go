package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(password string) *fiber.App {
	app := fiber.New()
	app.Use(AccessGate(password))
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAccessGateDisabledWithoutPassword(t *testing.T) {
	app := newTestApp("")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAccessGateMissingPassword(t *testing.T) {
	app := newTestApp("fdparty")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.Contains(t, string(body), "password required")
}

func TestAccessGateWrongPassword(t *testing.T) {
	app := newTestApp("fdparty")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AccessHeader, "guess")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAccessGateCorrectPassword(t *testing.T) {
	app := newTestApp("fdparty")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AccessHeader, "fdparty")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPasswordMatches(t *testing.T) {
	assert.True(t, passwordMatches("abc", "abc"))
	assert.False(t, passwordMatches("abc", "abcd"))
	assert.False(t, passwordMatches("", "abc"))
}
