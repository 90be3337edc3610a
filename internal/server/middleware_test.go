package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"postpilot/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	s := &Server{config: &config.Config{JWTSecret: "test_secret"}}

	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})
	return app, s
}

func TestAuthRequired(t *testing.T) {
	app, s := newAuthTestApp(t)

	t.Run("Valid Token", func(t *testing.T) {
		token, err := s.generateToken(42, "test@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Missing Header", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Malformed Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := &Server{config: &config.Config{JWTSecret: "other_secret"}}
		token, err := other.generateToken(42, "test@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong Issuer", func(t *testing.T) {
		now := time.Now()
		claims := jwt.MapClaims{
			"sub": "42",
			"iss": "someone-else",
			"aud": "postpilot-client",
			"exp": now.Add(time.Hour).Unix(),
			"iat": now.Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test_secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Expired Token", func(t *testing.T) {
		now := time.Now()
		claims := jwt.MapClaims{
			"sub": "42",
			"iss": "postpilot-api",
			"aud": "postpilot-client",
			"exp": now.Add(-time.Hour).Unix(),
			"iat": now.Add(-2 * time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test_secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "plan ID", humanizeParam("planId"))
	assert.Equal(t, "post ID", humanizeParam("postId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}
