package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *jwt.Signer) {
	t.Helper()
	db := repository.NewMemDB(repository.SeedDataset(false, time.Now()))
	users := repository.NewUserRepo(db)
	signer := jwt.NewSigner("middleware-secret", time.Hour)

	app := fiber.New()
	app.Get("/open", OptionalAuth(signer, users), func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u != nil {
			return c.SendString(u.ID)
		}
		return c.SendString("anonymous")
	})
	app.Get("/settings", RequireAuth(signer, users), RequirePermission(model.CapManageSettings), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/ai", RequireAuth(signer, users), RequireAnyPermission(model.CapAddProduct, model.CapEditProduct), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, signer
}

func tokenFor(t *testing.T, signer *jwt.Signer, userID string) string {
	t.Helper()
	token, err := signer.GenerateToken(userID, "", "", nil)
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	app, signer := newTestApp(t)

	tests := []struct {
		name   string
		header string
		path   string
		want   int
	}{
		{"missing header", "", "/settings", 401},
		{"wrong scheme", "Token abc", "/settings", 401},
		{"garbage token", "Bearer abc", "/settings", 401},
		{"unknown user", "Bearer " + tokenFor(t, signer, "ghost"), "/settings", 401},
		{"staff forbidden", "Bearer " + tokenFor(t, signer, "u3"), "/settings", 403},
		{"admin allowed", "Bearer " + tokenFor(t, signer, "u1"), "/settings", 200},
		{"manager any of", "Bearer " + tokenFor(t, signer, "u2"), "/ai", 200},
		{"staff none of", "Bearer " + tokenFor(t, signer, "u3"), "/ai", 403},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	app, signer := newTestApp(t)

	req := httptest.NewRequest("GET", "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, signer, "u2"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "u2", string(body))
}
