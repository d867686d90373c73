package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/nagane/franchise-api/internal/interfaces/http"
	pkgjwt "github.com/nagane/franchise-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testStoreID   = int64(1)
	testIssuer    = "franchise-api-test"
	testExpMin    = 60
)

// buildRoleApp: AuthMiddleware + RequireRole in front of a handler that echoes the role.
func buildRoleApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, role string, storeID int64) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, storeID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	resp := get(t, app, "/protected", tokenFor(t, pkgjwt.RoleAdmin, 0))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_AnyOfRoles(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin, pkgjwt.RoleStore)
	resp := get(t, app, "/protected", tokenFor(t, pkgjwt.RoleStore, testStoreID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_StoreBlockedOnAdminRoute(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	resp := get(t, app, "/protected", tokenFor(t, pkgjwt.RoleStore, testStoreID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenWithoutRole(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	resp := get(t, app, "/protected", tokenFor(t, "", testStoreID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"no header", "", "MISSING_TOKEN"},
		{"not bearer", "Basic abc", "INVALID_TOKEN"},
		{"garbage token", "Bearer token.invalid.here", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := get(t, app, "/protected", tc.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}

func TestAuthMiddleware_ExtractsClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"store_id": apphttp.GetStoreID(c),
			"role":     apphttp.GetRole(c),
		})
	})

	resp := get(t, app, "/me", tokenFor(t, pkgjwt.RoleStore, 7))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID  string `json:"user_id"`
		StoreID int64  `json:"store_id"`
		Role    string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, int64(7), body.StoreID)
	assert.Equal(t, "store", body.Role)
}

func TestRequireStoreAccess(t *testing.T) {
	app := fiber.New()
	app.Get("/stores/:storeId/ping",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireStoreAccess("storeId"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	)

	cases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"own store", "/stores/1/ping", tokenFor(t, pkgjwt.RoleStore, 1), http.StatusNoContent},
		{"other store", "/stores/2/ping", tokenFor(t, pkgjwt.RoleStore, 1), http.StatusForbidden},
		{"admin any store", "/stores/2/ping", tokenFor(t, pkgjwt.RoleAdmin, 0), http.StatusNoContent},
		{"bad id", "/stores/abc/ping", tokenFor(t, pkgjwt.RoleAdmin, 0), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := get(t, app, tc.path, tc.header)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestLogger(nopLogger()))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp := get(t, app, "/x", "")
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "abc-123", resp2.Header.Get(apphttp.HeaderRequestID))
}
