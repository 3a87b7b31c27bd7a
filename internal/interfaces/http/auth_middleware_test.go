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

	"github.com/jhoicas/semillas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/semillas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/semillas-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUnitID    = "norte"
	testIssuer    = "semillas-api-test"
	testExpMin    = 60
)

// rolesApp expone /planta y /ventas con los mismos grupos de roles que el router.
func rolesApp() *fiber.App {
	app := fiber.New()
	auth := apphttp.AuthMiddleware(testJWTSecret)
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": apphttp.GetRole(c)})
	}
	app.Get("/planta", auth, apphttp.RequireRole(entity.RoleAdmin, entity.RoleOperador), ok)
	app.Get("/ventas", auth, apphttp.RequireRole(entity.RoleAdmin, entity.RoleOperador, entity.RoleVendedor), ok)
	return app
}

func token(t *testing.T, unitID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, unitID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRequireRole_MatrizDeRoles(t *testing.T) {
	app := rolesApp()
	cases := []struct {
		path   string
		role   string
		status int
	}{
		{"/planta", entity.RoleAdmin, http.StatusOK},
		{"/planta", entity.RoleOperador, http.StatusOK},
		{"/planta", entity.RoleVendedor, http.StatusForbidden},
		{"/ventas", entity.RoleAdmin, http.StatusOK},
		{"/ventas", entity.RoleOperador, http.StatusOK},
		{"/ventas", entity.RoleVendedor, http.StatusOK},
		{"/ventas", "auditor", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.path+"/"+tc.role, func(t *testing.T) {
			status, body := get(t, app, tc.path, token(t, testUnitID, tc.role))
			assert.Equal(t, tc.status, status)
			if tc.status == http.StatusForbidden {
				assert.Contains(t, body, "FORBIDDEN")
			}
		})
	}
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	status, body := get(t, rolesApp(), "/ventas", token(t, testUnitID, ""))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "MISSING_ROLE")
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := rolesApp()
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto", "Basic abc", "INVALID_TOKEN"},
		{"bearer vacío", "Bearer   ", "MISSING_TOKEN"},
		{"token corrupto", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"vendedor sin sede", token(t, "", entity.RoleVendedor), "MISSING_UNIT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, app, "/ventas", tc.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Contains(t, body, tc.code)
		})
	}
}

func TestAuthMiddleware_AdminSinSedeEsValido(t *testing.T) {
	status, _ := get(t, rolesApp(), "/planta", token(t, "", entity.RoleAdmin))
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"unit_id": apphttp.GetUnitID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	status, raw := get(t, app, "/me", token(t, testUnitID, entity.RoleOperador))
	require.Equal(t, http.StatusOK, status)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUnitID, body["unit_id"])
	assert.Equal(t, entity.RoleOperador, body["role"])
}

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnitID, pkgjwt.RoleVendedor, testIssuer, testExpMin)
	require.NoError(t, err)

	id, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.Identity{UserID: testUserID, UnitID: testUnitID, Role: pkgjwt.RoleVendedor}, id)
	assert.False(t, id.IsAdmin())
}

func TestJWT_TokensRechazados(t *testing.T) {
	expirado, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnitID, pkgjwt.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testJWTSecret, expirado)
	assert.Error(t, err)

	valido, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnitID, pkgjwt.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", valido)
	assert.Error(t, err)

	_, err = pkgjwt.Generate("", testUserID, testUnitID, pkgjwt.RoleAdmin, testIssuer, testExpMin)
	assert.Error(t, err)
}
