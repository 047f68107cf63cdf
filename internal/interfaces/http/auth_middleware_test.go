package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/estoque-eletronicos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/estoque-eletronicos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testSessionID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "estoque-test"
	testExpMin    = 60
)

// fakeSessions responde según el mapa sesión → usuario; err simula una caída de la BD.
type fakeSessions struct {
	open map[string]string
	err  error
}

func (f fakeSessions) IsSessionActive(_ context.Context, sessionID, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.open[sessionID]
	return ok && owner == userID, nil
}

// buildMiddlewareApp construye una aplicación Fiber mínima con AuthMiddleware y un handler dummy.
func buildMiddlewareApp(sessions fakeSessions) *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, sessions), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"session_id": apphttp.GetSessionID(c),
			"role":       apphttp.GetRole(c),
		})
	})
	return app
}

func bearer(t *testing.T, sessionID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, sessionID, "user", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doMe(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := buildMiddlewareApp(fakeSessions{open: map[string]string{testSessionID: testUserID}})
	resp := doMe(t, app, bearer(t, testSessionID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testSessionID, body["session_id"])
	assert.Equal(t, "user", body["role"])
}

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildMiddlewareApp(fakeSessions{})
	resp := doMe(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	app := buildMiddlewareApp(fakeSessions{})
	resp := doMe(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildMiddlewareApp(fakeSessions{})
	resp := doMe(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un token válido cuya sesión fue cerrada (sign-out) ya no da acceso.
func TestAuthMiddleware_SesionCerrada_Retorna401(t *testing.T) {
	app := buildMiddlewareApp(fakeSessions{open: map[string]string{}})
	resp := doMe(t, app, bearer(t, testSessionID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SESSION_CLOSED")
}

func TestAuthMiddleware_SesionDeOtroUsuario_Retorna401(t *testing.T) {
	app := buildMiddlewareApp(fakeSessions{open: map[string]string{testSessionID: "otro-usuario"}})
	resp := doMe(t, app, bearer(t, testSessionID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FallaVerificacion_Retorna503(t *testing.T) {
	app := buildMiddlewareApp(fakeSessions{err: errors.New("db caída")})
	resp := doMe(t, app, bearer(t, testSessionID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
