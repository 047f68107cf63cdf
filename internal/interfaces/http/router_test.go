package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/estoque-eletronicos/internal/application/analytics"
	"github.com/jhoicas/estoque-eletronicos/internal/application/auth"
	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
	"github.com/jhoicas/estoque-eletronicos/internal/application/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/application/usecase"
	"github.com/jhoicas/estoque-eletronicos/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/estoque-eletronicos/internal/interfaces/http"
)

// buildAPI arma la API completa sobre el store en memoria.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.New()
	productRepo := store.Products()
	movRepo := store.Movements()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(productRepo, store),
		ProfileUC:        usecase.NewProfileUseCase(store.Profiles()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, productRepo, nil, inventory.Options{}),
		LedgerUC:         inventory.NewLedgerUseCase(movRepo, productRepo),
		DashboardUC:      appanalytics.NewDashboardUseCase(productRepo, movRepo),
		AuthUC: auth.NewAuthUseCase(store, store.Users(), store.Profiles(), store.Sessions(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

// signUpAndIn registra un usuario y devuelve su sesión.
func signUpAndIn(t *testing.T, app *fiber.App, email, name string) dto.SessionResponse {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/api/auth/signup", "", dto.SignUpRequest{
		Email: email, Password: "secreto123", PasswordConfirmation: "secreto123", FullName: name,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = call(t, app, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{Email: email, Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var session dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &session))
	require.NotEmpty(t, session.Token)
	return session
}

func TestSignUp_ConfirmacionDistinta_Retorna400(t *testing.T) {
	app := buildAPI(t)
	resp, body := call(t, app, http.MethodPost, "/api/auth/signup", "", dto.SignUpRequest{
		Email: "ana@example.com", Password: "secreto123", PasswordConfirmation: "otra-cosa", FullName: "Ana",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "PASSWORD_MISMATCH")

	// La identidad no se creó: el sign-in falla.
	resp, _ = call(t, app, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{Email: "ana@example.com", Password: "secreto123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignUp_EmailDuplicado_Retorna409(t *testing.T) {
	app := buildAPI(t)
	signUpAndIn(t, app, "ana@example.com", "Ana")

	resp, body := call(t, app, http.MethodPost, "/api/auth/signup", "", dto.SignUpRequest{
		Email: "ANA@example.com", Password: "secreto123", PasswordConfirmation: "secreto123", FullName: "Ana Dos",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "EMAIL_EXISTS")
}

func TestRutasProtegidas_SinToken_Retorna401(t *testing.T) {
	app := buildAPI(t)
	for _, path := range []string{"/api/products", "/api/stock/movements", "/api/stock/low-stock", "/api/dashboard/summary"} {
		resp, _ := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

// Flujo completo: alta de producto, entrada de 15, salida de 8, aviso de stock bajo y estadísticas.
func TestFlujoDeStock(t *testing.T) {
	app := buildAPI(t)
	session := signUpAndIn(t, app, "ana@example.com", "Ana")
	tok := session.Token

	resp, body := call(t, app, http.MethodPost, "/api/products", tok, map[string]any{
		"name": "Smart TV 55", "category": "smart_tv", "unit_price": "2500.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var product dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &product))
	assert.Equal(t, 0, product.CurrentStock)
	assert.Equal(t, 10, product.MinimumStock)

	resp, body = call(t, app, http.MethodPost, "/api/stock/movements", tok, dto.RegisterMovementRequest{
		ProductID: product.ID, MovementType: "entrada", Quantity: 15,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var reg dto.RegisterMovementResponse
	require.NoError(t, json.Unmarshal(body, &reg))
	assert.Equal(t, 15, reg.CurrentStock)
	assert.False(t, reg.LowStock)
	assert.Equal(t, session.UserID, reg.Movement.ActorID)

	resp, body = call(t, app, http.MethodPost, "/api/stock/movements", tok, dto.RegisterMovementRequest{
		ProductID: product.ID, MovementType: "saida", Quantity: 8, Notes: "venda balcão",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &reg))
	assert.Equal(t, 7, reg.CurrentStock)
	assert.True(t, reg.LowStock)

	// Salida mayor al stock: rechazada por el chequeo previo.
	resp, body = call(t, app, http.MethodPost, "/api/stock/movements", tok, dto.RegisterMovementRequest{
		ProductID: product.ID, MovementType: "saida", Quantity: 100,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")

	resp, body = call(t, app, http.MethodGet, "/api/products", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].LowStock)
	require.NotNil(t, list.Notice)
	assert.Contains(t, list.Notice.Message, "Smart TV 55 (7)")

	resp, body = call(t, app, http.MethodGet, "/api/products/"+product.ID+"/ledger", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var check dto.LedgerCheckResponse
	require.NoError(t, json.Unmarshal(body, &check))
	assert.True(t, check.Consistent)
	assert.Equal(t, 15, check.TotalIn)
	assert.Equal(t, 8, check.TotalOut)

	resp, body = call(t, app, http.MethodGet, "/api/stock/movements?movement_type=saida", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history dto.MovementListResponse
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history.Items, 1)
	assert.Equal(t, "Ana", history.Items[0].ActorName)
	assert.Equal(t, "Smart TV 55", history.Items[0].ProductName)
	assert.Equal(t, 1, history.Page.Total)

	resp, body = call(t, app, http.MethodGet, "/api/stock/low-stock", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var panel dto.LowStockPanelResponse
	require.NoError(t, json.Unmarshal(body, &panel))
	assert.Equal(t, 1, panel.Total)
	require.Len(t, panel.Items, 1)
	assert.Equal(t, "Smart TV 55", panel.Items[0].Name)

	resp, body = call(t, app, http.MethodGet, "/api/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.DashboardSummaryDTO
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 1, summary.TotalProducts)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, "17500", summary.TotalValue.String())
	assert.Len(t, summary.RecentMovements, 2)
}

func TestRegisterMovement_ActorDistinto_Retorna403(t *testing.T) {
	app := buildAPI(t)
	ana := signUpAndIn(t, app, "ana@example.com", "Ana")
	bruno := signUpAndIn(t, app, "bruno@example.com", "Bruno")

	resp, body := call(t, app, http.MethodPost, "/api/products", ana.Token, map[string]any{
		"name": "Galaxy S24", "category": "smartphone",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var product dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &product))

	resp, _ = call(t, app, http.MethodPost, "/api/stock/movements", ana.Token, dto.RegisterMovementRequest{
		ProductID: product.ID, MovementType: "entrada", Quantity: 1, ActorID: bruno.UserID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProfile_SoloElDuenoPuedeEditar(t *testing.T) {
	app := buildAPI(t)
	ana := signUpAndIn(t, app, "ana@example.com", "Ana")
	bruno := signUpAndIn(t, app, "bruno@example.com", "Bruno")

	resp, _ := call(t, app, http.MethodPut, "/api/profiles/"+bruno.UserID, ana.Token, dto.UpdateProfileRequest{FullName: "Hackeado"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodPut, "/api/profiles/"+ana.UserID, ana.Token, dto.UpdateProfileRequest{FullName: "Ana Souza"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var profile dto.ProfileResponse
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, "Ana Souza", profile.FullName)
}

func TestSignOut_InvalidaElToken(t *testing.T) {
	app := buildAPI(t)
	session := signUpAndIn(t, app, "ana@example.com", "Ana")

	resp, body := call(t, app, http.MethodGet, "/api/auth/session", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var current dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &current))
	assert.Equal(t, session.SessionID, current.SessionID)
	assert.Equal(t, "Ana", current.Profile.FullName)

	resp, _ = call(t, app, http.MethodPost, "/api/auth/signout", session.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/products", session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductDelete_ProductoInexistente_Retorna404(t *testing.T) {
	app := buildAPI(t)
	session := signUpAndIn(t, app, "ana@example.com", "Ana")

	resp, body := call(t, app, http.MethodDelete, "/api/products/00000000-0000-0000-0000-0000000000ff", session.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestListMovements_FechaInvalida_Retorna400(t *testing.T) {
	app := buildAPI(t)
	session := signUpAndIn(t, app, "ana@example.com", "Ana")

	resp, _ := call(t, app, http.MethodGet, "/api/stock/movements?from=ayer", session.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
