package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdhome/bella-api/internal/application/catalog"
	"github.com/mdhome/bella-api/internal/application/ledger"
	"github.com/mdhome/bella-api/internal/application/reports"
	"github.com/mdhome/bella-api/internal/infrastructure/memstore"
	apphttp "github.com/mdhome/bella-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp() *fiber.App {
	store := memstore.New()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC: catalog.NewUseCase(store.Stock()),
		LedgerUC:  ledger.NewUseCase(store, store, store.Stock()),
		ReportsUC: reports.NewUseCase(store, store.Stock()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createClient(t *testing.T, app *fiber.App, name string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/clients/", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func createSimpleItem(t *testing.T, app *fiber.App, name string, price float64, quantity int) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/stock/", map[string]any{
		"name": name, "price": price, "quantity": quantity,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_AltaYConsulta(t *testing.T) {
	app := buildTestApp()
	createSimpleItem(t, app, "Remera Básica", 300, 2)

	// El nombre viaja URL-encodeado (espacios y acentos).
	resp := doJSON(t, app, http.MethodGet, "/api/stock/"+url.PathEscape("Remera Básica"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "Remera Básica", body["name"])
	assert.Equal(t, "simple", body["kind"])
	assert.Equal(t, float64(2), body["total_quantity"])
}

func TestStock_DuplicadoDa409(t *testing.T) {
	app := buildTestApp()
	createSimpleItem(t, app, "Cartera", 1000, 1)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/", map[string]any{
		"name": "CARTERA", "price": 1000, "quantity": 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestStock_InexistenteDa404(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/stock/nada", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStock_BodyInvalidoDa400(t *testing.T) {
	app := buildTestApp()
	// Sin variante de stock (ni quantity ni sizes).
	resp := doJSON(t, app, http.MethodPost, "/api/stock/", map[string]any{
		"name": "Cartera", "price": 100,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de clientas
// ──────────────────────────────────────────────────────────────────────────────

func TestCompraYPago_FlujoCompleto(t *testing.T) {
	app := buildTestApp()
	createSimpleItem(t, app, "Cartera", 1000, 3)
	clienta := createClient(t, app, "Marta")

	resp := doJSON(t, app, http.MethodPost, "/api/clients/"+clienta+"/purchases", map[string]any{
		"item": "Cartera", "quantity": 1, "payment": "none",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/clients/"+clienta+"/payments", map[string]any{
		"amount": "300",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/clients/"+clienta, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "700", body["debt"], "deuda = 1000 - 300")
}

func TestPago_SobrepagoDa422(t *testing.T) {
	app := buildTestApp()
	clienta := createClient(t, app, "Marta")

	resp := doJSON(t, app, http.MethodPost, "/api/clients/"+clienta+"/payments", map[string]any{
		"amount": "50",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errBody map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "OVERPAYMENT", errBody["code"])
}

func TestCompra_SinStockDa409(t *testing.T) {
	app := buildTestApp()
	createSimpleItem(t, app, "Cartera", 1000, 1)
	clienta := createClient(t, app, "Marta")

	resp := doJSON(t, app, http.MethodPost, "/api/clients/"+clienta+"/purchases", map[string]any{
		"item": "Cartera", "quantity": 5, "payment": "full",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCompra_PaymentDesconocidoDa400(t *testing.T) {
	app := buildTestApp()
	createSimpleItem(t, app, "Cartera", 1000, 1)
	clienta := createClient(t, app, "Marta")

	resp := doJSON(t, app, http.MethodPost, "/api/clients/"+clienta+"/purchases", map[string]any{
		"item": "Cartera", "quantity": 1, "payment": "luego",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBorrarClienta_ConDeudaDa409SinConfirmacion(t *testing.T) {
	app := buildTestApp()
	createSimpleItem(t, app, "Cartera", 1000, 1)
	clienta := createClient(t, app, "Marta")

	resp := doJSON(t, app, http.MethodPost, "/api/clients/"+clienta+"/purchases", map[string]any{
		"item": "Cartera", "quantity": 1, "payment": "none",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/clients/"+clienta, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/clients/"+clienta+"?confirm=true", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Pruebas y ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestPrueba_RegistroYDevolucion(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/stock/", map[string]any{
		"name": "Jean", "price": 500, "sizes": map[string]int{"38": 2},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	clienta := createClient(t, app, "Marta")

	resp = doJSON(t, app, http.MethodPost, "/api/clients/"+clienta+"/trials", map[string]any{
		"item": "Jean", "size": "38", "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	trial := decode(t, resp)
	trialID, _ := trial["id"].(string)
	require.NotEmpty(t, trialID)

	resp = doJSON(t, app, http.MethodPost, "/api/clients/"+clienta+"/trials/"+trialID+"/return", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/clients/"+clienta+"/trials", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var trials []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trials))
	assert.Empty(t, trials)
}

func TestVentas_RangoYEstadisticas(t *testing.T) {
	app := buildTestApp()
	createSimpleItem(t, app, "Cartera", 1000, 3)
	clienta := createClient(t, app, "Marta")

	resp := doJSON(t, app, http.MethodPost, "/api/clients/"+clienta+"/purchases", map[string]any{
		"item": "Cartera", "quantity": 1, "payment": "full", "date": "2026-01-10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/sales/?start=2026-01-01&end=2026-01-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sales []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sales))
	resp.Body.Close()
	require.Len(t, sales, 1)
	assert.Equal(t, "Marta", sales[0]["client_name"])

	resp = doJSON(t, app, http.MethodGet, "/api/sales/statistics?start=2026-01-01&end=2026-01-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode(t, resp)
	assert.Equal(t, float64(1), stats["sales_count"])

	resp = doJSON(t, app, http.MethodGet, "/api/sales/?start=2026-02-01&end=2026-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
