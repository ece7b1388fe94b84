package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"productapi/internal/database"
	"productapi/internal/middleware"
	"productapi/internal/repositories"
	"productapi/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frontend = "http://localhost:5173"

func newApp(t *testing.T, store repositories.ProductStore) *fiber.App {
	t.Helper()
	if store == nil {
		store = repositories.NewInMemoryProductRepository()
	}
	log, _ := test.NewNullLogger()
	app, err := server.NewApp(server.Options{
		Store:       store,
		Logger:      log,
		FrontendURL: frontend,
	})
	require.NoError(t, err)
	return app
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["error"]
}

func TestNewApp_CORS(t *testing.T) {
	app := newApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, server.ProductsPath, nil)
	req.Header.Set("Origin", "http://evil.example")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Error de CORS", errorMessage(t, resp))

	req = httptest.NewRequest(http.MethodGet, server.ProductsPath, nil)
	req.Header.Set("Origin", frontend)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, frontend, resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, server.ProductsPath, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewApp_RequestID(t *testing.T) {
	app := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, server.ProductsPath, nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, server.ProductsPath, nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(middleware.HeaderRequestID))
}

func TestNewApp_Health(t *testing.T) {
	resp, err := newApp(t, nil).Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// a SQL store that was never synced is degraded
	store, err := database.NewStore(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	resp, err = newApp(t, store).Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestNewApp_DocsAndMetrics(t *testing.T) {
	app := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "openapi: 3.0.2")

	_, err = app.Test(httptest.NewRequest(http.MethodGet, server.ProductsPath, nil), -1)
	require.NoError(t, err)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "productapi_http_requests_total"))
}

func TestNewApp_UnknownRoute(t *testing.T) {
	resp, err := newApp(t, nil).Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Cannot GET /nope", errorMessage(t, resp))
}
