package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nexcos/internal/bootstrap"
	"nexcos/internal/config"
	"nexcos/internal/database"
	"nexcos/internal/identity"
	"nexcos/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

const testJWTSecret = "server-test-secret-at-least-32-chars"

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Env:            "test",
		JWTSecret:      testJWTSecret,
		AllowedOrigins: "http://localhost:5173",
		DBDriver:       "sqlite",
		AssistantMode:  "local",
	}
}

func newTestServer(t *testing.T, cfg *config.Config, rdb *redis.Client) (*Server, *fiber.App) {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &identity.Account{}))

	data, err := seed.Default(time.Now())
	require.NoError(t, err)

	srv, err := NewServerWithDeps(cfg, &bootstrap.Runtime{DB: db, Redis: rdb, Seed: data})
	require.NoError(t, err)
	t.Cleanup(func() { srv.shutdownFn() })

	app := fiber.New(fiber.Config{ErrorHandler: srv.ErrorHandler})
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return srv, app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestNewServerWithDeps_RequiresSeed(t *testing.T) {
	t.Parallel()
	_, err := NewServerWithDeps(testConfig(), &bootstrap.Runtime{})
	assert.Error(t, err)
}

func TestHealthChecks(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t, testConfig(), nil)

	resp := doRequest(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/health/ready", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unavailable", checks["redis"])
	assert.Equal(t, "local", checks["assistant"])
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t, testConfig(), nil)

	doRequest(t, app, http.MethodGet, "/api/resources", nil)
	resp := doRequest(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestCORS_AllowedOrigin(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t, testConfig(), nil)

	resp := doRequest(t, app, http.MethodGet, "/api/alerts", nil, "Origin", "http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t, testConfig(), nil)

	resp := doRequest(t, app, http.MethodGet, "/api/ws/chat/building-a", nil)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestErrorResponseCarriesCode(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t, testConfig(), nil)

	resp := doRequest(t, app, http.MethodGet, "/api/resources/does-not-exist", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
