package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxmics/metics-site/internal/config"
	"github.com/oxmics/metics-site/internal/contact"
	"github.com/oxmics/metics-site/internal/mailer"
	"github.com/oxmics/metics-site/internal/ratelimit"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	cfg.Mail.Provider = "log"

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), cfg.RateLimit.Window())
	gateway, err := contact.NewHandler(cfg, mailer.NewLogTransport(), limiter)
	require.NoError(t, err)

	return NewRouter(cfg, gateway, NewHealthChecker(nil, cfg.Mail.Provider))
}

func TestPreflightReturns204WithNoBody(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest("OPTIONS", "/api/contact", nil)
	r.Header.Set("Origin", "https://metics.io")
	r.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "https://metics.io", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflightFromUnknownOriginGetsNoCORSHeader(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest("OPTIONS", "/api/contact", nil)
	r.Header.Set("Origin", "https://evil.example")
	r.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPostFromUnknownOriginIsStillProcessed(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest("POST", "/api/contact",
		strings.NewReader(`{"firstName":"Jane","lastName":"Murphy","email":"jane@acme.com"}`))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWrongMethodReturnsJSON405(t *testing.T) {
	router := newTestRouter(t)

	for _, method := range []string{"GET", "PUT", "DELETE"} {
		r := httptest.NewRequest(method, "/api/contact", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Method not allowed", body["error"])
	}
}

func TestUnknownPathReturnsJSON404(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest("GET", "/api/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestContactSubmissionThroughRouter(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest("POST", "/api/contact",
		strings.NewReader(`{"firstName":"Jane","lastName":"Murphy","email":"jane@acme.com"}`))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Origin", "https://metics.io")
	r.RemoteAddr = "203.0.113.9:51234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://metics.io", w.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		r := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "not_configured", status.Checks["rate_limit_store"].Status)
}
