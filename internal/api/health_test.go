package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthReportsRedisUp(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	hc := NewHealthChecker(client, "smtp")
	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	hc.HandleHealth(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var status HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "up", status.Checks["rate_limit_store"].Status)
	assert.Equal(t, "up", status.Checks["mail_transport"].Status)
}

func TestReadinessFailsWhenRedisIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	hc := NewHealthChecker(client, "smtp")
	r := httptest.NewRequest("GET", "/health/ready", nil)
	w := httptest.NewRecorder()
	hc.HandleReadiness(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
