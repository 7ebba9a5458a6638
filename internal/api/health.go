package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oxmics/metics-site/internal/pkg/httputil"
)

// HealthStatus represents the overall health of the gateway.
type HealthStatus struct {
	Status  string                    `json:"status"` // "healthy", "degraded"
	Version string                    `json:"version"`
	Uptime  string                    `json:"uptime"`
	Checks  map[string]ComponentCheck `json:"checks"`
}

// ComponentCheck represents the health of a single dependency.
type ComponentCheck struct {
	Status  string `json:"status"` // "up", "down", "not_configured"
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthChecker reports on the gateway's two dependencies: the
// rate-limit store (when Redis-backed) and the mail transport
// configuration.
type HealthChecker struct {
	redisClient  *redis.Client
	mailProvider string
	startTime    time.Time
}

// NewHealthChecker creates a HealthChecker. redisClient may be nil when
// the rate-limit store is memory- or file-backed.
func NewHealthChecker(redisClient *redis.Client, mailProvider string) *HealthChecker {
	return &HealthChecker{
		redisClient:  redisClient,
		mailProvider: mailProvider,
		startTime:    time.Now(),
	}
}

const healthVersion = "1.0.0"

// HandleHealth returns the health of all components. Always 200; the
// status field conveys health. Use /health/ready for probes that need
// HTTP 503 on failure.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	checks := hc.runChecks(r.Context())

	httputil.OK(w, HealthStatus{
		Status:  overallStatus(checks),
		Version: healthVersion,
		Uptime:  formatUptime(time.Since(hc.startTime)),
		Checks:  checks,
	})
}

// HandleLiveness always returns 200 while the process runs.
//
//	GET /health/live
func (hc *HealthChecker) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.OK(w, map[string]interface{}{
		"status": "alive",
		"uptime": formatUptime(time.Since(hc.startTime)),
	})
}

// HandleReadiness returns 200 only when the gateway can take traffic.
//
//	GET /health/ready
func (hc *HealthChecker) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	checks := hc.runChecks(r.Context())
	status := overallStatus(checks)

	httpStatus := http.StatusOK
	if status == "degraded" {
		httpStatus = http.StatusServiceUnavailable
	}

	httputil.JSON(w, httpStatus, map[string]interface{}{
		"ready":  httpStatus == http.StatusOK,
		"status": status,
		"checks": checks,
	})
}

func (hc *HealthChecker) runChecks(ctx context.Context) map[string]ComponentCheck {
	return map[string]ComponentCheck{
		"rate_limit_store": hc.checkRedis(ctx),
		"mail_transport":   hc.checkMail(),
	}
}

// checkRedis pings Redis with a 2-second timeout.
func (hc *HealthChecker) checkRedis(ctx context.Context) ComponentCheck {
	if hc.redisClient == nil {
		return ComponentCheck{Status: "not_configured", Message: "store is not redis-backed"}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := hc.redisClient.Ping(pingCtx).Err()
	latency := time.Since(start)

	if err != nil {
		return ComponentCheck{
			Status:  "down",
			Latency: latency.String(),
			Message: fmt.Sprintf("ping failed: %v", err),
		}
	}
	return ComponentCheck{Status: "up", Latency: latency.String(), Message: "connected"}
}

// checkMail reports whether a real transport is configured. The carrier
// itself is not probed on every health check; a dead relay surfaces as
// 500s on submissions, not as a failing probe.
func (hc *HealthChecker) checkMail() ComponentCheck {
	if hc.mailProvider == "log" {
		return ComponentCheck{Status: "not_configured", Message: "log transport (development)"}
	}
	return ComponentCheck{Status: "up", Message: "provider " + hc.mailProvider}
}

// overallStatus is "degraded" when any configured component is down.
func overallStatus(checks map[string]ComponentCheck) string {
	for _, c := range checks {
		if c.Status == "down" {
			return "degraded"
		}
	}
	return "healthy"
}

// formatUptime produces a human-readable uptime string like "3d 4h 12m 5s".
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
