package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/middleware"
	"github.com/deppfellow/jobly/internal/server"
)

const defaultHealthCheckTimeout = 5 * time.Second

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name string
	// Critical checks turn the overall status unhealthy (503). Redis only
	// carries welcome emails, so its failure is reported but not fatal.
	Critical bool
	Ping     func(ctx context.Context) error
}

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	checks []HealthCheck
}

// NewHealthHandler registers the database and redis checks enabled in
// observability.health_checks.
func NewHealthHandler(s *server.Server, extra ...HealthCheck) *HealthHandler {
	var checks []HealthCheck

	enabled := func(name string) bool {
		return s.Config.Observability != nil && s.Config.Observability.HealthCheckEnabled(name)
	}

	if enabled("database") && s.DB != nil {
		checks = append(checks, HealthCheck{
			Name:     "database",
			Critical: true,
			Ping:     s.DB.Pool.Ping,
		})
	}

	if enabled("redis") && s.Redis != nil {
		checks = append(checks, HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error {
				return s.Redis.Ping(ctx).Err()
			},
		})
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  append(checks, extra...),
	}
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return defaultHealthCheckTimeout
}

// CheckHealth returns 200 when every critical check passes and 503
// otherwise. Each check reports its status and response time.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
	}

	checks := make(map[string]any, len(h.checks))
	isHealthy := true

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout())
		checkStart := time.Now()
		err := check.Ping(ctx)
		cancel()

		elapsed := time.Since(checkStart)

		if err != nil {
			checks[check.Name] = map[string]any{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			if check.Critical {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.Name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordFailure(map[string]any{
				"check_type":       check.Name,
				"operation":        "health_check",
				"error_type":       check.Name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[check.Name] = map[string]any{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		logger.Debug().
			Str("check", check.Name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	response["checks"] = checks

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordFailure(attributes map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attributes)
	}
}
