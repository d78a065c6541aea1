package handler

import (
	"context"
	"time"

	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 3 * time.Second

// DBPinger is satisfied by *sqlx.DB and *sql.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse reports the state of each dependency.
type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
}

type HealthHandler struct {
	db    DBPinger
	cache domain.Cache
}

// NewHealthHandler creates a HealthHandler. cache may be nil when Redis is not configured.
func NewHealthHandler(db DBPinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health pings the database and, when configured, Redis. Only a database
// failure makes the service unhealthy.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: map[string]string{}}

	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Error("Health check: database ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Checks["database"] = "down"
	} else {
		resp.Checks["database"] = "up"
	}

	if h.cache == nil {
		resp.Checks["redis"] = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Health check: redis ping failed", zap.Error(err))
		resp.Checks["redis"] = "down"
	} else {
		resp.Checks["redis"] = "up"
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// Ping godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /test [get]
func Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "API routes are working!"})
}
