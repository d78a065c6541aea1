package middleware

import (
	"time"

	"moodle-bridge/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency per route pattern. Mount it before
// RequestLogger so the status it reads is the one the error handler wrote.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := "unknown"
		if route := c.Route(); route != nil && route.Path != "" {
			path = route.Path
		}
		m.ObserveHTTPRequest(c.Method(), path, c.Response().StatusCode(), time.Since(start))
		return err
	}
}
