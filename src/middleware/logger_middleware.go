package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/theleywin/Backend-Pulse-Feed/src/metrics"
)

// RequestLogger logs every request with latency and status, and feeds the
// request-duration histogram.
func RequestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()

		metrics.RecordHTTPRequestDuration(c.Method(), c.Route().Path, strconv.Itoa(status), latency)

		entry := log.WithFields(logrus.Fields{
			"status":     status,
			"method":     c.Method(),
			"path":       c.Path(),
			"latency_ms": latency.Milliseconds(),
			"client_ip":  c.IP(),
		})

		if err != nil || status >= fiber.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Info("Request handled")
		}

		return err
	}
}
