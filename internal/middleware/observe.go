package middleware

import (
	"log/slog"
	"time"

	"github.com/arzan03/lingo/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// RequestIDKey is where the requestid middleware stores the request id.
const RequestIDKey = "requestid"

// settle hands a chain error to the app error handler so the final status is
// known to the caller. Outer middleware then sees a nil error.
func settle(c *fiber.Ctx, err error) {
	if err == nil {
		return
	}
	if herr := c.App().ErrorHandler(c, err); herr != nil {
		_ = c.SendStatus(fiber.StatusInternalServerError)
	}
}

// RequestLogger logs one line per request, at Warn for 4xx and Error for 5xx.
func RequestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		settle(c, c.Next())

		status := c.Response().StatusCode()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}

		args := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000,
		}
		if id, ok := c.Locals(RequestIDKey).(string); ok {
			args = append(args, "request_id", id)
		}
		if claims := Claims(c); claims != nil {
			args = append(args, "identity", claims.Email)
		}

		log.Log(c.UserContext(), level, "http_request", args...)
		return nil
	}
}

// Metrics records request counts, latency and auth rejections.
func Metrics(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		settle(c, c.Next())

		status := c.Response().StatusCode()
		collector.RecordRequest(c.Method(), c.Route().Path, status, time.Since(start))
		switch status {
		case fiber.StatusUnauthorized:
			collector.RecordAuthRejection("unauthenticated")
		case fiber.StatusForbidden:
			collector.RecordAuthRejection("forbidden")
		}
		return nil
	}
}
