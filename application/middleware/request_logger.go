package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"libreria/util/logger"
)

// RequestLogger attaches a request-scoped logger with a request id to the
// context and writes one access log line per request.
func RequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		method := c.Method()
		path := c.Path()

		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("X-Request-ID", requestID)

		reqLogger := logger.With(
			zap.String("request_id", requestID),
			zap.String("http.request.method", method),
			zap.String("url.path", path),
		)
		c.SetContext(logger.NewContext(c.Context(), reqLogger))

		err := c.Next()

		status := c.Response().StatusCode()
		reqLogger.Info(fmt.Sprintf("%d - %s %s", status, method, path),
			zap.Int("http.response.status_code", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)

		return err
	}
}
