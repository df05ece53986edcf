package middleware

import (
	"errors"
	"time"

	"github.com/fadilmartias/founder-assessment/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLogger puts a request-scoped entry on the user context and writes
// one access line per request.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		entry := log.WithRequest(c)
		c.SetUserContext(logger.NewContext(c.UserContext(), entry))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		line := entry.WithFields(logrus.Fields{
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case status >= 500:
			line.Error("request completed")
		case status >= 400:
			line.Warn("request completed")
		default:
			line.Info("request completed")
		}
		return err
	}
}
