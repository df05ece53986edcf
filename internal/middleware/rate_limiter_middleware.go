package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter limits each client IP to max requests per sliding window.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests, please slow down",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
