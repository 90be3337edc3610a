package ratelimit

import (
	"fmt"
	"os"
	"time"

	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Middleware returns a Fiber handler enforcing `limit` requests per `window`
// for the named resource. It keys by authenticated userID (if set in
// c.Locals("userID")) otherwise by remote IP, and fails open when the store
// is unavailable.
//
// Rate limiting is bypassed when APP_ENV is "test" or "development" so dev
// and test workflows are not throttled.
func Middleware(rdb *redis.Client, resource string, limit int, window time.Duration) fiber.Handler {
	limiter := New(rdb, resource, limit, window)

	return func(c *fiber.Ctx) error {
		switch os.Getenv("APP_ENV") {
		case "test", "development":
			return c.Next()
		}

		var id string
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		} else {
			id = fmt.Sprintf("ip:%s", c.IP())
		}

		res := limiter.Check(c.UserContext(), id)
		if !res.Allowed {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitError(res.RetryAfter))
		}
		return c.Next()
	}
}
