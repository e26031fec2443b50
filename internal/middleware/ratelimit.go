package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit caps the number of requests a single client IP may make against
// a route group inside a fixed window.  It backs the counters with Redis so
// a restart does not reset them; when rdb is nil (Redis unreachable at
// startup) the middleware is a no-op and requests pass through.
//
// Intended for the credential endpoints (login, password reset) where a
// burst of attempts is more likely an attack than a user.
func RateLimit(rdb *redis.Client, prefix string, limit int, window time.Duration) echo.MiddlewareFunc {
	if rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := fmt.Sprintf("pesv:ratelimit:%s:%s", prefix, ip)
			ctx := c.Request().Context()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis trouble must not block logins.
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, window)
			}
			if n > int64(limit) {
				ttl, _ := rdb.TTL(ctx, key).Result()
				secs := int(ttl / time.Second)
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", secs))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "Demasiados intentos, intente de nuevo más tarde",
				})
			}
			return next(c)
		}
	}
}
