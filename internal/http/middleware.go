package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"unfurl/internal/config"
)

// authMiddleware validates the Authorization: Bearer <key> header against the
// keys listed in configuration.
func authMiddleware(cfg *config.Config) fiber.Handler {
	keys := make(map[string]struct{}, len(cfg.Auth.APIKeys))
	for _, k := range cfg.Auth.APIKeys {
		keys[k] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if !cfg.Auth.Enabled {
			return c.Next()
		}

		rawAuth := c.Get("Authorization")
		if rawAuth == "" || !strings.HasPrefix(rawAuth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Success: false,
				Code:    "UNAUTHENTICATED",
				Error:   "Missing Authorization Bearer token",
			})
		}

		token := strings.TrimSpace(strings.TrimPrefix(rawAuth, "Bearer "))
		if _, ok := keys[token]; !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Success: false,
				Code:    "UNAUTHENTICATED",
				Error:   "Invalid API key",
			})
		}

		c.Locals("apiKey", token)
		return c.Next()
	}
}

// rateLimitMiddleware enforces a simple per-minute fixed-window rate limit
// per API key (or client IP when auth is disabled) using Redis.
func rateLimitMiddleware(cfg *config.Config, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := cfg.RateLimit.DefaultPerMinute
		if limit <= 0 {
			return c.Next()
		}

		principal := c.IP()
		if val := c.Locals("apiKey"); val != nil {
			if key, ok := val.(string); ok && key != "" {
				principal = key
			}
		}

		now := time.Now().UTC()
		window := now.Format("200601021504") // YYYYMMDDHHMM minute window
		key := fmt.Sprintf("unfurl:rl:%s:%s", principal, window)

		ctx := c.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Rate limiting is advisory; a Redis outage should not take the
			// API down with it.
			return c.Next()
		}
		if count == 1 {
			// First hit in this window; set TTL
			_ = rdb.Expire(ctx, key, time.Minute)
		}

		if count > int64(limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Success: false,
				Code:    "RATE_LIMIT_EXCEEDED",
				Error:   "Rate limit exceeded, try again later",
			})
		}

		return c.Next()
	}
}
