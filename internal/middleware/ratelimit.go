package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/job-portal/internal/config"
	"github.com/iliyamo/job-portal/internal/logger"
)

// bucketScript refills and takes one token atomically.  It returns
// {allowed, remaining, retry_after_ms}.
var bucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])
if tokens == nil or last_refill == nil then
  tokens = capacity
  last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
  tokens = math.min(capacity, tokens + intervals * refill_tokens)
  last_refill = last_refill + intervals * interval_ms
end

local allowed = 0
local retry_ms = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)
return {allowed, tokens, retry_ms}
`)

// defaultKeyStrategy is used when the configured strategy names an
// unknown part.
const defaultKeyStrategy = "ip_user_route"

// TokenBucket limits requests per key with a Redis backed token
// bucket.  A disabled config or nil client yields a pass-through
// middleware.  Redis failures let the request through.
//
// The limiter runs before route level authentication, so when the key
// includes the user it resolves the bearer token through auth itself.
// A missing or rejected token counts as "anon"; the route's own
// Authenticate still decides whether the request is allowed.
func TokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, auth Authenticator) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := int64(cfg.TTL / time.Second)
	if ttl < 1 {
		ttl = 1
	}
	parts := keyParts(cfg.KeyStrategy)
	byUser := false
	for _, p := range parts {
		byUser = byUser || p == "user"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := "anon"
			if byUser {
				user = callerKey(c, auth)
			}
			key := rateKey(cfg.Prefix, parts, c, user)
			args := []any{
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				ttl,
			}
			res, err := bucketScript.Run(c.Request().Context(), rdb, []string{key}, args...).Int64Slice()
			if err != nil || len(res) != 3 {
				logger.From(c).WithError(err).WithField("key", key).Warn("rate limiter unavailable")
				return next(c)
			}
			allowed, remaining, retryMs := res[0] == 1, res[1], res[2]

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			if allowed {
				return next(c)
			}

			secs := int(math.Ceil(float64(retryMs) / 1000))
			h.Set("Retry-After", strconv.Itoa(secs))
			logger.From(c).WithField("key", key).Debug("rate limited")
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"success": false,
				"message": "Too many requests",
			})
		}
	}
}

// keyParts splits a strategy such as "ip_user_route" into its parts.
// Unknown parts select defaultKeyStrategy.
func keyParts(strategy string) []string {
	parts := strings.Split(strings.ToLower(strategy), "_")
	for _, p := range parts {
		switch p {
		case "ip", "user", "route":
		default:
			return strings.Split(defaultKeyStrategy, "_")
		}
	}
	return parts
}

// callerKey identifies the caller for the "user" key part.  An identity
// already on the context wins; otherwise the Authorization header is
// verified with auth.
func callerKey(c echo.Context, auth Authenticator) string {
	if _, ok := IdentityFrom(c); ok || auth == nil {
		return userID(c)
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "anon"
	}
	id, err := auth.Authenticate(c.Request().Context(), header)
	if err != nil || id.ID == 0 {
		return "anon"
	}
	return strconv.FormatUint(id.ID, 10)
}

// rateKey joins the prefix with the named parts and their values.
func rateKey(prefix string, parts []string, c echo.Context, user string) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	values := map[string]string{
		"ip":    ip,
		"user":  user,
		"route": c.Request().Method + " " + c.Path(),
	}

	out := []string{prefix}
	for _, p := range parts {
		out = append(out, p, values[p])
	}
	return strings.Join(out, ":")
}
