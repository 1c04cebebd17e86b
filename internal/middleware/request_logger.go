package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/logger"
)

// RequestLogger tags each request with an X-Request-Id, attaches a
// request scoped entry for handlers and logs one line per response.
func RequestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			entry := log.WithFields(logrus.Fields{
				"request_id": rid,
				"method":     req.Method,
				"path":       req.URL.Path,
			})
			logger.Attach(c, entry)

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the response before the
				// status is read.
				c.Error(err)
			}

			fields := logrus.Fields{
				"status":     c.Response().Status,
				"latency_ms": time.Since(start).Milliseconds(),
				"remote_ip":  c.RealIP(),
			}
			if id, ok := IdentityFrom(c); ok {
				fields["user_id"] = id.ID
			}
			entry.WithFields(fields).Info("request")
			return nil
		}
	}
}
