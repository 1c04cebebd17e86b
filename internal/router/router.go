// Package router builds the echo instance and mounts every route with
// its authentication and role middleware.
package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/config"
	"github.com/iliyamo/job-portal/internal/handler"
	"github.com/iliyamo/job-portal/internal/logger"
	"github.com/iliyamo/job-portal/internal/middleware"
	"github.com/iliyamo/job-portal/internal/utils"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	Jobs          *handler.JobHandler
	Applications  *handler.ApplicationHandler
	SavedJobs     *handler.SavedJobHandler
	Profiles      *handler.ProfileHandler
	Notifications *handler.NotificationHandler
	Admin         *handler.AdminHandler
}

// Deps is everything the router needs from main.
type Deps struct {
	Log            *logrus.Logger
	Authenticator  middleware.Authenticator
	DB             handler.Pinger // nil skips the store check in /healthz
	Redis          *redis.Client  // nil disables rate limiting
	RateLimit      config.RateLimitConfig
	RequestTimeout time.Duration
	Handlers       Handlers
}

// New returns a configured echo instance with all routes mounted.
func New(d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = logger.Discard()
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = errorHandler

	// The access log wraps Recover so panicking requests are logged with
	// the 500 written by the error handler.
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.From(c).WithError(err).WithField("stack", string(stack)).Error("panic recovered")
			return err
		},
	}))
	e.Use(echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: d.RequestTimeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, context.DeadlineExceeded) {
				return utils.Fail(c, utils.E(utils.CodeTimeout, "router.timeout", "request timed out", err))
			}
			return err
		},
	}))
	e.Use(middleware.TokenBucket(d.RateLimit, d.Redis, d.Authenticator))

	RegisterRoutes(e, d.DB)
	auth := middleware.Authenticate(d.Authenticator)
	RegisterAuth(e, d.Handlers.Auth, auth)
	RegisterJobs(e, d.Handlers, auth)
	RegisterAccount(e, d.Handlers, auth)
	RegisterAdmin(e, d.Handlers.Admin, auth)
	return e
}

// errorHandler writes errors that escaped the handlers, such as echo's
// own 404 and 405, in the same envelope as service errors.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		if he.Code >= http.StatusInternalServerError {
			logger.From(c).WithError(err).Error("request failed")
		}
		_ = c.JSON(he.Code, echo.Map{"success": false, "message": msg})
		return
	}
	_ = utils.Fail(c, err)
}

// RegisterRoutes mounts the unauthenticated health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth mounts /auth.  Register and login are public; the rest
// need a bearer token.
func RegisterAuth(e *echo.Echo, h *handler.AuthHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout, auth)
	g.PUT("/change-password", h.ChangePassword, auth)
	g.GET("/me", h.Me, auth)
}
