package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/middleware"
	"github.com/iliyamo/job-portal/internal/model"
)

// RegisterAccount mounts profiles and notifications.  GET /profile/:id
// is public; everything else belongs to the caller.
func RegisterAccount(e *echo.Echo, h Handlers, auth echo.MiddlewareFunc) {
	e.GET("/profile", h.Profiles.Own, auth)
	e.PUT("/profile/seeker", h.Profiles.PutSeeker, auth, middleware.RequireRole(model.RoleSeeker))
	e.PUT("/profile/employer", h.Profiles.PutEmployer, auth, middleware.RequireRole(model.RoleEmployer))
	e.GET("/profile/:id", h.Profiles.Public)

	g := e.Group("/notifications", auth)
	g.GET("", h.Notifications.List)
	g.PATCH("/:id/read", h.Notifications.MarkRead)
	g.DELETE("/:id", h.Notifications.Delete)
}
