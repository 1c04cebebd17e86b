package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/handler"
	"github.com/iliyamo/job-portal/internal/middleware"
	"github.com/iliyamo/job-portal/internal/model"
)

// RegisterAdmin mounts /admin.  Every route requires the admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/admin", auth, middleware.RequireRole(model.RoleAdmin))
	g.GET("/users", h.Users)
	g.GET("/jobs", h.Jobs)
	g.GET("/applications", h.Applications)
	g.POST("/users/:id/ban", h.BanUser)
	g.DELETE("/users/:id", h.BanUser)
	g.DELETE("/jobs/:id", h.RemoveJob)
}
