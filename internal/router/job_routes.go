package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/middleware"
	"github.com/iliyamo/job-portal/internal/model"
)

// RegisterJobs mounts postings, applications and saved jobs.  /jobs
// mixes public and role gated routes, so middleware is attached per
// route rather than on a group.  The static /jobs/saved wins over
// /jobs/:id in echo's router.
func RegisterJobs(e *echo.Echo, h Handlers, auth echo.MiddlewareFunc) {
	employer := middleware.RequireRole(model.RoleEmployer)
	seeker := middleware.RequireRole(model.RoleSeeker)

	e.GET("/jobs", h.Jobs.List)
	e.GET("/jobs/:id", h.Jobs.Get)
	e.POST("/jobs", h.Jobs.Create, auth, employer)
	e.PUT("/jobs/:id", h.Jobs.Update, auth, employer)
	e.DELETE("/jobs/:id", h.Jobs.Delete, auth, employer)
	e.GET("/employer/jobs", h.Jobs.Mine, auth, employer)

	e.POST("/jobs/:id/apply", h.Applications.Apply, auth, seeker)
	e.GET("/jobs/:id/applications", h.Applications.ForJob, auth, employer)
	e.GET("/applications", h.Applications.Mine, auth, seeker)
	e.PUT("/applications/:id/status", h.Applications.UpdateStatus, auth, employer)
	e.DELETE("/applications/:id", h.Applications.Withdraw, auth, seeker)

	e.GET("/jobs/saved", h.SavedJobs.List, auth, seeker)
	e.POST("/jobs/:id/save", h.SavedJobs.Save, auth, seeker)
	e.DELETE("/jobs/:id/save", h.SavedJobs.Remove, auth, seeker)
}
