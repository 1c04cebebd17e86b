package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

// AdminHandler serves /admin.  Every route is also gated on the admin
// role by the router.
type AdminHandler struct {
	Admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{Admin: admin}
}

func (h *AdminHandler) Users(c echo.Context) error {
	list, err := h.Admin.ListUsers(c.Request().Context(), caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list, "count": len(list)})
}

func (h *AdminHandler) Jobs(c echo.Context) error {
	list, err := h.Admin.ListJobs(c.Request().Context(), caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list, "count": len(list)})
}

func (h *AdminHandler) Applications(c echo.Context) error {
	list, err := h.Admin.ListApplications(c.Request().Context(), caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list, "count": len(list)})
}

// BanUser soft-bans an account.  Also mounted as DELETE /admin/users/:id.
func (h *AdminHandler) BanUser(c echo.Context) error {
	id, err := parseID(c, "id", "user")
	if err != nil {
		return utils.Fail(c, err)
	}
	u, err := h.Admin.BanUser(c.Request().Context(), caller(c), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "User banned", u)
}

func (h *AdminHandler) RemoveJob(c echo.Context) error {
	id, err := parseID(c, "id", "job")
	if err != nil {
		return utils.Fail(c, err)
	}
	j, err := h.Admin.RemoveJob(c.Request().Context(), caller(c), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Job removed", j)
}
