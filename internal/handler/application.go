package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

// ApplicationHandler serves job applications for both sides.
type ApplicationHandler struct {
	Apps *service.ApplicationService
}

func NewApplicationHandler(apps *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Apps: apps}
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

// Apply submits the caller's application to the job in the path.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	jobID, err := parseID(c, "id", "job")
	if err != nil {
		return utils.Fail(c, err)
	}
	a, err := h.Apps.Apply(c.Request().Context(), caller(c), jobID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusCreated, "Application submitted successfully", a)
}

// ForJob lists the applications of a job owned by the caller.
func (h *ApplicationHandler) ForJob(c echo.Context) error {
	jobID, err := parseID(c, "id", "job")
	if err != nil {
		return utils.Fail(c, err)
	}
	list, err := h.Apps.ListForJob(c.Request().Context(), caller(c), jobID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list, "count": len(list)})
}

// Mine lists the caller's applications.
func (h *ApplicationHandler) Mine(c echo.Context) error {
	list, err := h.Apps.ListMine(c.Request().Context(), caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list, "count": len(list)})
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id", "application")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req statusReq
	if err := bind(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	a, err := h.Apps.UpdateStatus(c.Request().Context(), caller(c), id, model.ApplicationStatus(req.Status))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Application status updated", a)
}

func (h *ApplicationHandler) Withdraw(c echo.Context) error {
	id, err := parseID(c, "id", "application")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Apps.Withdraw(c.Request().Context(), caller(c), id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Application withdrawn", nil)
}
