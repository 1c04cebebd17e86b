package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

type SavedJobHandler struct {
	Saved *service.SavedJobService
}

func NewSavedJobHandler(saved *service.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{Saved: saved}
}

func (h *SavedJobHandler) Save(c echo.Context) error {
	jobID, err := parseID(c, "id", "job")
	if err != nil {
		return utils.Fail(c, err)
	}
	sj, err := h.Saved.Save(c.Request().Context(), caller(c), jobID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusCreated, "Job saved successfully", sj)
}

func (h *SavedJobHandler) Remove(c echo.Context) error {
	jobID, err := parseID(c, "id", "job")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Saved.Remove(c.Request().Context(), caller(c), jobID); err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Job removed from saved list", nil)
}

func (h *SavedJobHandler) List(c echo.Context) error {
	list, err := h.Saved.List(c.Request().Context(), caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list, "count": len(list)})
}
