package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

type NotificationHandler struct {
	Notes *service.NotificationService
}

func NewNotificationHandler(notes *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notes: notes}
}

func (h *NotificationHandler) List(c echo.Context) error {
	list, err := h.Notes.List(c.Request().Context(), caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": list, "count": len(list)})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := parseID(c, "id", "notification")
	if err != nil {
		return utils.Fail(c, err)
	}
	n, err := h.Notes.MarkRead(c.Request().Context(), caller(c), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Notification marked as read", n)
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id", "notification")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Notes.Delete(c.Request().Context(), caller(c), id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Notification deleted", nil)
}
