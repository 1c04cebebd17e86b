package utils

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/logger"
)

// Fail writes the {success:false, message} envelope for err.  Server
// side failures are logged with their cause; the client only sees the
// public message.
func Fail(c echo.Context, err error) error {
	status := HTTPStatus(err)
	entry := logger.From(c).WithError(err).WithField("status", status)
	if status >= 500 {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	return c.JSON(status, echo.Map{
		"success": false,
		"message": PublicMessage(err),
	})
}

// OK writes a success envelope.  Empty message and nil data are
// omitted.
func OK(c echo.Context, status int, message string, data any) error {
	body := echo.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(status, body)
}
