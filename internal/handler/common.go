// Package handler adapts echo requests to the service layer.  Handlers
// bind and validate the body, call one service method and write the
// {success, message, data} envelope; failures go through utils.Fail.
package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/middleware"
	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/utils"
)

// parseID reads a positive path parameter.  what names the resource in
// the error message, ex: "job" gives "Invalid job ID".
func parseID(c echo.Context, name, what string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, utils.InvalidInput("handler.parseID", "Invalid "+what+" ID")
	}
	return id, nil
}

// caller returns the identity stored by the auth middleware.  Routes
// without the middleware get the zero identity, which every service
// rejects as unauthenticated.
func caller(c echo.Context) model.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}

// bind decodes the request body into v and runs struct validation.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return utils.InvalidInput("handler.bind", "Invalid request body")
	}
	if err := c.Validate(v); err != nil {
		return err
	}
	return nil
}
