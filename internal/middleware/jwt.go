// Package middleware holds the echo middleware shared by every route
// group: bearer authentication, role gating, request logging and the
// Redis token bucket.
package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

// Authenticator resolves an Authorization header into a caller.
// *service.AuthService satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (model.Identity, error)
}

// Authenticate rejects requests without a valid, unrevoked bearer
// token and stores the caller identity for downstream handlers.
func Authenticate(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			id, err := auth.Authenticate(c.Request().Context(), header)
			if err != nil {
				return utils.Fail(c, err)
			}
			raw, _ := service.BearerToken(header)
			SetIdentity(c, id, raw)
			return next(c)
		}
	}
}
