package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/utils"
)

var roleNames = map[model.Role]string{
	model.RoleSeeker:   "Job seeker",
	model.RoleEmployer: "Employer",
	model.RoleAdmin:    "Admin",
}

// RequireRole allows the request through only when the authenticated
// caller has one of roles.  It must run after Authenticate.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	const op = "middleware.RequireRole"

	allowed := make(map[model.Role]bool, len(roles))
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[r] = true
		names = append(names, roleNames[r])
	}
	denied := "Access denied. " + strings.Join(names, " or ") + " role required"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return utils.Fail(c, utils.Unauthenticated(op, "Authentication required"))
			}
			if !allowed[id.Role] {
				return utils.Fail(c, utils.Forbidden(op, denied))
			}
			return next(c)
		}
	}
}
