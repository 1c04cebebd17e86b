package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/model"
)

// Context keys written by Authenticate.  "user_id" and "role" are kept
// as plain values so handlers that only need one field can read them
// without the Identity struct.
const (
	identityKey = "identity"
	userIDKey   = "user_id"
	roleKey     = "role"
	tokenKey    = "token"
)

// SetIdentity stores the authenticated caller and the raw bearer token
// on the context.
func SetIdentity(c echo.Context, id model.Identity, token string) {
	c.Set(identityKey, id)
	c.Set(userIDKey, id.ID)
	c.Set(roleKey, id.Role)
	c.Set(tokenKey, token)
}

// IdentityFrom returns the caller stored by Authenticate.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(identityKey).(model.Identity)
	return id, ok && id.ID != 0
}

// TokenFrom returns the raw bearer token of the current request.
func TokenFrom(c echo.Context) string {
	s, _ := c.Get(tokenKey).(string)
	return s
}

// userID returns the caller id as a string for rate limit keys, or
// "anon" for unauthenticated requests.
func userID(c echo.Context) string {
	if id, ok := IdentityFrom(c); ok {
		return strconv.FormatUint(id.ID, 10)
	}
	return "anon"
}
