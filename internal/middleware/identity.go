package middleware

// identity.go provides the caller-identity function shared by the rate
// limit and cache key strategies.  Public booking traffic is anonymous,
// so unauthenticated requests identify as "guest" and are bucketed by
// client IP; authenticated admins are bucketed by their admin ID.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// callerID returns a stable identifier for the requester: the admin ID
// when JWTAuth ran, "guest" otherwise.
func callerID(c echo.Context) string {
	if id := AdminID(c); id != 0 {
		return strconv.FormatUint(id, 10)
	}
	return "guest"
}
