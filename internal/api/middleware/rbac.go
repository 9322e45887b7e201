package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
)

// RequireRoles restricts a route to callers whose resolved role is in the
// allowed set. It must run after Authenticate; a missing identity fails
// closed as "not allowed", never as a bypass.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"msg": "Forbidden: You do not have admin access"})
			}
			if _, ok := allowed[identity.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"msg": "Forbidden: You do not have admin access"})
			}
			return next(c)
		}
	}
}
