package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankinfo/bank-information-system/internal/api/middleware"
	"github.com/bankinfo/bank-information-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Msg string `json:"msg"`
}

// ctxIdentity extracts the identity injected by the Authenticate middleware.
// Its absence means the route was wired without the access gate; fail closed
// with 401 before any service call.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
