package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bankinfo/bank-information-system/internal/api/metrics"
	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/ports"
)

// IdentityKey is the echo context key under which Authenticate stores the
// resolved domain.Identity.
const IdentityKey = "identity"

// UserFinder is the narrow slice of the user repository the access gate
// needs to confirm a token's subject still exists.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Authenticate resolves the bearer token into a verified, live identity:
// extract token, verify signature and expiry, then reload the user so a
// token for a deleted account stops working. Each failure mode keeps a
// distinguishable message; all map to 401.
func Authenticate(tokens ports.TokenVerifier, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("no_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("no_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token expired")
				}
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			// Stateless tokens have no revocation list; the subject ceasing
			// to exist is the only way a live token dies early.
			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenRejectionsTotal.WithLabelValues("identity_gone").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, user not found")
				}
				return err
			}

			c.Set(IdentityKey, domain.Identity{UserID: user.ID, Role: user.Role})

			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by Authenticate, reporting
// whether one is present.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(IdentityKey).(domain.Identity)
	return identity, ok
}
