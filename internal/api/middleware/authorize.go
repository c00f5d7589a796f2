package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/syncspace/edge-gateway/internal/api/metrics"
	"github.com/syncspace/edge-gateway/internal/core/domain"
)

// Authorize gates a route subtree behind the session + role check. The
// decision itself is domain.Decide; this middleware only issues the effect
// each outcome calls for:
//
//	pending         → neutral 503 (no redirect while the session is restoring)
//	unauthenticated → redirect to the login view
//	forbidden       → redirect to the unauthorized view
//	granted         → next handler
//
// Denied outcomes are routing decisions, not errors.
func Authorize(loginPath, unauthorizedPath string, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := append([]string(nil), allowedRoles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := domain.Decide(SessionFrom(c).Session, allowed)
			metrics.AuthzDecisionsTotal.WithLabelValues(string(decision)).Inc()

			switch decision {
			case domain.DecisionPending:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "session restoring"})
			case domain.DecisionUnauthenticated:
				return c.Redirect(http.StatusFound, loginPath)
			case domain.DecisionForbidden:
				return c.Redirect(http.StatusFound, unauthorizedPath)
			}

			return next(c)
		}
	}
}
