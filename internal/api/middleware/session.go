package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/syncspace/edge-gateway/internal/api/metrics"
	"github.com/syncspace/edge-gateway/internal/core/ports"
)

const sessionContextKey = "session"

// Session restores the browsing context's session from its cookie and injects
// the result into the request context. Restoration never fails the request: a
// missing, forged, or corrupt session simply resolves to "no session".
func Session(cookieName string, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var token string
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie.Value
			}

			resolved := sessions.Restore(c.Request().Context(), token)
			switch {
			case resolved.Session.Loading:
				metrics.SessionRestoresTotal.WithLabelValues("pending").Inc()
			case resolved.Session.User != nil:
				metrics.SessionRestoresTotal.WithLabelValues("hit").Inc()
			default:
				metrics.SessionRestoresTotal.WithLabelValues("miss").Inc()
			}

			c.Set(sessionContextKey, resolved)
			return next(c)
		}
	}
}

// SessionFrom extracts the resolved session injected by Session. Routes that
// never passed through the middleware get the zero value: no session.
func SessionFrom(c echo.Context) ports.ResolvedSession {
	resolved, _ := c.Get(sessionContextKey).(ports.ResolvedSession)
	return resolved
}
