package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/syncspace/edge-gateway/internal/api/middleware"
	"github.com/syncspace/edge-gateway/internal/core/ports"
)

// ctxSession extracts the resolved session injected by the Session
// middleware. Handlers behind an Authorize guard can rely on the principal
// being present; handlers on open routes get whatever the cookie resolved to.
func ctxSession(c echo.Context) ports.ResolvedSession {
	return middleware.SessionFrom(c)
}

// ctxActor names the principal for activity entries, falling back to
// "anonymous" for unauthenticated requests.
func ctxActor(c echo.Context) string {
	resolved := ctxSession(c)
	if resolved.Session.User != nil {
		return resolved.Session.User.Email
	}
	return "anonymous"
}
