package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/syncspace/edge-gateway/internal/infrastructure/backend"
)

// ProxyHandler relays opaque resource requests (events, bookings, reviews,
// admin stats) to the backend. Payloads pass through without structural
// validation; the stored backend credentials are attached so the call is
// made on behalf of the session's principal.
type ProxyHandler struct {
	backend *backend.Client
}

func NewProxyHandler(client *backend.Client) *ProxyHandler {
	return &ProxyHandler{backend: client}
}

// Forward relays the request verbatim, mapping the edge's /api prefix onto
// the backend base URL, and streams the response back.
func (h *ProxyHandler) Forward(c echo.Context) error {
	req := c.Request()
	path := strings.TrimPrefix(req.URL.Path, "/api")

	resp, err := h.backend.Forward(
		req.Context(),
		req.Method,
		path,
		req.URL.Query(),
		req.Body,
		req.Header.Get(echo.HeaderContentType),
		ctxSession(c).Upstream,
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Stream(resp.StatusCode, contentType, resp.Body)
}
