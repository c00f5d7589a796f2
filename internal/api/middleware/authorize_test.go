package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/syncspace/edge-gateway/internal/core/domain"
	"github.com/syncspace/edge-gateway/internal/core/ports"
)

func newAuthzContext(t *testing.T, resolved *ports.ResolvedSession) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if resolved != nil {
		c.Set(sessionContextKey, *resolved)
	}
	return c, rec
}

func TestAuthorize_Granted(t *testing.T) {
	c, rec := newAuthzContext(t, &ports.ResolvedSession{
		Session: domain.Session{User: &domain.User{Role: domain.RoleHost}},
	})

	called := false
	mw := Authorize("/login", "/unauthorized", domain.RoleHost, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_UnauthenticatedRedirectsToLogin(t *testing.T) {
	c, rec := newAuthzContext(t, &ports.ResolvedSession{})

	mw := Authorize("/login", "/unauthorized", domain.RoleUser)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestAuthorize_ForbiddenRedirectsToUnauthorized(t *testing.T) {
	c, rec := newAuthzContext(t, &ports.ResolvedSession{
		Session: domain.Session{User: &domain.User{Role: domain.RoleUser}},
	})

	mw := Authorize("/login", "/unauthorized", domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/unauthorized" {
		t.Fatalf("expected redirect to /unauthorized, got %q", loc)
	}
}

func TestAuthorize_PendingNeverRedirects(t *testing.T) {
	c, rec := newAuthzContext(t, &ports.ResolvedSession{
		Session: domain.Session{Loading: true},
	})

	mw := Authorize("/login", "/unauthorized", domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next while loading")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Fatalf("no redirect may be issued while loading")
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestAuthorize_MissingSessionMiddleware(t *testing.T) {
	// Route misconfigured without the Session middleware: zero value means
	// no session, so the guard falls back to the login redirect.
	c, rec := newAuthzContext(t, nil)

	mw := Authorize("/login", "/unauthorized", domain.RoleUser)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected login redirect, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
