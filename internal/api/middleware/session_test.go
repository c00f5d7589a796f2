package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/syncspace/edge-gateway/internal/core/domain"
	"github.com/syncspace/edge-gateway/internal/core/ports"
)

type stubSessionService struct {
	resolved ports.ResolvedSession
	gotToken string
	restores int
}

func (s *stubSessionService) Restore(_ context.Context, token string) ports.ResolvedSession {
	s.gotToken = token
	s.restores++
	return s.resolved
}

func (s *stubSessionService) Login(context.Context, *domain.User, []*http.Cookie) (string, error) {
	return "", nil
}

func (s *stubSessionService) Logout(context.Context, ports.ResolvedSession) {}

func TestSession_InjectsResolvedSession(t *testing.T) {
	svc := &stubSessionService{resolved: ports.ResolvedSession{
		SID:     "sid-1",
		Session: domain.Session{User: &domain.User{Email: "dana@example.com", Role: domain.RoleUser}},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "syncspace_session", Value: "token-123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("syncspace_session", svc)
	handler := mw(func(c echo.Context) error {
		resolved := SessionFrom(c)
		if resolved.SID != "sid-1" || resolved.Session.User == nil {
			t.Fatalf("session not injected: %+v", resolved)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.gotToken != "token-123" {
		t.Fatalf("cookie value not passed to Restore, got %q", svc.gotToken)
	}
}

func TestSession_NoCookieStillResolves(t *testing.T) {
	svc := &stubSessionService{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("syncspace_session", svc)
	handler := mw(func(c echo.Context) error {
		resolved := SessionFrom(c)
		if resolved.Session.User != nil || resolved.Session.Loading {
			t.Fatalf("expected empty session, got %+v", resolved.Session)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.restores != 1 || svc.gotToken != "" {
		t.Fatalf("expected one restore with empty token")
	}
}
