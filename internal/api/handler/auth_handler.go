package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/syncspace/edge-gateway/internal/api/metrics"
	"github.com/syncspace/edge-gateway/internal/core/domain"
	"github.com/syncspace/edge-gateway/internal/core/ports"
)

// ActivityDispatcher is the interface the handlers use to enqueue activity
// entries without blocking the request.
type ActivityDispatcher interface {
	Enqueue(entry domain.ActivityEntry)
}

type AuthHandler struct {
	gateway    ports.AuthGateway
	sessions   ports.SessionService
	activity   ActivityDispatcher
	cookieName string
	cookieTTL  time.Duration
	loginPath  string
}

func NewAuthHandler(
	gateway ports.AuthGateway,
	sessions ports.SessionService,
	activity ActivityDispatcher,
	cookieName string,
	cookieTTL time.Duration,
	loginPath string,
) *AuthHandler {
	return &AuthHandler{
		gateway:    gateway,
		sessions:   sessions,
		activity:   activity,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		loginPath:  loginPath,
	}
}

// Register relays account creation to the backend.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	message, err := h.gateway.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(domain.OutcomeFailure).Inc()
		h.record(req.Email, domain.ActionRegister, domain.OutcomeFailure)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if message == "" {
		message = "account created"
	}
	metrics.RegistrationsTotal.WithLabelValues(domain.OutcomeSuccess).Inc()
	h.record(req.Email, domain.ActionRegister, domain.OutcomeSuccess)

	return c.JSON(http.StatusCreated, registerResponse{
		Message:  message,
		Redirect: h.loginPath,
	})
}

// Login authenticates against the backend and establishes a local session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, upstream, err := h.gateway.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(domain.OutcomeFailure).Inc()
		h.record(req.Email, domain.ActionLogin, domain.OutcomeFailure)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}

	token, err := h.sessions.Login(c.Request().Context(), user, upstream)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(domain.OutcomeFailure).Inc()
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "could not establish session"})
	}

	metrics.LoginsTotal.WithLabelValues(domain.OutcomeSuccess).Inc()
	h.record(user.Email, domain.ActionLogin, domain.OutcomeSuccess)
	h.setSessionCookie(c, token)

	return c.JSON(http.StatusOK, loginResponse{User: user})
}

// Logout clears the session. Local state is cleared unconditionally; the
// remote call's result does not affect the outcome.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	resolved := ctxSession(c)
	h.sessions.Logout(c.Request().Context(), resolved)

	metrics.LogoutsTotal.Inc()
	h.record(ctxActor(c), domain.ActionLogout, domain.OutcomeSuccess)
	h.clearSessionCookie(c)

	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *AuthHandler) record(actor, action, outcome string) {
	if h.activity == nil {
		return
	}
	h.activity.Enqueue(domain.ActivityEntry{Actor: actor, Action: action, Outcome: outcome})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
