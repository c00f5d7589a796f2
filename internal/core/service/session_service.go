package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/syncspace/edge-gateway/internal/core/domain"
	"github.com/syncspace/edge-gateway/internal/core/ports"
)

// sessionRecord is the persisted shape of a session: the principal plus the
// credential cookies the backend set at login.
type sessionRecord struct {
	User     *domain.User     `json:"user"`
	Upstream []upstreamCookie `json:"upstream,omitempty"`
}

type upstreamCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SessionService owns the session lifecycle: restore, login, logout. It is
// the only writer of the durable session store.
type SessionService struct {
	store   ports.SessionStore
	gateway ports.AuthGateway
	secret  []byte
	ttl     time.Duration
	log     zerolog.Logger
}

func NewSessionService(
	store ports.SessionStore,
	gateway ports.AuthGateway,
	secret string,
	ttl time.Duration,
	log zerolog.Logger,
) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		store:   store,
		gateway: gateway,
		secret:  []byte(secret),
		ttl:     ttl,
		log:     log,
	}
}

// Restore resolves a session cookie value into a session. Parse errors of any
// kind are fully absorbed: a forged token or a corrupt persisted record is
// equivalent to "no session". Only an unreachable store leaves the session in
// the loading state, so that no authorization decision is made against it.
func (s *SessionService) Restore(ctx context.Context, token string) ports.ResolvedSession {
	if token == "" {
		return ports.ResolvedSession{}
	}

	sid, err := s.parseToken(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("session token rejected")
		return ports.ResolvedSession{}
	}

	data, err := s.store.Load(ctx, sid)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return ports.ResolvedSession{}
	case err != nil:
		s.log.Warn().Err(err).Msg("session store unreachable, restore pending")
		return ports.ResolvedSession{Session: domain.Session{Loading: true}}
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil || record.User == nil || !domain.ValidRole(record.User.Role) {
		// Corrupt persisted value: discard it and proceed with no session.
		s.log.Warn().Str("sid", sid).Msg("discarding corrupt session record")
		if delErr := s.store.Delete(ctx, sid); delErr != nil {
			s.log.Warn().Err(delErr).Str("sid", sid).Msg("could not delete corrupt session record")
		}
		return ports.ResolvedSession{}
	}

	return ports.ResolvedSession{
		SID:      sid,
		Session:  domain.Session{User: record.User},
		Upstream: inflateCookies(record.Upstream),
	}
}

// Login replaces the current session with the supplied user and persists it
// durably. The user shape is taken as-is from a successful remote
// authentication call.
func (s *SessionService) Login(ctx context.Context, user *domain.User, upstream []*http.Cookie) (string, error) {
	record := sessionRecord{User: user, Upstream: flattenCookies(upstream)}
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	sid := uuid.NewString()
	if err := s.store.Save(ctx, sid, data); err != nil {
		return "", err
	}

	return s.signToken(sid)
}

// Logout terminates the session. The remote call is fire-and-forget: local
// state is cleared unconditionally, even when the backend is unreachable.
func (s *SessionService) Logout(ctx context.Context, resolved ports.ResolvedSession) {
	if err := s.gateway.Logout(ctx, resolved.Upstream); err != nil {
		s.log.Debug().Err(err).Msg("remote logout failed, clearing local session anyway")
	}

	if resolved.SID == "" {
		return
	}
	if err := s.store.Delete(ctx, resolved.SID); err != nil {
		s.log.Warn().Err(err).Str("sid", resolved.SID).Msg("could not delete session record")
	}
}

// TTL exposes the configured session lifetime for cookie expiry.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) signToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *SessionService) parseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sid, nil
}

func flattenCookies(cookies []*http.Cookie) []upstreamCookie {
	out := make([]upstreamCookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, upstreamCookie{Name: c.Name, Value: c.Value})
	}
	return out
}

func inflateCookies(cookies []upstreamCookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}
