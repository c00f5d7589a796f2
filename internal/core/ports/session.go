package ports

import (
	"context"
	"net/http"

	"github.com/syncspace/edge-gateway/internal/core/domain"
)

// SessionStore is the durable mirror of session records. Implementations
// return domain.ErrSessionNotFound when no record exists for the id and
// domain.ErrSessionStoreUnavailable when the store cannot be reached.
type SessionStore interface {
	Load(ctx context.Context, sid string) ([]byte, error)
	Save(ctx context.Context, sid string, data []byte) error
	Delete(ctx context.Context, sid string) error
}

// ResolvedSession pairs the authorization view of a session with the backend
// credential cookies captured at login time.
type ResolvedSession struct {
	SID      string
	Session  domain.Session
	Upstream []*http.Cookie
}

// SessionService is the single process-wide authority for "who is logged in".
// Login, Logout, and Restore's corrupt-record discard are the only mutation
// paths; everything else is a reader.
type SessionService interface {
	// Restore resolves a session cookie value into a session. It never fails
	// outward: a missing, forged, or corrupt record yields an empty session,
	// and an unreachable store yields a loading one.
	Restore(ctx context.Context, token string) ResolvedSession

	// Login persists the freshly authenticated user and returns the signed
	// cookie value that identifies the new session.
	Login(ctx context.Context, user *domain.User, upstream []*http.Cookie) (string, error)

	// Logout invokes the remote gateway's logout fire-and-forget and clears
	// the local record unconditionally.
	Logout(ctx context.Context, resolved ResolvedSession)
}
