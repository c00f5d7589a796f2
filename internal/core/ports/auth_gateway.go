package ports

import (
	"context"
	"net/http"

	"github.com/syncspace/edge-gateway/internal/core/domain"
)

// RegisterInput carries the fields the backend expects for account creation.
type RegisterInput struct {
	FirstName string
	LastName  string
	Gender    string
	Email     string
	Password  string
}

// AuthGateway translates local auth operations into remote HTTP calls against
// the backend API. Every failure, application-level or transport-level, is
// returned as a single error carrying a human-readable message; callers never
// need a distinct transport-failure path.
type AuthGateway interface {
	// Register creates an account and returns the backend's confirmation message.
	Register(ctx context.Context, in RegisterInput) (string, error)

	// Login authenticates and returns the User plus the credential cookies the
	// backend set, so subsequent proxied calls can include them.
	Login(ctx context.Context, email, password string) (*domain.User, []*http.Cookie, error)

	// Logout terminates the server-side session identified by the given
	// credential cookies. Local state is cleared by the caller regardless of
	// this result.
	Logout(ctx context.Context, upstream []*http.Cookie) error
}
