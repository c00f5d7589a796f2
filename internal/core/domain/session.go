package domain

// Session is the nullable holder of the current principal. Loading is true
// while the persisted copy is still being restored; no authorization decision
// may be made until it flips to false.
type Session struct {
	User    *User
	Loading bool
}

// Authenticated reports whether a principal is present.
func (s Session) Authenticated() bool {
	return !s.Loading && s.User != nil
}

// Decision is the outcome of evaluating a session against a protected view's
// allowed-role set.
type Decision string

const (
	DecisionPending         Decision = "pending"
	DecisionUnauthenticated Decision = "unauthenticated"
	DecisionForbidden       Decision = "forbidden"
	DecisionGranted         Decision = "granted"
)

// Decide evaluates the authorization state machine. It is a pure function of
// (session, allowed roles); issuing the redirect that follows a denied
// decision is the caller's concern.
//
//	loading                      → pending
//	no user                      → unauthenticated
//	user, role ∉ allowed         → forbidden
//	user, role ∈ allowed         → granted
func Decide(s Session, allowed []string) Decision {
	if s.Loading {
		return DecisionPending
	}
	if s.User == nil {
		return DecisionUnauthenticated
	}
	for _, role := range allowed {
		if s.User.Role == role {
			return DecisionGranted
		}
	}
	return DecisionForbidden
}
