package domain

import "time"

const (
	ActionRegister = "register"
	ActionLogin    = "login"
	ActionLogout   = "logout"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ActivityEntry records a single auth-surface action for the admin feed.
// Actor is the email the action was attempted for, or "anonymous" when none
// was supplied.
type ActivityEntry struct {
	ID      string    `json:"id"`
	Actor   string    `json:"actor"`
	Action  string    `json:"action"`
	Outcome string    `json:"outcome"`
	At      time.Time `json:"at"`
}
