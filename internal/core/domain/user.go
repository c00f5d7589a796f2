package domain

import "errors"

const (
	RoleAdmin = "admin"
	RoleHost  = "host"
	RoleUser  = "user"
)

var ErrSessionNotFound = errors.New("session not found")
var ErrSessionStoreUnavailable = errors.New("session store unavailable")
var ErrNotAnImage = errors.New("file must be an image")
var ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")

// User models the authenticated principal of a browsing session. The record
// is produced by the backend at registration/login time and is the sole
// authority for authorization decisions in this layer; the role is never
// mutated client-side.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Gender    string `json:"gender,omitempty"`
	Role      string `json:"role"`
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleHost || role == RoleUser
}
