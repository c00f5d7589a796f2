package domain

import "testing"

func TestDecide(t *testing.T) {
	hostUser := &User{Role: RoleHost}

	tests := []struct {
		name    string
		session Session
		allowed []string
		want    Decision
	}{
		{"loading always pending", Session{Loading: true}, []string{RoleAdmin}, DecisionPending},
		{"loading pending even with user", Session{User: hostUser, Loading: true}, []string{RoleHost}, DecisionPending},
		{"no user", Session{}, []string{RoleUser}, DecisionUnauthenticated},
		{"no user empty roles", Session{}, nil, DecisionUnauthenticated},
		{"role not allowed", Session{User: hostUser}, []string{RoleAdmin}, DecisionForbidden},
		{"empty role set forbids everyone", Session{User: hostUser}, nil, DecisionForbidden},
		{"role allowed", Session{User: hostUser}, []string{RoleHost}, DecisionGranted},
		{"role among several", Session{User: hostUser}, []string{RoleAdmin, RoleHost, RoleUser}, DecisionGranted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.session, tt.allowed); got != tt.want {
				t.Fatalf("Decide(%+v, %v) = %s, want %s", tt.session, tt.allowed, got, tt.want)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleHost, RoleUser} {
		if !ValidRole(role) {
			t.Fatalf("%q should be valid", role)
		}
	}
	for _, role := range []string{"", "superuser", "Admin", "HOST"} {
		if ValidRole(role) {
			t.Fatalf("%q should not be valid", role)
		}
	}
}
