package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/syncspace/edge-gateway/internal/core/domain"
	"github.com/syncspace/edge-gateway/internal/core/ports"
)

type stubSessionStore struct {
	records     map[string][]byte
	unreachable bool
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{records: make(map[string][]byte)}
}

func (s *stubSessionStore) Load(_ context.Context, sid string) ([]byte, error) {
	if s.unreachable {
		return nil, domain.ErrSessionStoreUnavailable
	}
	data, ok := s.records[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return data, nil
}

func (s *stubSessionStore) Save(_ context.Context, sid string, data []byte) error {
	if s.unreachable {
		return domain.ErrSessionStoreUnavailable
	}
	s.records[sid] = data
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, sid string) error {
	if s.unreachable {
		return domain.ErrSessionStoreUnavailable
	}
	delete(s.records, sid)
	return nil
}

type stubGateway struct {
	logoutErr   error
	logoutCalls int
}

func (g *stubGateway) Register(context.Context, ports.RegisterInput) (string, error) {
	return "", nil
}

func (g *stubGateway) Login(context.Context, string, string) (*domain.User, []*http.Cookie, error) {
	return nil, nil, nil
}

func (g *stubGateway) Logout(context.Context, []*http.Cookie) error {
	g.logoutCalls++
	return g.logoutErr
}

func newTestSessionService(store ports.SessionStore, gateway ports.AuthGateway) *SessionService {
	return NewSessionService(store, gateway, "test-secret", time.Hour, zerolog.Nop())
}

func testUser() *domain.User {
	return &domain.User{
		ID:        "u_1",
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dana@example.com",
		Role:      domain.RoleHost,
	}
}

func TestSessionService_LoginRestoreRoundTrip(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestSessionService(store, &stubGateway{})
	user := testUser()

	upstream := []*http.Cookie{{Name: "connect.sid", Value: "abc123"}}
	token, err := svc.Login(context.Background(), user, upstream)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected session token")
	}

	resolved := svc.Restore(context.Background(), token)
	if resolved.Session.Loading {
		t.Fatalf("restored session should not be loading")
	}
	if !reflect.DeepEqual(resolved.Session.User, user) {
		t.Fatalf("restored user mismatch: %+v", resolved.Session.User)
	}
	if len(resolved.Upstream) != 1 || resolved.Upstream[0].Value != "abc123" {
		t.Fatalf("upstream cookies not restored: %+v", resolved.Upstream)
	}

	// The durable copy must deserialize back to an equal value.
	if len(store.records) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(store.records))
	}
	for _, data := range store.records {
		var record sessionRecord
		if err := json.Unmarshal(data, &record); err != nil {
			t.Fatalf("persisted record does not round-trip: %v", err)
		}
		if !reflect.DeepEqual(record.User, user) {
			t.Fatalf("persisted user mismatch: %+v", record.User)
		}
	}
}

func TestSessionService_RestoreCorruptRecord(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("not json at all"),
		[]byte(`{"user":null}`),
		[]byte(`{"user":{"id":"u_1","role":"superuser"}}`),
		[]byte(`{`),
		{},
	} {
		store := newStubSessionStore()
		svc := newTestSessionService(store, &stubGateway{})

		token, err := svc.Login(context.Background(), testUser(), nil)
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		for sid := range store.records {
			store.records[sid] = data
		}

		resolved := svc.Restore(context.Background(), token)
		if resolved.Session.Loading || resolved.Session.User != nil {
			t.Fatalf("corrupt record %q should restore to no session, got %+v", data, resolved.Session)
		}
		if len(store.records) != 0 {
			t.Fatalf("corrupt record %q should be discarded", data)
		}
	}
}

func TestSessionService_RestoreForgedToken(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestSessionService(store, &stubGateway{})

	other := NewSessionService(store, &stubGateway{}, "other-secret", time.Hour, zerolog.Nop())
	forged, err := other.signToken("sid-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	for _, token := range []string{forged, "garbage", ""} {
		resolved := svc.Restore(context.Background(), token)
		if resolved.Session.Loading || resolved.Session.User != nil {
			t.Fatalf("token %q should restore to no session", token)
		}
	}
}

func TestSessionService_RestoreStoreUnreachable(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestSessionService(store, &stubGateway{})

	token, err := svc.Login(context.Background(), testUser(), nil)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	store.unreachable = true
	resolved := svc.Restore(context.Background(), token)
	if !resolved.Session.Loading {
		t.Fatalf("unreachable store must yield a loading session, got %+v", resolved.Session)
	}
	if resolved.Session.User != nil {
		t.Fatalf("loading session must carry no user")
	}
}

func TestSessionService_LoginThenLogout(t *testing.T) {
	store := newStubSessionStore()
	gateway := &stubGateway{}
	svc := newTestSessionService(store, gateway)

	token, err := svc.Login(context.Background(), testUser(), nil)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	resolved := svc.Restore(context.Background(), token)
	svc.Logout(context.Background(), resolved)

	if gateway.logoutCalls != 1 {
		t.Fatalf("expected one remote logout call, got %d", gateway.logoutCalls)
	}
	if len(store.records) != 0 {
		t.Fatalf("logout must clear the persisted record")
	}

	after := svc.Restore(context.Background(), token)
	if after.Session.User != nil || after.Session.Loading {
		t.Fatalf("post-logout state must equal the initial one, got %+v", after.Session)
	}
}

func TestSessionService_LogoutWhileOffline(t *testing.T) {
	store := newStubSessionStore()
	gateway := &stubGateway{logoutErr: errors.New("connection refused")}
	svc := newTestSessionService(store, gateway)

	token, err := svc.Login(context.Background(), testUser(), nil)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	resolved := svc.Restore(context.Background(), token)
	svc.Logout(context.Background(), resolved)

	if len(store.records) != 0 {
		t.Fatalf("local session must be cleared even when remote logout fails")
	}
}
