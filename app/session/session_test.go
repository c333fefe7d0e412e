package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shashiranjanraj/bodega/app/api"
	"github.com/shashiranjanraj/bodega/app/session"
	"github.com/shashiranjanraj/bodega/pkg/event"
	"github.com/shashiranjanraj/bodega/pkg/kvstore"
	"github.com/shashiranjanraj/bodega/pkg/testkit"
)

const base = "https://backend.test"

const authOK = `{"access_token":"tok-1","token_type":"bearer",` +
	`"user":{"id":"u1","email":"ana@example.com","full_name":"Ana","role":"customer"}}`

const meOK = `{"id":"u1","email":"ana@example.com","full_name":"Ana","role":"customer"}`

func newSession(t *testing.T) (*session.Manager, *kvstore.Store) {
	t.Helper()
	t.Cleanup(event.Flush)

	store, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	gw := api.New(base, nil, time.Second)
	m := session.NewManager(store, gw)
	gw.SetTokenSource(m)
	t.Cleanup(m.Close)
	return m, store
}

func TestLoginSuccess(t *testing.T) {
	m, store := newSession(t)
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Body: authOK},
	)

	if !m.Login(context.Background(), "ana@example.com", "secret") {
		t.Fatal("expected login to succeed")
	}

	if m.Token() != "tok-1" {
		t.Errorf("expected token tok-1, got %q", m.Token())
	}
	user, ok := m.User()
	if !ok || user.FullName != "Ana" {
		t.Errorf("unexpected user: %+v (ok=%t)", user, ok)
	}

	// Both halves of the pair hit disk.
	if tok, ok := store.GetSealed("auth_token"); !ok || tok != "tok-1" {
		t.Errorf("expected sealed token persisted, got %q (ok=%t)", tok, ok)
	}
	if !store.Has("user_data") {
		t.Error("expected user record persisted")
	}
}

func TestLoginFailureLeavesPriorSessionIntact(t *testing.T) {
	m, store := newSession(t)
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Body: authOK},
	)

	if !m.Login(context.Background(), "ana@example.com", "secret") {
		t.Fatal("expected first login to succeed")
	}

	// Swap the transport so the next attempt is rejected.
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Status: 401,
			Body: `{"detail":"Incorrect email or password"}`},
	)

	if m.Login(context.Background(), "ana@example.com", "wrong") {
		t.Fatal("expected second login to fail")
	}

	// The failed attempt must not disturb the active session.
	if m.Token() != "tok-1" {
		t.Errorf("expected original token kept, got %q", m.Token())
	}
	if tok, _ := store.GetSealed("auth_token"); tok != "tok-1" {
		t.Errorf("expected persisted token kept, got %q", tok)
	}
	if !m.IsAuthenticated() {
		t.Error("expected to stay signed in")
	}
}

func TestLoginFailureWhenSignedOut(t *testing.T) {
	m, store := newSession(t)
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Status: 401,
			Body: `{"detail":"Incorrect email or password"}`},
	)

	if m.Login(context.Background(), "ana@example.com", "wrong") {
		t.Fatal("expected login to fail")
	}
	if m.IsAuthenticated() {
		t.Error("expected signed-out state")
	}
	if store.Has("auth_token") || store.Has("user_data") {
		t.Error("failed login must not persist anything")
	}
}

func TestRegisterSignsIn(t *testing.T) {
	m, _ := newSession(t)
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/register", Body: authOK},
	)

	ok := m.Register(context.Background(), api.RegisterInput{
		Email: "ana@example.com", Password: "secret",
		FullName: "Ana", Role: "customer",
	})
	if !ok {
		t.Fatal("expected register to succeed")
	}
	if !m.IsAuthenticated() {
		t.Error("expected signed-in state after signup")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	m, store := newSession(t)
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Body: authOK},
	)
	m.Login(context.Background(), "ana@example.com", "secret")

	m.Logout()

	if m.IsAuthenticated() || m.Token() != "" {
		t.Error("expected signed-out state")
	}
	if store.Has("auth_token") || store.Has("user_data") {
		t.Error("expected persisted pair removed")
	}

	m.Logout() // idempotent
}

func TestHydrateRestoresVerifiedSession(t *testing.T) {
	m, store := newSession(t)
	_ = store.PutSealed("auth_token", "tok-1")
	_ = store.Put("user_data", meOK)

	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/auth/me", Body: meOK},
	)

	m.Hydrate(context.Background())

	if !m.IsAuthenticated() || m.Token() != "tok-1" {
		t.Error("expected hydrated session")
	}
	user, _ := m.User()
	if user.Email != "ana@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestHydrateFailClosedOnRejectedToken(t *testing.T) {
	m, store := newSession(t)
	_ = store.PutSealed("auth_token", "stale")
	_ = store.Put("user_data", meOK)

	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/auth/me", Status: 401,
			Body: `{"detail":"Token expired"}`},
	)

	m.Hydrate(context.Background())

	if m.IsAuthenticated() {
		t.Error("expected fail-closed hydration")
	}
	if store.Has("auth_token") || store.Has("user_data") {
		t.Error("expected rejected pair cleared from disk")
	}
}

func TestHydrateFailClosedOnTransportError(t *testing.T) {
	m, store := newSession(t)
	_ = store.PutSealed("auth_token", "tok-1")
	_ = store.Put("user_data", meOK)

	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/auth/me", Fail: true},
	)

	m.Hydrate(context.Background())

	if m.IsAuthenticated() || store.Has("auth_token") {
		t.Error("unverifiable pair must be dropped, not trusted")
	}
}

func TestHydrateDropsHalfPairWithoutNetworkCall(t *testing.T) {
	m, store := newSession(t)
	_ = store.PutSealed("auth_token", "tok-1") // no user_data

	st := testkit.Install(t) // no stubs: any outgoing call fails the test

	m.Hydrate(context.Background())

	if m.IsAuthenticated() {
		t.Error("expected signed-out state")
	}
	if store.Has("auth_token") {
		t.Error("expected orphaned token removed")
	}
	if len(st.Calls()) != 0 {
		t.Errorf("expected no network traffic, got %v", st.Calls())
	}
}

func TestHydrateSkipsBackendForLocallyExpiredJWT(t *testing.T) {
	m, store := newSession(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_ = store.PutSealed("auth_token", expired)
	_ = store.Put("user_data", meOK)

	st := testkit.Install(t)

	m.Hydrate(context.Background())

	if m.IsAuthenticated() || store.Has("auth_token") {
		t.Error("expected expired token dropped")
	}
	if len(st.Calls()) != 0 {
		t.Errorf("local expiry must short-circuit the round trip, got %v", st.Calls())
	}
}

func TestHydrateEmptyStoreIsSignedOutStart(t *testing.T) {
	m, _ := newSession(t)
	st := testkit.Install(t)

	m.Hydrate(context.Background())

	if m.IsAuthenticated() {
		t.Error("expected signed-out state")
	}
	if len(st.Calls()) != 0 {
		t.Error("expected no network traffic")
	}
}

func TestSessionExpiredEventTriggersLogout(t *testing.T) {
	m, store := newSession(t)
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Body: authOK},
	)
	m.Login(context.Background(), "ana@example.com", "secret")

	event.Fire(event.SessionExpired, nil)

	if m.IsAuthenticated() || store.Has("auth_token") {
		t.Error("expected expiry broadcast to clear the session")
	}
}

func TestExpiredTokenOnAuthenticatedCallClearsSession(t *testing.T) {
	store, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(event.Flush)

	gw := api.New(base, nil, time.Second)
	m := session.NewManager(store, gw)
	gw.SetTokenSource(m)
	t.Cleanup(m.Close)

	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Body: authOK},
		testkit.Stub{Method: "GET", Path: "/api/orders/me", Status: 401,
			Body: `{"detail":"Token expired"}`},
	)
	m.Login(context.Background(), "ana@example.com", "secret")

	// A 401 on any authenticated call tears the session down via the
	// gateway's expiry broadcast.
	if _, err := gw.GetUserOrders(context.Background()); err == nil {
		t.Fatal("expected 401 error")
	}
	if m.IsAuthenticated() || store.Has("auth_token") {
		t.Error("expected session cleared after backend rejection")
	}
}

func TestUpdateProfile(t *testing.T) {
	m, _ := newSession(t)
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Body: authOK},
		testkit.Stub{Method: "PUT", Path: "/api/auth/profile",
			Body: `{"id":"u1","email":"ana@example.com","full_name":"Ana María","role":"customer"}`},
	)
	m.Login(context.Background(), "ana@example.com", "secret")

	if !m.UpdateProfile(context.Background(), map[string]interface{}{"full_name": "Ana María"}) {
		t.Fatal("expected profile update to succeed")
	}
	user, _ := m.User()
	if user.FullName != "Ana María" {
		t.Errorf("expected server response to replace the user, got %+v", user)
	}
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	m, _ := newSession(t)
	st := testkit.Install(t)

	if m.UpdateProfile(context.Background(), map[string]interface{}{"phone": "099"}) {
		t.Error("expected update to fail while signed out")
	}
	if len(st.Calls()) != 0 {
		t.Error("expected no network traffic while signed out")
	}
}
