// Package session owns the authenticated identity: the (token, user) pair.
//
// The invariant the whole package exists to protect: token and user are
// always written together and cleared together. There is no state where one
// half of the pair survives without the other, in memory or on disk.
//
// Login, Register, LoginWithGoogle and Logout report plain booleans — a
// failed attempt leaves the prior session exactly as it was and the UI shows
// a generic error. Hydrate is fail-closed: a persisted pair that the backend
// refuses to verify is cleared, never trusted.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/bodega/app/api"
	"github.com/shashiranjanraj/bodega/app/models"
	"github.com/shashiranjanraj/bodega/pkg/event"
	"github.com/shashiranjanraj/bodega/pkg/kvstore"
	"github.com/shashiranjanraj/bodega/pkg/logger"
	"github.com/shashiranjanraj/bodega/pkg/token"
)

// Keys this manager owns in the kvstore. No other manager touches them.
const (
	keyToken = "auth_token"
	keyUser  = "user_data"
)

// Manager holds the in-memory session and mediates all auth operations.
type Manager struct {
	mu    sync.RWMutex
	store *kvstore.Store
	gw    *api.Gateway
	user  *models.User
	token string

	unsub event.UnsubscribeFunc
}

// NewManager builds a session manager over the given store and gateway and
// subscribes to the gateway's session-expired broadcasts: any 401 on an
// authenticated call clears the session.
func NewManager(store *kvstore.Store, gw *api.Gateway) *Manager {
	m := &Manager{store: store, gw: gw}
	m.unsub = event.Listen(event.SessionExpired, func(interface{}) {
		logger.Info("session: backend rejected token, signing out")
		m.Logout()
	})
	return m
}

// Close removes the expiry listener. The manager itself lives for the
// process lifetime; Close exists for tests.
func (m *Manager) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

// Token returns the current bearer token, or "" when signed out.
// Implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns a copy of the authenticated user record.
func (m *Manager) User() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.User()
	return ok
}

// ─── Operations ───────────────────────────────────────────────────────────────

// Login exchanges credentials for a session. Returns false on any failure —
// wrong password, transport error — leaving the prior session untouched.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	resp, err := m.gw.Login(ctx, email, password)
	if err != nil {
		logger.Warn("session: login failed", "email", email, "error", err)
		return false
	}
	return m.commit(resp.AccessToken, resp.User)
}

// Register creates an account; a successful signup is also a login.
// Same persistence contract as Login.
func (m *Manager) Register(ctx context.Context, in api.RegisterInput) bool {
	resp, err := m.gw.Register(ctx, in)
	if err != nil {
		logger.Warn("session: registration failed", "email", in.Email, "error", err)
		return false
	}
	return m.commit(resp.AccessToken, resp.User)
}

// Logout unconditionally clears persisted and in-memory session state.
// Idempotent: logging out while signed out is a no-op.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// UpdateProfile PUTs partial fields and, on success, replaces the stored
// user wholesale with the server's response. Requires an active session.
func (m *Manager) UpdateProfile(ctx context.Context, fields map[string]interface{}) bool {
	if m.Token() == "" {
		return false
	}

	updated, err := m.gw.UpdateProfile(ctx, fields)
	if err != nil {
		logger.Warn("session: profile update failed", "error", err)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		// Session was torn down while the request was in flight.
		return false
	}
	if err := m.store.PutJSON(keyUser, updated); err != nil {
		logger.Error("session: persist user", "error", err)
		return false
	}
	m.user = updated
	return true
}

// Hydrate restores the session from disk at app start. A persisted pair is
// only trusted after the backend re-verifies the token; any verification
// failure clears everything. An absent pair is simply a signed-out start.
func (m *Manager) Hydrate(ctx context.Context) {
	stored, ok := m.store.GetSealed(keyToken)
	if !ok {
		return
	}
	var user models.User
	if !m.store.GetJSON(keyUser, &user) {
		// Half a pair is no pair. Drop the orphaned token.
		m.Logout()
		return
	}

	// A locally expired JWT cannot pass verification; skip the round trip.
	if token.Expired(stored, time.Now()) {
		logger.Info("session: stored token expired, signing out")
		m.Logout()
		return
	}

	verified, err := m.gw.VerifyToken(ctx, stored)
	if err != nil {
		logger.Info("session: stored token rejected, signing out", "error", err)
		m.Logout()
		return
	}

	// The server's record wins over the stale persisted copy.
	m.commit(stored, *verified)
}

// ─── Internal ─────────────────────────────────────────────────────────────────

// commit persists the pair and swaps it into memory. Persistence failures
// abort the commit so disk and memory never diverge.
func (m *Manager) commit(tok string, user models.User) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.PutSealed(keyToken, tok); err != nil {
		logger.Error("session: persist token", "error", err)
		return false
	}
	if err := m.store.PutJSON(keyUser, &user); err != nil {
		logger.Error("session: persist user", "error", err)
		// Roll the token back; a token without a user breaks the invariant.
		_ = m.store.Delete(keyToken)
		return false
	}

	m.token = tok
	m.user = &user
	return true
}

func (m *Manager) clearLocked() {
	if err := m.store.DeleteAll(keyToken, keyUser); err != nil {
		logger.Error("session: clear persisted state", "error", err)
	}
	m.token = ""
	m.user = nil
}
