// ABOUTME: Session lifecycle: login, signup, logout, silent auth restoration
// ABOUTME: Holds the current user and mirrors token state in the store

package service

import (
	"context"
	"log/slog"
	"sync"

	"medinsight-client/api"
	"medinsight-client/driver"
	"medinsight-client/models"
)

// SessionState describes where the session manager currently is.
type SessionState string

const (
	SessionLoading         SessionState = "loading"
	SessionAuthenticated   SessionState = "authenticated"
	SessionUnauthenticated SessionState = "unauthenticated"
)

// SessionManager owns the authenticated user and drives the auth endpoints.
// All methods are safe for concurrent use.
type SessionManager struct {
	client *driver.Client
	auth   *api.AuthAPI
	users  *api.UsersAPI
	nav    driver.Navigator
	logger *slog.Logger

	mu      sync.RWMutex
	state   SessionState
	user    *models.User
	lastErr string
}

// NewSessionManager wires the manager over client. nav and logger fall back
// to no-op implementations when nil.
func NewSessionManager(client *driver.Client, nav driver.Navigator, logger *slog.Logger) *SessionManager {
	if nav == nil {
		nav = driver.NoOpNavigator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		client: client,
		auth:   api.NewAuthAPI(client),
		users:  api.NewUsersAPI(client),
		nav:    nav,
		logger: logger,
		state:  SessionLoading,
	}
}

// State returns the current session state.
func (m *SessionManager) State() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the current user, or nil when unauthenticated.
func (m *SessionManager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// LastError returns the message from the most recent failed login or signup.
func (m *SessionManager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

func (m *SessionManager) setAuthenticated(user *models.User) {
	m.mu.Lock()
	m.state = SessionAuthenticated
	m.user = user
	m.lastErr = ""
	m.mu.Unlock()
}

func (m *SessionManager) setUnauthenticated(errMsg string) {
	m.mu.Lock()
	m.state = SessionUnauthenticated
	m.user = nil
	m.lastErr = errMsg
	m.mu.Unlock()
}

// Login exchanges credentials for a token, persists it, and adopts the user
// from the response. Responses without an embedded user trigger a profile
// fetch instead.
func (m *SessionManager) Login(ctx context.Context, creds models.Credentials) bool {
	resp := m.auth.Login(ctx, creds)
	if !resp.OK() {
		m.logger.Warn("login failed", "status", resp.Status, "error", resp.Err)
		m.setUnauthenticated(resp.Err)
		return false
	}
	m.client.Tokens().Set(ctx, resp.Data.AccessToken)
	if resp.Data.User != nil {
		m.setAuthenticated(resp.Data.User)
		return true
	}
	if !m.RefreshUser(ctx) {
		// The token was persisted above; without a user the session is only
		// half established, so drop it.
		m.client.Tokens().Clear(ctx)
		return false
	}
	return true
}

// Signup creates the account and establishes a session the same way Login
// does.
func (m *SessionManager) Signup(ctx context.Context, payload models.SignupPayload) bool {
	resp := m.auth.Signup(ctx, payload)
	if !resp.OK() {
		m.logger.Warn("signup failed", "status", resp.Status, "error", resp.Err)
		m.setUnauthenticated(resp.Err)
		return false
	}
	m.client.Tokens().Set(ctx, resp.Data.AccessToken)
	if resp.Data.User != nil {
		m.setAuthenticated(resp.Data.User)
		return true
	}
	if !m.RefreshUser(ctx) {
		// The token was persisted above; without a user the session is only
		// half established, so drop it.
		m.client.Tokens().Clear(ctx)
		return false
	}
	return true
}

// Logout tells the backend to end the session, then clears local state
// regardless of whether the server call succeeded.
func (m *SessionManager) Logout(ctx context.Context) {
	resp := m.auth.Logout(ctx)
	if !resp.OK() {
		m.logger.Warn("server logout failed, clearing local session anyway",
			"status", resp.Status, "error", resp.Err)
	}
	m.client.Tokens().Clear(ctx)
	m.client.ClearCache()
	m.setUnauthenticated("")
	m.nav.NavigateTo(driver.LoginPath)
}

// CheckAuth restores the session at startup. On public pages it does
// nothing. Failures stay silent: the user simply remains logged out.
func (m *SessionManager) CheckAuth(ctx context.Context) {
	if driver.IsPublicPath(m.nav.CurrentPath()) {
		m.setUnauthenticated("")
		return
	}
	resp := m.users.CurrentUser(ctx)
	if !resp.OK() {
		m.logger.Debug("silent auth check failed", "status", resp.Status)
		m.setUnauthenticated("")
		return
	}
	m.setAuthenticated(resp.Data)
}

// RefreshUser re-fetches the profile and updates the session with it.
func (m *SessionManager) RefreshUser(ctx context.Context) bool {
	m.client.InvalidateCache("/users/aboutme")
	resp := m.users.CurrentUser(ctx)
	if !resp.OK() {
		m.logger.Warn("failed to refresh user profile", "status", resp.Status, "error", resp.Err)
		m.setUnauthenticated(resp.Err)
		return false
	}
	m.setAuthenticated(resp.Data)
	return true
}
