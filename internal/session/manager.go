package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/munidigital/portalctl/internal/api"
)

// AuthAPI is the slice of the backend the session lifecycle needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	RequestReset(ctx context.Context, email string) error
	ConfirmReset(ctx context.Context, code, newPassword string) error
}

// ResetStatus tracks the password-recovery flow. Requested stays set after
// the reset email goes out and flips to Succeeded once the code is
// confirmed.
type ResetStatus struct {
	Requested bool
	Succeeded bool
	Reason    string
}

// Manager drives session transitions: credential exchange, logout, and the
// password-recovery flow. All state lives in the Store; the manager adds
// the token decoding and the reset flags.
type Manager struct {
	store *Store
	auth  AuthAPI

	reset ResetStatus
}

func NewManager(store *Store, auth AuthAPI) *Manager {
	return &Manager{store: store, auth: auth}
}

// Store exposes the underlying session store.
func (m *Manager) Store() *Store {
	return m.store
}

// Current returns the session state.
func (m *Manager) Current() Session {
	return m.store.Current()
}

// Login exchanges credentials for a bearer token, decodes the embedded
// claims locally, and persists the authenticated session. Any failure
// leaves the session unauthenticated with nothing persisted.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	token, err := m.auth.Login(ctx, username, password)
	if err != nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			log.Warn().Err(clearErr).Msg("failed to clear session after login failure")
		}
		return Unauthenticated(), err
	}

	claims, err := ParseClaims(token)
	if err != nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			log.Warn().Err(clearErr).Msg("failed to clear session after login failure")
		}
		return Unauthenticated(), fmt.Errorf("login succeeded but token is unusable: %w", err)
	}

	user := User{ID: claims.UserID, Username: claims.Subject}
	if err := m.store.SetAuthenticated(user, claims.IsAdmin, token); err != nil {
		return Unauthenticated(), err
	}

	return m.store.Current(), nil
}

// Logout unconditionally clears the session. Idempotent.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// RequestPasswordReset starts the recovery flow for the given email.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) error {
	m.reset = ResetStatus{Requested: true}

	if err := m.auth.RequestReset(ctx, email); err != nil {
		m.reset = ResetStatus{Reason: resetReason(err)}
		return err
	}

	// The reset was only requested, success comes with the confirmation.
	return nil
}

// ResetPassword completes the recovery flow with the emailed code. It never
// mutates authentication state.
func (m *Manager) ResetPassword(ctx context.Context, code, newPassword string) error {
	m.reset = ResetStatus{Requested: true}

	if err := m.auth.ConfirmReset(ctx, code, newPassword); err != nil {
		m.reset = ResetStatus{Reason: resetReason(err)}
		return err
	}

	m.reset = ResetStatus{Succeeded: true}
	return nil
}

// ClearResetStatus resets the recovery flags to neutral.
func (m *Manager) ClearResetStatus() {
	m.reset = ResetStatus{}
}

// ResetStatus returns the recovery-flow flags.
func (m *Manager) ResetStatus() ResetStatus {
	return m.reset
}

func resetReason(err error) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	var perr *api.PermissionError
	if errors.As(err, &perr) {
		return perr.Message
	}

	return err.Error()
}
