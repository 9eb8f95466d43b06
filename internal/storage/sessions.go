package storage

import (
	"encoding/json"
	"time"

	"spendwise/internal/kv"
	"spendwise/internal/models"
)

// SessionManager tracks the single persisted login session. At most one
// session exists at a time; starting a new one overwrites the previous.
type SessionManager struct {
	kv       kv.Store
	accounts *AccountStore
}

// NewSessionManager creates a SessionManager that resolves session users
// against the given AccountStore.
func NewSessionManager(store kv.Store, accounts *AccountStore) *SessionManager {
	return &SessionManager{kv: store, accounts: accounts}
}

// Start persists a session snapshot for the user. The stored name and
// email are not refreshed until the next login.
func (m *SessionManager) Start(user *models.User) error {
	session := models.Session{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		LoggedInAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return m.kv.Set(kv.SessionSlot, string(raw))
}

// Current returns the persisted session, or (nil, nil) when no session
// exists. A structurally invalid record counts as absent.
func (m *SessionManager) Current() (*models.Session, error) {
	raw, ok, err := m.kv.Get(kv.SessionSlot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, nil
	}
	if session.UserID == "" {
		return nil, nil
	}
	return &session, nil
}

// CurrentUser resolves the session against the account store. Returns
// (nil, nil) when there is no session or the user no longer exists.
func (m *SessionManager) CurrentUser() (*models.User, error) {
	session, err := m.Current()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return m.accounts.FindByID(session.UserID)
}

// End clears the session slot. Ending an absent session is a no-op.
func (m *SessionManager) End() error {
	return m.kv.Delete(kv.SessionSlot)
}
