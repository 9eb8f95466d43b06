package storage

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"spendwise/internal/auth"
	"spendwise/internal/kv"
	"spendwise/internal/models"

	"github.com/google/uuid"
)

// AccountStore manages registered users in the users slot.
type AccountStore struct {
	mu sync.Mutex
	kv kv.Store
}

// NewAccountStore creates an AccountStore over the given slot store.
func NewAccountStore(store kv.Store) *AccountStore {
	return &AccountStore{kv: store}
}

// NormalizeEmail trims surrounding whitespace and lowercases the email.
// Stored emails are always in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user. The email must not already be registered;
// the comparison is case-insensitive.
func (s *AccountStore) Register(name, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}

	normalized := NormalizeEmail(email)
	for i := range users {
		if strings.EqualFold(users[i].Email, normalized) {
			return nil, ErrDuplicateEmail
		}
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        normalized,
		PasswordHash: auth.HashPassword(password),
		CreatedAt:    time.Now().UTC(),
	}

	users = append(users, user)
	if err := s.saveUsers(users); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks email and password against the stored digest.
// It never reveals whether the email exists.
func (s *AccountStore) Authenticate(email, password string) (*models.User, error) {
	user, err := s.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// FindByEmail looks up a user by email, case-insensitively.
// Returns (nil, nil) when no user matches.
func (s *AccountStore) FindByEmail(email string) (*models.User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	target := NormalizeEmail(email)
	for i := range users {
		if strings.EqualFold(users[i].Email, target) {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindByID looks up a user by id. Returns (nil, nil) when absent.
func (s *AccountStore) FindByID(id string) (*models.User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// loadUsers reads the users slot. A missing or malformed slot is treated
// as an empty collection, never an error.
func (s *AccountStore) loadUsers() ([]models.User, error) {
	raw, ok, err := s.kv.Get(kv.UsersSlot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, nil
	}
	return users, nil
}

func (s *AccountStore) saveUsers(users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.kv.Set(kv.UsersSlot, string(raw))
}
