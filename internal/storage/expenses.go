package storage

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"spendwise/internal/kv"
	"spendwise/internal/models"

	"github.com/google/uuid"
)

// ExpenseStore manages expense records for all users in the expenses
// slot. Every lookup is scoped by both expense id and owning user id, so
// a guessed id never reaches another user's record.
type ExpenseStore struct {
	mu sync.Mutex
	kv kv.Store
}

// NewExpenseStore creates an ExpenseStore over the given slot store.
func NewExpenseStore(store kv.Store) *ExpenseStore {
	return &ExpenseStore{kv: store}
}

// ExpenseFields holds the caller-supplied fields for a new expense.
// The store only normalizes; validation happens at the boundary.
type ExpenseFields struct {
	Title       string
	Amount      float64
	Category    string
	Date        string
	Description string
}

// ExpenseUpdate holds a partial update; nil fields are left unchanged.
type ExpenseUpdate struct {
	Title       *string
	Amount      *float64
	Category    *string
	Date        *string
	Description *string
}

// ListForUser returns all expenses owned by userID in insertion order.
func (s *ExpenseStore) ListForUser(userID string) ([]models.Expense, error) {
	all, err := s.loadExpenses()
	if err != nil {
		return nil, err
	}
	var owned []models.Expense
	for _, e := range all {
		if e.UserID == userID {
			owned = append(owned, e)
		}
	}
	return owned, nil
}

// Create persists a new expense for userID and returns it.
func (s *ExpenseStore) Create(userID string, fields ExpenseFields) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadExpenses()
	if err != nil {
		return nil, err
	}

	expense := models.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(fields.Title),
		Amount:      fields.Amount,
		Category:    fields.Category,
		Date:        fields.Date,
		Description: strings.TrimSpace(fields.Description),
		CreatedAt:   time.Now().UTC(),
	}

	all = append(all, expense)
	if err := s.saveExpenses(all); err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update merges the provided fields over the expense owned by userID.
// A missing id or an ownership mismatch both return ErrNotFound.
func (s *ExpenseStore) Update(userID, expenseID string, updates ExpenseUpdate) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadExpenses()
	if err != nil {
		return nil, err
	}

	idx := findOwned(all, userID, expenseID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	expense := all[idx]
	if updates.Title != nil {
		expense.Title = strings.TrimSpace(*updates.Title)
	}
	if updates.Amount != nil {
		expense.Amount = *updates.Amount
	}
	if updates.Category != nil {
		expense.Category = *updates.Category
	}
	if updates.Date != nil {
		expense.Date = *updates.Date
	}
	if updates.Description != nil {
		expense.Description = strings.TrimSpace(*updates.Description)
	}
	expense.UpdatedAt = time.Now().UTC()

	all[idx] = expense
	if err := s.saveExpenses(all); err != nil {
		return nil, err
	}
	return &expense, nil
}

// Delete removes the expense owned by userID. Returns ErrNotFound on a
// missing id or an ownership mismatch.
func (s *ExpenseStore) Delete(userID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadExpenses()
	if err != nil {
		return err
	}

	idx := findOwned(all, userID, expenseID)
	if idx < 0 {
		return ErrNotFound
	}

	all = append(all[:idx], all[idx+1:]...)
	return s.saveExpenses(all)
}

func findOwned(all []models.Expense, userID, expenseID string) int {
	for i, e := range all {
		if e.ID == expenseID && e.UserID == userID {
			return i
		}
	}
	return -1
}

// loadExpenses reads the expenses slot. A missing or malformed slot is
// treated as an empty collection.
func (s *ExpenseStore) loadExpenses() ([]models.Expense, error) {
	raw, ok, err := s.kv.Get(kv.ExpensesSlot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var expenses []models.Expense
	if err := json.Unmarshal([]byte(raw), &expenses); err != nil {
		return nil, nil
	}
	return expenses, nil
}

func (s *ExpenseStore) saveExpenses(expenses []models.Expense) error {
	raw, err := json.Marshal(expenses)
	if err != nil {
		return err
	}
	return s.kv.Set(kv.ExpensesSlot, string(raw))
}
