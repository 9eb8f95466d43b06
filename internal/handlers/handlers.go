package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/report"
	"spendwise/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Context key type to avoid collisions.
type contextKey string

// UserContextKey is the context key for the authenticated user.
const UserContextKey contextKey = "user"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// Categories is the fixed set of expense categories accepted by the
// create and update endpoints.
var Categories = []string{
	"food",
	"transport",
	"entertainment",
	"utilities",
	"housing",
	"gifts",
	"other",
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	accounts *storage.AccountStore
	sessions *storage.SessionManager
	expenses *storage.ExpenseStore
	log      *zap.Logger
}

// New creates a new Handlers instance.
func New(accounts *storage.AccountStore, sessions *storage.SessionManager, expenses *storage.ExpenseStore, log *zap.Logger) *Handlers {
	return &Handlers{accounts: accounts, sessions: sessions, expenses: expenses, log: log}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// RequireAuth wraps handlers behind the session gate. Requests without a
// resolvable session user are redirected to the login entry point.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.sessions.CurrentUser()
		if err != nil {
			h.log.Error("session lookup failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Register handles account creation.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if len(req.Password) < MinPasswordLength {
		respondError(w, http.StatusBadRequest, "password must be at least 6 characters long")
		return
	}

	user, err := h.accounts.Register(name, email, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		h.log.Error("register failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.Info("user registered", zap.String("userId", user.ID))
	respondJSON(w, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and starts the session.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.accounts.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error("authenticate failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.sessions.Start(user); err != nil {
		h.log.Error("failed to start session", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.Info("user logged in", zap.String("userId", user.ID))
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout ends the session and sends the client back to the login entry
// point. Logging out without a session is fine.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(); err != nil {
		h.log.Error("failed to end session", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginEntry is the unauthenticated entry point RequireAuth redirects to.
// An already-authenticated client is sent on to /expenses.
func (h *Handlers) LoginEntry(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.CurrentUser()
	if err == nil && user != nil {
		http.Redirect(w, r, "/expenses", http.StatusFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "please log in"})
}

type listResponse struct {
	Expenses  []models.Expense `json:"expenses"`
	Summary   report.Summary   `json:"summary"`
	Formatted struct {
		Total     string `json:"total"`
		ThisMonth string `json:"thisMonth"`
	} `json:"formatted"`
}

// ListExpenses returns the caller's expenses. Query params q, category
// and sort filter and order the list; the summary always covers the full
// list, matching the dashboard behavior.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	all, err := h.expenses.ListForUser(user.ID)
	if err != nil {
		h.log.Error("list expenses failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	q := r.URL.Query()
	visible := report.Filter(all, q.Get("q"), q.Get("category"))
	if key := q.Get("sort"); key != "" {
		visible = report.SortBy(visible, key)
	}

	resp := listResponse{Expenses: visible, Summary: report.Summarize(all, time.Now())}
	resp.Formatted.Total = report.FormatINR(resp.Summary.Total)
	resp.Formatted.ThisMonth = report.FormatINR(resp.Summary.ThisMonth)
	respondJSON(w, http.StatusOK, resp)
}

type expenseRequest struct {
	Title       string  `json:"title"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func validateExpense(req expenseRequest) string {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if req.Amount <= 0 {
		return "amount must be a positive number greater than zero"
	}
	if !validCategory(req.Category) {
		return "unknown category"
	}
	if _, err := report.ParseDate(req.Date); err != nil {
		return "date must be a valid yyyy-mm-dd date"
	}
	return ""
}

// CreateExpense adds a new expense for the caller.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateExpense(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	expense, err := h.expenses.Create(user.ID, storage.ExpenseFields{
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		h.log.Error("create expense failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

type expenseUpdateRequest struct {
	Title       *string  `json:"title"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
}

func validateExpenseUpdate(req expenseUpdateRequest) string {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return "title is required"
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return "amount must be a positive number greater than zero"
	}
	if req.Category != nil && !validCategory(*req.Category) {
		return "unknown category"
	}
	if req.Date != nil {
		if _, err := report.ParseDate(*req.Date); err != nil {
			return "date must be a valid yyyy-mm-dd date"
		}
	}
	return ""
}

// UpdateExpense merges the provided fields over the caller's expense.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id := chi.URLParam(r, "id")

	var req expenseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateExpenseUpdate(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	expense, err := h.expenses.Update(user.ID, id, storage.ExpenseUpdate{
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("update expense failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

// DeleteExpense removes the caller's expense.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id := chi.URLParam(r, "id")

	if err := h.expenses.Delete(user.ID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("delete expense failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
