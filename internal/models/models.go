package models

import "time"

// User represents a registered account. The password is never stored in
// plaintext; PasswordHash holds the hex digest computed at registration.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the single persisted login record. Email and Name are a
// snapshot of the user at login time and are not refreshed afterwards.
type Session struct {
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// Expense represents a single expense record owned by one user.
// Date is the calendar date in yyyy-mm-dd form as entered.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}
