package domain

import "time"

// Salary is the recorded income for one (user, month, year) triple. The
// database enforces at most one row per triple; writes are upserts.
type Salary struct {
	ID     int64   `json:"id"`
	UserID int64   `json:"-"`
	Amount float64 `json:"amount"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
}

// Category is an expense bucket. UserID is nil for shared categories, which
// are seeded at bootstrap and visible to every user.
type Category struct {
	ID     int64  `json:"id"`
	UserID *int64 `json:"-"`
	Name   string `json:"name"`
}

// Shared reports whether the category has no owning user.
func (c Category) Shared() bool {
	return c.UserID == nil
}

// Expense is a single recorded spend. Date carries calendar-day semantics
// only; CreatedAt is assigned by the server at insert time and drives list
// ordering.
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	CategoryID  int64     `json:"-"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryTotal is one row of a per-category expense aggregation.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthSummary aggregates a user's ledger for one month. Salary and Remaining
// are nil when no salary row exists for the month.
type MonthSummary struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Salary     *float64        `json:"salary,omitempty"`
	Total      float64         `json:"total_expenses"`
	Remaining  *float64        `json:"remaining,omitempty"`
	ByCategory []CategoryTotal `json:"by_category"`
}
