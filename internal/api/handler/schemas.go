package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type registerResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// --- Salary ---

type upsertSalaryRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Month  int     `json:"month"  validate:"required,min=1,max=12"`
	Year   int     `json:"year"   validate:"required,min=1900,max=2200"`
}

type salaryResponse struct {
	Amount float64 `json:"amount"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
}

// --- Categories ---

type addCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

// --- Expenses ---

type addExpenseRequest struct {
	Category    string  `json:"category"    validate:"required"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Description string  `json:"description"`
	// Date is optional, YYYY-MM-DD; empty means today.
	Date string `json:"date,omitempty"`
}

type expenseResponse struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

type expenseListResponse struct {
	Expenses       []expenseResponse `json:"expenses"`
	Total          float64           `json:"total"`
	CurrencySymbol string            `json:"currency_symbol"`
}
