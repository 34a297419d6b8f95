package ports

import (
	"context"

	"github.com/spendwise/expense-ledger/internal/core/domain"
)

// AddExpenseInput carries all data needed to record an expense. Date is an
// optional YYYY-MM-DD string; when empty the expense is dated today.
type AddExpenseInput struct {
	Category    string
	Amount      float64
	Description string
	Date        string
}

// ExpenseFilter restricts a listing to one calendar month. The zero value
// means no filter; Month and Year must be set together.
type ExpenseFilter struct {
	Month int
	Year  int
}

// LedgerService defines the use-case operations over a user's ledger. The
// user id scopes every call; no operation can touch another user's rows.
type LedgerService interface {
	GetSalary(ctx context.Context, userID int64, month, year int) (amount float64, found bool, err error)
	UpsertSalary(ctx context.Context, userID int64, amount float64, month, year int) (float64, error)

	ListCategories(ctx context.Context, userID int64) ([]string, error)
	AddCategory(ctx context.Context, userID int64, name string) error
	RemoveCategory(ctx context.Context, userID int64, name string) error

	AddExpense(ctx context.Context, userID int64, input AddExpenseInput) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID int64, filter ExpenseFilter) ([]domain.Expense, error)
	RemoveExpense(ctx context.Context, userID, expenseID int64) error

	MonthSummary(ctx context.Context, userID int64, month, year int) (*domain.MonthSummary, error)
}
