package ports

import (
	"context"

	"github.com/spendwise/expense-ledger/internal/core/domain"
)

// LedgerRepository is the SQL surface for salary, category, and expense rows.
// Every method scopes reads and writes to the given user id; shared
// categories (NULL owner) are visible to all users but owned by none.
type LedgerRepository interface {
	// GetSalary returns found=false when no row exists for the triple.
	GetSalary(ctx context.Context, userID int64, month, year int) (amount float64, found bool, err error)
	// UpsertSalary inserts or overwrites the (user, month, year) row and
	// returns the stored amount.
	UpsertSalary(ctx context.Context, userID int64, amount float64, month, year int) (float64, error)

	// ListCategories returns the union of the user's own and shared
	// category names, alphabetically ordered.
	ListCategories(ctx context.Context, userID int64) ([]string, error)
	// CategoryVisible reports whether a name already exists among the
	// user's own or the shared categories.
	CategoryVisible(ctx context.Context, userID int64, name string) (bool, error)
	CreateCategory(ctx context.Context, userID int64, name string) error
	// DeleteCategory removes the user-owned category of that name, if any.
	DeleteCategory(ctx context.Context, userID int64, name string) error
	// OwnedCategoryExists checks only categories owned by the user,
	// used to verify a delete actually took effect.
	OwnedCategoryExists(ctx context.Context, userID int64, name string) (bool, error)
	// ResolveCategory maps a name to a visible category id, preferring a
	// user-owned match over a shared one. Returns
	// domain.ErrCategoryNotFound when nothing visible matches.
	ResolveCategory(ctx context.Context, userID int64, name string) (int64, error)
	// CountCategoryExpenses counts the user's expenses recorded against
	// any visible category of that name.
	CountCategoryExpenses(ctx context.Context, userID int64, name string) (int64, error)

	// CreateExpense persists the expense and fills in its ID and
	// server-assigned CreatedAt.
	CreateExpense(ctx context.Context, e *domain.Expense) error
	// ListExpenses returns the user's expenses joined with category names,
	// ordered by creation time descending. A non-zero month/year pair
	// restricts results to expenses dated within that month.
	ListExpenses(ctx context.Context, userID int64, month, year int) ([]domain.Expense, error)
	// DeleteExpense removes the row only when owned by the user and
	// reports how many rows went away.
	DeleteExpense(ctx context.Context, userID, expenseID int64) (int64, error)
	ExpenseExists(ctx context.Context, userID, expenseID int64) (bool, error)
	// SumExpensesByCategory aggregates the user's expenses for one month,
	// largest total first.
	SumExpensesByCategory(ctx context.Context, userID int64, month, year int) ([]domain.CategoryTotal, error)
}
