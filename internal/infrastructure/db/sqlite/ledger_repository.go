package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spendwise/expense-ledger/internal/core/domain"
)

// LedgerRepository issues all salary, category, and expense SQL through the
// retrying gateway. Every statement is parameterized; user-supplied values
// never reach the SQL text.
type LedgerRepository struct {
	gw *Gateway
}

func NewLedgerRepository(gw *Gateway) *LedgerRepository {
	return &LedgerRepository{gw: gw}
}

// --- Salary ---

func (r *LedgerRepository) GetSalary(ctx context.Context, userID int64, month, year int) (float64, bool, error) {
	var amount float64
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			"SELECT amount FROM salary WHERE user_id = ? AND month = ? AND year = ?",
			userID, month, year,
		).Scan(&amount)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get salary: %w", err)
	}
	return amount, true, nil
}

func (r *LedgerRepository) UpsertSalary(ctx context.Context, userID int64, amount float64, month, year int) (float64, error) {
	var stored float64
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			`INSERT INTO salary (user_id, amount, month, year) VALUES (?, ?, ?, ?)
			 ON CONFLICT (user_id, month, year) DO UPDATE SET amount = excluded.amount
			 RETURNING amount`,
			userID, amount, month, year,
		).Scan(&stored)
	})
	if err != nil {
		return 0, fmt.Errorf("upsert salary: %w", err)
	}
	return stored, nil
}

// --- Categories ---

func (r *LedgerRepository) ListCategories(ctx context.Context, userID int64) ([]string, error) {
	var names []string
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			"SELECT name FROM categories WHERE user_id = ? OR user_id IS NULL ORDER BY name",
			userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		names = names[:0]
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			names = append(names, name)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

func (r *LedgerRepository) CategoryVisible(ctx context.Context, userID int64, name string) (bool, error) {
	count, err := r.count(ctx,
		"SELECT COUNT(*) FROM categories WHERE (user_id = ? OR user_id IS NULL) AND name = ?",
		userID, name,
	)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return count > 0, nil
}

func (r *LedgerRepository) CreateCategory(ctx context.Context, userID int64, name string) error {
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO categories (user_id, name) VALUES (?, ?)",
			userID, name,
		)
		return err
	})
	if err != nil {
		if isConstraintViolation(err) {
			return domain.ErrDuplicateCategory
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *LedgerRepository) DeleteCategory(ctx context.Context, userID int64, name string) error {
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"DELETE FROM categories WHERE user_id = ? AND name = ?",
			userID, name,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *LedgerRepository) OwnedCategoryExists(ctx context.Context, userID int64, name string) (bool, error) {
	count, err := r.count(ctx,
		"SELECT COUNT(*) FROM categories WHERE user_id = ? AND name = ?",
		userID, name,
	)
	if err != nil {
		return false, fmt.Errorf("check owned category: %w", err)
	}
	return count > 0, nil
}

// ResolveCategory prefers a user-owned category over a shared one carrying
// the same name; owned rows sort first because user_id IS NULL is false for
// them.
func (r *LedgerRepository) ResolveCategory(ctx context.Context, userID int64, name string) (int64, error) {
	var id int64
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			`SELECT id FROM categories
			 WHERE (user_id = ? OR user_id IS NULL) AND name = ?
			 ORDER BY user_id IS NULL, id
			 LIMIT 1`,
			userID, name,
		).Scan(&id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrCategoryNotFound
		}
		return 0, fmt.Errorf("resolve category: %w", err)
	}
	return id, nil
}

func (r *LedgerRepository) CountCategoryExpenses(ctx context.Context, userID int64, name string) (int64, error) {
	count, err := r.count(ctx,
		`SELECT COUNT(*) FROM expenses e
		 JOIN categories c ON e.category_id = c.id
		 WHERE e.user_id = ? AND c.name = ?`,
		userID, name,
	)
	if err != nil {
		return 0, fmt.Errorf("count category expenses: %w", err)
	}
	return count, nil
}

// --- Expenses ---

func (r *LedgerRepository) CreateExpense(ctx context.Context, e *domain.Expense) error {
	createdAt := time.Now().UTC()
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (user_id, category_id, amount, description, date, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.UserID, e.CategoryID, e.Amount, e.Description, e.Date, createdAt,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		e.ID = id
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	e.CreatedAt = createdAt
	return nil
}

func (r *LedgerRepository) ListExpenses(ctx context.Context, userID int64, month, year int) ([]domain.Expense, error) {
	query := `SELECT e.id, c.name, e.amount, e.description, e.date, e.created_at
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = ?`
	args := []any{userID}

	if month != 0 && year != 0 {
		start, end := monthBounds(month, year)
		query += " AND e.date >= ? AND e.date < ?"
		args = append(args, start, end)
	}
	query += " ORDER BY e.created_at DESC, e.id DESC"

	var expenses []domain.Expense
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		expenses = expenses[:0]
		for rows.Next() {
			e := domain.Expense{UserID: userID}
			if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.Description, &e.Date, &e.CreatedAt); err != nil {
				return err
			}
			expenses = append(expenses, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (r *LedgerRepository) DeleteExpense(ctx context.Context, userID, expenseID int64) (int64, error) {
	var deleted int64
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"DELETE FROM expenses WHERE id = ? AND user_id = ?",
			expenseID, userID,
		)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	return deleted, nil
}

func (r *LedgerRepository) ExpenseExists(ctx context.Context, userID, expenseID int64) (bool, error) {
	count, err := r.count(ctx,
		"SELECT COUNT(*) FROM expenses WHERE id = ? AND user_id = ?",
		expenseID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("check expense: %w", err)
	}
	return count > 0, nil
}

func (r *LedgerRepository) SumExpensesByCategory(ctx context.Context, userID int64, month, year int) ([]domain.CategoryTotal, error) {
	start, end := monthBounds(month, year)

	var totals []domain.CategoryTotal
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT c.name, SUM(e.amount) AS total
			 FROM expenses e
			 JOIN categories c ON e.category_id = c.id
			 WHERE e.user_id = ? AND e.date >= ? AND e.date < ?
			 GROUP BY c.name
			 ORDER BY total DESC, c.name`,
			userID, start, end,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		totals = totals[:0]
		for rows.Next() {
			var t domain.CategoryTotal
			if err := rows.Scan(&t.Category, &t.Total); err != nil {
				return err
			}
			totals = append(totals, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}
	return totals, nil
}

func (r *LedgerRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	return count, err
}

// monthBounds returns the half-open [start, end) range covering one calendar
// month, so date filtering never depends on time-of-day.
func monthBounds(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
