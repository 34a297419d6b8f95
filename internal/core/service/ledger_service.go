package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendwise/expense-ledger/internal/core/domain"
	"github.com/spendwise/expense-ledger/internal/core/ports"
)

const dateLayout = "2006-01-02"

// LedgerService owns the salary, category, and expense use-cases. All
// operations are scoped to the calling user's id.
type LedgerService struct {
	repo   ports.LedgerRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewLedgerService(repo ports.LedgerRepository, logger zerolog.Logger) *LedgerService {
	return &LedgerService{repo: repo, logger: logger, now: time.Now}
}

// GetSalary returns the recorded salary for the month, found=false when none.
func (s *LedgerService) GetSalary(ctx context.Context, userID int64, month, year int) (float64, bool, error) {
	return s.repo.GetSalary(ctx, userID, month, year)
}

// UpsertSalary inserts or overwrites the salary for (user, month, year) and
// returns the stored amount for confirmation.
func (s *LedgerService) UpsertSalary(ctx context.Context, userID int64, amount float64, month, year int) (float64, error) {
	stored, err := s.repo.UpsertSalary(ctx, userID, amount, month, year)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("user_id", userID).Int("month", month).Int("year", year).Float64("amount", stored).Msg("salary updated")
	return stored, nil
}

// ListCategories returns the user's own plus the shared category names,
// alphabetically ordered.
func (s *LedgerService) ListCategories(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.ListCategories(ctx, userID)
}

// AddCategory persists a user-owned category. A name already visible to the
// user, whether owned or shared, is rejected as a duplicate.
func (s *LedgerService) AddCategory(ctx context.Context, userID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrCategoryNotFound
	}

	visible, err := s.repo.CategoryVisible(ctx, userID, name)
	if err != nil {
		return err
	}
	if visible {
		return domain.ErrDuplicateCategory
	}

	return s.repo.CreateCategory(ctx, userID, name)
}

// RemoveCategory deletes a user-owned category, refusing while any of the
// user's expenses still reference the name. The delete is confirmed by
// re-query; a row that survives its own deletion is reported as a storage
// inconsistency.
func (s *LedgerService) RemoveCategory(ctx context.Context, userID int64, name string) error {
	name = strings.TrimSpace(name)

	inUse, err := s.repo.CountCategoryExpenses(ctx, userID, name)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.repo.DeleteCategory(ctx, userID, name); err != nil {
		return err
	}

	still, err := s.repo.OwnedCategoryExists(ctx, userID, name)
	if err != nil {
		return err
	}
	if still {
		return fmt.Errorf("%w: category %q not removed", domain.ErrStorage, name)
	}

	s.logger.Info().Int64("user_id", userID).Str("category", name).Msg("category removed")
	return nil
}

// AddExpense records an expense against a visible category. The date string
// must be YYYY-MM-DD; an empty date means today. CreatedAt is assigned by the
// store and is distinct from the user-supplied expense date.
func (s *LedgerService) AddExpense(ctx context.Context, userID int64, input ports.AddExpenseInput) (*domain.Expense, error) {
	date, err := s.parseExpenseDate(input.Date)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.repo.ResolveCategory(ctx, userID, input.Category)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Category:    input.Category,
		Amount:      input.Amount,
		Description: input.Description,
		Date:        date,
	}
	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", userID).Int64("expense_id", expense.ID).Str("category", input.Category).Float64("amount", input.Amount).Msg("expense recorded")
	return expense, nil
}

// ListExpenses returns the user's expenses newest-created first. The filter
// applies only when both month and year are set.
func (s *LedgerService) ListExpenses(ctx context.Context, userID int64, filter ports.ExpenseFilter) ([]domain.Expense, error) {
	if filter.Month != 0 && filter.Year != 0 {
		return s.repo.ListExpenses(ctx, userID, filter.Month, filter.Year)
	}
	return s.repo.ListExpenses(ctx, userID, 0, 0)
}

// RemoveExpense deletes the expense only when it belongs to the caller, then
// confirms the row is gone.
func (s *LedgerService) RemoveExpense(ctx context.Context, userID, expenseID int64) error {
	deleted, err := s.repo.DeleteExpense(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotFoundOrForbidden
	}

	still, err := s.repo.ExpenseExists(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if still {
		return fmt.Errorf("%w: expense %d not removed", domain.ErrStorage, expenseID)
	}

	s.logger.Info().Int64("user_id", userID).Int64("expense_id", expenseID).Msg("expense removed")
	return nil
}

// MonthSummary aggregates one month: salary (when recorded), per-category
// totals, the overall total, and what remains of the salary.
func (s *LedgerService) MonthSummary(ctx context.Context, userID int64, month, year int) (*domain.MonthSummary, error) {
	summary := &domain.MonthSummary{Month: month, Year: year}

	salary, found, err := s.repo.GetSalary(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.SumExpensesByCategory(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	summary.ByCategory = totals
	for _, t := range totals {
		summary.Total += t.Total
	}
	if found {
		remaining := salary - summary.Total
		summary.Salary = &salary
		summary.Remaining = &remaining
	}

	return summary, nil
}

func (s *LedgerService) parseExpenseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return date, nil
}
