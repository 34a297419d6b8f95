package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-ledger/internal/core/domain"
	"github.com/spendwise/expense-ledger/internal/core/ports"
)

// stubLedgerService lets each test plug in only the calls it exercises.
type stubLedgerService struct {
	getSalaryFn      func(ctx context.Context, userID int64, month, year int) (float64, bool, error)
	upsertSalaryFn   func(ctx context.Context, userID int64, amount float64, month, year int) (float64, error)
	listCategoriesFn func(ctx context.Context, userID int64) ([]string, error)
	addCategoryFn    func(ctx context.Context, userID int64, name string) error
	removeCategoryFn func(ctx context.Context, userID int64, name string) error
	addExpenseFn     func(ctx context.Context, userID int64, input ports.AddExpenseInput) (*domain.Expense, error)
	listExpensesFn   func(ctx context.Context, userID int64, filter ports.ExpenseFilter) ([]domain.Expense, error)
	removeExpenseFn  func(ctx context.Context, userID, expenseID int64) error
	monthSummaryFn   func(ctx context.Context, userID int64, month, year int) (*domain.MonthSummary, error)
}

func (s *stubLedgerService) GetSalary(ctx context.Context, userID int64, month, year int) (float64, bool, error) {
	return s.getSalaryFn(ctx, userID, month, year)
}

func (s *stubLedgerService) UpsertSalary(ctx context.Context, userID int64, amount float64, month, year int) (float64, error) {
	return s.upsertSalaryFn(ctx, userID, amount, month, year)
}

func (s *stubLedgerService) ListCategories(ctx context.Context, userID int64) ([]string, error) {
	return s.listCategoriesFn(ctx, userID)
}

func (s *stubLedgerService) AddCategory(ctx context.Context, userID int64, name string) error {
	return s.addCategoryFn(ctx, userID, name)
}

func (s *stubLedgerService) RemoveCategory(ctx context.Context, userID int64, name string) error {
	return s.removeCategoryFn(ctx, userID, name)
}

func (s *stubLedgerService) AddExpense(ctx context.Context, userID int64, input ports.AddExpenseInput) (*domain.Expense, error) {
	return s.addExpenseFn(ctx, userID, input)
}

func (s *stubLedgerService) ListExpenses(ctx context.Context, userID int64, filter ports.ExpenseFilter) ([]domain.Expense, error) {
	return s.listExpensesFn(ctx, userID, filter)
}

func (s *stubLedgerService) RemoveExpense(ctx context.Context, userID, expenseID int64) error {
	return s.removeExpenseFn(ctx, userID, expenseID)
}

func (s *stubLedgerService) MonthSummary(ctx context.Context, userID int64, month, year int) (*domain.MonthSummary, error) {
	return s.monthSummaryFn(ctx, userID, month, year)
}

func TestLedgerHandler_GetSalary_NotFound(t *testing.T) {
	ledger := &stubLedgerService{
		getSalaryFn: func(context.Context, int64, int, int) (float64, bool, error) {
			return 0, false, nil
		},
	}
	handler := NewLedgerHandler(ledger)

	c, _ := newTestContext(t, http.MethodGet, "/salary?month=3&year=2024", "")
	c.Set("user_id", int64(7))

	err := handler.GetSalary(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestLedgerHandler_GetSalary_MissingQuery(t *testing.T) {
	handler := NewLedgerHandler(&stubLedgerService{})

	c, _ := newTestContext(t, http.MethodGet, "/salary", "")
	c.Set("user_id", int64(7))

	err := handler.GetSalary(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLedgerHandler_UpsertSalary(t *testing.T) {
	ledger := &stubLedgerService{
		upsertSalaryFn: func(_ context.Context, userID int64, amount float64, month, year int) (float64, error) {
			if userID != 7 || amount != 1500 || month != 3 || year != 2024 {
				t.Fatalf("unexpected args: %d %v %d %d", userID, amount, month, year)
			}
			return amount, nil
		},
	}
	handler := NewLedgerHandler(ledger)

	c, rec := newTestContext(t, http.MethodPut, "/salary", `{"amount":1500,"month":3,"year":2024}`)
	c.Set("user_id", int64(7))

	if err := handler.UpsertSalary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp salaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Amount != 1500 || resp.Month != 3 || resp.Year != 2024 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestLedgerHandler_UpsertSalary_RejectsNegativeAmount(t *testing.T) {
	handler := NewLedgerHandler(&stubLedgerService{})

	c, _ := newTestContext(t, http.MethodPut, "/salary", `{"amount":-5,"month":3,"year":2024}`)
	c.Set("user_id", int64(7))

	err := handler.UpsertSalary(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLedgerHandler_AddCategory_Duplicate(t *testing.T) {
	ledger := &stubLedgerService{
		addCategoryFn: func(context.Context, int64, string) error {
			return domain.ErrDuplicateCategory
		},
	}
	handler := NewLedgerHandler(ledger)

	c, _ := newTestContext(t, http.MethodPost, "/categories", `{"name":"Rent"}`)
	c.Set("user_id", int64(7))

	if err := handler.AddCategory(c); !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestLedgerHandler_AddCategory_ReturnsFreshList(t *testing.T) {
	ledger := &stubLedgerService{
		addCategoryFn: func(_ context.Context, _ int64, name string) error {
			if name != "Pets" {
				t.Fatalf("unexpected name %q", name)
			}
			return nil
		},
		listCategoriesFn: func(context.Context, int64) ([]string, error) {
			return []string{"Pets", "Rent"}, nil
		},
	}
	handler := NewLedgerHandler(ledger)

	c, rec := newTestContext(t, http.MethodPost, "/categories", `{"name":"Pets"}`)
	c.Set("user_id", int64(7))

	if err := handler.AddCategory(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp categoriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Categories) != 2 {
		t.Fatalf("unexpected categories: %v", resp.Categories)
	}
}

func TestLedgerHandler_RemoveCategory_InUse(t *testing.T) {
	ledger := &stubLedgerService{
		removeCategoryFn: func(context.Context, int64, string) error {
			return domain.ErrCategoryInUse
		},
	}
	handler := NewLedgerHandler(ledger)

	c, _ := newTestContext(t, http.MethodDelete, "/categories/Rent", "")
	c.Set("user_id", int64(7))
	c.SetParamNames("name")
	c.SetParamValues("Rent")

	if err := handler.RemoveCategory(c); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
}

func TestLedgerHandler_AddExpense(t *testing.T) {
	ledger := &stubLedgerService{
		addExpenseFn: func(_ context.Context, userID int64, input ports.AddExpenseInput) (*domain.Expense, error) {
			if userID != 7 || input.Category != "Rent" || input.Amount != 42.5 || input.Date != "2024-03-01" {
				t.Fatalf("unexpected input: %d %+v", userID, input)
			}
			return &domain.Expense{
				ID:       11,
				UserID:   userID,
				Category: input.Category,
				Amount:   input.Amount,
				Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	handler := NewLedgerHandler(ledger)

	c, rec := newTestContext(t, http.MethodPost, "/expenses", `{"category":"Rent","amount":42.5,"date":"2024-03-01"}`)
	c.Set("user_id", int64(7))

	if err := handler.AddExpense(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp expenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 11 || resp.Date != "2024-03-01" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestLedgerHandler_AddExpense_InvalidDatePassthrough(t *testing.T) {
	ledger := &stubLedgerService{
		addExpenseFn: func(context.Context, int64, ports.AddExpenseInput) (*domain.Expense, error) {
			return nil, domain.ErrInvalidDate
		},
	}
	handler := NewLedgerHandler(ledger)

	c, _ := newTestContext(t, http.MethodPost, "/expenses", `{"category":"Rent","amount":10,"date":"2024-02-30"}`)
	c.Set("user_id", int64(7))

	if err := handler.AddExpense(c); !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestLedgerHandler_ListExpenses_FilterAndCurrency(t *testing.T) {
	ledger := &stubLedgerService{
		listExpensesFn: func(_ context.Context, _ int64, filter ports.ExpenseFilter) ([]domain.Expense, error) {
			if filter.Month != 3 || filter.Year != 2024 {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return []domain.Expense{
				{ID: 2, Category: "Rent", Amount: 400, Date: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
				{ID: 1, Category: "Shopping", Amount: 100, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	handler := NewLedgerHandler(ledger)

	target := "/expenses?" + url.Values{"month": {"3"}, "year": {"2024"}, "currency": {"TRY"}}.Encode()
	c, rec := newTestContext(t, http.MethodGet, target, "")
	c.Set("user_id", int64(7))

	if err := handler.ListExpenses(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp expenseListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Expenses) != 2 || resp.Expenses[0].ID != 2 {
		t.Fatalf("unexpected expenses: %+v", resp.Expenses)
	}
	if resp.Total != 500 {
		t.Fatalf("expected total 500, got %v", resp.Total)
	}
	if resp.CurrencySymbol != "₺" {
		t.Fatalf("expected lira symbol, got %q", resp.CurrencySymbol)
	}
}

func TestLedgerHandler_ListExpenses_MonthWithoutYear(t *testing.T) {
	handler := NewLedgerHandler(&stubLedgerService{})

	c, _ := newTestContext(t, http.MethodGet, "/expenses?month=3", "")
	c.Set("user_id", int64(7))

	err := handler.ListExpenses(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLedgerHandler_ListExpenses_BadMonth(t *testing.T) {
	handler := NewLedgerHandler(&stubLedgerService{})

	c, _ := newTestContext(t, http.MethodGet, "/expenses?month=13&year=2024", "")
	c.Set("user_id", int64(7))

	err := handler.ListExpenses(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLedgerHandler_RemoveExpense(t *testing.T) {
	ledger := &stubLedgerService{
		removeExpenseFn: func(_ context.Context, userID, expenseID int64) error {
			if userID != 7 || expenseID != 11 {
				t.Fatalf("unexpected args: %d %d", userID, expenseID)
			}
			return nil
		},
	}
	handler := NewLedgerHandler(ledger)

	c, rec := newTestContext(t, http.MethodDelete, "/expenses/11", "")
	c.Set("user_id", int64(7))
	c.SetParamNames("id")
	c.SetParamValues("11")

	if err := handler.RemoveExpense(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestLedgerHandler_RemoveExpense_BadID(t *testing.T) {
	handler := NewLedgerHandler(&stubLedgerService{})

	for _, id := range []string{"abc", "0", "-4"} {
		c, _ := newTestContext(t, http.MethodDelete, "/expenses/"+id, "")
		c.Set("user_id", int64(7))
		c.SetParamNames("id")
		c.SetParamValues(id)

		err := handler.RemoveExpense(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %v", id, err)
		}
	}
}

func TestLedgerHandler_RemoveExpense_NotOwned(t *testing.T) {
	ledger := &stubLedgerService{
		removeExpenseFn: func(context.Context, int64, int64) error {
			return domain.ErrNotFoundOrForbidden
		},
	}
	handler := NewLedgerHandler(ledger)

	c, _ := newTestContext(t, http.MethodDelete, "/expenses/99", "")
	c.Set("user_id", int64(7))
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := handler.RemoveExpense(c); !errors.Is(err, domain.ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden, got %v", err)
	}
}

func TestLedgerHandler_MonthSummary(t *testing.T) {
	salary := 1000.0
	remaining := 500.0
	ledger := &stubLedgerService{
		monthSummaryFn: func(_ context.Context, userID int64, month, year int) (*domain.MonthSummary, error) {
			return &domain.MonthSummary{
				Month:     month,
				Year:      year,
				Salary:    &salary,
				Total:     500,
				Remaining: &remaining,
				ByCategory: []domain.CategoryTotal{
					{Category: "Rent", Total: 400},
					{Category: "Shopping", Total: 100},
				},
			}, nil
		},
	}
	handler := NewLedgerHandler(ledger)

	c, rec := newTestContext(t, http.MethodGet, "/summary?month=3&year=2024", "")
	c.Set("user_id", int64(7))

	if err := handler.MonthSummary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Summary        domain.MonthSummary `json:"summary"`
		CurrencySymbol string              `json:"currency_symbol"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Summary.Total != 500 || len(resp.Summary.ByCategory) != 2 {
		t.Fatalf("unexpected summary: %+v", resp.Summary)
	}
	if resp.CurrencySymbol != "$" {
		t.Fatalf("expected default dollar symbol, got %q", resp.CurrencySymbol)
	}
}

func TestLedgerHandler_MissingIdentity(t *testing.T) {
	handler := NewLedgerHandler(&stubLedgerService{})

	c, _ := newTestContext(t, http.MethodGet, "/categories", "")

	err := handler.ListCategories(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
