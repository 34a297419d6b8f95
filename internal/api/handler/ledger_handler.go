package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-ledger/internal/api/metrics"
	"github.com/spendwise/expense-ledger/internal/core/domain"
	"github.com/spendwise/expense-ledger/internal/core/ports"
)

const dateLayout = "2006-01-02"

type LedgerHandler struct {
	ledger ports.LedgerService
}

func NewLedgerHandler(ledger ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// GetSalary returns the salary recorded for one month.
//
// @Summary      Get monthly salary
// @Tags         salary
// @Produce      json
// @Param        month  query     int  true  "Month (1-12)"
// @Param        year   query     int  true  "Year"
// @Success      200    {object}  salaryResponse
// @Failure      404    {object}  errorResponse
// @Router       /salary [get]
func (h *LedgerHandler) GetSalary(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	month, year, err := requireMonthYear(c)
	if err != nil {
		return err
	}

	amount, found, err := h.ledger.GetSalary(c.Request().Context(), userID, month, year)
	if err != nil {
		return err
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "no salary recorded for this month")
	}

	return c.JSON(http.StatusOK, salaryResponse{Amount: amount, Month: month, Year: year})
}

// UpsertSalary inserts or overwrites the salary for one month.
//
// @Summary      Set monthly salary
// @Tags         salary
// @Accept       json
// @Produce      json
// @Param        body  body      upsertSalaryRequest  true  "Salary"
// @Success      200   {object}  salaryResponse
// @Router       /salary [put]
func (h *LedgerHandler) UpsertSalary(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req upsertSalaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	stored, err := h.ledger.UpsertSalary(c.Request().Context(), userID, req.Amount, req.Month, req.Year)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, salaryResponse{Amount: stored, Month: req.Month, Year: req.Year})
}

// ListCategories returns the user's own plus shared categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Router       /categories [get]
func (h *LedgerHandler) ListCategories(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	names, err := h.ledger.ListCategories(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categoriesResponse{Categories: names})
}

// AddCategory creates a user-owned category.
//
// @Summary      Add a category
// @Tags         categories
// @Accept       json
// @Success      201  {object}  categoriesResponse
// @Failure      409  {object}  errorResponse
// @Router       /categories [post]
func (h *LedgerHandler) AddCategory(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.ledger.AddCategory(c.Request().Context(), userID, req.Name); err != nil {
		return err
	}

	names, err := h.ledger.ListCategories(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, categoriesResponse{Categories: names})
}

// RemoveCategory deletes a user-owned category with no recorded expenses.
//
// @Summary      Remove a category
// @Tags         categories
// @Success      204
// @Failure      409  {object}  errorResponse
// @Router       /categories/{name} [delete]
func (h *LedgerHandler) RemoveCategory(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	name := c.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category name is required")
	}

	if err := h.ledger.RemoveCategory(c.Request().Context(), userID, name); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddExpense records a new expense.
//
// @Summary      Add an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body      addExpenseRequest  true  "Expense"
// @Success      201   {object}  expenseResponse
// @Failure      400   {object}  errorResponse
// @Router       /expenses [post]
func (h *LedgerHandler) AddExpense(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.ledger.AddExpense(c.Request().Context(), userID, ports.AddExpenseInput{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return err
	}

	metrics.ExpensesRecordedTotal.WithLabelValues(expense.Category).Inc()
	return c.JSON(http.StatusCreated, toExpenseResponse(*expense))
}

// ListExpenses returns the user's expenses, newest first, optionally
// restricted to one month.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        month     query     int     false  "Month (1-12), requires year"
// @Param        year      query     int     false  "Year, requires month"
// @Param        currency  query     string  false  "Currency code (USD or TRY)"
// @Success      200       {object}  expenseListResponse
// @Router       /expenses [get]
func (h *LedgerHandler) ListExpenses(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	month, year, err := optionalMonthYear(c)
	if err != nil {
		return err
	}

	expenses, err := h.ledger.ListExpenses(c.Request().Context(), userID, ports.ExpenseFilter{Month: month, Year: year})
	if err != nil {
		return err
	}

	resp := expenseListResponse{
		Expenses:       make([]expenseResponse, 0, len(expenses)),
		CurrencySymbol: domain.CurrencySymbol(c.QueryParam("currency")),
	}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, toExpenseResponse(e))
		resp.Total += e.Amount
	}

	return c.JSON(http.StatusOK, resp)
}

// RemoveExpense deletes an expense owned by the caller.
//
// @Summary      Remove an expense
// @Tags         expenses
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /expenses/{id} [delete]
func (h *LedgerHandler) RemoveExpense(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	expenseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || expenseID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid expense id")
	}

	if err := h.ledger.RemoveExpense(c.Request().Context(), userID, expenseID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MonthSummary aggregates one month of the ledger.
//
// @Summary      Monthly summary
// @Tags         summary
// @Produce      json
// @Param        month     query     int     true   "Month (1-12)"
// @Param        year      query     int     true   "Year"
// @Param        currency  query     string  false  "Currency code (USD or TRY)"
// @Success      200       {object}  domain.MonthSummary
// @Router       /summary [get]
func (h *LedgerHandler) MonthSummary(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	month, year, err := requireMonthYear(c)
	if err != nil {
		return err
	}

	summary, err := h.ledger.MonthSummary(c.Request().Context(), userID, month, year)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"summary":         summary,
		"currency_symbol": domain.CurrencySymbol(c.QueryParam("currency")),
	})
}

func toExpenseResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date.Format(dateLayout),
		CreatedAt:   e.CreatedAt,
	}
}

// requireMonthYear parses mandatory month/year query parameters.
func requireMonthYear(c echo.Context) (int, int, error) {
	month, year, err := optionalMonthYear(c)
	if err != nil {
		return 0, 0, err
	}
	if month == 0 || year == 0 {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "month and year are required")
	}
	return month, year, nil
}

// optionalMonthYear parses the month/year pair; both must be supplied
// together or not at all.
func optionalMonthYear(c echo.Context) (int, int, error) {
	rawMonth, rawYear := c.QueryParam("month"), c.QueryParam("year")
	if rawMonth == "" && rawYear == "" {
		return 0, 0, nil
	}
	if rawMonth == "" || rawYear == "" {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "month and year must be supplied together")
	}

	month, err := strconv.Atoi(rawMonth)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "month must be between 1 and 12")
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 1 {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "year must be a positive number")
	}
	return month, year, nil
}
