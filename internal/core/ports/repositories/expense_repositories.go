package repositories

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// ListExpensesParams narrows an expense listing. Empty fields do not filter.
type ListExpensesParams struct {
	CompanyID  string
	EmployeeID string
	Status     domain.ExpenseStatus
	Limit      int
	NextToken  *string // Opaque keyset token returned by the previous page
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense, including its ledger, pinned policy and version.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses returns one page of expenses ordered newest first and the token for the next page.
	ListExpenses(ctx context.Context, params ListExpensesParams) ([]domain.Expense, *string, error)

	// SummarizeExpenses counts the company's expenses per status and totals their amounts.
	// A non-empty employeeID narrows it to that employee's claims.
	SummarizeExpenses(ctx context.Context, companyID, employeeID string) (domain.ExpenseSummary, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense at version 1.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpenseIfVersion writes expense only if the stored version still equals
	// expectedVersion, bumping it by one. A mismatch yields apperrors.ErrConflict.
	UpdateExpenseIfVersion(ctx context.Context, expense domain.Expense, expectedVersion int64) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
