package services

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
	"github.com/SscSPs/expense_approvals/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	GetExpense(ctx context.Context, companyID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, companyID string, params dto.ListExpensesParams) ([]domain.Expense, *string, error)

	// ApprovalState recomputes the workflow state from the ledger and reports drift from the stored status.
	ApprovalState(ctx context.Context, companyID, expenseID string) (*domain.Expense, workflow.State, bool, error)

	// Summary counts expenses per status and totals them in the company currency.
	Summary(ctx context.Context, companyID string, params dto.ExpenseSummaryParams) (*domain.ExpenseSummary, error)
}

// ExpenseWriterSvc defines the employee-side write operations. Approval decisions go through ApprovalSvc.
type ExpenseWriterSvc interface {
	CreateExpense(ctx context.Context, companyID string, req dto.CreateExpenseRequest, employeeID string) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, companyID, expenseID string, req dto.UpdateExpenseRequest, employeeID string) (*domain.Expense, error)
	SubmitExpense(ctx context.Context, companyID, expenseID, employeeID string) (*domain.Expense, error)

	// ReconcileCurrency retries the conversion of an expense flagged for reconciliation.
	ReconcileCurrency(ctx context.Context, companyID, expenseID, userID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
