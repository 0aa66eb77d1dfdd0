package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/models"
	"github.com/SscSPs/expense_approvals/internal/utils/mapping"
	"github.com/SscSPs/expense_approvals/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const fullExpenseSelectQuery = `
SELECT
	e.expense_id, e.company_id, e.employee_id, e.employee_name, e.amount, e.currency_code,
	e.converted_amount, e.needs_currency_reconciliation, e.category, e.expense_date,
	e.description, e.receipt_url, e.status, e.approval_history, e.rejection_reason, e.policy,
	e.version, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
FROM expenses e
`

func (r *PgxExpenseRepository) getExpenses(ctx context.Context, filterQuery string, args ...any) ([]domain.Expense, error) {
	rows, err := r.Pool.Query(ctx, fullExpenseSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect expense rows", err)
	}

	expenses := make([]domain.Expense, len(ms))
	for i, m := range ms {
		if expenses[i], err = mapping.ToDomainExpense(m); err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode expense "+m.ExpenseID, err)
		}
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m, err := mapping.ToModelExpense(expense)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode expense "+expense.ExpenseID, err)
	}
	query := `
		INSERT INTO expenses (
			expense_id, company_id, employee_id, employee_name, amount, currency_code,
			converted_amount, needs_currency_reconciliation, category, expense_date,
			description, receipt_url, status, approval_history, rejection_reason, policy,
			version, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 1, $17, $18, $19, $20);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.ExpenseID, m.CompanyID, m.EmployeeID, m.EmployeeName, m.Amount, m.CurrencyCode,
		m.ConvertedAmount, m.NeedsCurrencyReconciliation, m.Category, m.ExpenseDate,
		m.Description, m.ReceiptURL, m.Status, m.ApprovalHistory, m.RejectionReason, m.Policy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch code, _ := pgErrorCode(err); code {
		case pgUniqueViolation:
			return apperrors.NewDuplicateError("expense ID " + expense.ExpenseID + " already exists")
		case pgForeignKeyViolation:
			return apperrors.NewValidationErrorWithCause("expense references an unknown company or employee", err)
		}
		return apperrors.NewAppError(500, "failed to save expense "+expense.ExpenseID, err)
	}
	return nil
}

// UpdateExpenseIfVersion writes every mutable column in one statement guarded by the version
// the caller read. Zero affected rows means either the row is gone or someone else won.
func (r *PgxExpenseRepository) UpdateExpenseIfVersion(ctx context.Context, expense domain.Expense, expectedVersion int64) error {
	m, err := mapping.ToModelExpense(expense)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode expense "+expense.ExpenseID, err)
	}
	query := `
		UPDATE expenses
		SET amount = $1, currency_code = $2, converted_amount = $3,
		    needs_currency_reconciliation = $4, category = $5, expense_date = $6,
		    description = $7, receipt_url = $8, status = $9, approval_history = $10,
		    rejection_reason = $11, policy = $12, last_updated_at = $13, last_updated_by = $14,
		    version = version + 1
		WHERE expense_id = $15 AND version = $16;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.Amount, m.CurrencyCode, m.ConvertedAmount,
		m.NeedsCurrencyReconciliation, m.Category, m.ExpenseDate,
		m.Description, m.ReceiptURL, m.Status, m.ApprovalHistory,
		m.RejectionReason, m.Policy, m.LastUpdatedAt, m.LastUpdatedBy,
		m.ExpenseID, expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+expense.ExpenseID, err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var current int64
	err = r.Pool.QueryRow(ctx, `SELECT version FROM expenses WHERE expense_id = $1;`, expense.ExpenseID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("expense " + expense.ExpenseID + " not found")
		}
		return apperrors.NewAppError(500, "failed to read version of expense "+expense.ExpenseID, err)
	}
	return apperrors.NewConflictError(fmt.Sprintf(
		"optimistic locking failed: expense %s is at version %d, expected %d", expense.ExpenseID, current, expectedVersion))
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expenses, err := r.getExpenses(ctx, `WHERE e.expense_id = $1;`, expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, apperrors.NewNotFoundError("expense " + expenseID + " not found")
	}
	return &expenses[0], nil
}

// ListExpenses retrieves a page of expenses using token-based pagination, newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, params portsrepo.ListExpensesParams) ([]domain.Expense, *string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	var conditions []string
	var args []any
	addCondition := func(clause string, values ...any) {
		for _, v := range values {
			args = append(args, v)
			clause = strings.Replace(clause, "?", "$"+strconv.Itoa(len(args)), 1)
		}
		conditions = append(conditions, clause)
	}

	if params.CompanyID != "" {
		addCondition("e.company_id = ?", params.CompanyID)
	}
	if params.EmployeeID != "" {
		addCondition("e.employee_id = ?", params.EmployeeID)
	}
	if params.Status != "" {
		addCondition("e.status = ?", string(params.Status))
	}
	if params.NextToken != nil && *params.NextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*params.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationErrorWithCause("invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor stable when timestamps collide.
		addCondition("(e.created_at, e.expense_id) < (?, ?)", lastCreatedAt, lastID)
	}

	query := ""
	if len(conditions) > 0 {
		query = "WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY e.created_at DESC, e.expense_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	expenses, err := r.getExpenses(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExpenseID)
		nextTokenVal = &token
	}
	return expenses, nextTokenVal, nil
}

// SummarizeExpenses counts and totals per status in a single query.
func (r *PgxExpenseRepository) SummarizeExpenses(ctx context.Context, companyID, employeeID string) (domain.ExpenseSummary, error) {
	query := `
		SELECT e.status, COUNT(*), COALESCE(SUM(COALESCE(e.converted_amount, e.amount)), 0)
		FROM expenses e
		WHERE e.company_id = $1 AND ($2 = '' OR e.employee_id = $2)
		GROUP BY e.status;
	`
	var summary domain.ExpenseSummary
	rows, err := r.Pool.Query(ctx, query, companyID, employeeID)
	if err != nil {
		return summary, apperrors.NewAppError(500, "failed to summarize expenses", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int
			total  decimal.Decimal
		)
		if err := rows.Scan(&status, &count, &total); err != nil {
			return summary, apperrors.NewAppError(500, "failed to scan expense summary row", err)
		}
		summary.Count(domain.ExpenseStatus(status), count, total)
	}
	if err := rows.Err(); err != nil {
		return summary, apperrors.NewAppError(500, "failed to read expense summary", err)
	}
	return summary, nil
}
