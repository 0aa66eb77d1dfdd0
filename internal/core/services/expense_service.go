package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/google/uuid"
)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	userRepo    portsrepo.UserReader
	companyRepo portsrepo.CompanyReader
	normalizer  portssvc.CurrencyNormalizerSvc
}

// ExpenseOption is a functional option for configuring the expense service
type ExpenseOption func(*expenseService)

// WithExpenseClock replaces the service clock.
func WithExpenseClock(now func() time.Time) ExpenseOption {
	return func(s *expenseService) {
		s.now = now
	}
}

// NewExpenseService creates the employee-facing expense service.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	userRepo portsrepo.UserReader,
	companyRepo portsrepo.CompanyReader,
	normalizer portssvc.CurrencyNormalizerSvc,
	options ...ExpenseOption,
) portssvc.ExpenseSvcFacade {
	s := &expenseService{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		normalizer:  normalizer,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, companyID string, req dto.CreateExpenseRequest, employeeID string) (*domain.Expense, error) {
	employee, err := s.userRepo.FindUserByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewForbiddenError("caller " + employeeID + " is not a registered user")
		}
		return nil, err
	}
	if employee.CompanyID != companyID {
		return nil, apperrors.NewForbiddenError("caller does not belong to company " + companyID)
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be positive")
	}
	if !req.Category.IsValid() {
		return nil, apperrors.NewValidationError("unknown expense category " + string(req.Category))
	}

	now := s.Now()
	expense := domain.Expense{
		ExpenseID:       uuid.NewString(),
		EmployeeID:      employee.UserID,
		EmployeeName:    employee.FullName,
		CompanyID:       companyID,
		Amount:          req.Amount,
		CurrencyCode:    strings.ToUpper(req.CurrencyCode),
		Category:        req.Category,
		ExpenseDate:     req.ExpenseDate.UTC(),
		Description:     strings.TrimSpace(req.Description),
		ReceiptURL:      req.ReceiptURL,
		Status:          domain.StatusDraft,
		ApprovalHistory: []domain.ApprovalEvent{},
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     employee.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: employee.UserID,
		},
	}
	if req.Submit {
		expense.Status = domain.StatusPending
	}
	if err := s.convert(ctx, &expense); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}
	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID), slog.String("status", string(expense.Status)))
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, companyID, expenseID string, req dto.UpdateExpenseRequest, employeeID string) (*domain.Expense, error) {
	current, err := s.GetExpense(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}
	if current.EmployeeID != employeeID {
		return nil, apperrors.NewForbiddenError("only the submitting employee can edit an expense")
	}
	if !current.IsEditableByEmployee() {
		return nil, apperrors.NewConflictError("expense " + expenseID + " can no longer be edited")
	}

	next := current.Clone()
	reconvert := false
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperrors.NewValidationError("amount must be positive")
		}
		reconvert = reconvert || !req.Amount.Equal(next.Amount)
		next.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		code := strings.ToUpper(*req.CurrencyCode)
		reconvert = reconvert || code != next.CurrencyCode
		next.CurrencyCode = code
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, apperrors.NewValidationError("unknown expense category " + string(*req.Category))
		}
		next.Category = *req.Category
	}
	if req.ExpenseDate != nil {
		next.ExpenseDate = req.ExpenseDate.UTC()
	}
	if req.Description != nil {
		next.Description = strings.TrimSpace(*req.Description)
	}
	if req.ReceiptURL != nil {
		next.ReceiptURL = req.ReceiptURL
	}
	if reconvert {
		next.ConvertedAmount = nil
		if err := s.convert(ctx, &next); err != nil {
			return nil, err
		}
	}

	return s.write(ctx, current, next, employeeID)
}

// SubmitExpense moves a draft into the approval workflow.
func (s *expenseService) SubmitExpense(ctx context.Context, companyID, expenseID, employeeID string) (*domain.Expense, error) {
	current, err := s.GetExpense(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}
	if current.EmployeeID != employeeID {
		return nil, apperrors.NewForbiddenError("only the submitting employee can submit an expense")
	}
	if current.Status != domain.StatusDraft {
		return nil, apperrors.NewConflictError("expense " + expenseID + " is already " + string(current.Status))
	}

	next := current.Clone()
	next.Status = domain.StatusPending
	return s.write(ctx, current, next, employeeID)
}

// ReconcileCurrency retries the conversion of a flagged expense. The pinned policy, if any,
// is left untouched. Decided expenses are frozen and cannot be reconciled.
func (s *expenseService) ReconcileCurrency(ctx context.Context, companyID, expenseID, userID string) (*domain.Expense, error) {
	current, err := s.GetExpense(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() {
		return nil, apperrors.NewConflictError("expense " + expenseID + " is already " + string(current.Status))
	}
	if !current.NeedsCurrencyReconciliation {
		return current, nil
	}
	if err := s.canReconcile(ctx, current, userID); err != nil {
		return nil, err
	}

	next := current.Clone()
	if err := s.convert(ctx, &next); err != nil {
		return nil, err
	}
	if next.NeedsCurrencyReconciliation {
		return nil, apperrors.NewDependencyError("exchange rate still unavailable for expense "+expenseID, nil)
	}
	return s.write(ctx, current, next, userID)
}

func (s *expenseService) canReconcile(ctx context.Context, expense *domain.Expense, userID string) error {
	if userID == expense.EmployeeID {
		return nil
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewForbiddenError("caller " + userID + " is not a registered user")
		}
		return err
	}
	if user.CompanyID != expense.CompanyID || user.Role != domain.RoleAdmin {
		return apperrors.NewForbiddenError("only the employee or a company admin can reconcile currency")
	}
	return nil
}

func (s *expenseService) GetExpense(ctx context.Context, companyID, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	if expense.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError("expense " + expenseID)
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, companyID string, params dto.ListExpensesParams) ([]domain.Expense, *string, error) {
	return s.expenseRepo.ListExpenses(ctx, portsrepo.ListExpensesParams{
		CompanyID:  companyID,
		EmployeeID: params.EmployeeID,
		Status:     domain.ExpenseStatus(params.Status),
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	})
}

func (s *expenseService) Summary(ctx context.Context, companyID string, params dto.ExpenseSummaryParams) (*domain.ExpenseSummary, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	summary, err := s.expenseRepo.SummarizeExpenses(ctx, companyID, params.EmployeeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize expenses", slog.String("company_id", companyID))
		return nil, err
	}
	summary.CurrencyCode = company.DefaultCurrencyCode
	return &summary, nil
}

func (s *expenseService) ApprovalState(ctx context.Context, companyID, expenseID string) (*domain.Expense, workflow.State, bool, error) {
	expense, err := s.GetExpense(ctx, companyID, expenseID)
	if err != nil {
		return nil, workflow.State{}, false, err
	}
	st, drift := workflow.Recompute(*expense)
	if drift {
		s.LogWarn(ctx, "Stored expense status drifted from its ledger",
			slog.String("expense_id", expenseID),
			slog.String("stored", string(expense.Status)),
			slog.String("recomputed", string(st.Status)))
	}
	return expense, st, drift, nil
}

// convert fills ConvertedAmount in the company currency. A rate failure keeps the original
// amount and flags the expense instead of failing the call.
func (s *expenseService) convert(ctx context.Context, expense *domain.Expense) error {
	company, err := s.companyRepo.FindCompanyByID(ctx, expense.CompanyID)
	if err != nil {
		return err
	}
	normalizeInto(ctx, &s.BaseService, s.normalizer, expense, company.DefaultCurrencyCode)
	return nil
}

// write persists next conditioned on current's version.
func (s *expenseService) write(ctx context.Context, current *domain.Expense, next domain.Expense, userID string) (*domain.Expense, error) {
	next.LastUpdatedAt = s.Now()
	next.LastUpdatedBy = userID
	if err := s.expenseRepo.UpdateExpenseIfVersion(ctx, next, current.Version); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", next.ExpenseID))
		}
		return nil, err
	}
	next.Version = current.Version + 1
	return &next, nil
}

// normalizeInto converts expense.Amount into toCurrency, degrading to the unconverted amount
// with NeedsCurrencyReconciliation set when the rate source fails.
func normalizeInto(ctx context.Context, log *BaseService, normalizer portssvc.CurrencyNormalizerSvc, expense *domain.Expense, toCurrency string) {
	converted, err := normalizer.Normalize(ctx, expense.Amount, expense.CurrencyCode, toCurrency)
	if err != nil {
		log.LogWarn(ctx, "Currency conversion failed, expense flagged for reconciliation",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("from", expense.CurrencyCode),
			slog.String("to", toCurrency),
			slog.String("error", err.Error()))
		amount := expense.Amount
		expense.ConvertedAmount = &amount
		expense.NeedsCurrencyReconciliation = true
		return
	}
	expense.ConvertedAmount = &converted
	expense.NeedsCurrencyReconciliation = false
}
