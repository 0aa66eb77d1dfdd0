package handlers_test

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) GetExpense(ctx context.Context, companyID, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, companyID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, companyID string, params dto.ListExpensesParams) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, companyID, params)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Expense), token, args.Error(2)
}
func (m *MockExpenseService) ApprovalState(ctx context.Context, companyID, expenseID string) (*domain.Expense, workflow.State, bool, error) {
	args := m.Called(ctx, companyID, expenseID)
	if args.Get(0) == nil {
		return nil, workflow.State{}, false, args.Error(3)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).(workflow.State), args.Bool(2), args.Error(3)
}
func (m *MockExpenseService) Summary(ctx context.Context, companyID string, params dto.ExpenseSummaryParams) (*domain.ExpenseSummary, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseSummary), args.Error(1)
}
func (m *MockExpenseService) CreateExpense(ctx context.Context, companyID string, req dto.CreateExpenseRequest, employeeID string) (*domain.Expense, error) {
	args := m.Called(ctx, companyID, req, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) UpdateExpense(ctx context.Context, companyID, expenseID string, req dto.UpdateExpenseRequest, employeeID string) (*domain.Expense, error) {
	args := m.Called(ctx, companyID, expenseID, req, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) SubmitExpense(ctx context.Context, companyID, expenseID, employeeID string) (*domain.Expense, error) {
	args := m.Called(ctx, companyID, expenseID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ReconcileCurrency(ctx context.Context, companyID, expenseID, userID string) (*domain.Expense, error) {
	args := m.Called(ctx, companyID, expenseID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock ApprovalService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) SubmitAction(ctx context.Context, in portssvc.SubmitActionInput) (*portssvc.ActionResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ActionResult), args.Error(1)
}

func (m *MockApprovalService) Inbox(ctx context.Context, companyID, approverID string) ([]portssvc.InboxItem, error) {
	args := m.Called(ctx, companyID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portssvc.InboxItem), args.Error(1)
}

var _ portssvc.ApprovalSvc = (*MockApprovalService)(nil)

// --- Mock ApprovalRuleService ---
type MockApprovalRuleService struct {
	mock.Mock
}

func (m *MockApprovalRuleService) Resolve(ctx context.Context, companyID string, convertedAmount decimal.Decimal) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, convertedAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}
func (m *MockApprovalRuleService) GetRule(ctx context.Context, companyID, ruleID string) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}
func (m *MockApprovalRuleService) ListRules(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRule), args.Error(1)
}
func (m *MockApprovalRuleService) CreateRule(ctx context.Context, companyID string, req dto.CreateApprovalRuleRequest, creatorUserID string) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}
func (m *MockApprovalRuleService) UpdateRule(ctx context.Context, companyID, ruleID string, req dto.UpdateApprovalRuleRequest, updaterUserID string) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, ruleID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}
func (m *MockApprovalRuleService) DeactivateRule(ctx context.Context, companyID, ruleID, updaterUserID string) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, ruleID, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}
func (m *MockApprovalRuleService) ImportRules(ctx context.Context, companyID string, reqs []dto.CreateApprovalRuleRequest, creatorUserID string) ([]domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID, reqs, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRule), args.Error(1)
}

var _ portssvc.ApprovalRuleSvcFacade = (*MockApprovalRuleService)(nil)

// --- Mock CurrencyNormalizer ---
type MockNormalizer struct {
	mock.Mock
}

func (m *MockNormalizer) Normalize(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.CurrencyNormalizerSvc = (*MockNormalizer)(nil)
