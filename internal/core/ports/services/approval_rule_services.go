package services

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/shopspring/decimal"
)

// RuleResolverSvc selects the rule governing an expense.
type RuleResolverSvc interface {
	// Resolve returns the most specific active rule of the company covering convertedAmount,
	// or nil when none applies and the default policy should be used.
	Resolve(ctx context.Context, companyID string, convertedAmount decimal.Decimal) (*domain.ApprovalRule, error)
}

// ApprovalRuleReaderSvc defines read operations for approval rules
type ApprovalRuleReaderSvc interface {
	GetRule(ctx context.Context, companyID, ruleID string) (*domain.ApprovalRule, error)
	ListRules(ctx context.Context, companyID string) ([]domain.ApprovalRule, error)
}

// ApprovalRuleWriterSvc defines write operations for approval rules. None of them touch
// expenses that already pinned a policy.
type ApprovalRuleWriterSvc interface {
	CreateRule(ctx context.Context, companyID string, req dto.CreateApprovalRuleRequest, creatorUserID string) (*domain.ApprovalRule, error)
	UpdateRule(ctx context.Context, companyID, ruleID string, req dto.UpdateApprovalRuleRequest, updaterUserID string) (*domain.ApprovalRule, error)
	DeactivateRule(ctx context.Context, companyID, ruleID, updaterUserID string) (*domain.ApprovalRule, error)

	// ImportRules validates every request first and stores the batch all-or-nothing.
	ImportRules(ctx context.Context, companyID string, reqs []dto.CreateApprovalRuleRequest, creatorUserID string) ([]domain.ApprovalRule, error)
}

// ApprovalRuleSvcFacade combines all rule-related service interfaces
type ApprovalRuleSvcFacade interface {
	RuleResolverSvc
	ApprovalRuleReaderSvc
	ApprovalRuleWriterSvc
}
