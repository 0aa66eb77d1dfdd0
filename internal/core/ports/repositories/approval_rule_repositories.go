package repositories

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// ApprovalRuleReader defines read operations for approval rules
type ApprovalRuleReader interface {
	// FindRuleByID retrieves a rule regardless of its active flag.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.ApprovalRule, error)

	// ListRulesByCompany returns every rule of the company, active or not.
	ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error)
}

// ApprovalRuleWriter defines write operations for approval rules
type ApprovalRuleWriter interface {
	SaveRule(ctx context.Context, rule domain.ApprovalRule) error
	UpdateRule(ctx context.Context, rule domain.ApprovalRule) error

	// SaveRules persists a batch of new rules atomically: either all are stored or none.
	SaveRules(ctx context.Context, rules []domain.ApprovalRule) error
}

// ApprovalRuleRepositoryFacade combines all rule-related repository interfaces
type ApprovalRuleRepositoryFacade interface {
	ApprovalRuleReader
	ApprovalRuleWriter
}
