package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type approvalRuleService struct {
	BaseService
	ruleRepo portsrepo.ApprovalRuleRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewApprovalRuleService creates the rule administration and resolution service.
func NewApprovalRuleService(ruleRepo portsrepo.ApprovalRuleRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ApprovalRuleSvcFacade {
	return &approvalRuleService{ruleRepo: ruleRepo, userRepo: userRepo}
}

var _ portssvc.ApprovalRuleSvcFacade = (*approvalRuleService)(nil)

// Resolve picks the active rule with the largest amount threshold not exceeding
// convertedAmount. Rules without a threshold only win when no thresholded rule applies, and
// ties go to the most recently created rule.
func (s *approvalRuleService) Resolve(ctx context.Context, companyID string, convertedAmount decimal.Decimal) (*domain.ApprovalRule, error) {
	rules, err := s.ruleRepo.ListRulesByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approval rules", slog.String("company_id", companyID))
		return nil, err
	}

	var best *domain.ApprovalRule
	for i := range rules {
		r := &rules[i]
		if r.CompanyID != companyID || !r.IsActive || !r.AppliesTo(convertedAmount) {
			continue
		}
		if best == nil || moreSpecific(r, best) {
			best = r
		}
	}

	if best == nil {
		s.LogDebug(ctx, "No approval rule applies, default policy will be used",
			slog.String("company_id", companyID), slog.String("amount", convertedAmount.String()))
		return nil, nil
	}
	out := *best
	return &out, nil
}

func moreSpecific(a, b *domain.ApprovalRule) bool {
	switch {
	case a.AmountThreshold != nil && b.AmountThreshold == nil:
		return true
	case a.AmountThreshold == nil && b.AmountThreshold != nil:
		return false
	case a.AmountThreshold != nil:
		if c := a.AmountThreshold.Cmp(*b.AmountThreshold); c != 0 {
			return c > 0
		}
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *approvalRuleService) GetRule(ctx context.Context, companyID, ruleID string) (*domain.ApprovalRule, error) {
	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find approval rule", slog.String("rule_id", ruleID))
		}
		return nil, err
	}
	if rule.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError("approval rule " + ruleID)
	}
	return rule, nil
}

func (s *approvalRuleService) ListRules(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	return s.ruleRepo.ListRulesByCompany(ctx, companyID)
}

func (s *approvalRuleService) CreateRule(ctx context.Context, companyID string, req dto.CreateApprovalRuleRequest, creatorUserID string) (*domain.ApprovalRule, error) {
	rule, err := s.newRule(ctx, companyID, req, creatorUserID, s.Now())
	if err != nil {
		return nil, err
	}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save approval rule", slog.String("rule_id", rule.RuleID))
		return nil, err
	}
	s.LogInfo(ctx, "Approval rule created",
		slog.String("rule_id", rule.RuleID), slog.String("rule_type", string(rule.RuleType)))
	return &rule, nil
}

func (s *approvalRuleService) ImportRules(ctx context.Context, companyID string, reqs []dto.CreateApprovalRuleRequest, creatorUserID string) ([]domain.ApprovalRule, error) {
	if len(reqs) == 0 {
		return nil, apperrors.NewValidationError("no approval rules to import")
	}
	now := s.Now()
	rules := make([]domain.ApprovalRule, 0, len(reqs))
	for i, req := range reqs {
		// Later entries count as more recently created, so ties resolve to the last one in the file.
		rule, err := s.newRule(ctx, companyID, req, creatorUserID, now.Add(time.Duration(i)*time.Microsecond))
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i+1, req.RuleName, err)
		}
		rules = append(rules, rule)
	}

	if err := s.ruleRepo.SaveRules(ctx, rules); err != nil {
		s.LogError(ctx, err, "Failed to import approval rules", slog.String("company_id", companyID))
		return nil, err
	}
	s.LogInfo(ctx, "Approval rules imported", slog.String("company_id", companyID), slog.Int("count", len(rules)))
	return rules, nil
}

func (s *approvalRuleService) newRule(ctx context.Context, companyID string, req dto.CreateApprovalRuleRequest, creatorUserID string, now time.Time) (domain.ApprovalRule, error) {
	rule := domain.ApprovalRule{
		RuleID:              uuid.NewString(),
		CompanyID:           companyID,
		RuleName:            strings.TrimSpace(req.RuleName),
		RuleType:            req.RuleType,
		Approvers:           slices.Clone(req.Approvers),
		PercentageThreshold: req.PercentageThreshold,
		AmountThreshold:     req.AmountThreshold,
		SpecificApprovers:   slices.Clone(req.SpecificApprovers),
		IsActive:            req.IsActive == nil || *req.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.validateRule(ctx, &rule); err != nil {
		return domain.ApprovalRule{}, err
	}
	return rule, nil
}

// UpdateRule edits a rule in place. Expenses that already pinned the rule keep their snapshot.
func (s *approvalRuleService) UpdateRule(ctx context.Context, companyID, ruleID string, req dto.UpdateApprovalRuleRequest, updaterUserID string) (*domain.ApprovalRule, error) {
	rule, err := s.GetRule(ctx, companyID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.RuleName != nil {
		rule.RuleName = strings.TrimSpace(*req.RuleName)
	}
	if req.Approvers != nil {
		rule.Approvers = req.Approvers
	}
	if req.PercentageThreshold != nil {
		rule.PercentageThreshold = req.PercentageThreshold
	}
	if req.AmountThreshold != nil {
		rule.AmountThreshold = req.AmountThreshold
	}
	if req.SpecificApprovers != nil {
		rule.SpecificApprovers = req.SpecificApprovers
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	rule.LastUpdatedAt = s.Now()
	rule.LastUpdatedBy = updaterUserID

	if err := s.validateRule(ctx, rule); err != nil {
		return nil, err
	}
	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to update approval rule", slog.String("rule_id", ruleID))
		return nil, err
	}
	return rule, nil
}

func (s *approvalRuleService) DeactivateRule(ctx context.Context, companyID, ruleID, updaterUserID string) (*domain.ApprovalRule, error) {
	rule, err := s.GetRule(ctx, companyID, ruleID)
	if err != nil {
		return nil, err
	}
	if !rule.IsActive {
		return rule, nil
	}
	rule.IsActive = false
	rule.LastUpdatedAt = s.Now()
	rule.LastUpdatedBy = updaterUserID
	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to deactivate approval rule", slog.String("rule_id", ruleID))
		return nil, err
	}
	s.LogInfo(ctx, "Approval rule deactivated", slog.String("rule_id", ruleID))
	return rule, nil
}

// validateRule checks the per-type shape of a rule and that every referenced approver is a
// manager or admin of the rule's company.
func (s *approvalRuleService) validateRule(ctx context.Context, rule *domain.ApprovalRule) error {
	if rule.RuleName == "" {
		return apperrors.NewValidationError("rule name is required")
	}
	if !rule.RuleType.IsConfigurable() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown rule type %q", rule.RuleType))
	}
	if rule.AmountThreshold != nil && rule.AmountThreshold.IsNegative() {
		return apperrors.NewValidationError("amount threshold cannot be negative")
	}

	needsThreshold := rule.RuleType == domain.RulePercentage || rule.RuleType == domain.RuleHybrid
	needsSpecific := rule.RuleType == domain.RuleSpecificApprover || rule.RuleType == domain.RuleHybrid

	switch {
	case rule.RuleType == domain.RuleSequential && len(rule.Approvers) == 0:
		return apperrors.NewValidationError("a sequential rule needs at least one approver")
	case needsSpecific && len(rule.SpecificApprovers) == 0:
		return apperrors.NewValidationError(fmt.Sprintf("a %s rule needs at least one specific approver", rule.RuleType))
	case needsThreshold && rule.PercentageThreshold == nil:
		return apperrors.NewValidationError(fmt.Sprintf("a %s rule needs a percentage threshold", rule.RuleType))
	}
	if needsThreshold {
		t := *rule.PercentageThreshold
		if !t.IsPositive() || t.GreaterThan(hundred) {
			return apperrors.NewValidationError("percentage threshold must be greater than 0 and at most 100")
		}
	} else {
		rule.PercentageThreshold = nil
	}
	if !needsSpecific {
		rule.SpecificApprovers = []string{}
	}
	if rule.RuleType == domain.RuleSpecificApprover {
		rule.Approvers = []string{}
	}
	if rule.Approvers == nil {
		rule.Approvers = []string{}
	}

	seen := make([]string, 0, len(rule.Approvers)+len(rule.SpecificApprovers))
	for _, id := range slices.Concat(rule.Approvers, rule.SpecificApprovers) {
		if slices.Contains(seen, id) {
			continue
		}
		seen = append(seen, id)
		if err := s.checkApprover(ctx, rule.CompanyID, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *approvalRuleService) checkApprover(ctx context.Context, companyID, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationErrorWithCause("approver "+userID+" does not exist", err)
		}
		return err
	}
	if user.CompanyID != companyID {
		return apperrors.NewValidationError("approver " + userID + " belongs to another company")
	}
	if !user.Role.CanApprove() {
		return apperrors.NewValidationError("approver " + userID + " must be a manager or admin")
	}
	return nil
}
