package dto

import (
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateApprovalRuleRequest defines data for configuring an approval rule. The yaml tags let
// the CLI import the same shape from files.
type CreateApprovalRuleRequest struct {
	RuleName            string           `json:"ruleName" yaml:"ruleName" binding:"required" validate:"required"`
	RuleType            domain.RuleType  `json:"ruleType" yaml:"ruleType" binding:"required,oneof=sequential percentage specific_approver hybrid" validate:"required,oneof=sequential percentage specific_approver hybrid"`
	Approvers           []string         `json:"approvers" yaml:"approvers" binding:"omitempty,dive,required" validate:"omitempty,dive,required"`
	PercentageThreshold *decimal.Decimal `json:"percentageThreshold" yaml:"percentageThreshold"`
	AmountThreshold     *decimal.Decimal `json:"amountThreshold" yaml:"amountThreshold"`
	SpecificApprovers   []string         `json:"specificApprovers" yaml:"specificApprovers" binding:"omitempty,dive,required" validate:"omitempty,dive,required"`
	IsActive            *bool            `json:"isActive" yaml:"isActive"` // Defaults to true
}

// UpdateApprovalRuleRequest replaces the mutable parts of a rule. Omitted fields keep their value.
type UpdateApprovalRuleRequest struct {
	RuleName            *string          `json:"ruleName"`
	Approvers           []string         `json:"approvers" binding:"omitempty,dive,required"`
	PercentageThreshold *decimal.Decimal `json:"percentageThreshold"`
	AmountThreshold     *decimal.Decimal `json:"amountThreshold"`
	SpecificApprovers   []string         `json:"specificApprovers" binding:"omitempty,dive,required"`
	IsActive            *bool            `json:"isActive"`
}

// ApprovalRuleResponse defines data returned for an approval rule.
type ApprovalRuleResponse struct {
	RuleID              string           `json:"ruleID"`
	CompanyID           string           `json:"companyID"`
	RuleName            string           `json:"ruleName"`
	RuleType            domain.RuleType  `json:"ruleType"`
	Approvers           []string         `json:"approvers"`
	PercentageThreshold *decimal.Decimal `json:"percentageThreshold,omitempty"`
	AmountThreshold     *decimal.Decimal `json:"amountThreshold,omitempty"`
	SpecificApprovers   []string         `json:"specificApprovers"`
	IsActive            bool             `json:"isActive"`
	CreatedAt           time.Time        `json:"createdAt"`
	CreatedBy           string           `json:"createdBy"`
	LastUpdatedAt       time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy       string           `json:"lastUpdatedBy"`
}

// ListApprovalRulesResponse wraps a list of rules.
type ListApprovalRulesResponse struct {
	Rules []ApprovalRuleResponse `json:"rules"`
}

// ToApprovalRuleResponse converts domain.ApprovalRule to DTO.
func ToApprovalRuleResponse(r *domain.ApprovalRule) ApprovalRuleResponse {
	return ApprovalRuleResponse{
		RuleID:              r.RuleID,
		CompanyID:           r.CompanyID,
		RuleName:            r.RuleName,
		RuleType:            r.RuleType,
		Approvers:           nonNil(r.Approvers),
		PercentageThreshold: r.PercentageThreshold,
		AmountThreshold:     r.AmountThreshold,
		SpecificApprovers:   nonNil(r.SpecificApprovers),
		IsActive:            r.IsActive,
		CreatedAt:           r.CreatedAt,
		CreatedBy:           r.CreatedBy,
		LastUpdatedAt:       r.LastUpdatedAt,
		LastUpdatedBy:       r.LastUpdatedBy,
	}
}

// ToListApprovalRulesResponse converts a slice of rules to DTO.
func ToListApprovalRulesResponse(rules []domain.ApprovalRule) ListApprovalRulesResponse {
	list := make([]ApprovalRuleResponse, len(rules))
	for i := range rules {
		list[i] = ToApprovalRuleResponse(&rules[i])
	}
	return ListApprovalRulesResponse{Rules: list}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
