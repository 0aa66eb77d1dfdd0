package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// RuleType selects how an approval rule aggregates approver actions.
type RuleType string

const (
	RuleSequential       RuleType = "sequential"
	RulePercentage       RuleType = "percentage"
	RuleSpecificApprover RuleType = "specific_approver"
	RuleHybrid           RuleType = "hybrid"

	// RuleReportingManager is never configured by admins; it is the default policy
	// pinned when no active rule matches an expense.
	RuleReportingManager RuleType = "reporting_manager"
)

// IsConfigurable reports whether admins may create rules of this type.
func (t RuleType) IsConfigurable() bool {
	switch t {
	case RuleSequential, RulePercentage, RuleSpecificApprover, RuleHybrid:
		return true
	}
	return false
}

// ApprovalRule is a company-scoped approval policy.
type ApprovalRule struct {
	RuleID              string           `json:"ruleID"`
	CompanyID           string           `json:"companyID"`
	RuleName            string           `json:"ruleName"`
	RuleType            RuleType         `json:"ruleType"`
	Approvers           []string         `json:"approvers"` // Ordered chain for sequential, enumerated entitled set otherwise
	PercentageThreshold *decimal.Decimal `json:"percentageThreshold,omitempty"`
	AmountThreshold     *decimal.Decimal `json:"amountThreshold,omitempty"` // In company currency
	SpecificApprovers   []string         `json:"specificApprovers"`
	IsActive            bool             `json:"isActive"`
	AuditFields
}

// AppliesTo reports whether the rule's amount bracket covers the converted amount.
func (r *ApprovalRule) AppliesTo(convertedAmount decimal.Decimal) bool {
	return r.AmountThreshold == nil || r.AmountThreshold.LessThanOrEqual(convertedAmount)
}

// ApprovalPolicy is the snapshot of the governing rule pinned to an expense at its first
// action. Evaluation only ever reads the snapshot, so rule edits cannot change an expense
// already in flight.
type ApprovalPolicy struct {
	RuleID              *string          `json:"ruleID,omitempty"` // nil for the default policy
	RuleName            string           `json:"ruleName"`
	RuleType            RuleType         `json:"ruleType"`
	Approvers           []string         `json:"approvers"`
	PercentageThreshold *decimal.Decimal `json:"percentageThreshold,omitempty"`
	SpecificApprovers   []string         `json:"specificApprovers"`
	EntitledApprovers   []string         `json:"entitledApprovers"`
	PinnedAt            time.Time        `json:"pinnedAt"`
}

// Clone returns a deep copy of the policy.
func (p ApprovalPolicy) Clone() ApprovalPolicy {
	out := p
	if p.RuleID != nil {
		v := *p.RuleID
		out.RuleID = &v
	}
	if p.PercentageThreshold != nil {
		v := *p.PercentageThreshold
		out.PercentageThreshold = &v
	}
	out.Approvers = slices.Clone(p.Approvers)
	out.SpecificApprovers = slices.Clone(p.SpecificApprovers)
	out.EntitledApprovers = slices.Clone(p.EntitledApprovers)
	return out
}
