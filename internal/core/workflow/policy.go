package workflow

import (
	"slices"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// PinRule snapshots rule into the policy that will govern an expense for the rest of its
// lifecycle. pool is the company's manager/admin directory at pin time and is only used when
// a percentage or hybrid rule does not enumerate its approvers. The submitting employee is
// struck from every list, since their own action is always refused.
func PinRule(rule domain.ApprovalRule, employeeID string, pool []string, now time.Time) domain.ApprovalPolicy {
	ruleID := rule.RuleID
	p := domain.ApprovalPolicy{
		RuleID:            &ruleID,
		RuleName:          rule.RuleName,
		RuleType:          rule.RuleType,
		Approvers:         without(rule.Approvers, employeeID),
		SpecificApprovers: dedupe(without(rule.SpecificApprovers, employeeID)),
		PinnedAt:          now,
	}
	if rule.PercentageThreshold != nil {
		t := *rule.PercentageThreshold
		p.PercentageThreshold = &t
	}

	switch rule.RuleType {
	case domain.RuleSequential:
		p.EntitledApprovers = dedupe(p.Approvers)
	case domain.RulePercentage, domain.RuleHybrid:
		if len(rule.Approvers) > 0 {
			p.EntitledApprovers = dedupe(p.Approvers)
		} else {
			p.EntitledApprovers = dedupe(without(pool, employeeID))
		}
	case domain.RuleSpecificApprover:
		p.EntitledApprovers = slices.Clone(p.SpecificApprovers)
	}
	if p.EntitledApprovers == nil {
		p.EntitledApprovers = []string{}
	}
	return p
}

// HasActors reports whether anyone at all may act under p.
func HasActors(p domain.ApprovalPolicy) bool {
	return len(actors(&p)) > 0
}

// PinDefault builds the single-approver policy used when no active rule matches: any one of
// approvers (normally just the employee's reporting manager) decides unilaterally.
func PinDefault(approvers []string, now time.Time) domain.ApprovalPolicy {
	entitled := dedupe(approvers)
	if entitled == nil {
		entitled = []string{}
	}
	return domain.ApprovalPolicy{
		RuleName:          "Reporting manager approval",
		RuleType:          domain.RuleReportingManager,
		Approvers:         slices.Clone(entitled),
		SpecificApprovers: []string{},
		EntitledApprovers: entitled,
		PinnedAt:          now,
	}
}

// actors returns everyone whose action is accepted under p.
func actors(p *domain.ApprovalPolicy) []string {
	if p.RuleType != domain.RuleHybrid {
		return p.EntitledApprovers
	}
	all := slices.Clone(p.EntitledApprovers)
	for _, id := range p.SpecificApprovers {
		if !slices.Contains(all, id) {
			all = append(all, id)
		}
	}
	return all
}

// without returns a copy of ids with every occurrence of id removed. nil stays nil.
func without(ids []string, id string) []string {
	if ids == nil {
		return nil
	}
	return slices.DeleteFunc(slices.Clone(ids), func(v string) bool {
		return id != "" && v == id
	})
}

func dedupe(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
