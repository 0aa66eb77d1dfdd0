package workflow

import (
	"slices"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// evaluateFunc derives the state for one rule type.
type evaluateFunc func(p *domain.ApprovalPolicy, ledger []domain.ApprovalEvent) State

var evaluators = map[domain.RuleType]evaluateFunc{
	domain.RuleSequential:       evaluateSequential,
	domain.RulePercentage:       evaluatePercentage,
	domain.RuleSpecificApprover: evaluateSpecificApprover,
	domain.RuleHybrid:           evaluateHybrid,
	domain.RuleReportingManager: evaluateReportingManager,
}

// Evaluate computes the approval state of ledger under the pinned policy p. An expense
// without a pinned policy has not been acted on yet and is reported as pending with no
// known approvers.
func Evaluate(p *domain.ApprovalPolicy, ledger []domain.ApprovalEvent) State {
	if p == nil {
		return pending(0, 0, nil)
	}
	eval, ok := evaluators[p.RuleType]
	if !ok {
		return pending(0, 0, nil)
	}
	return eval(p, ledger)
}

// thresholdCondition reports whether the approvals seen so far satisfy the policy.
type thresholdCondition func(p *domain.ApprovalPolicy, approved []string) bool

// walk evaluates non-sequential policies in ledger order. The first prefix that reaches a
// terminal condition decides the outcome, so an approval recorded before a rejection wins.
func walk(p *domain.ApprovalPolicy, ledger []domain.ApprovalEvent, approvedWhen thresholdCondition) State {
	entitled := actors(p)
	var approved []string
	for _, ev := range ledger {
		if !slices.Contains(entitled, ev.ApproverID) {
			continue
		}
		switch ev.Action {
		case domain.ActionRejected:
			return terminal(domain.StatusRejected, 0, len(approved))
		case domain.ActionApproved:
			if !slices.Contains(approved, ev.ApproverID) {
				approved = append(approved, ev.ApproverID)
			}
			if approvedWhen(p, approved) {
				return terminal(domain.StatusApproved, 0, len(approved))
			}
		}
	}

	awaiting := make([]string, 0, len(entitled))
	for _, id := range entitled {
		if !hasActed(ledger, id) {
			awaiting = append(awaiting, id)
		}
	}
	return pending(0, len(approved), awaiting)
}

func evaluatePercentage(p *domain.ApprovalPolicy, ledger []domain.ApprovalEvent) State {
	return walk(p, ledger, percentageMet)
}

func evaluateSpecificApprover(p *domain.ApprovalPolicy, ledger []domain.ApprovalEvent) State {
	return walk(p, ledger, specificApproverMet)
}

func evaluateHybrid(p *domain.ApprovalPolicy, ledger []domain.ApprovalEvent) State {
	return walk(p, ledger, func(p *domain.ApprovalPolicy, approved []string) bool {
		return percentageMet(p, approved) || specificApproverMet(p, approved)
	})
}

func evaluateReportingManager(p *domain.ApprovalPolicy, ledger []domain.ApprovalEvent) State {
	return walk(p, ledger, func(_ *domain.ApprovalPolicy, approved []string) bool {
		return len(approved) > 0
	})
}

// percentageMet: distinct approvals inside the entitled set / |entitled set| * 100 >= threshold.
func percentageMet(p *domain.ApprovalPolicy, approved []string) bool {
	if p.PercentageThreshold == nil || len(p.EntitledApprovers) == 0 {
		return false
	}
	count := 0
	for _, id := range approved {
		if slices.Contains(p.EntitledApprovers, id) {
			count++
		}
	}
	if count == 0 {
		return false
	}
	// Compare count*100 >= threshold*size to stay exact.
	lhs := decimal.NewFromInt(int64(count)).Mul(hundred)
	rhs := p.PercentageThreshold.Mul(decimal.NewFromInt(int64(len(p.EntitledApprovers))))
	return lhs.GreaterThanOrEqual(rhs)
}

func specificApproverMet(p *domain.ApprovalPolicy, approved []string) bool {
	for _, id := range approved {
		if slices.Contains(p.SpecificApprovers, id) {
			return true
		}
	}
	return false
}

func hasActed(ledger []domain.ApprovalEvent, approverID string) bool {
	return slices.ContainsFunc(ledger, func(ev domain.ApprovalEvent) bool {
		return ev.ApproverID == approverID
	})
}
