package workflow

import "github.com/SscSPs/expense_approvals/internal/core/domain"

// evaluateSequential runs the approval chain: awaiting_step[0] .. awaiting_step[N-1], then
// approved. The current step is the number of in-turn approvals in the ledger, never stored
// separately, which keeps the machine safe to recompute after a failed write.
func evaluateSequential(p *domain.ApprovalPolicy, ledger []domain.ApprovalEvent) State {
	chain := p.Approvers
	if len(chain) == 0 {
		return pending(0, 0, nil)
	}

	step := 0
	for _, ev := range ledger {
		if step == len(chain) {
			break
		}
		if ev.ApproverID != chain[step] {
			continue // never appended: out-of-turn actions are refused
		}
		if ev.Action == domain.ActionRejected {
			return terminal(domain.StatusRejected, step, step)
		}
		step++
	}

	if step == len(chain) {
		return terminal(domain.StatusApproved, step, step)
	}
	return pending(step, step, []string{chain[step]})
}

// currentStepApprover returns the approver the chain is waiting on, if any.
func currentStepApprover(p *domain.ApprovalPolicy, st State) (string, bool) {
	if p.RuleType != domain.RuleSequential || st.IsTerminal() || st.Step >= len(p.Approvers) {
		return "", false
	}
	return p.Approvers[st.Step], true
}
