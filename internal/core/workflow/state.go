// Package workflow holds the approval engine proper: pinning a policy, evaluating a ledger
// against it and validating appends. Everything here is a pure function of its inputs so a
// status can always be recomputed from (policy, ledger) for audits and retries.
package workflow

import (
	"fmt"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// State is the approval state derived from a pinned policy and a ledger.
type State struct {
	Status    domain.ExpenseStatus `json:"status"`
	Step      int                  `json:"step"`      // Current sequential step; equals the chain length once approved
	Awaiting  []string             `json:"awaiting"`  // Approvers entitled to act now; empty when terminal
	Approvals int                  `json:"approvals"` // Distinct approvals counted towards the policy
}

// IsTerminal reports whether the state accepts no further actions.
func (s State) IsTerminal() bool {
	return s.Status.IsTerminal()
}

// String renders the state the way the sequential state machine names it.
func (s State) String() string {
	if s.Status == domain.StatusPending {
		return fmt.Sprintf("awaiting_step[%d]", s.Step)
	}
	return string(s.Status)
}

func pending(step, approvals int, awaiting []string) State {
	if awaiting == nil {
		awaiting = []string{}
	}
	return State{Status: domain.StatusPending, Step: step, Awaiting: awaiting, Approvals: approvals}
}

func terminal(status domain.ExpenseStatus, step, approvals int) State {
	return State{Status: status, Step: step, Awaiting: []string{}, Approvals: approvals}
}
