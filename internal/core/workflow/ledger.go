package workflow

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// Append validates ev against the expense's pinned policy and returns a copy of the expense
// with the event recorded and its status recomputed. The input expense is never modified;
// persisting the result (conditioned on expense.Version) is the caller's job.
//
// A repeated (approver, action) pair returns the unchanged expense, its current state and an
// ErrDuplicateAction error. Appending to a terminal expense is a conflict; an approver outside
// the policy, or acting out of turn on a sequential chain, is forbidden.
func Append(expense domain.Expense, ev domain.ApprovalEvent, now time.Time) (domain.Expense, State, error) {
	if err := validateEvent(ev); err != nil {
		return expense, State{}, err
	}
	p := expense.Policy
	if p == nil {
		return expense, State{}, apperrors.NewValidationError("expense has no pinned approval policy")
	}

	current := Evaluate(p, expense.ApprovalHistory)

	if isDuplicate(p, current, expense.ApprovalHistory, ev) {
		return expense, current, apperrors.NewDuplicateActionError(
			fmt.Sprintf("approver %s already recorded %s on expense %s", ev.ApproverID, ev.Action, expense.ExpenseID))
	}

	if expense.Status != domain.StatusPending || current.IsTerminal() {
		return expense, current, apperrors.NewConflictError(
			fmt.Sprintf("expense %s is %s and accepts no further actions", expense.ExpenseID, expense.Status))
	}

	if err := authorize(expense, current, ev); err != nil {
		return expense, current, err
	}

	next := expense.Clone()
	ev.Step = 0
	if p.RuleType == domain.RuleSequential {
		ev.Step = current.Step
	}
	ev.Timestamp = monotonic(next.ApprovalHistory, now)
	next.ApprovalHistory = append(next.ApprovalHistory, ev)

	st := Evaluate(next.Policy, next.ApprovalHistory)
	next.Status = st.Status
	if st.Status == domain.StatusRejected {
		reason := ev.Comment
		next.RejectionReason = &reason
	}
	return next, st, nil
}

// Recompute re-derives the state of a stored expense and reports whether it differs from the
// stored status. Draft expenses and expenses without a pinned policy never drift.
func Recompute(expense domain.Expense) (State, bool) {
	st := Evaluate(expense.Policy, expense.ApprovalHistory)
	if expense.Status == domain.StatusDraft {
		return st, false
	}
	if expense.Policy == nil {
		return st, expense.Status != domain.StatusPending
	}
	return st, st.Status != expense.Status
}

func validateEvent(ev domain.ApprovalEvent) error {
	if strings.TrimSpace(ev.ApproverID) == "" {
		return apperrors.NewValidationError("approver id is required")
	}
	if !ev.Action.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown approval action %q", ev.Action))
	}
	if ev.Action == domain.ActionRejected && strings.TrimSpace(ev.Comment) == "" {
		return apperrors.NewValidationError("a comment is required when rejecting an expense")
	}
	return nil
}

// isDuplicate: the same approver already recorded the same action, and is not now being
// asked to act on a later sequential step.
func isDuplicate(p *domain.ApprovalPolicy, st State, ledger []domain.ApprovalEvent, ev domain.ApprovalEvent) bool {
	if approver, ok := currentStepApprover(p, st); ok && approver == ev.ApproverID {
		return false
	}
	return slices.ContainsFunc(ledger, func(prev domain.ApprovalEvent) bool {
		return prev.ApproverID == ev.ApproverID && prev.Action == ev.Action
	})
}

func authorize(expense domain.Expense, st State, ev domain.ApprovalEvent) error {
	p := expense.Policy
	if ev.ApproverID == expense.EmployeeID {
		return apperrors.NewForbiddenError("employees cannot act on their own expense")
	}

	if p.RuleType == domain.RuleSequential {
		approver, ok := currentStepApprover(p, st)
		if !ok || approver != ev.ApproverID {
			if slices.Contains(p.Approvers, ev.ApproverID) {
				return apperrors.NewForbiddenError(
					fmt.Sprintf("approver %s acted out of turn: step %d belongs to %s", ev.ApproverID, st.Step, approver))
			}
			return apperrors.NewForbiddenError(
				fmt.Sprintf("approver %s is not part of the approval chain", ev.ApproverID))
		}
		return nil
	}

	if !slices.Contains(actors(p), ev.ApproverID) {
		return apperrors.NewForbiddenError(
			fmt.Sprintf("approver %s is not entitled to act under rule %q", ev.ApproverID, p.RuleName))
	}
	if hasActed(expense.ApprovalHistory, ev.ApproverID) {
		return apperrors.NewForbiddenError(
			fmt.Sprintf("approver %s has already acted on this expense", ev.ApproverID))
	}
	return nil
}

// monotonic keeps ledger timestamps non-decreasing even if the clock steps backwards.
func monotonic(ledger []domain.ApprovalEvent, now time.Time) time.Time {
	now = now.UTC()
	if n := len(ledger); n > 0 && ledger[n-1].Timestamp.After(now) {
		return ledger[n-1].Timestamp
	}
	return now
}
