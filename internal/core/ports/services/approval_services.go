package services

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
)

// SubmitActionInput carries an approver's decision. The identity is always supplied by the
// caller; the engine never reads ambient session state.
type SubmitActionInput struct {
	ExpenseID    string
	ApproverID   string
	ApproverName string
	Action       domain.ApprovalAction
	Comment      string
}

// ActionResult is the outcome of SubmitAction.
type ActionResult struct {
	Expense *domain.Expense
	State   workflow.State

	// Duplicate is set when the same action was already recorded; nothing was appended.
	Duplicate bool

	// Reconciled is set when a concurrent writer finalized the expense first with the outcome
	// this action pushed toward; nothing was appended.
	Reconciled bool
}

// InboxItem is a pending expense whose current state is waiting on the caller.
type InboxItem struct {
	Expense domain.Expense
	State   workflow.State
}

// ApprovalSvc is the single write path for approval decisions.
type ApprovalSvc interface {
	SubmitAction(ctx context.Context, in SubmitActionInput) (*ActionResult, error)

	// Inbox lists the company's pending expenses that approverID may act on right now,
	// newest first. Expenses nobody has acted on yet are judged by the policy they would pin.
	Inbox(ctx context.Context, companyID, approverID string) ([]InboxItem, error)
}
