package domain

import "time"

// ApprovalAction is the decision an approver records.
type ApprovalAction string

const (
	ActionApproved ApprovalAction = "approved"
	ActionRejected ApprovalAction = "rejected"
)

// IsValid returns true if a is a known action.
func (a ApprovalAction) IsValid() bool {
	return a == ActionApproved || a == ActionRejected
}

// ApprovalEvent is one approver's recorded decision. Events are append-only and
// their order in the ledger is canonical.
type ApprovalEvent struct {
	ApproverID   string         `json:"approverID"`
	ApproverName string         `json:"approverName"`
	Action       ApprovalAction `json:"action"`
	Comment      string         `json:"comment,omitempty"`
	Step         int            `json:"step"` // Sequential step the event was recorded at
	Timestamp    time.Time      `json:"timestamp"`
}
