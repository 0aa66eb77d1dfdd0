package models

import "github.com/shopspring/decimal"

// ApprovalRule is the row stored in the approval_rules table. Approver lists are text[] columns.
type ApprovalRule struct {
	RuleID              string              `db:"rule_id"`
	CompanyID           string              `db:"company_id"`
	RuleName            string              `db:"rule_name"`
	RuleType            string              `db:"rule_type"`
	Approvers           []string            `db:"approvers"`
	PercentageThreshold decimal.NullDecimal `db:"percentage_threshold"`
	AmountThreshold     decimal.NullDecimal `db:"amount_threshold"` // NULL means the rule has no lower bound
	SpecificApprovers   []string            `db:"specific_approvers"`
	IsActive            bool                `db:"is_active"`
	AuditFields
}
