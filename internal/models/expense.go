package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the row stored in the expenses table. The approval ledger and the pinned
// policy snapshot live in JSONB columns next to the status they produced, so one
// conditional UPDATE keeps them consistent.
type Expense struct {
	ExpenseID                   string              `db:"expense_id"`
	CompanyID                   string              `db:"company_id"`
	EmployeeID                  string              `db:"employee_id"`
	EmployeeName                string              `db:"employee_name"`
	Amount                      decimal.Decimal     `db:"amount"`
	CurrencyCode                string              `db:"currency_code"`
	ConvertedAmount             decimal.NullDecimal `db:"converted_amount"`
	NeedsCurrencyReconciliation bool                `db:"needs_currency_reconciliation"`
	Category                    string              `db:"category"`
	ExpenseDate                 time.Time           `db:"expense_date"`
	Description                 string              `db:"description"`
	ReceiptURL                  *string             `db:"receipt_url"`
	Status                      string              `db:"status"`
	ApprovalHistory             []byte              `db:"approval_history"` // JSONB array of events
	RejectionReason             *string             `db:"rejection_reason"`
	Policy                      []byte              `db:"policy"` // JSONB, NULL until the first action
	Version                     int64               `db:"version"`
	AuditFields
}
