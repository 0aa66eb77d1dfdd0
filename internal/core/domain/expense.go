package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the lifecycle status of an expense.
type ExpenseStatus string

const (
	StatusDraft    ExpenseStatus = "draft"
	StatusPending  ExpenseStatus = "pending"
	StatusApproved ExpenseStatus = "approved"
	StatusRejected ExpenseStatus = "rejected"
)

// IsTerminal returns true once no further ledger mutation is permitted.
func (s ExpenseStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// IsValid returns true if s is a known status.
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ExpenseCategory classifies what the money was spent on.
type ExpenseCategory string

const (
	CategoryTravel         ExpenseCategory = "travel"
	CategoryMeals          ExpenseCategory = "meals"
	CategoryAccommodation  ExpenseCategory = "accommodation"
	CategoryOfficeSupplies ExpenseCategory = "office_supplies"
	CategorySoftware       ExpenseCategory = "software"
	CategoryTraining       ExpenseCategory = "training"
	CategoryEntertainment  ExpenseCategory = "entertainment"
	CategoryOther          ExpenseCategory = "other"
)

// IsValid returns true if c is a known category.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case CategoryTravel, CategoryMeals, CategoryAccommodation, CategoryOfficeSupplies,
		CategorySoftware, CategoryTraining, CategoryEntertainment, CategoryOther:
		return true
	}
	return false
}

// Expense is one employee-submitted claim.
type Expense struct {
	ExpenseID                   string           `json:"expenseID"`
	EmployeeID                  string           `json:"employeeID"`
	EmployeeName                string           `json:"employeeName"`
	CompanyID                   string           `json:"companyID"`
	Amount                      decimal.Decimal  `json:"amount"`          // In CurrencyCode
	CurrencyCode                string           `json:"currencyCode"`    // Submitted currency
	ConvertedAmount             *decimal.Decimal `json:"convertedAmount"` // In the company default currency, nil until normalized
	NeedsCurrencyReconciliation bool             `json:"needsCurrencyReconciliation"`
	Category                    ExpenseCategory  `json:"category"`
	ExpenseDate                 time.Time        `json:"expenseDate"`
	Description                 string           `json:"description"`
	ReceiptURL                  *string          `json:"receiptURL,omitempty"`
	Status                      ExpenseStatus    `json:"status"`
	ApprovalHistory             []ApprovalEvent  `json:"approvalHistory"`
	RejectionReason             *string          `json:"rejectionReason,omitempty"`
	Policy                      *ApprovalPolicy  `json:"policy,omitempty"` // Pinned at the first action
	Version                     int64            `json:"version"`
	AuditFields
}

// IsEditableByEmployee reports whether the submitting employee may still change the claim.
func (e *Expense) IsEditableByEmployee() bool {
	return e.Status == StatusDraft || (e.Status == StatusPending && len(e.ApprovalHistory) == 0)
}

// Clone returns a deep copy so callers can compute a candidate state without touching the original.
func (e Expense) Clone() Expense {
	out := e
	if e.ConvertedAmount != nil {
		v := *e.ConvertedAmount
		out.ConvertedAmount = &v
	}
	if e.ReceiptURL != nil {
		v := *e.ReceiptURL
		out.ReceiptURL = &v
	}
	if e.RejectionReason != nil {
		v := *e.RejectionReason
		out.RejectionReason = &v
	}
	if e.ApprovalHistory != nil {
		out.ApprovalHistory = make([]ApprovalEvent, len(e.ApprovalHistory))
		copy(out.ApprovalHistory, e.ApprovalHistory)
	}
	if e.Policy != nil {
		p := e.Policy.Clone()
		out.Policy = &p
	}
	return out
}

// ExpenseSummary aggregates expenses for a dashboard: counts per status and the total
// claimed in the company currency.
type ExpenseSummary struct {
	Total        int             `json:"total"`
	Draft        int             `json:"draft"`
	Pending      int             `json:"pending"`
	Approved     int             `json:"approved"`
	Rejected     int             `json:"rejected"`
	TotalAmount  decimal.Decimal `json:"totalAmount"` // ConvertedAmount where known, Amount otherwise
	CurrencyCode string          `json:"currencyCode"`
}

// Count folds n expenses of one status, worth amount together, into the summary.
func (s *ExpenseSummary) Count(status ExpenseStatus, n int, amount decimal.Decimal) {
	switch status {
	case StatusDraft:
		s.Draft += n
	case StatusPending:
		s.Pending += n
	case StatusApproved:
		s.Approved += n
	case StatusRejected:
		s.Rejected += n
	}
	s.Total += n
	s.TotalAmount = s.TotalAmount.Add(amount)
}

// Add folds a single expense into the summary.
func (s *ExpenseSummary) Add(e Expense) {
	amount := e.Amount
	if e.ConvertedAmount != nil {
		amount = *e.ConvertedAmount
	}
	s.Count(e.Status, 1, amount)
}
