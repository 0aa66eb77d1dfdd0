package dto

import (
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines data for an employee's new claim. It starts as a draft unless
// Submit is set.
type CreateExpenseRequest struct {
	Amount       decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode string                 `json:"currencyCode" binding:"required,iso4217"`
	Category     domain.ExpenseCategory `json:"category" binding:"required,oneof=travel meals accommodation office_supplies software training entertainment other"`
	ExpenseDate  time.Time              `json:"expenseDate" binding:"required"`
	Description  string                 `json:"description" binding:"required,max=1000"`
	ReceiptURL   *string                `json:"receiptURL" binding:"omitempty,url"`
	Submit       bool                   `json:"submit"`
}

// UpdateExpenseRequest changes an expense the employee may still edit.
type UpdateExpenseRequest struct {
	Amount       *decimal.Decimal        `json:"amount"`
	CurrencyCode *string                 `json:"currencyCode" binding:"omitempty,iso4217"`
	Category     *domain.ExpenseCategory `json:"category" binding:"omitempty,oneof=travel meals accommodation office_supplies software training entertainment other"`
	ExpenseDate  *time.Time              `json:"expenseDate"`
	Description  *string                 `json:"description" binding:"omitempty,max=1000"`
	ReceiptURL   *string                 `json:"receiptURL" binding:"omitempty,url"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	EmployeeID string  `form:"employeeID" binding:"omitempty,uuid"`
	Status     string  `form:"status" binding:"omitempty,oneof=draft pending approved rejected"`
	Limit      int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken  *string `form:"nextToken"`
}

// ExpenseSummaryParams narrows the dashboard summary to one employee.
type ExpenseSummaryParams struct {
	EmployeeID string `form:"employeeID" binding:"omitempty,uuid"`
}

// SubmitActionRequest is an approver's decision. The approver identity comes from the token.
type SubmitActionRequest struct {
	Action  domain.ApprovalAction `json:"action" binding:"required,oneof=approved rejected"`
	Comment string                `json:"comment" binding:"max=1000"`
}

// ApprovalEventResponse is one ledger entry.
type ApprovalEventResponse struct {
	ApproverID   string                `json:"approverID"`
	ApproverName string                `json:"approverName"`
	Action       domain.ApprovalAction `json:"action"`
	Comment      string                `json:"comment,omitempty"`
	Step         int                   `json:"step"`
	Timestamp    time.Time             `json:"timestamp"`
}

// ExpenseResponse defines data returned for an expense.
type ExpenseResponse struct {
	ExpenseID                   string                  `json:"expenseID"`
	EmployeeID                  string                  `json:"employeeID"`
	EmployeeName                string                  `json:"employeeName"`
	CompanyID                   string                  `json:"companyID"`
	Amount                      decimal.Decimal         `json:"amount"`
	CurrencyCode                string                  `json:"currencyCode"`
	ConvertedAmount             *decimal.Decimal        `json:"convertedAmount,omitempty"`
	NeedsCurrencyReconciliation bool                    `json:"needsCurrencyReconciliation"`
	Category                    domain.ExpenseCategory  `json:"category"`
	ExpenseDate                 time.Time               `json:"expenseDate"`
	Description                 string                  `json:"description"`
	ReceiptURL                  *string                 `json:"receiptURL,omitempty"`
	Status                      domain.ExpenseStatus    `json:"status"`
	ApprovalHistory             []ApprovalEventResponse `json:"approvalHistory"`
	RejectionReason             *string                 `json:"rejectionReason,omitempty"`
	PolicyRuleName              string                  `json:"policyRuleName,omitempty"`
	Version                     int64                   `json:"version"`
	CreatedAt                   time.Time               `json:"createdAt"`
	LastUpdatedAt               time.Time               `json:"lastUpdatedAt"`
}

// ListExpensesResponse wraps one page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ExpenseSummaryResponse is the dashboard view of a set of expenses.
type ExpenseSummaryResponse struct {
	Total        int             `json:"total"`
	Draft        int             `json:"draft"`
	Pending      int             `json:"pending"`
	Approved     int             `json:"approved"`
	Rejected     int             `json:"rejected"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CurrencyCode string          `json:"currencyCode"`
}

// InboxItemResponse is one expense waiting on the caller.
type InboxItemResponse struct {
	Expense  ExpenseResponse `json:"expense"`
	State    string          `json:"state"`
	Awaiting []string        `json:"awaiting"`
}

// InboxResponse lists the expenses waiting on the caller.
type InboxResponse struct {
	Items []InboxItemResponse `json:"items"`
}

// ActionResponse reports the outcome of SubmitAction.
type ActionResponse struct {
	ExpenseID  string               `json:"expenseID"`
	Status     domain.ExpenseStatus `json:"status"`
	State      string               `json:"state"`
	Awaiting   []string             `json:"awaiting"`
	Duplicate  bool                 `json:"duplicate"`
	Reconciled bool                 `json:"reconciled"`
	Version    int64                `json:"version"`
}

// ApprovalStateResponse exposes the derived workflow state of an expense.
type ApprovalStateResponse struct {
	ExpenseID string                 `json:"expenseID"`
	Status    domain.ExpenseStatus   `json:"status"`
	State     string                 `json:"state"`
	Step      int                    `json:"step"`
	Awaiting  []string               `json:"awaiting"`
	Approvals int                    `json:"approvals"`
	Policy    *domain.ApprovalPolicy `json:"policy,omitempty"`
	Drift     bool                   `json:"drift"`
}

// ToExpenseResponse converts domain.Expense to DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	history := make([]ApprovalEventResponse, len(e.ApprovalHistory))
	for i, ev := range e.ApprovalHistory {
		history[i] = ApprovalEventResponse{
			ApproverID:   ev.ApproverID,
			ApproverName: ev.ApproverName,
			Action:       ev.Action,
			Comment:      ev.Comment,
			Step:         ev.Step,
			Timestamp:    ev.Timestamp,
		}
	}
	resp := ExpenseResponse{
		ExpenseID:                   e.ExpenseID,
		EmployeeID:                  e.EmployeeID,
		EmployeeName:                e.EmployeeName,
		CompanyID:                   e.CompanyID,
		Amount:                      e.Amount,
		CurrencyCode:                e.CurrencyCode,
		ConvertedAmount:             e.ConvertedAmount,
		NeedsCurrencyReconciliation: e.NeedsCurrencyReconciliation,
		Category:                    e.Category,
		ExpenseDate:                 e.ExpenseDate,
		Description:                 e.Description,
		ReceiptURL:                  e.ReceiptURL,
		Status:                      e.Status,
		ApprovalHistory:             history,
		RejectionReason:             e.RejectionReason,
		Version:                     e.Version,
		CreatedAt:                   e.CreatedAt,
		LastUpdatedAt:               e.LastUpdatedAt,
	}
	if e.Policy != nil {
		resp.PolicyRuleName = e.Policy.RuleName
	}
	return resp
}

// ToListExpensesResponse converts a page of expenses to DTO.
func ToListExpensesResponse(expenses []domain.Expense, nextToken *string) ListExpensesResponse {
	list := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		list[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: list, NextToken: nextToken}
}

// ToApprovalStateResponse converts a derived workflow state to DTO.
func ToApprovalStateResponse(e *domain.Expense, st workflow.State, drift bool) ApprovalStateResponse {
	state := st.String()
	if e.Status == domain.StatusDraft {
		state = string(domain.StatusDraft)
	}
	return ApprovalStateResponse{
		ExpenseID: e.ExpenseID,
		Status:    e.Status,
		State:     state,
		Step:      st.Step,
		Awaiting:  st.Awaiting,
		Approvals: st.Approvals,
		Policy:    e.Policy,
		Drift:     drift,
	}
}

// ToActionResponse converts the outcome of an approval action to DTO.
func ToActionResponse(e *domain.Expense, st workflow.State, duplicate, reconciled bool) ActionResponse {
	awaiting := st.Awaiting
	if awaiting == nil {
		awaiting = []string{}
	}
	return ActionResponse{
		ExpenseID:  e.ExpenseID,
		Status:     e.Status,
		State:      st.String(),
		Awaiting:   awaiting,
		Duplicate:  duplicate,
		Reconciled: reconciled,
		Version:    e.Version,
	}
}

// ToExpenseSummaryResponse converts domain.ExpenseSummary to DTO.
func ToExpenseSummaryResponse(s *domain.ExpenseSummary) ExpenseSummaryResponse {
	return ExpenseSummaryResponse{
		Total:        s.Total,
		Draft:        s.Draft,
		Pending:      s.Pending,
		Approved:     s.Approved,
		Rejected:     s.Rejected,
		TotalAmount:  s.TotalAmount,
		CurrencyCode: s.CurrencyCode,
	}
}

// ToInboxResponse converts the caller's pending work to DTO.
func ToInboxResponse(expenses []domain.Expense, states []workflow.State) InboxResponse {
	items := make([]InboxItemResponse, len(expenses))
	for i := range expenses {
		awaiting := states[i].Awaiting
		if awaiting == nil {
			awaiting = []string{}
		}
		items[i] = InboxItemResponse{
			Expense:  ToExpenseResponse(&expenses[i]),
			State:    states[i].String(),
			Awaiting: awaiting,
		}
	}
	return InboxResponse{Items: items}
}
