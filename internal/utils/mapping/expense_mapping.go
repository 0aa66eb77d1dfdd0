package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense, encoding the ledger and the
// pinned policy as JSON.
func ToModelExpense(d domain.Expense) (models.Expense, error) {
	history := d.ApprovalHistory
	if history == nil {
		history = []domain.ApprovalEvent{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return models.Expense{}, fmt.Errorf("failed to encode approval history of expense %s: %w", d.ExpenseID, err)
	}

	var policyJSON []byte
	if d.Policy != nil {
		if policyJSON, err = json.Marshal(d.Policy); err != nil {
			return models.Expense{}, fmt.Errorf("failed to encode approval policy of expense %s: %w", d.ExpenseID, err)
		}
	}

	return models.Expense{
		ExpenseID:                   d.ExpenseID,
		CompanyID:                   d.CompanyID,
		EmployeeID:                  d.EmployeeID,
		EmployeeName:                d.EmployeeName,
		Amount:                      d.Amount,
		CurrencyCode:                d.CurrencyCode,
		ConvertedAmount:             toNullDecimal(d.ConvertedAmount),
		NeedsCurrencyReconciliation: d.NeedsCurrencyReconciliation,
		Category:                    string(d.Category),
		ExpenseDate:                 d.ExpenseDate,
		Description:                 d.Description,
		ReceiptURL:                  d.ReceiptURL,
		Status:                      string(d.Status),
		ApprovalHistory:             historyJSON,
		RejectionReason:             d.RejectionReason,
		Policy:                      policyJSON,
		Version:                     d.Version,
		AuditFields:                 ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) (domain.Expense, error) {
	history := []domain.ApprovalEvent{}
	if len(m.ApprovalHistory) > 0 {
		if err := json.Unmarshal(m.ApprovalHistory, &history); err != nil {
			return domain.Expense{}, fmt.Errorf("failed to decode approval history of expense %s: %w", m.ExpenseID, err)
		}
	}

	var policy *domain.ApprovalPolicy
	if len(m.Policy) > 0 && string(m.Policy) != "null" {
		policy = &domain.ApprovalPolicy{}
		if err := json.Unmarshal(m.Policy, policy); err != nil {
			return domain.Expense{}, fmt.Errorf("failed to decode approval policy of expense %s: %w", m.ExpenseID, err)
		}
	}

	return domain.Expense{
		ExpenseID:                   m.ExpenseID,
		CompanyID:                   m.CompanyID,
		EmployeeID:                  m.EmployeeID,
		EmployeeName:                m.EmployeeName,
		Amount:                      m.Amount,
		CurrencyCode:                m.CurrencyCode,
		ConvertedAmount:             fromNullDecimal(m.ConvertedAmount),
		NeedsCurrencyReconciliation: m.NeedsCurrencyReconciliation,
		Category:                    domain.ExpenseCategory(m.Category),
		ExpenseDate:                 m.ExpenseDate.UTC(),
		Description:                 m.Description,
		ReceiptURL:                  m.ReceiptURL,
		Status:                      domain.ExpenseStatus(m.Status),
		ApprovalHistory:             history,
		RejectionReason:             m.RejectionReason,
		Policy:                      policy,
		Version:                     m.Version,
		AuditFields:                 ToDomainAuditFields(m.AuditFields),
	}, nil
}
