package mapping

import (
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelApprovalRule converts a domain ApprovalRule to a model ApprovalRule
func ToModelApprovalRule(d domain.ApprovalRule) models.ApprovalRule {
	return models.ApprovalRule{
		RuleID:              d.RuleID,
		CompanyID:           d.CompanyID,
		RuleName:            d.RuleName,
		RuleType:            string(d.RuleType),
		Approvers:           nonNilStrings(d.Approvers),
		PercentageThreshold: toNullDecimal(d.PercentageThreshold),
		AmountThreshold:     toNullDecimal(d.AmountThreshold),
		SpecificApprovers:   nonNilStrings(d.SpecificApprovers),
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApprovalRule converts a model ApprovalRule to a domain ApprovalRule
func ToDomainApprovalRule(m models.ApprovalRule) domain.ApprovalRule {
	return domain.ApprovalRule{
		RuleID:              m.RuleID,
		CompanyID:           m.CompanyID,
		RuleName:            m.RuleName,
		RuleType:            domain.RuleType(m.RuleType),
		Approvers:           nonNilStrings(m.Approvers),
		PercentageThreshold: fromNullDecimal(m.PercentageThreshold),
		AmountThreshold:     fromNullDecimal(m.AmountThreshold),
		SpecificApprovers:   nonNilStrings(m.SpecificApprovers),
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApprovalRuleSlice converts a slice of model rules to domain rules
func ToDomainApprovalRuleSlice(ms []models.ApprovalRule) []domain.ApprovalRule {
	ds := make([]domain.ApprovalRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApprovalRule(m)
	}
	return ds
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	v := n.Decimal
	return &v
}

// nonNilStrings keeps empty text[] columns from surfacing as JSON null.
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
