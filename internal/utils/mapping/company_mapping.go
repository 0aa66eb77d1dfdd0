package mapping

import (
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:           d.CompanyID,
		Name:                d.Name,
		CountryCode:         d.CountryCode,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:           m.CompanyID,
		Name:                m.Name,
		CountryCode:         m.CountryCode,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
