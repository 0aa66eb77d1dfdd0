package mapping

import (
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:             d.UserID,
		CompanyID:          d.CompanyID,
		FullName:           d.FullName,
		Email:              d.Email,
		Role:               string(d.Role),
		ReportingManagerID: d.ReportingManagerID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:             m.UserID,
		CompanyID:          m.CompanyID,
		FullName:           m.FullName,
		Email:              m.Email,
		Role:               domain.UserRole(m.Role),
		ReportingManagerID: m.ReportingManagerID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
