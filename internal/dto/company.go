package dto

import (
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// CreateCompanyRequest defines data for setting up a company.
type CreateCompanyRequest struct {
	Name                string `json:"name" binding:"required"`
	CountryCode         string `json:"countryCode" binding:"required,iso3166_1_alpha2"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,iso4217"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID           string    `json:"companyID"`
	Name                string    `json:"name"`
	CountryCode         string    `json:"countryCode"`
	DefaultCurrencyCode string    `json:"defaultCurrencyCode"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy       string    `json:"lastUpdatedBy"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:           c.CompanyID,
		Name:                c.Name,
		CountryCode:         c.CountryCode,
		DefaultCurrencyCode: c.DefaultCurrencyCode,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
		LastUpdatedAt:       c.LastUpdatedAt,
		LastUpdatedBy:       c.LastUpdatedBy,
	}
}
