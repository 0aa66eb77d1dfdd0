package domain

// Company is the tenant that owns users, approval rules and expenses.
type Company struct {
	CompanyID           string `json:"companyID"`
	Name                string `json:"name"`
	CountryCode         string `json:"countryCode"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"` // Currency every expense is normalized to
	AuditFields
}
