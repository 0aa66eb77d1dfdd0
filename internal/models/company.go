package models

// Company is the row stored in the companies table.
type Company struct {
	CompanyID           string `db:"company_id"`
	Name                string `db:"name"`
	CountryCode         string `db:"country_code"`
	DefaultCurrencyCode string `db:"default_currency_code"`
	AuditFields
}
