package models

// User represents a member of a company as stored in the users table.
// ReportingManagerID is nullable.
type User struct {
	UserID             string  `db:"user_id"`
	CompanyID          string  `db:"company_id"`
	FullName           string  `db:"full_name"`
	Email              string  `db:"email"`
	Role               string  `db:"role"`
	ReportingManagerID *string `db:"reporting_manager_id"`
	AuditFields
}
