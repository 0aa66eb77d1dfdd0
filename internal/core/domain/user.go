package domain

// UserRole defines the role a user has inside their company.
type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// CanApprove reports whether users with this role may sit in an entitled approver set by default.
func (r UserRole) CanApprove() bool {
	return r == RoleManager || r == RoleAdmin
}

// User represents a member of a company.
type User struct {
	UserID             string   `json:"userID"`
	CompanyID          string   `json:"companyID"`
	FullName           string   `json:"fullName"`
	Email              string   `json:"email"`
	Role               UserRole `json:"role"`
	ReportingManagerID *string  `json:"reportingManagerID,omitempty"`
	AuditFields
}
