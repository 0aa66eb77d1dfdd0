package dto

import (
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// CreateUserRequest defines data for adding a user to a company directory.
type CreateUserRequest struct {
	FullName           string          `json:"fullName" binding:"required"`
	Email              string          `json:"email" binding:"required,email"`
	Role               domain.UserRole `json:"role" binding:"required,oneof=employee manager admin"`
	ReportingManagerID *string         `json:"reportingManagerID" binding:"omitempty,uuid"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FullName           *string          `json:"fullName"`
	Role               *domain.UserRole `json:"role" binding:"omitempty,oneof=employee manager admin"`
	ReportingManagerID *string          `json:"reportingManagerID" binding:"omitempty,uuid"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Role string `form:"role" binding:"omitempty,oneof=employee manager admin"`
}

// UserResponse defines data returned for a user.
type UserResponse struct {
	UserID             string          `json:"userID"`
	CompanyID          string          `json:"companyID"`
	FullName           string          `json:"fullName"`
	Email              string          `json:"email"`
	Role               domain.UserRole `json:"role"`
	ReportingManagerID *string         `json:"reportingManagerID,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:             u.UserID,
		CompanyID:          u.CompanyID,
		FullName:           u.FullName,
		Email:              u.Email,
		Role:               u.Role,
		ReportingManagerID: u.ReportingManagerID,
		CreatedAt:          u.CreatedAt,
		LastUpdatedAt:      u.LastUpdatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
