package services

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/dto"
)

// UserReaderSvc defines read operations for the company directory
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers returns the users of a company, optionally restricted to one role.
	ListUsers(ctx context.Context, companyID string, params dto.ListUsersParams) ([]domain.User, error)

	// ApproverPool returns the ids of every manager and admin of the company except excludeUserID.
	ApproverPool(ctx context.Context, companyID, excludeUserID string) ([]string, error)
}

// UserWriterSvc defines write operations for the company directory
type UserWriterSvc interface {
	CreateUser(ctx context.Context, companyID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	UpdateUser(ctx context.Context, companyID, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
