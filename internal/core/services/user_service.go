package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	companyRepo portsrepo.CompanyReader
}

// NewUserService creates the company directory service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, companyRepo portsrepo.CompanyReader) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, companyRepo: companyRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, companyID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", req.Role))
	}

	now := s.Now()
	user := domain.User{
		UserID:    uuid.NewString(),
		CompanyID: companyID,
		FullName:  strings.TrimSpace(req.FullName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      req.Role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.ReportingManagerID != nil {
		if err := s.checkManager(ctx, companyID, user.UserID, *req.ReportingManagerID); err != nil {
			return nil, err
		}
		user.ReportingManagerID = req.ReportingManagerID
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, companyID, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError("user " + userID + " not found in company " + companyID)
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, apperrors.NewValidationError("full name cannot be empty")
		}
		user.FullName = name
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", *req.Role))
		}
		user.Role = *req.Role
	}
	if req.ReportingManagerID != nil {
		if *req.ReportingManagerID == "" {
			user.ReportingManagerID = nil
		} else {
			if err := s.checkManager(ctx, companyID, userID, *req.ReportingManagerID); err != nil {
				return nil, err
			}
			user.ReportingManagerID = req.ReportingManagerID
		}
	}
	user.LastUpdatedAt = s.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, companyID string, params dto.ListUsersParams) ([]domain.User, error) {
	var roles []domain.UserRole
	if params.Role != "" {
		roles = append(roles, domain.UserRole(params.Role))
	}
	return s.userRepo.ListUsersByCompany(ctx, companyID, roles...)
}

func (s *userService) ApproverPool(ctx context.Context, companyID, excludeUserID string) ([]string, error) {
	users, err := s.userRepo.ListUsersByCompany(ctx, companyID, domain.RoleManager, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	pool := make([]string, 0, len(users))
	for _, u := range users {
		if u.UserID != excludeUserID && u.Role.CanApprove() {
			pool = append(pool, u.UserID)
		}
	}
	return pool, nil
}

// checkManager verifies managerID can act as the reporting manager of userID.
func (s *userService) checkManager(ctx context.Context, companyID, userID, managerID string) error {
	if managerID == userID {
		return apperrors.NewValidationError("a user cannot report to themselves")
	}
	manager, err := s.userRepo.FindUserByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationErrorWithCause("reporting manager "+managerID+" does not exist", err)
		}
		return err
	}
	if manager.CompanyID != companyID {
		return apperrors.NewValidationError("reporting manager belongs to another company")
	}
	if !manager.Role.CanApprove() {
		return apperrors.NewValidationError("reporting manager must be a manager or admin")
	}
	return nil
}
