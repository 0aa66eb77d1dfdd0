package pgsql

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/models"
	"github.com/SscSPs/expense_approvals/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const fullUserSelectQuery = `
SELECT
	u.user_id, u.company_id, u.full_name, u.email, u.role, u.reporting_manager_id,
	u.created_at, u.created_by, u.last_updated_at, u.last_updated_by
FROM users u
`

// getUsers runs the select with a filter clause and maps every row.
func (r *PgxUserRepository) getUsers(ctx context.Context, filterQuery string, args ...any) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, fullUserSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect user rows", err)
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (
			user_id, company_id, full_name, email, role, reporting_manager_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.CompanyID, m.FullName, m.Email, m.Role, m.ReportingManagerID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateUserError(err, user)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET full_name = $1, email = $2, role = $3, reporting_manager_id = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $7;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.FullName, m.Email, m.Role, m.ReportingManagerID, m.LastUpdatedAt, m.LastUpdatedBy, m.UserID,
	)
	if err != nil {
		return translateUserError(err, user)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + user.UserID + " not found")
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	users, err := r.getUsers(ctx, `WHERE u.user_id = $1;`, userID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFoundError("user " + userID + " not found")
	}
	return &users[0], nil
}

func (r *PgxUserRepository) ListUsersByCompany(ctx context.Context, companyID string, roles ...domain.UserRole) ([]domain.User, error) {
	if len(roles) == 0 {
		return r.getUsers(ctx, `WHERE u.company_id = $1 ORDER BY u.full_name, u.user_id;`, companyID)
	}
	roleNames := make([]string, len(roles))
	for i, role := range roles {
		roleNames[i] = string(role)
	}
	return r.getUsers(ctx, `WHERE u.company_id = $1 AND u.role = ANY($2) ORDER BY u.full_name, u.user_id;`, companyID, roleNames)
}

func translateUserError(err error, user domain.User) error {
	code, constraint := pgErrorCode(err)
	switch {
	case code == pgUniqueViolation && constraint == "users_email_key":
		return apperrors.NewDuplicateError("a user with email " + user.Email + " already exists")
	case code == pgUniqueViolation:
		return apperrors.NewDuplicateError("user ID " + user.UserID + " already exists")
	case code == pgForeignKeyViolation:
		return apperrors.NewValidationErrorWithCause("user references an unknown company or manager", err)
	}
	return apperrors.NewAppError(500, "failed to save user "+user.UserID, err)
}
