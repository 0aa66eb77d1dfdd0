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

type PgxApprovalRuleRepository struct {
	BaseRepository
}

func newPgxApprovalRuleRepository(pool *pgxpool.Pool) portsrepo.ApprovalRuleRepositoryFacade {
	return &PgxApprovalRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApprovalRuleRepositoryFacade = (*PgxApprovalRuleRepository)(nil)

const fullRuleSelectQuery = `
SELECT
	r.rule_id, r.company_id, r.rule_name, r.rule_type, r.approvers, r.percentage_threshold,
	r.amount_threshold, r.specific_approvers, r.is_active,
	r.created_at, r.created_by, r.last_updated_at, r.last_updated_by
FROM approval_rules r
`

const insertRuleQuery = `
	INSERT INTO approval_rules (
		rule_id, company_id, rule_name, rule_type, approvers, percentage_threshold,
		amount_threshold, specific_approvers, is_active,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

func (r *PgxApprovalRuleRepository) getRules(ctx context.Context, filterQuery string, args ...any) ([]domain.ApprovalRule, error) {
	rows, err := r.Pool.Query(ctx, fullRuleSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query approval rules", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ApprovalRule])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect approval rule rows", err)
	}
	return mapping.ToDomainApprovalRuleSlice(ms), nil
}

func insertRuleArgs(rule domain.ApprovalRule) []any {
	m := mapping.ToModelApprovalRule(rule)
	return []any{
		m.RuleID, m.CompanyID, m.RuleName, m.RuleType, m.Approvers, m.PercentageThreshold,
		m.AmountThreshold, m.SpecificApprovers, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxApprovalRuleRepository) SaveRule(ctx context.Context, rule domain.ApprovalRule) error {
	if _, err := r.Pool.Exec(ctx, insertRuleQuery, insertRuleArgs(rule)...); err != nil {
		return translateRuleError(err, rule.RuleID)
	}
	return nil
}

// SaveRules inserts the batch in one transaction.
func (r *PgxApprovalRuleRepository) SaveRules(ctx context.Context, rules []domain.ApprovalRule) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, rule := range rules {
		batch.Queue(insertRuleQuery, insertRuleArgs(rule)...)
	}
	results := tx.SendBatch(ctx, batch)
	for _, rule := range rules {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return translateRuleError(err, rule.RuleID)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import approval rules", err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxApprovalRuleRepository) UpdateRule(ctx context.Context, rule domain.ApprovalRule) error {
	m := mapping.ToModelApprovalRule(rule)
	query := `
		UPDATE approval_rules
		SET rule_name = $1, rule_type = $2, approvers = $3, percentage_threshold = $4,
		    amount_threshold = $5, specific_approvers = $6, is_active = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE rule_id = $10;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.RuleName, m.RuleType, m.Approvers, m.PercentageThreshold,
		m.AmountThreshold, m.SpecificApprovers, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy, m.RuleID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update approval rule "+rule.RuleID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("approval rule " + rule.RuleID + " not found")
	}
	return nil
}

func (r *PgxApprovalRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.ApprovalRule, error) {
	rules, err := r.getRules(ctx, `WHERE r.rule_id = $1;`, ruleID)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, apperrors.NewNotFoundError("approval rule " + ruleID + " not found")
	}
	return &rules[0], nil
}

func (r *PgxApprovalRuleRepository) ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	return r.getRules(ctx, `WHERE r.company_id = $1 ORDER BY r.created_at DESC, r.rule_id DESC;`, companyID)
}

func translateRuleError(err error, ruleID string) error {
	switch code, _ := pgErrorCode(err); code {
	case pgUniqueViolation:
		return apperrors.NewDuplicateError("approval rule ID " + ruleID + " already exists")
	case pgForeignKeyViolation:
		return apperrors.NewValidationErrorWithCause("approval rule references an unknown company", err)
	}
	return apperrors.NewAppError(500, "failed to save approval rule "+ruleID, err)
}
