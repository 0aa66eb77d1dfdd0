package pgsql

import (
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		ApprovalRuleRepo: newPgxApprovalRuleRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		ExchangeRateRepo: NewPgxExchangeRateRepository(dbPool),
	}
}
