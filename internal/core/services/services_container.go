package services

import (
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rates portsrepo.RateSource) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Company = NewCompanyService(repos.CompanyRepo)
	container.User = NewUserService(repos.UserRepo, repos.CompanyRepo)
	container.ApprovalRule = NewApprovalRuleService(repos.ApprovalRuleRepo, repos.UserRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	// The normalizer is shared so expense creation and first-action pinning hit the same memo.
	container.Normalizer = NewCurrencyNormalizer(rates, WithRateCache(cfg.RateCacheSize, cfg.RateCacheTTL))

	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.UserRepo, repos.CompanyRepo, container.Normalizer)
	container.Approval = NewApprovalService(
		repos.ExpenseRepo,
		repos.UserRepo,
		repos.CompanyRepo,
		container.ApprovalRule,
		container.User,
		container.Normalizer,
		WithMaxRetries(cfg.ApprovalMaxRetries),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CompanySvcFacade      = (*companyService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.ApprovalRuleSvcFacade = (*approvalRuleService)(nil)
	_ portssvc.ExpenseSvcFacade      = (*expenseService)(nil)
	_ portssvc.ApprovalSvc           = (*approvalService)(nil)
)
