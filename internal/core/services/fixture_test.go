package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/expense_approvals/internal/adapters/database/memory"
	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/core/services"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

// rateFunc adapts a function to portsrepo.RateSource.
type rateFunc func(ctx context.Context, from, to string) (decimal.Decimal, error)

func (f rateFunc) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	return f(ctx, from, to)
}

func failingRates() portsrepo.RateSource {
	return rateFunc(func(context.Context, string, string) (decimal.Decimal, error) {
		return decimal.Zero, apperrors.NewDependencyError("rate api down", nil)
	})
}

// fixture wires real services over the in-memory store.
type fixture struct {
	t         *testing.T
	store     *memory.Store
	repos     portsrepo.RepositoryProvider
	users     portssvc.UserSvcFacade
	rules     portssvc.ApprovalRuleSvcFacade
	expenses  portssvc.ExpenseSvcFacade
	approvals portssvc.ApprovalSvc
}

type fixtureOpts struct {
	rates       portsrepo.RateSource
	expenseRepo func(portsrepo.ExpenseRepositoryFacade) portsrepo.ExpenseRepositoryFacade
	approval    []services.ApprovalOption
}

// newFixture seeds company "co" (USD) with:
// emp (employee reporting to boss), loner (employee without manager), boss, m1..m5 (managers),
// cfo and admin (admins).
func newFixture(t *testing.T, opts fixtureOpts) *fixture {
	t.Helper()
	repos, store := memory.NewRepositoryProvider()
	ctx := context.Background()

	require.NoError(t, store.SaveCompany(ctx, domain.Company{CompanyID: "co", Name: "Acme", CountryCode: "US", DefaultCurrencyCode: "USD"}))
	boss := "boss"
	seed := []domain.User{
		{UserID: "boss", FullName: "Bea Boss", Role: domain.RoleManager},
		{UserID: "emp", FullName: "Eve Employee", Role: domain.RoleEmployee, ReportingManagerID: &boss},
		{UserID: "loner", FullName: "Lou Loner", Role: domain.RoleEmployee},
		{UserID: "m1", FullName: "Manager One", Role: domain.RoleManager},
		{UserID: "m2", FullName: "Manager Two", Role: domain.RoleManager},
		{UserID: "m3", FullName: "Manager Three", Role: domain.RoleManager},
		{UserID: "m4", FullName: "Manager Four", Role: domain.RoleManager},
		{UserID: "m5", FullName: "Manager Five", Role: domain.RoleManager},
		{UserID: "cfo", FullName: "Cleo CFO", Role: domain.RoleAdmin},
		{UserID: "admin", FullName: "Ada Admin", Role: domain.RoleAdmin},
	}
	for _, u := range seed {
		u.CompanyID = "co"
		u.Email = u.UserID + "@acme.test"
		require.NoError(t, store.SaveUser(ctx, u))
	}
	require.NoError(t, store.SaveExchangeRate(ctx, domain.ExchangeRate{
		ExchangeRateID: "r1", FromCurrencyCode: "EUR", ToCurrencyCode: "USD",
		Rate: decimal.RequireFromString("1.10"), DateEffective: t0.AddDate(0, 0, -1),
	}))

	rates := opts.rates
	if rates == nil {
		rates = store
	}
	expenseRepo := repos.ExpenseRepo
	if opts.expenseRepo != nil {
		expenseRepo = opts.expenseRepo(expenseRepo)
	}

	clock := func() time.Time { return t0 }
	normalizer := services.NewCurrencyNormalizer(rates, services.WithRateCache(32, time.Hour), services.WithNormalizerClock(clock))
	users := services.NewUserService(repos.UserRepo, repos.CompanyRepo)
	rules := services.NewApprovalRuleService(repos.ApprovalRuleRepo, repos.UserRepo)
	approvalOpts := append([]services.ApprovalOption{services.WithRetryBackoff(0), services.WithApprovalClock(clock)}, opts.approval...)

	return &fixture{
		t:         t,
		store:     store,
		repos:     repos,
		users:     users,
		rules:     rules,
		expenses:  services.NewExpenseService(expenseRepo, repos.UserRepo, repos.CompanyRepo, normalizer, services.WithExpenseClock(clock)),
		approvals: services.NewApprovalService(expenseRepo, repos.UserRepo, repos.CompanyRepo, rules, users, normalizer, approvalOpts...),
	}
}

func (f *fixture) submitExpense(employeeID, amount, currency string) *domain.Expense {
	f.t.Helper()
	e, err := f.expenses.CreateExpense(context.Background(), "co", dto.CreateExpenseRequest{
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: currency,
		Category:     domain.CategoryTravel,
		ExpenseDate:  t0,
		Description:  "Client visit",
		Submit:       true,
	}, employeeID)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) createRule(req dto.CreateApprovalRuleRequest) *domain.ApprovalRule {
	f.t.Helper()
	r, err := f.rules.CreateRule(context.Background(), "co", req, "admin")
	require.NoError(f.t, err)
	return r
}

func (f *fixture) act(expenseID, approverID string, action domain.ApprovalAction, comment string) (*portssvc.ActionResult, error) {
	return f.approvals.SubmitAction(context.Background(), portssvc.SubmitActionInput{
		ExpenseID:  expenseID,
		ApproverID: approverID,
		Action:     action,
		Comment:    comment,
	})
}

func (f *fixture) approve(expenseID, approverID string) *portssvc.ActionResult {
	f.t.Helper()
	res, err := f.act(expenseID, approverID, domain.ActionApproved, "")
	require.NoError(f.t, err)
	return res
}

func (f *fixture) stored(expenseID string) *domain.Expense {
	f.t.Helper()
	e, err := f.store.FindExpenseByID(context.Background(), expenseID)
	require.NoError(f.t, err)
	return e
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// barrierRepo, once armed with n, holds the next n reads until all n have happened, so n
// concurrent actions are guaranteed to start from the same version.
type barrierRepo struct {
	portsrepo.ExpenseRepositoryFacade
	mu      sync.Mutex
	pending int
	release chan struct{}
}

func (r *barrierRepo) arm(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = n
	r.release = make(chan struct{})
}

func (r *barrierRepo) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	e, err := r.ExpenseRepositoryFacade.FindExpenseByID(ctx, expenseID)
	r.mu.Lock()
	if r.pending == 0 {
		r.mu.Unlock()
		return e, err
	}
	r.pending--
	release := r.release
	if r.pending == 0 {
		close(release)
	}
	r.mu.Unlock()
	<-release
	return e, err
}

// conflictingRepo loses every conditional write.
type conflictingRepo struct {
	portsrepo.ExpenseRepositoryFacade
	mu     sync.Mutex
	writes int
}

func (r *conflictingRepo) UpdateExpenseIfVersion(ctx context.Context, expense domain.Expense, expectedVersion int64) error {
	r.mu.Lock()
	r.writes++
	r.mu.Unlock()
	return apperrors.NewConflictError("version moved")
}
