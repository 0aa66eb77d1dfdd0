// Package memory is an in-process storage collaborator. It honours the same contracts as the
// PostgreSQL adapters (conditional expense writes, keyset pagination, duplicate detection) and
// backs the dev server when STORAGE_DRIVER=memory as well as the service tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// Store keeps every entity in maps guarded by a single RWMutex. Values are copied in and out
// so callers can never mutate stored state.
type Store struct {
	mu        sync.RWMutex
	companies map[string]domain.Company
	users     map[string]domain.User
	emails    map[string]string // lower(email) -> user id
	rules     map[string]domain.ApprovalRule
	expenses  map[string]domain.Expense
	rates     []domain.ExchangeRate
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		companies: make(map[string]domain.Company),
		users:     make(map[string]domain.User),
		emails:    make(map[string]string),
		rules:     make(map[string]domain.ApprovalRule),
		expenses:  make(map[string]domain.Expense),
	}
}

// NewRepositoryProvider exposes a fresh store through every repository port.
func NewRepositoryProvider() (portsrepo.RepositoryProvider, *Store) {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		CompanyRepo:      s,
		UserRepo:         s,
		ApprovalRuleRepo: s,
		ExpenseRepo:      s,
		ExchangeRateRepo: s,
	}, s
}

var (
	_ portsrepo.CompanyRepositoryFacade      = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade         = (*Store)(nil)
	_ portsrepo.ApprovalRuleRepositoryFacade = (*Store)(nil)
	_ portsrepo.ExpenseRepositoryFacade      = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
	_ portsrepo.RateSource                   = (*Store)(nil)
)

// --- companies ---

func (s *Store) SaveCompany(ctx context.Context, company domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[company.CompanyID]; ok {
		return apperrors.NewDuplicateError("company ID " + company.CompanyID + " already exists")
	}
	s.companies[company.CompanyID] = company
	return nil
}

func (s *Store) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	company, ok := s.companies[companyID]
	if !ok {
		return nil, apperrors.NewNotFoundError("company " + companyID + " not found")
	}
	return &company, nil
}

// --- users ---

func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; ok {
		return apperrors.NewDuplicateError("user ID " + user.UserID + " already exists")
	}
	key := strings.ToLower(user.Email)
	if _, ok := s.emails[key]; ok {
		return apperrors.NewDuplicateError("a user with email " + user.Email + " already exists")
	}
	s.users[user.UserID] = cloneUser(user)
	s.emails[key] = user.UserID
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.users[user.UserID]
	if !ok {
		return apperrors.NewNotFoundError("user " + user.UserID + " not found")
	}
	oldKey, newKey := strings.ToLower(prev.Email), strings.ToLower(user.Email)
	if oldKey != newKey {
		if _, taken := s.emails[newKey]; taken {
			return apperrors.NewDuplicateError("a user with email " + user.Email + " already exists")
		}
		delete(s.emails, oldKey)
		s.emails[newKey] = user.UserID
	}
	s.users[user.UserID] = cloneUser(user)
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("user " + userID + " not found")
	}
	user = cloneUser(user)
	return &user, nil
}

// ListUsersByCompany returns the directory ordered by name then id.
func (s *Store) ListUsersByCompany(ctx context.Context, companyID string, roles ...domain.UserRole) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.User{}
	for _, u := range s.users {
		if u.CompanyID != companyID {
			continue
		}
		if len(roles) > 0 && !slices.Contains(roles, u.Role) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	slices.SortFunc(out, func(a, b domain.User) int {
		if c := strings.Compare(a.FullName, b.FullName); c != 0 {
			return c
		}
		return strings.Compare(a.UserID, b.UserID)
	})
	return out, nil
}

// --- approval rules ---

func (s *Store) SaveRule(ctx context.Context, rule domain.ApprovalRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[rule.RuleID]; ok {
		return apperrors.NewDuplicateError("approval rule ID " + rule.RuleID + " already exists")
	}
	s.rules[rule.RuleID] = cloneRule(rule)
	return nil
}

// SaveRules stores the batch only if none of the ids is taken.
func (s *Store) SaveRules(ctx context.Context, rules []domain.ApprovalRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rule := range rules {
		if _, ok := s.rules[rule.RuleID]; ok {
			return apperrors.NewDuplicateError("approval rule ID " + rule.RuleID + " already exists")
		}
	}
	for _, rule := range rules {
		s.rules[rule.RuleID] = cloneRule(rule)
	}
	return nil
}

func (s *Store) UpdateRule(ctx context.Context, rule domain.ApprovalRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[rule.RuleID]; !ok {
		return apperrors.NewNotFoundError("approval rule " + rule.RuleID + " not found")
	}
	s.rules[rule.RuleID] = cloneRule(rule)
	return nil
}

func (s *Store) FindRuleByID(ctx context.Context, ruleID string) (*domain.ApprovalRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rule, ok := s.rules[ruleID]
	if !ok {
		return nil, apperrors.NewNotFoundError("approval rule " + ruleID + " not found")
	}
	rule = cloneRule(rule)
	return &rule, nil
}

// ListRulesByCompany returns the company's rules, newest first.
func (s *Store) ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.ApprovalRule{}
	for _, r := range s.rules {
		if r.CompanyID == companyID {
			out = append(out, cloneRule(r))
		}
	}
	slices.SortFunc(out, func(a, b domain.ApprovalRule) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.RuleID, a.RuleID)
	})
	return out, nil
}

// --- expenses ---

func (s *Store) SaveExpense(ctx context.Context, expense domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[expense.ExpenseID]; ok {
		return apperrors.NewDuplicateError("expense ID " + expense.ExpenseID + " already exists")
	}
	stored := expense.Clone()
	stored.Version = 1
	s.expenses[expense.ExpenseID] = stored
	return nil
}

// UpdateExpenseIfVersion is the compare-and-swap every status change goes through.
func (s *Store) UpdateExpenseIfVersion(ctx context.Context, expense domain.Expense, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.expenses[expense.ExpenseID]
	if !ok {
		return apperrors.NewNotFoundError("expense " + expense.ExpenseID + " not found")
	}
	if current.Version != expectedVersion {
		return apperrors.NewConflictError(fmt.Sprintf(
			"expense %s is at version %d, expected %d", expense.ExpenseID, current.Version, expectedVersion))
	}
	stored := expense.Clone()
	stored.Version = expectedVersion + 1
	s.expenses[expense.ExpenseID] = stored
	return nil
}

func (s *Store) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expense, ok := s.expenses[expenseID]
	if !ok {
		return nil, apperrors.NewNotFoundError("expense " + expenseID + " not found")
	}
	expense = expense.Clone()
	return &expense, nil
}

// ListExpenses pages newest first on (created_at, expense_id), the same keyset the
// PostgreSQL adapter uses.
func (s *Store) ListExpenses(ctx context.Context, params portsrepo.ListExpensesParams) ([]domain.Expense, *string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	var cursor *domain.Expense
	if params.NextToken != nil && *params.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationErrorWithCause("invalid nextToken", err)
		}
		cursor = &domain.Expense{ExpenseID: id, AuditFields: domain.AuditFields{CreatedAt: createdAt}}
	}

	s.mu.RLock()
	matched := make([]domain.Expense, 0)
	for _, e := range s.expenses {
		if params.CompanyID != "" && e.CompanyID != params.CompanyID {
			continue
		}
		if params.EmployeeID != "" && e.EmployeeID != params.EmployeeID {
			continue
		}
		if params.Status != "" && e.Status != params.Status {
			continue
		}
		if cursor != nil && newestFirst(e, *cursor) <= 0 {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, newestFirst)

	var next *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExpenseID)
		next = &token
	}
	page := make([]domain.Expense, len(matched))
	for i, e := range matched {
		page[i] = e.Clone()
	}
	return page, next, nil
}

func (s *Store) SummarizeExpenses(ctx context.Context, companyID, employeeID string) (domain.ExpenseSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary domain.ExpenseSummary
	for _, e := range s.expenses {
		if e.CompanyID != companyID || (employeeID != "" && e.EmployeeID != employeeID) {
			continue
		}
		summary.Add(e)
	}
	return summary, nil
}

// newestFirst orders by created_at then expense_id, both descending.
func newestFirst(a, b domain.Expense) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ExpenseID, a.ExpenseID)
}

// --- exchange rates ---

func (s *Store) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	rate.FromCurrencyCode = strings.ToUpper(rate.FromCurrencyCode)
	rate.ToCurrencyCode = strings.ToUpper(rate.ToCurrencyCode)
	if rate.FromCurrencyCode == rate.ToCurrencyCode {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rates {
		if r.FromCurrencyCode == rate.FromCurrencyCode && r.ToCurrencyCode == rate.ToCurrencyCode && r.DateEffective.Equal(rate.DateEffective) {
			s.rates[i].Rate = rate.Rate
			s.rates[i].LastUpdatedAt = rate.LastUpdatedAt
			s.rates[i].LastUpdatedBy = rate.LastUpdatedBy
			return nil
		}
	}
	s.rates = append(s.rates, rate)
	return nil
}

// FindExchangeRate returns the latest direct rate, else the inverse of the latest opposite rate.
func (s *Store) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	from, to := strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.latest(from, to); ok {
		return &r, nil
	}
	if r, ok := s.latest(to, from); ok && !r.Rate.IsZero() {
		r.FromCurrencyCode, r.ToCurrencyCode = from, to
		r.Rate = decimal.NewFromInt(1).Div(r.Rate)
		return &r, nil
	}
	return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + from + " to " + to)
}

// Rate lets the store act as the normalizer's rate source.
func (s *Store) Rate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (decimal.Decimal, error) {
	r, err := s.FindExchangeRate(ctx, fromCurrencyCode, toCurrencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	return r.Rate, nil
}

func (s *Store) latest(from, to string) (domain.ExchangeRate, bool) {
	var best domain.ExchangeRate
	found := false
	for _, r := range s.rates {
		if r.FromCurrencyCode != from || r.ToCurrencyCode != to {
			continue
		}
		if !found || r.DateEffective.After(best.DateEffective) {
			best, found = r, true
		}
	}
	return best, found
}

func cloneUser(u domain.User) domain.User {
	if u.ReportingManagerID != nil {
		v := *u.ReportingManagerID
		u.ReportingManagerID = &v
	}
	return u
}

func cloneRule(r domain.ApprovalRule) domain.ApprovalRule {
	r.Approvers = slices.Clone(r.Approvers)
	r.SpecificApprovers = slices.Clone(r.SpecificApprovers)
	if r.PercentageThreshold != nil {
		v := *r.PercentageThreshold
		r.PercentageThreshold = &v
	}
	if r.AmountThreshold != nil {
		v := *r.AmountThreshold
		r.AmountThreshold = &v
	}
	return r
}
