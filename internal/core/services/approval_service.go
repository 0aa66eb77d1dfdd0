package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
	"github.com/SscSPs/expense_approvals/internal/utils/pagination"
)

const (
	defaultMaxRetries   = 5
	defaultRetryBackoff = 10 * time.Millisecond
)

type approvalService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	userRepo     portsrepo.UserReader
	companyRepo  portsrepo.CompanyReader
	resolver     portssvc.RuleResolverSvc
	directory    portssvc.UserReaderSvc
	normalizer   portssvc.CurrencyNormalizerSvc
	maxRetries   int
	retryBackoff time.Duration
}

// ApprovalOption is a functional option for configuring the approval service
type ApprovalOption func(*approvalService)

// WithMaxRetries bounds how many times a version conflict is retried before surfacing.
func WithMaxRetries(n int) ApprovalOption {
	return func(s *approvalService) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithRetryBackoff sets the base back-off between conflict retries. Zero disables waiting.
func WithRetryBackoff(d time.Duration) ApprovalOption {
	return func(s *approvalService) {
		s.retryBackoff = d
	}
}

// WithApprovalClock replaces the service clock.
func WithApprovalClock(now func() time.Time) ApprovalOption {
	return func(s *approvalService) {
		s.now = now
	}
}

// NewApprovalService creates the service behind SubmitAction.
func NewApprovalService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	userRepo portsrepo.UserReader,
	companyRepo portsrepo.CompanyReader,
	resolver portssvc.RuleResolverSvc,
	directory portssvc.UserReaderSvc,
	normalizer portssvc.CurrencyNormalizerSvc,
	options ...ApprovalOption,
) portssvc.ApprovalSvc {
	s := &approvalService{
		expenseRepo:  expenseRepo,
		userRepo:     userRepo,
		companyRepo:  companyRepo,
		resolver:     resolver,
		directory:    directory,
		normalizer:   normalizer,
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.ApprovalSvc = (*approvalService)(nil)

// errStaleVersion marks an attempt whose conditional write lost a race.
var errStaleVersion = errors.New("stale expense version")

// SubmitAction records an approver's decision. Each attempt reads the expense, pins a policy
// if this is the first action, appends the event and writes back conditioned on the version
// it read. A lost race restarts the attempt from scratch.
func (s *approvalService) SubmitAction(ctx context.Context, in portssvc.SubmitActionInput) (*portssvc.ActionResult, error) {
	in.ExpenseID = strings.TrimSpace(in.ExpenseID)
	in.ApproverID = strings.TrimSpace(in.ApproverID)
	if in.ExpenseID == "" {
		return nil, apperrors.NewValidationError("expense id is required")
	}

	logger := s.GetLogger(ctx).With(
		slog.String("expense_id", in.ExpenseID),
		slog.String("approver_id", in.ApproverID),
		slog.String("action", string(in.Action)),
	)

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("submit action abandoned: %w", err)
		}
		if attempt > 0 {
			if err := s.backoff(ctx, attempt); err != nil {
				return nil, fmt.Errorf("submit action abandoned: %w", err)
			}
		}

		res, err := s.attempt(ctx, in, attempt > 0)
		if err == nil {
			logger.Info("Approval action processed",
				slog.String("status", string(res.State.Status)),
				slog.String("state", res.State.String()),
				slog.Bool("duplicate", res.Duplicate),
				slog.Bool("reconciled", res.Reconciled),
				slog.Int("attempt", attempt+1))
			return res, nil
		}
		if !errors.Is(err, errStaleVersion) {
			return nil, err
		}
		lastErr = err
		logger.Debug("Expense version changed underneath, retrying", slog.Int("attempt", attempt+1))
	}

	logger.Warn("Approval action gave up after repeated version conflicts", slog.Int("retries", s.maxRetries))
	return nil, apperrors.NewAppError(http.StatusConflict,
		fmt.Sprintf("expense %s is being modified concurrently, retry the action", in.ExpenseID), lastErr)
}

func (s *approvalService) attempt(ctx context.Context, in portssvc.SubmitActionInput, retried bool) (*portssvc.ActionResult, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, in.ExpenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationErrorWithCause("expense "+in.ExpenseID+" does not exist", err)
		}
		return nil, apperrors.NewDependencyError("failed to load expense "+in.ExpenseID, err)
	}
	if expense.Status == domain.StatusDraft {
		return nil, apperrors.NewValidationError("expense " + in.ExpenseID + " has not been submitted for approval")
	}

	candidate := expense.Clone()
	now := s.Now()
	if candidate.Policy == nil && candidate.Status == domain.StatusPending {
		if err := s.pin(ctx, &candidate, now); err != nil {
			return nil, err
		}
	}

	ev := domain.ApprovalEvent{
		ApproverID:   in.ApproverID,
		ApproverName: s.approverName(ctx, in),
		Action:       in.Action,
		Comment:      strings.TrimSpace(in.Comment),
	}
	next, st, err := workflow.Append(candidate, ev, now)
	switch {
	case errors.Is(err, apperrors.ErrDuplicateAction):
		return &portssvc.ActionResult{Expense: expense, State: st, Duplicate: true}, nil
	case errors.Is(err, apperrors.ErrConflict) && retried && outcomeOf(in.Action) == expense.Status:
		// Another writer finalized the expense the way this action pushed it.
		return &portssvc.ActionResult{Expense: expense, State: st, Reconciled: true}, nil
	case err != nil:
		return nil, err
	}

	next.LastUpdatedAt = now
	next.LastUpdatedBy = in.ApproverID
	if err := s.expenseRepo.UpdateExpenseIfVersion(ctx, next, expense.Version); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %w", errStaleVersion, err)
		}
		return nil, apperrors.NewDependencyError("failed to persist approval action", err)
	}
	next.Version = expense.Version + 1
	if expense.Policy == nil {
		s.LogInfo(ctx, "Approval policy pinned",
			slog.String("expense_id", next.ExpenseID),
			slog.String("rule_type", string(next.Policy.RuleType)),
			slog.String("rule_name", next.Policy.RuleName),
			slog.Int("entitled", len(next.Policy.EntitledApprovers)))
	}
	return &portssvc.ActionResult{Expense: &next, State: st}, nil
}

// Inbox walks the company's pending expenses and keeps those whose derived state is waiting
// on approverID. An expense with no pinned policy is judged by a preview pin that is never
// persisted.
func (s *approvalService) Inbox(ctx context.Context, companyID, approverID string) ([]portssvc.InboxItem, error) {
	approverID = strings.TrimSpace(approverID)
	if approverID == "" {
		return nil, apperrors.NewValidationError("approver id is required")
	}

	items := make([]portssvc.InboxItem, 0)
	params := portsrepo.ListExpensesParams{CompanyID: companyID, Status: domain.StatusPending, Limit: pagination.MaxLimit}
	for {
		page, next, err := s.expenseRepo.ListExpenses(ctx, params)
		if err != nil {
			return nil, apperrors.NewDependencyError("failed to list pending expenses", err)
		}
		for _, e := range page {
			if e.EmployeeID == approverID {
				continue
			}
			if e.Policy == nil {
				if err := s.pin(ctx, &e, s.Now()); err != nil {
					s.LogWarn(ctx, "Skipping expense whose policy could not be previewed",
						slog.String("expense_id", e.ExpenseID), slog.String("error", err.Error()))
					continue
				}
			}
			st := workflow.Evaluate(e.Policy, e.ApprovalHistory)
			if st.Status == domain.StatusPending && slices.Contains(st.Awaiting, approverID) {
				items = append(items, portssvc.InboxItem{Expense: e, State: st})
			}
		}
		if next == nil {
			break
		}
		params.NextToken = next
	}

	s.LogDebug(ctx, "Approval inbox computed",
		slog.String("company_id", companyID), slog.String("approver_id", approverID), slog.Int("items", len(items)))
	return items, nil
}

// pin resolves the governing rule and snapshots it into the expense. The amount is
// normalized first when it was never converted or is awaiting reconciliation.
func (s *approvalService) pin(ctx context.Context, expense *domain.Expense, now time.Time) error {
	if expense.ConvertedAmount == nil || expense.NeedsCurrencyReconciliation {
		company, err := s.companyRepo.FindCompanyByID(ctx, expense.CompanyID)
		if err != nil {
			return apperrors.NewDependencyError("failed to load company "+expense.CompanyID, err)
		}
		normalizeInto(ctx, &s.BaseService, s.normalizer, expense, company.DefaultCurrencyCode)
	}

	rule, err := s.resolver.Resolve(ctx, expense.CompanyID, *expense.ConvertedAmount)
	if err != nil {
		return apperrors.NewDependencyError("failed to resolve approval rule", err)
	}

	var policy domain.ApprovalPolicy
	if rule != nil {
		var pool []string
		if (rule.RuleType == domain.RulePercentage || rule.RuleType == domain.RuleHybrid) && len(rule.Approvers) == 0 {
			if pool, err = s.directory.ApproverPool(ctx, expense.CompanyID, expense.EmployeeID); err != nil {
				return apperrors.NewDependencyError("failed to load approver pool", err)
			}
		}
		policy = workflow.PinRule(*rule, expense.EmployeeID, pool, now)
	}
	if rule == nil || !workflow.HasActors(policy) {
		// A rule naming nobody but the employee falls back to the reporting manager.
		approvers, err := s.defaultApprovers(ctx, expense)
		if err != nil {
			return err
		}
		policy = workflow.PinDefault(approvers, now)
	}
	expense.Policy = &policy
	return nil
}

// defaultApprovers is the employee's reporting manager, or the company admins when the
// employee has none.
func (s *approvalService) defaultApprovers(ctx context.Context, expense *domain.Expense) ([]string, error) {
	employee, err := s.userRepo.FindUserByID(ctx, expense.EmployeeID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewDependencyError("failed to load employee "+expense.EmployeeID, err)
	}
	if employee != nil && employee.ReportingManagerID != nil && *employee.ReportingManagerID != "" {
		return []string{*employee.ReportingManagerID}, nil
	}

	admins, err := s.userRepo.ListUsersByCompany(ctx, expense.CompanyID, domain.RoleAdmin)
	if err != nil {
		return nil, apperrors.NewDependencyError("failed to load company admins", err)
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		if a.UserID != expense.EmployeeID {
			ids = append(ids, a.UserID)
		}
	}
	return ids, nil
}

func (s *approvalService) approverName(ctx context.Context, in portssvc.SubmitActionInput) string {
	if name := strings.TrimSpace(in.ApproverName); name != "" {
		return name
	}
	if in.ApproverID == "" {
		return ""
	}
	if u, err := s.userRepo.FindUserByID(ctx, in.ApproverID); err == nil {
		return u.FullName
	}
	return in.ApproverID
}

// backoff sleeps base * 2^(attempt-1) with full jitter, honouring cancellation.
func (s *approvalService) backoff(ctx context.Context, attempt int) error {
	if s.retryBackoff <= 0 {
		return nil
	}
	ceiling := s.retryBackoff << min(attempt-1, 6)
	wait := time.Duration(rand.Int64N(int64(ceiling)) + 1)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func outcomeOf(action domain.ApprovalAction) domain.ExpenseStatus {
	if action == domain.ActionRejected {
		return domain.StatusRejected
	}
	return domain.StatusApproved
}
