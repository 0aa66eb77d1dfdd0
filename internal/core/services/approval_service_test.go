package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/core/services"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func managersRule(name string, threshold *decimal.Decimal) dto.CreateApprovalRuleRequest {
	return dto.CreateApprovalRuleRequest{
		RuleName:            name,
		RuleType:            domain.RulePercentage,
		Approvers:           []string{"m1", "m2", "m3", "m4", "m5"},
		PercentageThreshold: dec("60"),
		AmountThreshold:     threshold,
	}
}

func TestSubmitAction_DefaultsToReportingManager(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	e := f.submitExpense("emp", "120", "USD")

	_, err := f.act(e.ExpenseID, "m1", domain.ActionApproved, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	res := f.approve(e.ExpenseID, "boss")
	assert.Equal(t, domain.StatusApproved, res.State.Status)
	require.NotNil(t, res.Expense.Policy)
	assert.Equal(t, domain.RuleReportingManager, res.Expense.Policy.RuleType)
	assert.Nil(t, res.Expense.Policy.RuleID)
	assert.Equal(t, []string{"boss"}, res.Expense.Policy.EntitledApprovers)
	assert.Equal(t, domain.StatusApproved, f.stored(e.ExpenseID).Status)
}

func TestSubmitAction_NoManagerFallsBackToAdmins(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	e := f.submitExpense("loner", "80", "USD")

	res := f.approve(e.ExpenseID, "cfo")

	assert.Equal(t, domain.StatusApproved, res.State.Status)
	assert.ElementsMatch(t, []string{"cfo", "admin"}, res.Expense.Policy.EntitledApprovers)
}

func TestSubmitAction_SequentialChain(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.createRule(dto.CreateApprovalRuleRequest{
		RuleName:  "Three managers",
		RuleType:  domain.RuleSequential,
		Approvers: []string{"m1", "m2", "m3"},
	})
	e := f.submitExpense("emp", "300", "USD")

	_, err := f.act(e.ExpenseID, "m2", domain.ActionApproved, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	res := f.approve(e.ExpenseID, "m1")
	assert.Equal(t, "awaiting_step[1]", res.State.String())
	assert.Equal(t, []string{"m2"}, res.State.Awaiting)

	res = f.approve(e.ExpenseID, "m2")
	assert.Equal(t, "awaiting_step[2]", res.State.String())

	res = f.approve(e.ExpenseID, "m3")
	assert.Equal(t, domain.StatusApproved, res.State.Status)

	stored := f.stored(e.ExpenseID)
	require.Len(t, stored.ApprovalHistory, 3)
	for i, ev := range stored.ApprovalHistory {
		assert.Equal(t, i, ev.Step)
	}
	assert.Equal(t, int64(4), stored.Version)
}

func TestSubmitAction_PercentageClosesAtThreshold(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.createRule(managersRule("Managers 60%", nil))
	e := f.submitExpense("emp", "500", "USD")

	f.approve(e.ExpenseID, "m1")
	res := f.approve(e.ExpenseID, "m2")
	assert.Equal(t, domain.StatusPending, res.State.Status)
	assert.Equal(t, 2, res.State.Approvals)

	res = f.approve(e.ExpenseID, "m3")
	assert.Equal(t, domain.StatusApproved, res.State.Status)

	_, err := f.act(e.ExpenseID, "m4", domain.ActionApproved, "")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Len(t, f.stored(e.ExpenseID).ApprovalHistory, 3)
}

func TestSubmitAction_HybridSpecificApproverAndRejection(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	req := managersRule("60% or CFO", nil)
	req.RuleType = domain.RuleHybrid
	req.SpecificApprovers = []string{"cfo"}
	f.createRule(req)

	approved := f.submitExpense("emp", "200", "USD")
	res := f.approve(approved.ExpenseID, "cfo")
	assert.Equal(t, domain.StatusApproved, res.State.Status)

	rejected := f.submitExpense("emp", "200", "USD")
	res, err := f.act(rejected.ExpenseID, "m2", domain.ActionRejected, "duplicate claim")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, res.State.Status)

	stored := f.stored(rejected.ExpenseID)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "duplicate claim", *stored.RejectionReason)
}

func TestSubmitAction_RejectionNeedsComment(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	e := f.submitExpense("emp", "50", "USD")

	_, err := f.act(e.ExpenseID, "boss", domain.ActionRejected, "   ")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	stored := f.stored(e.ExpenseID)
	assert.Empty(t, stored.ApprovalHistory)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestSubmitAction_RepeatedActionIsIdempotent(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.createRule(managersRule("Managers 60%", nil))
	e := f.submitExpense("emp", "500", "USD")

	first := f.approve(e.ExpenseID, "m1")
	assert.False(t, first.Duplicate)

	again := f.approve(e.ExpenseID, "m1")
	assert.True(t, again.Duplicate)
	assert.Equal(t, first.State, again.State)

	stored := f.stored(e.ExpenseID)
	assert.Len(t, stored.ApprovalHistory, 1)
	assert.Equal(t, int64(2), stored.Version)
}

func TestSubmitAction_ResolvesRuleByConvertedAmount(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.createRule(dto.CreateApprovalRuleRequest{
		RuleName:  "Small",
		RuleType:  domain.RuleSequential,
		Approvers: []string{"m1"},
	})
	f.createRule(dto.CreateApprovalRuleRequest{
		RuleName:          "Large",
		RuleType:          domain.RuleSpecificApprover,
		SpecificApprovers: []string{"cfo"},
		AmountThreshold:   dec("1000"),
	})

	tests := []struct {
		name     string
		amount   string
		currency string
		approver string
		want     string
	}{
		{"below threshold", "500", "USD", "m1", "Small"},
		{"at threshold", "1000", "USD", "cfo", "Large"},
		{"converted above threshold", "950", "EUR", "cfo", "Large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := f.submitExpense("emp", tt.amount, tt.currency)
			res := f.approve(e.ExpenseID, tt.approver)
			assert.Equal(t, tt.want, res.Expense.Policy.RuleName)
			assert.Equal(t, domain.StatusApproved, res.State.Status)
		})
	}

	eur := f.submitExpense("emp", "950", "EUR")
	require.NotNil(t, eur.ConvertedAmount)
	assert.Equal(t, "1045", eur.ConvertedAmount.String())
}

func TestSubmitAction_PinnedPolicyIgnoresRuleEdits(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	rule := f.createRule(dto.CreateApprovalRuleRequest{
		RuleName:  "Chain",
		RuleType:  domain.RuleSequential,
		Approvers: []string{"m1", "m2"},
	})
	inFlight := f.submitExpense("emp", "400", "USD")
	f.approve(inFlight.ExpenseID, "m1")

	_, err := f.rules.UpdateRule(context.Background(), "co", rule.RuleID, dto.UpdateApprovalRuleRequest{Approvers: []string{"m3"}}, "admin")
	require.NoError(t, err)

	res := f.approve(inFlight.ExpenseID, "m2")
	assert.Equal(t, domain.StatusApproved, res.State.Status)
	assert.Equal(t, []string{"m1", "m2"}, res.Expense.Policy.Approvers)

	fresh := f.submitExpense("emp", "400", "USD")
	_, err = f.act(fresh.ExpenseID, "m1", domain.ActionApproved, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	res = f.approve(fresh.ExpenseID, "m3")
	assert.Equal(t, domain.StatusApproved, res.State.Status)
}

func TestSubmitAction_RateOutageDegradesConversion(t *testing.T) {
	f := newFixture(t, fixtureOpts{rates: failingRates()})

	eur := f.submitExpense("emp", "100", "EUR")
	assert.True(t, eur.NeedsCurrencyReconciliation)
	require.NotNil(t, eur.ConvertedAmount)
	assert.True(t, eur.ConvertedAmount.Equal(decimal.NewFromInt(100)))

	usd := f.submitExpense("emp", "100", "USD")
	assert.False(t, usd.NeedsCurrencyReconciliation)

	// The flagged expense still pins a policy and can be decided.
	res := f.approve(eur.ExpenseID, "boss")
	assert.Equal(t, domain.StatusApproved, res.State.Status)
	assert.True(t, res.Expense.NeedsCurrencyReconciliation)
}

func TestSubmitAction_SubmitterStruckFromSequentialChain(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.createRule(dto.CreateApprovalRuleRequest{RuleName: "M1 then M2", RuleType: domain.RuleSequential, Approvers: []string{"m1", "m2"}})
	e := f.submitExpense("m1", "80", "USD")

	_, err := f.act(e.ExpenseID, "m1", domain.ActionApproved, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	res := f.approve(e.ExpenseID, "m2")
	assert.Equal(t, domain.StatusApproved, res.State.Status)
	assert.Equal(t, []string{"m2"}, res.Expense.Policy.Approvers)
	assert.Equal(t, domain.StatusApproved, f.stored(e.ExpenseID).Status)
}

func TestSubmitAction_SubmitterStruckFromPercentageSet(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.createRule(managersRule("Managers 60%", nil))
	e := f.submitExpense("m1", "80", "USD")

	f.approve(e.ExpenseID, "m2")
	res := f.approve(e.ExpenseID, "m3")
	require.Equal(t, domain.StatusPending, res.State.Status)
	assert.ElementsMatch(t, []string{"m2", "m3", "m4", "m5"}, res.Expense.Policy.EntitledApprovers)
	assert.ElementsMatch(t, []string{"m4", "m5"}, res.State.Awaiting)

	res = f.approve(e.ExpenseID, "m4")
	assert.Equal(t, domain.StatusApproved, res.State.Status)
}

func TestSubmitAction_RuleNamingOnlySubmitterFallsBackToDefault(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.createRule(dto.CreateApprovalRuleRequest{RuleName: "CFO signs", RuleType: domain.RuleSpecificApprover, SpecificApprovers: []string{"cfo"}})
	e := f.submitExpense("cfo", "80", "USD")

	res := f.approve(e.ExpenseID, "admin")

	assert.Equal(t, domain.StatusApproved, res.State.Status)
	assert.Equal(t, domain.RuleReportingManager, res.Expense.Policy.RuleType)
	assert.Equal(t, []string{"admin"}, res.Expense.Policy.EntitledApprovers)
}

func TestSubmitAction_RefusedFirstActionPinsNothing(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	e := f.submitExpense("emp", "120", "USD")

	_, err := f.act(e.ExpenseID, "m1", domain.ActionApproved, "")
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	stored := f.stored(e.ExpenseID)
	assert.Nil(t, stored.Policy)
	assert.Empty(t, stored.ApprovalHistory)
	assert.Equal(t, int64(1), stored.Version)
}

func TestInbox_ListsOnlyExpensesWaitingOnCaller(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.createRule(dto.CreateApprovalRuleRequest{RuleName: "Chain", RuleType: domain.RuleSequential, Approvers: []string{"m1", "m2", "m3"}})
	ctx := context.Background()

	untouched := f.submitExpense("emp", "100", "USD")
	atStepTwo := f.submitExpense("emp", "100", "USD")
	f.approve(atStepTwo.ExpenseID, "m1")
	byM1 := f.submitExpense("m1", "100", "USD")
	rejected := f.submitExpense("emp", "100", "USD")
	_, err := f.act(rejected.ExpenseID, "m1", domain.ActionRejected, "no receipt")
	require.NoError(t, err)
	_, err = f.expenses.CreateExpense(ctx, "co", dto.CreateExpenseRequest{
		Amount: decimal.NewFromInt(10), CurrencyCode: "USD", Category: domain.CategoryOther, ExpenseDate: t0,
	}, "emp")
	require.NoError(t, err)

	inboxIDs := func(approverID string) []string {
		items, err := f.approvals.Inbox(ctx, "co", approverID)
		require.NoError(t, err)
		ids := make([]string, 0, len(items))
		for _, item := range items {
			assert.Contains(t, item.State.Awaiting, approverID)
			ids = append(ids, item.Expense.ExpenseID)
		}
		return ids
	}

	assert.ElementsMatch(t, []string{untouched.ExpenseID}, inboxIDs("m1"))
	assert.ElementsMatch(t, []string{atStepTwo.ExpenseID, byM1.ExpenseID}, inboxIDs("m2"))
	assert.Empty(t, inboxIDs("m3"))
	assert.Empty(t, inboxIDs("emp"))

	stored := f.stored(untouched.ExpenseID)
	assert.Nil(t, stored.Policy)
	assert.Equal(t, int64(1), stored.Version)

	_, err = f.approvals.Inbox(ctx, "co", " ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInbox_PercentageListsEveryoneYetToVote(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	f.createRule(managersRule("Managers 60%", nil))
	e := f.submitExpense("emp", "500", "USD")
	f.approve(e.ExpenseID, "m1")

	for _, id := range []string{"m2", "m3", "m4", "m5"} {
		items, err := f.approvals.Inbox(context.Background(), "co", id)
		require.NoError(t, err)
		require.Len(t, items, 1, id)
		assert.Equal(t, e.ExpenseID, items[0].Expense.ExpenseID)
	}
	items, err := f.approvals.Inbox(context.Background(), "co", "m1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReconcileCurrency_AfterRatesRecover(t *testing.T) {
	var down atomic.Bool
	down.Store(true)
	var f *fixture
	rates := rateFunc(func(ctx context.Context, from, to string) (decimal.Decimal, error) {
		if down.Load() {
			return decimal.Zero, apperrors.NewDependencyError("rate api down", nil)
		}
		return f.store.Rate(ctx, from, to)
	})
	f = newFixture(t, fixtureOpts{rates: rates})

	e := f.submitExpense("emp", "100", "EUR")
	require.True(t, e.NeedsCurrencyReconciliation)

	_, err := f.expenses.ReconcileCurrency(context.Background(), "co", e.ExpenseID, "emp")
	assert.ErrorIs(t, err, apperrors.ErrDependency)

	_, err = f.expenses.ReconcileCurrency(context.Background(), "co", e.ExpenseID, "m1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	down.Store(false)
	fixed, err := f.expenses.ReconcileCurrency(context.Background(), "co", e.ExpenseID, "admin")
	require.NoError(t, err)
	assert.False(t, fixed.NeedsCurrencyReconciliation)
	assert.True(t, fixed.ConvertedAmount.Equal(decimal.RequireFromString("110.00")))
	assert.Equal(t, int64(2), f.stored(e.ExpenseID).Version)
}

func TestReconcileCurrency_RefusedOnceDecided(t *testing.T) {
	var down atomic.Bool
	down.Store(true)
	var f *fixture
	rates := rateFunc(func(ctx context.Context, from, to string) (decimal.Decimal, error) {
		if down.Load() {
			return decimal.Zero, apperrors.NewDependencyError("rate api down", nil)
		}
		return f.store.Rate(ctx, from, to)
	})
	f = newFixture(t, fixtureOpts{rates: rates})

	e := f.submitExpense("emp", "100", "EUR")
	res := f.approve(e.ExpenseID, "boss")
	require.Equal(t, domain.StatusApproved, res.Expense.Status)
	require.True(t, res.Expense.NeedsCurrencyReconciliation)

	down.Store(false)
	_, err := f.expenses.ReconcileCurrency(context.Background(), "co", e.ExpenseID, "emp")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	stored := f.stored(e.ExpenseID)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, int64(2), stored.Version)
	assert.True(t, stored.ConvertedAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, stored.NeedsCurrencyReconciliation)
}

func TestSubmitAction_ConcurrentApprovalsCloseOnce(t *testing.T) {
	var barrier *barrierRepo
	f := newFixture(t, fixtureOpts{
		expenseRepo: func(inner portsrepo.ExpenseRepositoryFacade) portsrepo.ExpenseRepositoryFacade {
			barrier = &barrierRepo{ExpenseRepositoryFacade: inner}
			return barrier
		},
	})
	f.createRule(managersRule("Managers 60%", nil))
	e := f.submitExpense("emp", "500", "USD")
	f.approve(e.ExpenseID, "m1")
	f.approve(e.ExpenseID, "m2")

	barrier.arm(2)
	results := make([]*portssvc.ActionResult, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, approver := range []string{"m3", "m4"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = f.act(e.ExpenseID, approver, domain.ActionApproved, "")
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	reconciled := 0
	for _, res := range results {
		assert.Equal(t, domain.StatusApproved, res.State.Status)
		if res.Reconciled {
			reconciled++
		}
	}
	assert.Equal(t, 1, reconciled)

	stored := f.stored(e.ExpenseID)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Len(t, stored.ApprovalHistory, 3)
	assert.Equal(t, int64(4), stored.Version)
}

func TestSubmitAction_ConcurrentApproveAndReject(t *testing.T) {
	var barrier *barrierRepo
	f := newFixture(t, fixtureOpts{
		expenseRepo: func(inner portsrepo.ExpenseRepositoryFacade) portsrepo.ExpenseRepositoryFacade {
			barrier = &barrierRepo{ExpenseRepositoryFacade: inner}
			return barrier
		},
	})
	f.createRule(managersRule("Managers 60%", nil))
	e := f.submitExpense("emp", "500", "USD")
	f.approve(e.ExpenseID, "m1")
	f.approve(e.ExpenseID, "m2")

	barrier.arm(2)
	var approveErr, rejectErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, approveErr = f.act(e.ExpenseID, "m3", domain.ActionApproved, "")
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = f.act(e.ExpenseID, "m4", domain.ActionRejected, "over budget")
	}()
	wg.Wait()

	stored := f.stored(e.ExpenseID)
	switch stored.Status {
	case domain.StatusApproved:
		assert.NoError(t, approveErr)
		assert.ErrorIs(t, rejectErr, apperrors.ErrConflict)
	case domain.StatusRejected:
		assert.NoError(t, rejectErr)
		assert.ErrorIs(t, approveErr, apperrors.ErrConflict)
	default:
		t.Fatalf("expense left in status %s", stored.Status)
	}
	assert.Len(t, stored.ApprovalHistory, 3)
}

func TestSubmitAction_GivesUpAfterRepeatedConflicts(t *testing.T) {
	var repo *conflictingRepo
	f := newFixture(t, fixtureOpts{
		expenseRepo: func(inner portsrepo.ExpenseRepositoryFacade) portsrepo.ExpenseRepositoryFacade {
			repo = &conflictingRepo{ExpenseRepositoryFacade: inner}
			return repo
		},
		approval: []services.ApprovalOption{services.WithMaxRetries(2)},
	})
	e := f.submitExpense("emp", "50", "USD")

	_, err := f.act(e.ExpenseID, "boss", domain.ActionApproved, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 3, repo.writes)
	assert.Equal(t, domain.StatusPending, f.stored(e.ExpenseID).Status)
}

func TestSubmitAction_UnknownExpense(t *testing.T) {
	f := newFixture(t, fixtureOpts{})

	_, err := f.act("does-not-exist", "boss", domain.ActionApproved, "")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 400, apperrors.StatusCode(err))
}

func TestSubmitAction_DraftExpense(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	draft, err := f.expenses.CreateExpense(context.Background(), "co", dto.CreateExpenseRequest{
		Amount:       decimal.NewFromInt(40),
		CurrencyCode: "USD",
		Category:     domain.CategoryMeals,
		ExpenseDate:  t0,
	}, "emp")
	require.NoError(t, err)

	_, err = f.act(draft.ExpenseID, "boss", domain.ActionApproved, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	submitted, err := f.expenses.SubmitExpense(context.Background(), "co", draft.ExpenseID, "emp")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, submitted.Status)
	f.approve(draft.ExpenseID, "boss")
}

func TestSubmitAction_ApproverNameFromDirectory(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	e := f.submitExpense("emp", "20", "USD")

	f.approve(e.ExpenseID, "boss")

	ledger := f.stored(e.ExpenseID).ApprovalHistory
	require.Len(t, ledger, 1)
	assert.Equal(t, "Bea Boss", ledger[0].ApproverName)
	assert.Equal(t, t0, ledger[0].Timestamp)
}

func TestSubmitAction_CancelledContext(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	e := f.submitExpense("emp", "20", "USD")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.approvals.SubmitAction(ctx, portssvc.SubmitActionInput{
		ExpenseID: e.ExpenseID, ApproverID: "boss", Action: domain.ActionApproved,
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.stored(e.ExpenseID).ApprovalHistory)
}
