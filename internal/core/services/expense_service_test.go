package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExpense_ConvertsIntoCompanyCurrency(t *testing.T) {
	f := newFixture(t, fixtureOpts{})

	e := f.submitExpense("emp", "99.99", "eur")

	assert.Equal(t, "EUR", e.CurrencyCode)
	assert.Equal(t, domain.StatusPending, e.Status)
	assert.Equal(t, "Eve Employee", e.EmployeeName)
	assert.Equal(t, int64(1), e.Version)
	require.NotNil(t, e.ConvertedAmount)
	assert.Equal(t, "109.98", e.ConvertedAmount.StringFixed(2))
	assert.False(t, e.NeedsCurrencyReconciliation)
	assert.Nil(t, e.Policy)
	assert.NotNil(t, e.ApprovalHistory)
}

func TestCreateExpense_Rejections(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx := context.Background()
	valid := dto.CreateExpenseRequest{Amount: decimal.NewFromInt(10), CurrencyCode: "USD", Category: domain.CategoryMeals, ExpenseDate: t0}

	_, err := f.expenses.CreateExpense(ctx, "co", valid, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.expenses.CreateExpense(ctx, "other-co", valid, "emp")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	zero := valid
	zero.Amount = decimal.Zero
	_, err = f.expenses.CreateExpense(ctx, "co", zero, "emp")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	badCategory := valid
	badCategory.Category = "yachts"
	_, err = f.expenses.CreateExpense(ctx, "co", badCategory, "emp")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateExpense_ReconvertsAndLocksAfterFirstAction(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx := context.Background()
	e := f.submitExpense("emp", "100", "USD")

	eur := "EUR"
	updated, err := f.expenses.UpdateExpense(ctx, "co", e.ExpenseID, dto.UpdateExpenseRequest{CurrencyCode: &eur}, "emp")
	require.NoError(t, err)
	assert.Equal(t, "110", updated.ConvertedAmount.String())
	assert.Equal(t, int64(2), updated.Version)

	_, err = f.expenses.UpdateExpense(ctx, "co", e.ExpenseID, dto.UpdateExpenseRequest{CurrencyCode: &eur}, "boss")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	f.approve(e.ExpenseID, "boss")
	amount := decimal.NewFromInt(1)
	_, err = f.expenses.UpdateExpense(ctx, "co", e.ExpenseID, dto.UpdateExpenseRequest{Amount: &amount}, "emp")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubmitExpense_OnlyDraftsByOwner(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx := context.Background()
	pending := f.submitExpense("emp", "10", "USD")

	_, err := f.expenses.SubmitExpense(ctx, "co", pending.ExpenseID, "emp")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	draft, err := f.expenses.CreateExpense(ctx, "co", dto.CreateExpenseRequest{
		Amount: decimal.NewFromInt(10), CurrencyCode: "USD", Category: domain.CategoryOther, ExpenseDate: t0,
	}, "emp")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, draft.Status)

	_, err = f.expenses.SubmitExpense(ctx, "co", draft.ExpenseID, "loner")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGetExpense_ScopedToCompany(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	e := f.submitExpense("emp", "10", "USD")

	_, err := f.expenses.GetExpense(context.Background(), "other-co", e.ExpenseID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListExpenses_FiltersAndPages(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx := context.Background()
	for range 3 {
		f.submitExpense("emp", "10", "USD")
	}
	lonerExpense := f.submitExpense("loner", "10", "USD")
	f.approve(lonerExpense.ExpenseID, "admin")

	page, next, err := f.expenses.ListExpenses(ctx, "co", dto.ListExpensesParams{EmployeeID: "emp", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	require.NotNil(t, next)

	rest, next, err := f.expenses.ListExpenses(ctx, "co", dto.ListExpensesParams{EmployeeID: "emp", Limit: 2, NextToken: next})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
	assert.Nil(t, next)

	approved, _, err := f.expenses.ListExpenses(ctx, "co", dto.ListExpensesParams{Status: "approved", Limit: 10})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, lonerExpense.ExpenseID, approved[0].ExpenseID)
}

func TestApprovalState_ReportsDrift(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx := context.Background()
	e := f.submitExpense("emp", "10", "USD")
	f.approve(e.ExpenseID, "boss")

	_, st, drift, err := f.expenses.ApprovalState(ctx, "co", e.ExpenseID)
	require.NoError(t, err)
	assert.False(t, drift)
	assert.Equal(t, domain.StatusApproved, st.Status)

	tampered := f.stored(e.ExpenseID)
	tampered.Status = domain.StatusRejected
	require.NoError(t, f.store.UpdateExpenseIfVersion(ctx, *tampered, tampered.Version))

	stored, st, drift, err := f.expenses.ApprovalState(ctx, "co", e.ExpenseID)
	require.NoError(t, err)
	assert.True(t, drift)
	assert.Equal(t, domain.StatusRejected, stored.Status)
	assert.Equal(t, domain.StatusApproved, st.Status)
}

func TestReconcileCurrency_NoopWhenNotFlagged(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	e := f.submitExpense("emp", "10", "EUR")

	got, err := f.expenses.ReconcileCurrency(context.Background(), "co", e.ExpenseID, "m1")

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
}

func TestSummary_CountsAndTotalsInCompanyCurrency(t *testing.T) {
	f := newFixture(t, fixtureOpts{})
	ctx := context.Background()
	f.submitExpense("emp", "100", "USD")
	f.submitExpense("emp", "100", "EUR")
	lonerExpense := f.submitExpense("loner", "50", "USD")
	f.approve(lonerExpense.ExpenseID, "admin")
	_, err := f.expenses.CreateExpense(ctx, "co", dto.CreateExpenseRequest{
		Amount: decimal.NewFromInt(10), CurrencyCode: "USD", Category: domain.CategoryOther, ExpenseDate: t0,
	}, "emp")
	require.NoError(t, err)

	all, err := f.expenses.Summary(ctx, "co", dto.ExpenseSummaryParams{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)
	assert.Equal(t, 1, all.Draft)
	assert.Equal(t, 2, all.Pending)
	assert.Equal(t, 1, all.Approved)
	assert.Equal(t, 0, all.Rejected)
	assert.True(t, all.TotalAmount.Equal(decimal.NewFromInt(270)), all.TotalAmount.String())
	assert.Equal(t, "USD", all.CurrencyCode)

	mine, err := f.expenses.Summary(ctx, "co", dto.ExpenseSummaryParams{EmployeeID: "emp"})
	require.NoError(t, err)
	assert.Equal(t, 3, mine.Total)
	assert.True(t, mine.TotalAmount.Equal(decimal.NewFromInt(220)), mine.TotalAmount.String())

	_, err = f.expenses.Summary(ctx, "missing-co", dto.ExpenseSummaryParams{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
