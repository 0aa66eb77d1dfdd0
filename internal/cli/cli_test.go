package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/expense_approvals/internal/adapters/database/memory"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
	"github.com/SscSPs/expense_approvals/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

// useMemoryStore points every command at a fresh in-memory store.
func useMemoryStore(t *testing.T) *memory.Store {
	t.Helper()
	repos, store := memory.NewRepositoryProvider()
	cfg := &config.Config{RateCacheSize: 8, RateCacheTTL: time.Hour}
	prev := openRuntime
	openRuntime = func(context.Context) (*runtime, error) {
		return newRuntime(cfg, repos, store), nil
	}
	t.Cleanup(func() { openRuntime = prev })

	ctx := context.Background()
	require.NoError(t, store.SaveCompany(ctx, domain.Company{CompanyID: "co", Name: "Acme", CountryCode: "US", DefaultCurrencyCode: "USD"}))
	for _, u := range []domain.User{
		{UserID: "admin", CompanyID: "co", FullName: "Ada Admin", Email: "ada@acme.test", Role: domain.RoleAdmin},
		{UserID: "mgr", CompanyID: "co", FullName: "Max Manager", Email: "max@acme.test", Role: domain.RoleManager},
		{UserID: "emp", CompanyID: "co", FullName: "Eve Employee", Email: "eve@acme.test", Role: domain.RoleEmployee},
	} {
		require.NoError(t, store.SaveUser(ctx, u))
	}
	return store
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	replayFormat = "text"
	rulesCompany, rulesBy, rulesDryRun = "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func seedApprovedExpense(t *testing.T, store *memory.Store) domain.Expense {
	t.Helper()
	policy := workflow.PinDefault([]string{"mgr"}, t0)
	e := domain.Expense{
		ExpenseID:    "exp-1",
		EmployeeID:   "emp",
		EmployeeName: "Eve Employee",
		CompanyID:    "co",
		CurrencyCode: "USD",
		Category:     domain.CategoryMeals,
		Status:       domain.StatusPending,
		Policy:       &policy,
	}
	next, _, err := workflow.Append(e, domain.ApprovalEvent{ApproverID: "mgr", ApproverName: "Max Manager", Action: domain.ActionApproved}, t0)
	require.NoError(t, err)
	require.NoError(t, store.SaveExpense(context.Background(), next))
	return next
}

func TestReplay_Text(t *testing.T) {
	store := useMemoryStore(t)
	seedApprovedExpense(t, store)

	out, err := execute(t, "replay", "exp-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Expense: exp-1")
	assert.Contains(t, out, "Max Manager")
	assert.Contains(t, out, "Stored: approved | Recomputed: approved")
	assert.NotContains(t, out, "DRIFT")
}

func TestReplay_JSONReportsDrift(t *testing.T) {
	store := useMemoryStore(t)
	e := seedApprovedExpense(t, store)
	e.Status = domain.StatusRejected
	require.NoError(t, store.UpdateExpenseIfVersion(context.Background(), e, 1))

	out, err := execute(t, "replay", "exp-1", "--format", "json")

	require.ErrorIs(t, err, errDrift)
	assert.Contains(t, out, `"drift": true`)
	assert.Contains(t, out, `"storedStatus": "rejected"`)
}

func TestReplay_UnknownExpense(t *testing.T) {
	useMemoryStore(t)

	_, err := execute(t, "replay", "missing")

	assert.Error(t, err)
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRulesImport(t *testing.T) {
	store := useMemoryStore(t)
	path := writeRules(t, `
rules:
  - ruleName: Small claims
    ruleType: specific_approver
    specificApprovers: [mgr]
  - ruleName: Large claims
    ruleType: hybrid
    approvers: [mgr, admin]
    percentageThreshold: 50
    specificApprovers: [admin]
    amountThreshold: "1000.00"
`)

	out, err := execute(t, "rules", "import", path, "--company", "co", "--by", "admin")

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 rule(s) into company co")
	rules, err := store.ListRulesByCompany(context.Background(), "co")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Large claims", rules[0].RuleName)
	require.NotNil(t, rules[0].AmountThreshold)
	assert.Equal(t, "1000", rules[0].AmountThreshold.String())
}

func TestRulesImport_IsAllOrNothing(t *testing.T) {
	store := useMemoryStore(t)
	path := writeRules(t, `
rules:
  - ruleName: Fine
    ruleType: sequential
    approvers: [mgr]
  - ruleName: Employee cannot approve
    ruleType: sequential
    approvers: [emp]
`)

	_, err := execute(t, "rules", "import", path, "--company", "co", "--by", "admin")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 2")
	rules, err := store.ListRulesByCompany(context.Background(), "co")
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestRulesImport_RejectsMalformedFile(t *testing.T) {
	useMemoryStore(t)
	tests := map[string]string{
		"empty list":   "rules: []\n",
		"unknown type": "rules:\n  - ruleName: x\n    ruleType: majority\n",
		"missing name": "rules:\n  - ruleType: sequential\n    approvers: [mgr]\n",
		"not yaml":     "rules: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeRules(t, content)
			_, err := execute(t, "rules", "import", path, "--company", "co", "--by", "admin", "--dry-run")
			assert.Error(t, err)
		})
	}
}

func TestRulesImport_DryRunStoresNothing(t *testing.T) {
	store := useMemoryStore(t)
	path := writeRules(t, "rules:\n  - ruleName: Chain\n    ruleType: sequential\n    approvers: [mgr]\n")

	out, err := execute(t, "rules", "import", path, "--company", "co", "--by", "admin", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "1 rule(s)")
	rules, _ := store.ListRulesByCompany(context.Background(), "co")
	assert.Empty(t, rules)
}
