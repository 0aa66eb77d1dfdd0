package workflow_test

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func threshold(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func approve(id string) domain.ApprovalEvent {
	return domain.ApprovalEvent{ApproverID: id, ApproverName: id, Action: domain.ActionApproved}
}

func reject(id string) domain.ApprovalEvent {
	return domain.ApprovalEvent{ApproverID: id, ApproverName: id, Action: domain.ActionRejected, Comment: "no receipt"}
}

func percentagePolicy() *domain.ApprovalPolicy {
	p := workflow.PinRule(domain.ApprovalRule{
		RuleID:              "rule-pct",
		RuleName:            "Managers 60%",
		RuleType:            domain.RulePercentage,
		PercentageThreshold: threshold(60),
	}, "emp", []string{"m1", "m2", "m3", "m4", "m5"}, t0)
	return &p
}

func hybridPolicy() *domain.ApprovalPolicy {
	p := workflow.PinRule(domain.ApprovalRule{
		RuleID:              "rule-hybrid",
		RuleName:            "60% or CFO",
		RuleType:            domain.RuleHybrid,
		Approvers:           []string{"m1", "m2", "m3", "m4", "m5"},
		PercentageThreshold: threshold(60),
		SpecificApprovers:   []string{"cfo"},
	}, "emp", nil, t0)
	return &p
}

func sequentialPolicy(chain ...string) *domain.ApprovalPolicy {
	p := workflow.PinRule(domain.ApprovalRule{
		RuleID:    "rule-seq",
		RuleName:  "Chain",
		RuleType:  domain.RuleSequential,
		Approvers: chain,
	}, "emp", nil, t0)
	return &p
}

func TestEvaluate_Percentage(t *testing.T) {
	tests := []struct {
		name   string
		ledger []domain.ApprovalEvent
		want   domain.ExpenseStatus
	}{
		{"no events", nil, domain.StatusPending},
		{"two of five", []domain.ApprovalEvent{approve("m1"), approve("m2")}, domain.StatusPending},
		{"three of five reaches 60", []domain.ApprovalEvent{approve("m1"), approve("m2"), approve("m3")}, domain.StatusApproved},
		{"single rejection", []domain.ApprovalEvent{reject("m4")}, domain.StatusRejected},
		{"rejection after two approvals", []domain.ApprovalEvent{approve("m1"), approve("m2"), reject("m3")}, domain.StatusRejected},
		{"approval reached before rejection", []domain.ApprovalEvent{approve("m1"), approve("m2"), approve("m3"), reject("m4")}, domain.StatusApproved},
		{"outsider events ignored", []domain.ApprovalEvent{approve("m1"), reject("stranger"), approve("m2")}, domain.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := workflow.Evaluate(percentagePolicy(), tt.ledger)
			assert.Equal(t, tt.want, st.Status)
		})
	}
}

func TestEvaluate_PercentageAwaitingExcludesActors(t *testing.T) {
	st := workflow.Evaluate(percentagePolicy(), []domain.ApprovalEvent{approve("m2")})

	assert.Equal(t, domain.StatusPending, st.Status)
	assert.Equal(t, 1, st.Approvals)
	assert.ElementsMatch(t, []string{"m1", "m3", "m4", "m5"}, st.Awaiting)
}

func TestEvaluate_Hybrid(t *testing.T) {
	tests := []struct {
		name   string
		ledger []domain.ApprovalEvent
		want   domain.ExpenseStatus
	}{
		{"specific approver alone", []domain.ApprovalEvent{approve("cfo")}, domain.StatusApproved},
		{"rejection strictly before specific approver", []domain.ApprovalEvent{reject("m1"), approve("cfo")}, domain.StatusRejected},
		{"specific approver before rejection", []domain.ApprovalEvent{approve("cfo"), reject("m1")}, domain.StatusApproved},
		{"percentage path", []domain.ApprovalEvent{approve("m1"), approve("m2"), approve("m3")}, domain.StatusApproved},
		{"percentage path before rejection", []domain.ApprovalEvent{approve("m1"), approve("m2"), approve("m3"), reject("cfo")}, domain.StatusApproved},
		{"below both conditions", []domain.ApprovalEvent{approve("m1"), approve("m2")}, domain.StatusPending},
		{"specific approver rejection", []domain.ApprovalEvent{reject("cfo")}, domain.StatusRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := workflow.Evaluate(hybridPolicy(), tt.ledger)
			assert.Equal(t, tt.want, st.Status)
		})
	}
}

func TestEvaluate_HybridPercentageIgnoresSpecificApprover(t *testing.T) {
	// The denominator is the five managers; cfo only feeds the specific-approver path.
	p := hybridPolicy()
	p.PercentageThreshold = threshold(40)

	st := workflow.Evaluate(p, []domain.ApprovalEvent{approve("m1")})
	assert.Equal(t, domain.StatusPending, st.Status)

	st = workflow.Evaluate(p, []domain.ApprovalEvent{approve("m1"), approve("m2")})
	assert.Equal(t, domain.StatusApproved, st.Status)
}

func TestEvaluate_SpecificApprover(t *testing.T) {
	p := workflow.PinRule(domain.ApprovalRule{
		RuleID:            "rule-specific",
		RuleType:          domain.RuleSpecificApprover,
		SpecificApprovers: []string{"cfo", "ceo"},
	}, "emp", []string{"m1"}, t0)

	assert.Equal(t, domain.StatusApproved, workflow.Evaluate(&p, []domain.ApprovalEvent{approve("ceo")}).Status)
	assert.Equal(t, domain.StatusRejected, workflow.Evaluate(&p, []domain.ApprovalEvent{reject("cfo")}).Status)
	assert.Equal(t, domain.StatusPending, workflow.Evaluate(&p, []domain.ApprovalEvent{approve("m1")}).Status)
}

func TestEvaluate_Sequential(t *testing.T) {
	p := sequentialPolicy("A", "B", "C")

	st := workflow.Evaluate(p, nil)
	assert.Equal(t, "awaiting_step[0]", st.String())
	assert.Equal(t, []string{"A"}, st.Awaiting)

	st = workflow.Evaluate(p, []domain.ApprovalEvent{approve("A")})
	assert.Equal(t, "awaiting_step[1]", st.String())

	st = workflow.Evaluate(p, []domain.ApprovalEvent{approve("A"), approve("B")})
	assert.Equal(t, "awaiting_step[2]", st.String())

	st = workflow.Evaluate(p, []domain.ApprovalEvent{approve("A"), approve("B"), approve("C")})
	assert.Equal(t, domain.StatusApproved, st.Status)
	assert.Equal(t, 3, st.Step)
	assert.Empty(t, st.Awaiting)

	st = workflow.Evaluate(p, []domain.ApprovalEvent{approve("A"), reject("B")})
	assert.Equal(t, domain.StatusRejected, st.Status)
	assert.Equal(t, 1, st.Step)
}

func TestEvaluate_SequentialRepeatedApprover(t *testing.T) {
	p := sequentialPolicy("A", "B", "A")

	st := workflow.Evaluate(p, []domain.ApprovalEvent{approve("A"), approve("B")})
	assert.Equal(t, []string{"A"}, st.Awaiting)

	st = workflow.Evaluate(p, []domain.ApprovalEvent{approve("A"), approve("B"), approve("A")})
	assert.Equal(t, domain.StatusApproved, st.Status)
}

func TestEvaluate_ReportingManagerDefault(t *testing.T) {
	p := workflow.PinDefault([]string{"boss"}, t0)

	assert.Equal(t, domain.StatusPending, workflow.Evaluate(&p, nil).Status)
	assert.Equal(t, domain.StatusApproved, workflow.Evaluate(&p, []domain.ApprovalEvent{approve("boss")}).Status)
	assert.Equal(t, domain.StatusRejected, workflow.Evaluate(&p, []domain.ApprovalEvent{reject("boss")}).Status)
}

func TestEvaluate_NilPolicyIsPending(t *testing.T) {
	st := workflow.Evaluate(nil, []domain.ApprovalEvent{approve("x")})
	assert.Equal(t, domain.StatusPending, st.Status)
	assert.NotNil(t, st.Awaiting)
}

func TestPinRule_EntitledSet(t *testing.T) {
	pool := []string{"m1", "m2", "m2", ""}

	pct := workflow.PinRule(domain.ApprovalRule{RuleID: "r", RuleType: domain.RulePercentage, PercentageThreshold: threshold(50)}, "emp", pool, t0)
	assert.Equal(t, []string{"m1", "m2"}, pct.EntitledApprovers)

	listed := workflow.PinRule(domain.ApprovalRule{RuleID: "r", RuleType: domain.RulePercentage, Approvers: []string{"x", "y"}, PercentageThreshold: threshold(50)}, "emp", pool, t0)
	assert.Equal(t, []string{"x", "y"}, listed.EntitledApprovers)

	specific := workflow.PinRule(domain.ApprovalRule{RuleID: "r", RuleType: domain.RuleSpecificApprover, SpecificApprovers: []string{"cfo"}}, "emp", pool, t0)
	assert.Equal(t, []string{"cfo"}, specific.EntitledApprovers)

	empty := workflow.PinRule(domain.ApprovalRule{RuleID: "r", RuleType: domain.RulePercentage, PercentageThreshold: threshold(50)}, "emp", nil, t0)
	assert.NotNil(t, empty.EntitledApprovers)
	assert.Empty(t, empty.EntitledApprovers)
}

func TestPinRule_StrikesSubmittingEmployee(t *testing.T) {
	seq := workflow.PinRule(domain.ApprovalRule{RuleID: "r", RuleType: domain.RuleSequential, Approvers: []string{"m1", "m2"}}, "m1", nil, t0)
	assert.Equal(t, []string{"m2"}, seq.Approvers)
	assert.Equal(t, []string{"m2"}, seq.EntitledApprovers)
	st := workflow.Evaluate(&seq, nil)
	assert.Equal(t, []string{"m2"}, st.Awaiting)
	assert.Equal(t, domain.StatusApproved, workflow.Evaluate(&seq, []domain.ApprovalEvent{approve("m2")}).Status)

	pct := workflow.PinRule(domain.ApprovalRule{RuleID: "r", RuleType: domain.RulePercentage, PercentageThreshold: threshold(100)}, "m1", []string{"m1", "m2", "m3"}, t0)
	assert.Equal(t, []string{"m2", "m3"}, pct.EntitledApprovers)
	assert.Equal(t, domain.StatusApproved, workflow.Evaluate(&pct, []domain.ApprovalEvent{approve("m2"), approve("m3")}).Status)

	hybrid := workflow.PinRule(domain.ApprovalRule{
		RuleID: "r", RuleType: domain.RuleHybrid, Approvers: []string{"m1", "m2"},
		PercentageThreshold: threshold(100), SpecificApprovers: []string{"m1", "cfo"},
	}, "m1", nil, t0)
	assert.Equal(t, []string{"m2"}, hybrid.EntitledApprovers)
	assert.Equal(t, []string{"cfo"}, hybrid.SpecificApprovers)
	assert.True(t, workflow.HasActors(hybrid))

	onlySelf := workflow.PinRule(domain.ApprovalRule{RuleID: "r", RuleType: domain.RuleSpecificApprover, SpecificApprovers: []string{"cfo"}}, "cfo", nil, t0)
	assert.Empty(t, onlySelf.EntitledApprovers)
	assert.False(t, workflow.HasActors(onlySelf))
}

func TestPinRule_SnapshotIsDetachedFromRule(t *testing.T) {
	rule := domain.ApprovalRule{
		RuleID:              "rule-pct",
		RuleType:            domain.RulePercentage,
		Approvers:           []string{"m1", "m2"},
		PercentageThreshold: threshold(50),
	}
	p := workflow.PinRule(rule, "emp", nil, t0)

	rule.Approvers[0] = "someone-else"
	*rule.PercentageThreshold = decimal.NewFromInt(100)

	assert.Equal(t, []string{"m1", "m2"}, p.Approvers)
	assert.True(t, p.PercentageThreshold.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "rule-pct", *p.RuleID)
	assert.Equal(t, domain.StatusApproved, workflow.Evaluate(&p, []domain.ApprovalEvent{approve("m1")}).Status)
}
