package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
	"github.com/spf13/cobra"
)

var replayFormat string

// errDrift makes the command exit non-zero when the stored status disagrees with the ledger.
var errDrift = errors.New("stored status differs from the ledger")

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVarP(&replayFormat, "format", "f", "text", "Output format (text|json)")
}

var replayCmd = &cobra.Command{
	Use:   "replay <expense-id>",
	Short: "Recompute an expense's status from its approval ledger",
	Long:  "Loads the expense, replays its ledger against the pinned policy event by event,\nand reports whether the stored status matches the recomputed one.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

// replayStep is the state reached after one ledger event.
type replayStep struct {
	Event domain.ApprovalEvent `json:"event"`
	State string               `json:"state"`
}

// replayReport is the outcome of a replay.
type replayReport struct {
	ExpenseID    string                 `json:"expenseID"`
	CompanyID    string                 `json:"companyID"`
	StoredStatus domain.ExpenseStatus   `json:"storedStatus"`
	Recomputed   workflow.State         `json:"recomputed"`
	State        string                 `json:"state"`
	Drift        bool                   `json:"drift"`
	Policy       *domain.ApprovalPolicy `json:"policy,omitempty"`
	Steps        []replayStep           `json:"steps"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	if replayFormat != "text" && replayFormat != "json" {
		return fmt.Errorf("unknown --format %q (text|json)", replayFormat)
	}

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	expense, err := rt.repos.ExpenseRepo.FindExpenseByID(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("load expense %s: %w", args[0], err)
	}

	report := buildReplay(*expense)
	if replayFormat == "json" {
		if err := writeReplayJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		writeReplayTimeline(cmd.OutOrStdout(), report)
	}

	if report.Drift {
		return fmt.Errorf("%w: stored %s, recomputed %s", errDrift, report.StoredStatus, report.Recomputed.Status)
	}
	return nil
}

func buildReplay(expense domain.Expense) replayReport {
	st, drift := workflow.Recompute(expense)
	report := replayReport{
		ExpenseID:    expense.ExpenseID,
		CompanyID:    expense.CompanyID,
		StoredStatus: expense.Status,
		Recomputed:   st,
		State:        st.String(),
		Drift:        drift,
		Policy:       expense.Policy,
		Steps:        make([]replayStep, 0, len(expense.ApprovalHistory)),
	}
	if expense.Status == domain.StatusDraft {
		report.State = string(domain.StatusDraft)
	}
	for i, ev := range expense.ApprovalHistory {
		prefix := workflow.Evaluate(expense.Policy, expense.ApprovalHistory[:i+1])
		report.Steps = append(report.Steps, replayStep{Event: ev, State: prefix.String()})
	}
	return report
}

func writeReplayJSON(w io.Writer, report replayReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal replay result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

const separator = "------------------------------------------------------------------------"

func writeReplayTimeline(w io.Writer, r replayReport) {
	var b strings.Builder
	fmt.Fprintf(&b, "Expense: %s | Company: %s\n", r.ExpenseID, r.CompanyID)
	if r.Policy != nil {
		fmt.Fprintf(&b, "Policy:  %s (%s), %d entitled approver(s)\n", policyName(r.Policy), r.Policy.RuleType, len(r.Policy.EntitledApprovers))
	} else {
		b.WriteString("Policy:  not pinned\n")
	}
	b.WriteString(separator + "\n")

	if len(r.Steps) == 0 {
		b.WriteString("No approval actions recorded.\n")
	}
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "%-20s %-24s %-9s -> %s\n",
			s.Event.Timestamp.UTC().Format(time.DateTime), truncate(s.Event.ApproverName, 24), s.Event.Action, s.State)
	}

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Stored: %s | Recomputed: %s", r.StoredStatus, r.State)
	if r.Drift {
		b.WriteString(" | DRIFT")
	}
	b.WriteString("\n")
	fmt.Fprint(w, b.String())
}

func policyName(p *domain.ApprovalPolicy) string {
	if p.RuleName != "" {
		return p.RuleName
	}
	return "default"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
