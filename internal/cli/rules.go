package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	rulesCompany string
	rulesBy      string
	rulesDryRun  bool
)

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesImportCmd)
	rulesImportCmd.Flags().StringVar(&rulesCompany, "company", "", "Company ID the rules belong to (required)")
	rulesImportCmd.Flags().StringVar(&rulesBy, "by", "", "User ID recorded as the rules' creator (required)")
	rulesImportCmd.Flags().BoolVar(&rulesDryRun, "dry-run", false, "Validate the file without storing anything")
	_ = rulesImportCmd.MarkFlagRequired("company")
	_ = rulesImportCmd.MarkFlagRequired("by")
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage approval rules",
}

var rulesImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import approval rules from a YAML file",
	Long:  "Reads a list of rules under a top-level 'rules' key, validates every rule,\nand stores them all or none.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesImport,
}

// rulesFile is the on-disk shape of a rule import.
type rulesFile struct {
	Rules []dto.CreateApprovalRuleRequest `yaml:"rules" validate:"required,min=1,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func loadRulesFile(path string) ([]dto.CreateApprovalRuleRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid rules file %s: %s failed %q", path, verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return f.Rules, nil
}

func runRulesImport(cmd *cobra.Command, args []string) error {
	reqs, err := loadRulesFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if rulesDryRun {
		fmt.Fprintf(out, "%d rule(s) in %s are well-formed\n", len(reqs), args[0])
		return nil
	}

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	rules, err := rt.services.ApprovalRule.ImportRules(cmd.Context(), rulesCompany, reqs, rulesBy)
	if err != nil {
		return fmt.Errorf("import rules: %w", err)
	}

	for _, r := range rules {
		threshold := "any amount"
		if r.AmountThreshold != nil {
			threshold = "from " + r.AmountThreshold.String()
		}
		fmt.Fprintf(out, "%s  %-18s %-30s %s\n", r.RuleID, r.RuleType, truncate(r.RuleName, 30), threshold)
	}
	fmt.Fprintf(out, "Imported %d rule(s) into company %s\n", len(rules), rulesCompany)
	return nil
}
