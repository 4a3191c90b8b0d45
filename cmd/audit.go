package cmd

import (
	"fmt"
	"log"
	"os"

	"credflow-console/internal/audit"

	"github.com/spf13/cobra"
)

var auditChecksFile string

var rulesAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the rule set for misconfigurations",
	Long: `Audit the rule set against a set of consistency checks: duplicate
priorities, dangling or channel-mismatched template references, missing
condition values, early-coverage gaps and dormant-rule buildup.

The built-in checks can be replaced with a YAML file:

  checks:
    - check_id: "DUP-PRIO"
      description: "No two active rules share a priority"
      severity: "warning"
      type: "duplicate_priority"

Exits nonzero when any critical check fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		runRulesAudit()
	},
}

func init() {
	rulesCmd.AddCommand(rulesAuditCmd)
	rulesAuditCmd.Flags().StringVarP(&auditChecksFile, "checks", "c", "", "Path to a custom checks YAML file")
}

func runRulesAudit() {
	auditor, err := audit.NewAuditor(auditChecksFile)
	if err != nil {
		log.Fatalf("Error loading checks: %v", err)
	}

	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	rules, err := client.ListRules(ctx)
	if err != nil {
		log.Fatalf("Error fetching rules: %v", err)
	}
	templates, err := client.ListTemplates(ctx)
	if err != nil {
		log.Fatalf("Error fetching templates: %v", err)
	}

	results, err := auditor.Run(rules, templates)
	if err != nil {
		log.Fatalf("Error running audit: %v", err)
	}

	criticalFailures := 0
	for _, result := range results {
		status := "PASS"
		if !result.Passed {
			status = "FAIL"
			if result.Severity == "critical" {
				criticalFailures++
			}
		}
		fmt.Printf("[%s] %-10s %-8s %s\n", status, result.CheckID, result.Severity, result.Description)
		for _, finding := range result.Findings {
			fmt.Printf("         - %s\n", finding)
		}
	}

	fmt.Printf("\nRule health score: %.1f/100\n", audit.HealthScore(results))

	if criticalFailures > 0 {
		fmt.Fprintf(os.Stderr, "\n%d critical check(s) failed\n", criticalFailures)
		os.Exit(1)
	}
}
