package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"credflow-console/internal/api"
	"credflow-console/internal/dunning"
	"credflow-console/internal/formatters"
	"credflow-console/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rulesOutput   string
	rulesJSONFile string
	rulesHTMLFile string

	// Form flags shared by create and update.
	ruleFormName        string
	ruleFormDescription string
	ruleFormPriority    string
	ruleFormActive      bool
	ruleFormAppliesTo   string
	ruleFormCondition   string
	ruleFormDays        string
	ruleFormAmount      string
	ruleFormAcctType    string
	ruleFormAction      string
	ruleFormTemplateID  string
	ruleFormBpoPrio     string

	// S3 export flags for the timeline.
	timelineS3Upload bool
	timelineS3Bucket string
	timelineS3Prefix string
	timelineS3RunID  string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage dunning rules and render the collections timeline",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all dunning rules",
	Run: func(cmd *cobra.Command, args []string) {
		runRulesList()
	},
}

var rulesGetCmd = &cobra.Command{
	Use:   "get <rule-id>",
	Short: "Show one rule in detail",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRulesGet(args[0])
	},
}

var rulesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a dunning rule",
	Long: `Create a dunning rule. The condition type decides which value flag is
read; the action type decides whether a template or a BPO priority is needed.

Examples:
  # Email reminder at 7 days overdue
  credflow-console rules create --name "First Reminder" --priority 1 \
    --condition DAYS_OVERDUE --days 7 --action SEND_EMAIL --template-id tpl-1

  # BPO escalation for high postpaid balances
  credflow-console rules create --name "High Balance Call" --priority 5 \
    --applies-to POSTPAID --condition MIN_AMOUNT_DUE --amount 250 \
    --action CREATE_BPO_TASK --bpo-priority HIGH`,
	Run: func(cmd *cobra.Command, args []string) {
		runRulesCreate()
	},
}

var rulesUpdateCmd = &cobra.Command{
	Use:   "update <rule-id>",
	Short: "Update a dunning rule",
	Long: `Update a dunning rule. The current definition is fetched first, so only
the flags you pass change; the rest keeps its stored value.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRulesUpdate(args[0])
	},
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <rule-id>",
	Short: "Delete a dunning rule",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRulesDelete(args[0])
	},
}

var rulesTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Render the collections timeline derived from active rules",
	Long: `Render the collections timeline: every active days-overdue rule placed
on a day axis, in the order the dunning engine will fire them.

Examples:
  # Text timeline on the console
  credflow-console rules timeline

  # Standalone HTML report
  credflow-console rules timeline --output html --html-file timeline.html

  # Export all formats to S3
  credflow-console rules timeline --output text,json,html \
    --json-file timeline.json --html-file timeline.html --s3-upload`,
	Run: func(cmd *cobra.Command, args []string) {
		runRulesTimeline()
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesGetCmd)
	rulesCmd.AddCommand(rulesCreateCmd)
	rulesCmd.AddCommand(rulesUpdateCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rulesCmd.AddCommand(rulesTimelineCmd)

	rulesListCmd.Flags().StringVarP(&rulesOutput, "output", "o", "", "Output format: text or json (default from profile)")

	for _, c := range []*cobra.Command{rulesCreateCmd, rulesUpdateCmd} {
		c.Flags().StringVar(&ruleFormName, "name", "", "Rule name")
		c.Flags().StringVar(&ruleFormDescription, "description", "", "Rule description")
		c.Flags().StringVar(&ruleFormPriority, "priority", "", "Execution priority (positive number)")
		c.Flags().BoolVar(&ruleFormActive, "active", true, "Whether the rule is active")
		c.Flags().StringVar(&ruleFormAppliesTo, "applies-to", "", "Plan scope: ALL, PREPAID or POSTPAID")
		c.Flags().StringVar(&ruleFormCondition, "condition", "", "Condition type: DAYS_OVERDUE, MIN_AMOUNT_DUE, ACCOUNT_TYPE or DAYS_UNTIL_DUE")
		c.Flags().StringVar(&ruleFormDays, "days", "", "Day threshold for DAYS_OVERDUE and DAYS_UNTIL_DUE")
		c.Flags().StringVar(&ruleFormAmount, "amount", "", "Amount threshold for MIN_AMOUNT_DUE")
		c.Flags().StringVar(&ruleFormAcctType, "account-type", "", "Account type for ACCOUNT_TYPE (default MOBILE)")
		c.Flags().StringVar(&ruleFormAction, "action", "", "Action type: SEND_EMAIL, SEND_SMS, CREATE_BPO_TASK, THROTTLE_SPEED or RESTRICT_SERVICE")
		c.Flags().StringVar(&ruleFormTemplateID, "template-id", "", "Template id for SEND_EMAIL and SEND_SMS")
		c.Flags().StringVar(&ruleFormBpoPrio, "bpo-priority", "", "BPO task priority: LOW, MEDIUM or HIGH (default MEDIUM)")
	}

	rulesTimelineCmd.Flags().StringVarP(&rulesOutput, "output", "o", "", "Output formats (comma-separated): text,json,html")
	rulesTimelineCmd.Flags().StringVar(&rulesJSONFile, "json-file", "", "JSON output file path")
	rulesTimelineCmd.Flags().StringVar(&rulesHTMLFile, "html-file", "", "HTML output file path")
	rulesTimelineCmd.Flags().BoolVar(&timelineS3Upload, "s3-upload", false, "Upload the rendered reports to S3")
	rulesTimelineCmd.Flags().StringVar(&timelineS3Bucket, "s3-bucket", "", "S3 bucket (or profile export_bucket, or CREDFLOW_EXPORT_BUCKET)")
	rulesTimelineCmd.Flags().StringVar(&timelineS3Prefix, "s3-prefix", "", "S3 key prefix (or profile export_prefix)")
	rulesTimelineCmd.Flags().StringVar(&timelineS3RunID, "s3-run-id", "", "Run ID for S3 organization (default: auto-generated)")
}

func runRulesList() {
	client, profile, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	rules, err := client.ListRules(ctx)
	if err != nil {
		log.Fatalf("Error fetching rules: %v", err)
	}

	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority < rules[j].Priority })

	format := rulesOutput
	if format == "" {
		format = profile.OutputFormat
	}
	switch format {
	case "json":
		formatters.RulesJSON(os.Stdout, rules)
	default:
		formatters.RulesText(os.Stdout, rules)
	}
}

func runRulesGet(ruleID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	rule, err := client.GetRule(ctx, ruleID)
	if err != nil {
		log.Fatalf("Error fetching rule: %v", err)
	}

	printRule(rule)
}

func printRule(rule *dunning.Rule) {
	fmt.Printf("Rule: %s (id %s)\n", rule.RuleName, rule.RuleID)
	if rule.Description != "" {
		fmt.Printf("  Description: %s\n", rule.Description)
	}
	fmt.Printf("  Priority:    %d\n", rule.Priority)
	fmt.Printf("  Active:      %v\n", rule.IsActive)
	appliesTo := string(rule.AppliesToPlanType)
	if appliesTo == "" || rule.AppliesToPlanType == dunning.PlanAll {
		appliesTo = "All"
	}
	fmt.Printf("  Applies To:  %s\n", appliesTo)
	fmt.Printf("  Condition:   %s\n", dunning.FormatCondition(*rule))
	fmt.Printf("  Action:      %s\n", dunning.FormatAction(*rule))
}

func formFromFlags(base dunning.RuleForm) dunning.RuleForm {
	form := base
	if ruleFormName != "" {
		form.RuleName = ruleFormName
	}
	if ruleFormDescription != "" {
		form.Description = ruleFormDescription
	}
	if ruleFormPriority != "" {
		form.Priority = ruleFormPriority
	}
	form.IsActive = ruleFormActive
	if ruleFormAppliesTo != "" {
		form.AppliesToPlanType = ruleFormAppliesTo
	}
	if ruleFormCondition != "" {
		form.ConditionType = dunning.ConditionType(ruleFormCondition)
	}
	if ruleFormDays != "" {
		form.ConditionValueInteger = ruleFormDays
	}
	if ruleFormAmount != "" {
		form.ConditionValueDecimal = ruleFormAmount
	}
	if ruleFormAcctType != "" {
		form.ConditionValueString = ruleFormAcctType
	}
	if ruleFormAction != "" {
		form.ActionType = dunning.ActionType(ruleFormAction)
	}
	if ruleFormTemplateID != "" {
		form.TemplateID = ruleFormTemplateID
	}
	if ruleFormBpoPrio != "" {
		form.BpoTaskPriority = ruleFormBpoPrio
	}
	return form
}

func validateOrDie(form dunning.RuleForm) {
	if errs := form.Validate(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Rule validation failed:")
		var fields []string
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, errs[field])
		}
		os.Exit(1)
	}
}

// checkTemplateSelection rejects a template reference whose channel does not
// match the rule's send action before the payload reaches the backend.
func checkTemplateSelection(ctx context.Context, client *api.Client, form dunning.RuleForm) {
	if form.TemplateID == "" {
		return
	}
	templates, err := client.ListTemplates(ctx)
	if err != nil {
		log.Fatalf("Error fetching templates: %v", err)
	}
	if err := dunning.CheckTemplateSelection(templates, form.ActionType, form.TemplateID); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runRulesCreate() {
	form := formFromFlags(dunning.RuleForm{
		ConditionValueString: "MOBILE",
		BpoTaskPriority:      string(dunning.BpoPriorityMedium),
	})
	validateOrDie(form)

	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	checkTemplateSelection(ctx, client, form)

	created, err := client.CreateRule(ctx, form.Payload())
	if err != nil {
		log.Fatalf("Error creating rule: %v", err)
	}

	fmt.Printf("Rule created\n")
	printRule(created)
}

func runRulesUpdate(ruleID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	current, err := client.GetRule(ctx, ruleID)
	if err != nil {
		log.Fatalf("Error fetching rule: %v", err)
	}

	form := formFromFlags(dunning.FormFromRule(*current))
	validateOrDie(form)
	checkTemplateSelection(ctx, client, form)

	updated, err := client.UpdateRule(ctx, ruleID, form.Payload())
	if err != nil {
		log.Fatalf("Error updating rule: %v", err)
	}

	fmt.Printf("Rule updated\n")
	printRule(updated)
}

func runRulesDelete(ruleID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := client.DeleteRule(ctx, ruleID); err != nil {
		log.Fatalf("Error deleting rule: %v", err)
	}
	fmt.Printf("Rule %s deleted\n", ruleID)
}

func runRulesTimeline() {
	client, profile, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	rules, err := client.ListRules(ctx)
	if err != nil {
		log.Fatalf("Error fetching rules: %v", err)
	}

	timeline := dunning.DeriveTimeline(rules)

	formats := parseOutputFormats(rulesOutput)
	if len(formats) == 0 {
		formats = []string{profile.OutputFormat}
	}
	for _, format := range formats {
		switch format {
		case "text", "json":
		case "html":
			if rulesHTMLFile == "" && timelineS3Upload {
				log.Fatal("Error: --html-file is required when uploading HTML to S3")
			}
		default:
			log.Fatalf("Error: Unknown output format: %s. Valid formats: text, json, html", format)
		}
	}

	generatedAt := time.Now().Format("2006-01-02 15:04")
	var textFile string

	for _, format := range formats {
		switch format {
		case "text":
			formatters.TimelineText(os.Stdout, timeline)
			if timelineS3Upload {
				textFile = filepath.Join(os.TempDir(), "credflow-timeline.txt")
				f, err := os.OpenFile(textFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
				if err != nil {
					log.Fatalf("Error creating text file: %v", err)
				}
				formatters.TimelineText(f, timeline)
				f.Close()
			}
		case "json":
			if rulesJSONFile != "" {
				f, err := os.OpenFile(rulesJSONFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
				if err != nil {
					log.Fatalf("Error creating JSON file: %v", err)
				}
				formatters.TimelineJSON(f, timeline)
				f.Close()
				fmt.Printf("JSON report generated: %s\n", rulesJSONFile)
			} else {
				formatters.TimelineJSON(os.Stdout, timeline)
			}
		case "html":
			formatters.TimelineHTML(timeline, rules, generatedAt, rulesHTMLFile)
		}
	}

	if !timelineS3Upload {
		return
	}

	bucket := timelineS3Bucket
	if bucket == "" {
		bucket = profile.ExportBucket
	}
	prefix := timelineS3Prefix
	if prefix == "" {
		prefix = profile.ExportPrefix
	}

	manifest := &storage.ExportManifest{
		BackendURL: profile.BaseURL,
		MaxDay:     timeline.MaxDay,
		TotalRules: len(rules),
	}
	for _, r := range rules {
		if r.IsActive {
			manifest.ActiveRules++
		}
	}

	_, err = storage.UploadExport(storage.ExportConfig{
		Bucket:        bucket,
		Prefix:        prefix,
		RunID:         timelineS3RunID,
		JSONFile:      rulesJSONFile,
		HTMLFile:      rulesHTMLFile,
		TextFile:      textFile,
		OutputFormats: formats,
		Manifest:      manifest,
	})
	if err != nil {
		log.Fatalf("Error uploading export: %v", err)
	}
}

// parseOutputFormats splits a comma-separated format list.
func parseOutputFormats(formats string) []string {
	if formats == "" {
		return nil
	}
	parts := strings.Split(formats, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
