package cmd

import (
	"fmt"
	"log"
	"os"
	"sort"

	"credflow-console/internal/dunning"

	"github.com/spf13/cobra"
)

var (
	templateName    string
	templateChannel string
	templateSubject string
	templateBody    string

	generatePurpose string
	generateTone    string
	generateDetails string
	generateApplyTo string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage notification templates, including AI drafting",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notification templates",
	Run: func(cmd *cobra.Command, args []string) {
		runTemplatesList()
	},
}

var templatesGetCmd = &cobra.Command{
	Use:   "get <template-id>",
	Short: "Show one template in full",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTemplatesGet(args[0])
	},
}

var templatesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a notification template",
	Long: `Create a notification template. Subject is required for EMAIL and
ignored for SMS. Bodies may carry {{placeholder}} tokens the backend resolves
at send time.

Example:
  credflow-console templates create --name "Final Warning" --channel EMAIL \
    --subject "Action required on your account" \
    --body "Dear {{customerName}}, your balance of {{amountDue}} is overdue."`,
	Run: func(cmd *cobra.Command, args []string) {
		runTemplatesCreate()
	},
}

var templatesUpdateCmd = &cobra.Command{
	Use:   "update <template-id>",
	Short: "Update a notification template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTemplatesUpdate(args[0])
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <template-id>",
	Short: "Delete a notification template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTemplatesDelete(args[0])
	},
}

var templatesGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft template content with the backend AI",
	Long: `Ask the backend AI to draft template content for a channel and purpose.
The draft is printed; pass --apply-to to write it into an existing template.

Examples:
  credflow-console templates generate --channel EMAIL \
    --purpose "Remind postpaid customers about a 14 day overdue balance" \
    --tone "firm but respectful"

  credflow-console templates generate --channel SMS \
    --purpose "Warn prepaid customers their plan expires tomorrow" \
    --apply-to tpl-3`,
	Run: func(cmd *cobra.Command, args []string) {
		runTemplatesGenerate()
	},
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesGetCmd)
	templatesCmd.AddCommand(templatesCreateCmd)
	templatesCmd.AddCommand(templatesUpdateCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)
	templatesCmd.AddCommand(templatesGenerateCmd)

	for _, c := range []*cobra.Command{templatesCreateCmd, templatesUpdateCmd} {
		c.Flags().StringVar(&templateName, "name", "", "Template name")
		c.Flags().StringVar(&templateChannel, "channel", "", "Channel: EMAIL or SMS")
		c.Flags().StringVar(&templateSubject, "subject", "", "Subject line (EMAIL only)")
		c.Flags().StringVar(&templateBody, "body", "", "Template body")
	}

	templatesGenerateCmd.Flags().StringVar(&templateChannel, "channel", "EMAIL", "Channel to draft for: EMAIL or SMS")
	templatesGenerateCmd.Flags().StringVar(&generatePurpose, "purpose", "", "What the template should accomplish (required, 10-500 chars)")
	templatesGenerateCmd.Flags().StringVar(&generateTone, "tone", "", "Desired tone, e.g. friendly, firm")
	templatesGenerateCmd.Flags().StringVar(&generateDetails, "key-details", "", "Facts the draft must include")
	templatesGenerateCmd.Flags().StringVar(&generateApplyTo, "apply-to", "", "Template id to write the draft into")
	templatesGenerateCmd.MarkFlagRequired("purpose")
}

func runTemplatesList() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	templates, err := client.ListTemplates(ctx)
	if err != nil {
		log.Fatalf("Error fetching templates: %v", err)
	}

	sort.SliceStable(templates, func(i, j int) bool { return templates[i].TemplateName < templates[j].TemplateName })

	fmt.Printf("Notification Templates (%d)\n", len(templates))
	fmt.Printf("%-38s %-8s %s\n", "ID", "CHANNEL", "NAME")
	for _, tpl := range templates {
		fmt.Printf("%-38s %-8s %s\n", tpl.TemplateID, tpl.Channel, tpl.TemplateName)
	}
}

func runTemplatesGet(templateID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	tpl, err := client.GetTemplate(ctx, templateID)
	if err != nil {
		log.Fatalf("Error fetching template: %v", err)
	}
	printTemplate(tpl)
}

func printTemplate(tpl *dunning.Template) {
	fmt.Printf("Template: %s (id %s)\n", tpl.TemplateName, tpl.TemplateID)
	fmt.Printf("  Channel: %s\n", tpl.Channel)
	if tpl.Channel == dunning.ChannelEmail {
		fmt.Printf("  Subject: %s\n", tpl.Subject)
	}
	fmt.Printf("  Body:\n    %s\n", tpl.Body)
}

func templateFromFlags(base dunning.Template) dunning.Template {
	tpl := base
	if templateName != "" {
		tpl.TemplateName = templateName
	}
	if templateChannel != "" {
		tpl.Channel = dunning.Channel(templateChannel)
	}
	if templateSubject != "" {
		tpl.Subject = templateSubject
	}
	if templateBody != "" {
		tpl.Body = templateBody
	}
	return tpl
}

func validateTemplateOrDie(tpl dunning.Template) {
	if errs := dunning.ValidateTemplate(tpl); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Template validation failed:")
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

func runTemplatesCreate() {
	tpl := templateFromFlags(dunning.Template{})
	validateTemplateOrDie(tpl)

	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	created, err := client.CreateTemplate(ctx, tpl)
	if err != nil {
		log.Fatalf("Error creating template: %v", err)
	}
	fmt.Printf("Template created\n")
	printTemplate(created)
}

func runTemplatesUpdate(templateID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	current, err := client.GetTemplate(ctx, templateID)
	if err != nil {
		log.Fatalf("Error fetching template: %v", err)
	}

	tpl := templateFromFlags(*current)
	validateTemplateOrDie(tpl)

	updated, err := client.UpdateTemplate(ctx, templateID, tpl)
	if err != nil {
		log.Fatalf("Error updating template: %v", err)
	}
	fmt.Printf("Template updated\n")
	printTemplate(updated)
}

func runTemplatesDelete(templateID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := client.DeleteTemplate(ctx, templateID); err != nil {
		log.Fatalf("Error deleting template: %v", err)
	}
	fmt.Printf("Template %s deleted\n", templateID)
}

func runTemplatesGenerate() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	result, err := client.GenerateTemplate(ctx, dunning.GenerateRequest{
		Channel:    dunning.Channel(templateChannel),
		Purpose:    generatePurpose,
		Tone:       generateTone,
		KeyDetails: generateDetails,
	})
	if err != nil {
		log.Fatalf("Error generating content: %v", err)
	}

	if result.GeneratedSubject != "" {
		fmt.Printf("Subject: %s\n\n", result.GeneratedSubject)
	}
	fmt.Printf("%s\n", result.GeneratedBody)

	if generateApplyTo == "" {
		return
	}

	target, err := client.GetTemplate(ctx, generateApplyTo)
	if err != nil {
		log.Fatalf("Error fetching target template: %v", err)
	}
	if err := target.ApplyGenerated(*result); err != nil {
		log.Fatalf("Error applying draft: %v", err)
	}
	if _, err := client.UpdateTemplate(ctx, generateApplyTo, *target); err != nil {
		log.Fatalf("Error saving template: %v", err)
	}
	fmt.Printf("\nDraft applied to template %s\n", generateApplyTo)
}
