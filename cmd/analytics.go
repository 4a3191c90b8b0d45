package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	logsPage int
	logsSize int
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Aging, action and performance reports with paginated logs",
}

var analyticsAgingCmd = &cobra.Command{
	Use:   "aging",
	Short: "Overdue balances by aging bucket",
	Run: func(cmd *cobra.Command, args []string) {
		runAnalyticsAging()
	},
}

var analyticsActionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Executed dunning actions by type",
	Run: func(cmd *cobra.Command, args []string) {
		runAnalyticsActions()
	},
}

var analyticsCollectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Daily collected amounts",
	Run: func(cmd *cobra.Command, args []string) {
		runAnalyticsCollections()
	},
}

var analyticsBpoCmd = &cobra.Command{
	Use:   "bpo-status",
	Short: "BPO task counts by status",
	Run: func(cmd *cobra.Command, args []string) {
		runAnalyticsBpo()
	},
}

var analyticsActionLogsCmd = &cobra.Command{
	Use:   "action-logs",
	Short: "Paginated dunning-action execution log",
	Run: func(cmd *cobra.Command, args []string) {
		runActionLogs()
	},
}

var analyticsNotificationLogsCmd = &cobra.Command{
	Use:   "notification-logs",
	Short: "Paginated outbound notification log",
	Run: func(cmd *cobra.Command, args []string) {
		runNotificationLogs()
	},
}

func init() {
	analyticsCmd.AddCommand(analyticsAgingCmd)
	analyticsCmd.AddCommand(analyticsActionsCmd)
	analyticsCmd.AddCommand(analyticsCollectionsCmd)
	analyticsCmd.AddCommand(analyticsBpoCmd)
	analyticsCmd.AddCommand(analyticsActionLogsCmd)
	analyticsCmd.AddCommand(analyticsNotificationLogsCmd)

	for _, c := range []*cobra.Command{analyticsActionLogsCmd, analyticsNotificationLogsCmd} {
		c.Flags().IntVar(&logsPage, "page", 0, "Page number (0-based)")
		c.Flags().IntVar(&logsSize, "size", 0, "Page size (default from profile)")
	}
}

func runAnalyticsAging() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	buckets, err := client.OverdueAging(ctx)
	if err != nil {
		log.Fatalf("Error fetching aging report: %v", err)
	}

	fmt.Printf("Overdue Aging\n")
	fmt.Printf("%-12s %8s %14s\n", "BUCKET", "COUNT", "AMOUNT")
	for _, b := range buckets {
		fmt.Printf("%-12s %8d %14.2f\n", b.Bucket, b.Count, b.Amount)
	}
}

func runAnalyticsActions() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	breakdown, err := client.DunningActionBreakdown(ctx)
	if err != nil {
		log.Fatalf("Error fetching action breakdown: %v", err)
	}

	fmt.Printf("Dunning Actions by Type\n")
	for _, a := range breakdown {
		fmt.Printf("%-22s %d\n", a.ActionType, a.Count)
	}
}

func runAnalyticsCollections() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	series, err := client.CollectionPerformance(ctx)
	if err != nil {
		log.Fatalf("Error fetching collection performance: %v", err)
	}

	fmt.Printf("Collection Performance\n")
	var total float64
	for _, p := range series {
		fmt.Printf("%s  $%.2f\n", p.Date, p.Collected)
		total += p.Collected
	}
	fmt.Printf("Total: $%.2f over %d days\n", total, len(series))
}

func runAnalyticsBpo() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	counts, err := client.BpoStatusBreakdown(ctx)
	if err != nil {
		log.Fatalf("Error fetching BPO status breakdown: %v", err)
	}

	fmt.Printf("BPO Tasks by Status\n")
	for _, c := range counts {
		fmt.Printf("%-26s %d\n", c.Status, c.Count)
	}
}

func pageSizeOrDefault(profileSize int) int {
	if logsSize > 0 {
		return logsSize
	}
	return profileSize
}

func runActionLogs() {
	client, profile, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	page, err := client.ActionLogs(ctx, logsPage, pageSizeOrDefault(profile.PageSize))
	if err != nil {
		log.Fatalf("Error fetching action logs: %v", err)
	}

	fmt.Printf("Dunning Action Log (page %d of %d, %d entries total)\n", page.Number+1, page.TotalPages, page.TotalItems)
	for _, entry := range page.Content {
		fmt.Printf("%s  %-18s %-16s %-14s %s\n",
			entry.ExecutedAt, entry.ActionType, entry.AccountNumber, entry.Status, entry.RuleName)
		if entry.Details != "" {
			fmt.Printf("    %s\n", entry.Details)
		}
	}
}

func runNotificationLogs() {
	client, profile, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	page, err := client.NotificationLogs(ctx, logsPage, pageSizeOrDefault(profile.PageSize))
	if err != nil {
		log.Fatalf("Error fetching notification logs: %v", err)
	}

	fmt.Printf("Notification Log (page %d of %d, %d entries total)\n", page.Number+1, page.TotalPages, page.TotalItems)
	for _, entry := range page.Content {
		fmt.Printf("%s  %-6s %-28s %-10s %s\n",
			entry.SentAt, entry.Channel, entry.Recipient, entry.Status, entry.TemplateName)
	}
}
