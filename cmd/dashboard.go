package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var kpisDate string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live collection stats and on-demand engine runs",
}

var dashboardStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the live headline counters",
	Run: func(cmd *cobra.Command, args []string) {
		runDashboardStats()
	},
}

var dashboardKpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Show collections KPIs for a date",
	Run: func(cmd *cobra.Command, args []string) {
		runDashboardKpis()
	},
}

var dashboardRunEngineCmd = &cobra.Command{
	Use:   "run-engine",
	Short: "Trigger an on-demand dunning engine pass",
	Run: func(cmd *cobra.Command, args []string) {
		runEngineNow()
	},
}

func init() {
	dashboardCmd.AddCommand(dashboardStatsCmd)
	dashboardCmd.AddCommand(dashboardKpisCmd)
	dashboardCmd.AddCommand(dashboardRunEngineCmd)

	dashboardKpisCmd.Flags().StringVar(&kpisDate, "date", "", "Date (YYYY-MM-DD, default today)")
}

func runDashboardStats() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	stats, err := client.DashboardStats(ctx)
	if err != nil {
		log.Fatalf("Error fetching stats: %v", err)
	}

	fmt.Printf("Live Collection Stats\n")
	fmt.Printf("=====================\n")
	fmt.Printf("Overdue accounts: %d\n", stats.TotalOverdueCount)
	fmt.Printf("Overdue amount:   $%.2f\n", stats.TotalOverdueAmount)
	fmt.Printf("Pending tasks:    %d\n", stats.PendingTasks)
	if stats.LastRunTime != "" {
		fmt.Printf("Last engine run:  %s\n", stats.LastRunTime)
	} else {
		fmt.Printf("Last engine run:  never\n")
	}
}

func runDashboardKpis() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	date := kpisDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	ctx, cancel := commandContext()
	defer cancel()

	kpis, err := client.KpisByDate(ctx, date)
	if err != nil {
		log.Fatalf("Error fetching KPIs: %v", err)
	}

	fmt.Printf("KPIs for %s\n", date)
	fmt.Printf("  Collected:        $%.2f\n", kpis.TotalCollected)
	fmt.Printf("  Actions executed: %d\n", kpis.ActionsExecuted)
}

func runEngineNow() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	fmt.Println("Triggering dunning engine run...")
	message, err := client.RunEngine(ctx)
	if err != nil {
		log.Fatalf("Error running engine: %v", err)
	}
	fmt.Println(message)
}
