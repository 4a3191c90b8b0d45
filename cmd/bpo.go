package cmd

import (
	"fmt"
	"log"

	"credflow-console/internal/api"

	"github.com/spf13/cobra"
)

var (
	taskStatus   string
	taskNotes    string
	callOutcome  string
	callNotes    string
	callDuration int
)

var bpoCmd = &cobra.Command{
	Use:   "bpo",
	Short: "BPO agent task queue and call logging",
}

var bpoQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the agent's task queue",
	Run: func(cmd *cobra.Command, args []string) {
		runBpoQueue()
	},
}

var bpoClaimCmd = &cobra.Command{
	Use:   "claim <task-id>",
	Short: "Claim an unassigned task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBpoClaim(args[0])
	},
}

var bpoUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Change a task's status",
	Long: `Change a task's status.

Statuses: NEW, OPEN, IN_PROGRESS, RESOLVED_PAID, RESOLVED_PROMISE_TO_PAY,
RESOLVED_NO_CONTACT, COMPLETED, CLOSED

Example:
  credflow-console bpo update task-7 --status RESOLVED_PROMISE_TO_PAY \
    --notes "Customer promised payment by Friday"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBpoUpdate(args[0])
	},
}

var bpoLogCallCmd = &cobra.Command{
	Use:   "log-call <task-id>",
	Short: "Record a call outcome against a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBpoLogCall(args[0])
	},
}

var bpoTaskLogsCmd = &cobra.Command{
	Use:   "task-logs <task-id>",
	Short: "Show the call history of a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBpoTaskLogs(args[0])
	},
}

var bpoMyCallsCmd = &cobra.Command{
	Use:   "my-calls",
	Short: "Show the agent's own recorded calls",
	Run: func(cmd *cobra.Command, args []string) {
		runBpoMyCalls()
	},
}

var bpoPerformanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Show the agent's performance summary",
	Run: func(cmd *cobra.Command, args []string) {
		runBpoPerformance()
	},
}

func init() {
	bpoCmd.AddCommand(bpoQueueCmd)
	bpoCmd.AddCommand(bpoClaimCmd)
	bpoCmd.AddCommand(bpoUpdateCmd)
	bpoCmd.AddCommand(bpoLogCallCmd)
	bpoCmd.AddCommand(bpoTaskLogsCmd)
	bpoCmd.AddCommand(bpoMyCallsCmd)
	bpoCmd.AddCommand(bpoPerformanceCmd)

	bpoUpdateCmd.Flags().StringVar(&taskStatus, "status", "", "New task status (required)")
	bpoUpdateCmd.Flags().StringVar(&taskNotes, "notes", "", "Agent notes")
	bpoUpdateCmd.MarkFlagRequired("status")

	bpoLogCallCmd.Flags().StringVar(&callOutcome, "outcome", "", "Call outcome (required)")
	bpoLogCallCmd.Flags().StringVar(&callNotes, "notes", "", "Call notes")
	bpoLogCallCmd.Flags().IntVar(&callDuration, "duration", 0, "Call duration in seconds")
	bpoLogCallCmd.MarkFlagRequired("outcome")
}

func printTask(task *api.BpoTask) {
	fmt.Printf("%-10s %-8s %-14s %-10s $%10.2f  %3dd overdue  %s\n",
		task.TaskID, task.Priority, task.Status, task.AccountNumber, task.AmountDue, task.DaysOverdue, task.CustomerName)
}

func runBpoQueue() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	tasks, err := client.MyQueue(ctx)
	if err != nil {
		log.Fatalf("Error fetching task queue: %v", err)
	}

	fmt.Printf("Task Queue (%d tasks)\n", len(tasks))
	for i := range tasks {
		printTask(&tasks[i])
	}
}

func runBpoClaim(taskID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	task, err := client.ClaimTask(ctx, taskID)
	if err != nil {
		log.Fatalf("Error claiming task: %v", err)
	}
	fmt.Printf("Task claimed\n")
	printTask(task)
}

func runBpoUpdate(taskID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	task, err := client.UpdateTask(ctx, taskID, api.TaskUpdateRequest{
		Status: api.BpoTaskStatus(taskStatus),
		Notes:  taskNotes,
	})
	if err != nil {
		log.Fatalf("Error updating task: %v", err)
	}
	fmt.Printf("Task updated\n")
	printTask(task)
}

func runBpoLogCall(taskID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	entry, err := client.LogCall(ctx, taskID, api.CallLogRequest{
		Outcome:      callOutcome,
		Notes:        callNotes,
		CallDuration: callDuration,
	})
	if err != nil {
		log.Fatalf("Error logging call: %v", err)
	}
	fmt.Printf("Call logged at %s (outcome: %s)\n", entry.LoggedAt, entry.Outcome)
}

func runBpoTaskLogs(taskID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	logs, err := client.TaskCallLogs(ctx, taskID)
	if err != nil {
		log.Fatalf("Error fetching call logs: %v", err)
	}

	fmt.Printf("Call History for %s (%d calls)\n", taskID, len(logs))
	for _, entry := range logs {
		fmt.Printf("%s  %-24s %s\n", entry.LoggedAt, entry.Outcome, entry.Notes)
	}
}

func runBpoMyCalls() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	logs, err := client.MyCallLogs(ctx)
	if err != nil {
		log.Fatalf("Error fetching call logs: %v", err)
	}

	fmt.Printf("My Calls (%d)\n", len(logs))
	for _, entry := range logs {
		fmt.Printf("%s  task %-10s %-24s %s\n", entry.LoggedAt, entry.TaskID, entry.Outcome, entry.Notes)
	}
}

func runBpoPerformance() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	perf, err := client.MyPerformance(ctx)
	if err != nil {
		log.Fatalf("Error fetching performance: %v", err)
	}

	fmt.Printf("My Performance\n")
	fmt.Printf("  Tasks resolved:  %d\n", perf.TasksResolved)
	fmt.Printf("  Tasks open:      %d\n", perf.TasksOpen)
	fmt.Printf("  Calls logged:    %d\n", perf.CallsLogged)
	fmt.Printf("  Total collected: $%.2f\n", perf.TotalCollected)
}
