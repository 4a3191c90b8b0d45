package cmd

import (
	"fmt"
	"log"

	"credflow-console/internal/api"

	"github.com/spf13/cobra"
)

var (
	payMethod    string
	selectPlanID string
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Customer self-service billing surfaces",
}

var customerProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the customer's account profile",
	Run: func(cmd *cobra.Command, args []string) {
		runCustomerProfile()
	},
}

var customerAccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the customer's service accounts",
	Run: func(cmd *cobra.Command, args []string) {
		runCustomerAccounts()
	},
}

var customerInvoicesCmd = &cobra.Command{
	Use:   "invoices [account-id]",
	Short: "List invoices, optionally for one account",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		accountID := ""
		if len(args) == 1 {
			accountID = args[0]
		}
		runCustomerInvoices(accountID)
	},
}

var customerPaymentsCmd = &cobra.Command{
	Use:   "payments <invoice-id>",
	Short: "Show payments recorded against an invoice",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCustomerPayments(args[0])
	},
}

var customerPayCmd = &cobra.Command{
	Use:   "pay <invoice-id>",
	Short: "Record a self-service payment against an invoice",
	Long: `Record a self-service payment against an invoice.

Methods: CARD, BANK_TRANSFER, MOBILE_MONEY, CASH

Example:
  credflow-console customer pay inv-42 --method MOBILE_MONEY`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCustomerPay(args[0])
	},
}

var customerPlansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Show the plan catalog",
	Run: func(cmd *cobra.Command, args []string) {
		runCustomerPlans()
	},
}

var customerSelectPlanCmd = &cobra.Command{
	Use:   "select-plan <account-id>",
	Short: "Switch an account onto a different plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCustomerSelectPlan(args[0])
	},
}

func init() {
	customerCmd.AddCommand(customerProfileCmd)
	customerCmd.AddCommand(customerAccountsCmd)
	customerCmd.AddCommand(customerInvoicesCmd)
	customerCmd.AddCommand(customerPaymentsCmd)
	customerCmd.AddCommand(customerPayCmd)
	customerCmd.AddCommand(customerPlansCmd)
	customerCmd.AddCommand(customerSelectPlanCmd)

	customerPayCmd.Flags().StringVar(&payMethod, "method", "", "Payment method (required)")
	customerPayCmd.MarkFlagRequired("method")

	customerSelectPlanCmd.Flags().StringVar(&selectPlanID, "plan-id", "", "Plan id to switch to (required)")
	customerSelectPlanCmd.MarkFlagRequired("plan-id")
}

func runCustomerProfile() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	user, err := client.CustomerProfile(ctx)
	if err != nil {
		log.Fatalf("Error fetching profile: %v", err)
	}

	fmt.Printf("Username:  %s\n", user.Username)
	if user.FullName != "" {
		fmt.Printf("Full name: %s\n", user.FullName)
	}
	fmt.Printf("Email:     %s\n", user.Email)
	fmt.Printf("Role:      %s\n", user.Role)
}

func runCustomerAccounts() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	accounts, err := client.CustomerAccounts(ctx)
	if err != nil {
		log.Fatalf("Error fetching accounts: %v", err)
	}

	fmt.Printf("Accounts (%d)\n", len(accounts))
	fmt.Printf("%-14s %-10s %-12s %12s  %s\n", "NUMBER", "PLAN", "STATUS", "BALANCE", "PLAN NAME")
	for _, acct := range accounts {
		fmt.Printf("%-14s %-10s %-12s %12.2f  %s\n",
			acct.AccountNumber, acct.PlanType, acct.Status, acct.Balance, acct.PlanName)
	}
}

func runCustomerInvoices(accountID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	var invoices []api.Invoice
	if accountID != "" {
		invoices, err = client.AccountInvoices(ctx, accountID)
	} else {
		invoices, err = client.CustomerInvoices(ctx)
	}
	if err != nil {
		log.Fatalf("Error fetching invoices: %v", err)
	}

	fmt.Printf("Invoices (%d)\n", len(invoices))
	fmt.Printf("%-10s %-14s %12s %12s %-12s %s\n", "ID", "ACCOUNT", "DUE", "PAID", "DUE DATE", "STATUS")
	for _, inv := range invoices {
		fmt.Printf("%-10s %-14s %12.2f %12.2f %-12s %s\n",
			inv.InvoiceID, inv.AccountNumber, inv.AmountDue, inv.AmountPaid, inv.DueDate, inv.Status)
	}
}

func runCustomerPayments(invoiceID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	payments, err := client.InvoicePayments(ctx, invoiceID)
	if err != nil {
		log.Fatalf("Error fetching payments: %v", err)
	}

	fmt.Printf("Payments for %s (%d)\n", invoiceID, len(payments))
	for _, p := range payments {
		fmt.Printf("%s  $%10.2f  %s\n", p.PaidAt, p.Amount, p.Method)
	}
}

func runCustomerPay(invoiceID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	message, err := client.MarkInvoicePaid(ctx, invoiceID, api.PaymentMethod(payMethod))
	if err != nil {
		log.Fatalf("Error recording payment: %v", err)
	}
	fmt.Println(message)
}

func runCustomerPlans() {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	plans, err := client.ListPlans(ctx)
	if err != nil {
		log.Fatalf("Error fetching plans: %v", err)
	}

	fmt.Printf("Plans (%d)\n", len(plans))
	fmt.Printf("%-10s %-10s %10s  %s\n", "ID", "TYPE", "FEE", "NAME")
	for _, plan := range plans {
		fmt.Printf("%-10s %-10s %10.2f  %s\n", plan.PlanID, plan.PlanType, plan.MonthlyFee, plan.PlanName)
	}
}

func runCustomerSelectPlan(accountID string) {
	client, _, err := sessionClient()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	account, err := client.SelectPlan(ctx, accountID, selectPlanID)
	if err != nil {
		log.Fatalf("Error selecting plan: %v", err)
	}
	fmt.Printf("Account %s switched to plan %s (%s)\n", account.AccountNumber, account.PlanName, account.PlanType)
}
