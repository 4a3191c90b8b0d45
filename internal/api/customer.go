package api

import (
	"context"
	"net/http"
	"net/url"

	"credflow-console/internal/dunning"
)

// AccountStatus is the service state of a customer account.
type AccountStatus string

const (
	AccountActive     AccountStatus = "ACTIVE"
	AccountThrottled  AccountStatus = "THROTTLED"
	AccountRestricted AccountStatus = "RESTRICTED"
	AccountSuspended  AccountStatus = "SUSPENDED"
)

// PaymentMethod is the channel a payment was made through.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentCash         PaymentMethod = "CASH"
)

// Account is one telecom service account owned by a customer.
type Account struct {
	AccountID     string           `json:"accountId"`
	AccountNumber string           `json:"accountNumber"`
	PlanType      dunning.PlanType `json:"planType"`
	PlanName      string           `json:"planName,omitempty"`
	Status        AccountStatus    `json:"status"`
	Balance       float64          `json:"balance"`
	CreatedAt     string           `json:"createdAt,omitempty"`
}

// Invoice is one billing cycle's charge against an account.
type Invoice struct {
	InvoiceID     string  `json:"invoiceId"`
	AccountNumber string  `json:"accountNumber"`
	AmountDue     float64 `json:"amountDue"`
	AmountPaid    float64 `json:"amountPaid"`
	DueDate       string  `json:"dueDate"`
	Status        string  `json:"status"`
	IssuedAt      string  `json:"issuedAt,omitempty"`
}

// Payment is one recorded payment against an invoice.
type Payment struct {
	PaymentID string        `json:"paymentId"`
	InvoiceID string        `json:"invoiceId"`
	Amount    float64       `json:"amount"`
	Method    PaymentMethod `json:"method"`
	PaidAt    string        `json:"paidAt"`
}

// Plan is a subscribable service plan.
type Plan struct {
	PlanID      string           `json:"planId"`
	PlanName    string           `json:"planName"`
	PlanType    dunning.PlanType `json:"planType"`
	MonthlyFee  float64          `json:"monthlyFee"`
	Description string           `json:"description,omitempty"`
}

// CustomerProfile fetches the current customer's profile.
func (c *Client) CustomerProfile(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/customer/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CustomerAccounts fetches the current customer's accounts.
func (c *Client) CustomerAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := c.get(ctx, "/api/customer/accounts", &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CustomerInvoices fetches all invoices across the customer's accounts.
func (c *Client) CustomerInvoices(ctx context.Context) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.get(ctx, "/api/customer/invoices", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// AccountInvoices fetches the invoices of one account.
func (c *Client) AccountInvoices(ctx context.Context, accountID string) ([]Invoice, error) {
	var invoices []Invoice
	path := "/api/customer/accounts/" + url.PathEscape(accountID) + "/invoices"
	if err := c.get(ctx, path, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// InvoicePayments fetches the payments recorded against one invoice.
func (c *Client) InvoicePayments(ctx context.Context, invoiceID string) ([]Payment, error) {
	var payments []Payment
	path := "/api/customer/invoices/" + url.PathEscape(invoiceID) + "/payments"
	if err := c.get(ctx, path, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// MarkInvoicePaid records a self-service payment against an invoice.
func (c *Client) MarkInvoicePaid(ctx context.Context, invoiceID string, method PaymentMethod) (string, error) {
	var resp MessageResponse
	path := "/api/customer/payments/invoices/" + url.PathEscape(invoiceID) + "/mark-paid?method=" + url.QueryEscape(string(method))
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// SelectPlan switches an account onto a different plan.
func (c *Client) SelectPlan(ctx context.Context, accountID, planID string) (*Account, error) {
	var account Account
	path := "/api/customer/accounts/" + url.PathEscape(accountID) + "/select-plan"
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"planId": planID}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ListPlans fetches the publicly visible plan catalog.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := c.get(ctx, "/api/plans", &plans); err != nil {
		return nil, err
	}
	return plans, nil
}
