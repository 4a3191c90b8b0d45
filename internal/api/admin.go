package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// LiveStats is the dashboard's headline counter set.
type LiveStats struct {
	TotalOverdueCount  int     `json:"totalOverdueCount"`
	TotalOverdueAmount float64 `json:"totalOverdueAmount"`
	PendingTasks       int     `json:"pendingTasks"`
	LastRunTime        string  `json:"lastRunTime"`
}

// DateKpis summarizes collections activity for one day.
type DateKpis struct {
	TotalCollected  float64 `json:"totalCollected"`
	ActionsExecuted int     `json:"actionsExecuted"`
}

// AgingBucket is one bar of the overdue-aging report.
type AgingBucket struct {
	Bucket string  `json:"bucket"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// ActionBreakdown counts executed actions by type.
type ActionBreakdown struct {
	ActionType string `json:"actionType"`
	Count      int    `json:"count"`
}

// CollectionPoint is one day of the collection-performance series.
type CollectionPoint struct {
	Date      string  `json:"date"`
	Collected float64 `json:"collected"`
}

// BpoStatusCount counts BPO tasks per status.
type BpoStatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ActionLogEntry is one row of the dunning-action execution log.
type ActionLogEntry struct {
	LogID         string `json:"logId"`
	RuleName      string `json:"ruleName"`
	ActionType    string `json:"actionType"`
	AccountNumber string `json:"accountNumber"`
	Status        string `json:"status"`
	Details       string `json:"details,omitempty"`
	ExecutedAt    string `json:"executedAt"`
}

// NotificationLogEntry is one row of the outbound notification log.
type NotificationLogEntry struct {
	LogID        string `json:"logId"`
	Channel      string `json:"channel"`
	Recipient    string `json:"recipient"`
	TemplateName string `json:"templateName"`
	Status       string `json:"status"`
	SentAt       string `json:"sentAt"`
}

// DashboardStats fetches the live headline counters.
func (c *Client) DashboardStats(ctx context.Context) (*LiveStats, error) {
	var stats LiveStats
	if err := c.get(ctx, "/api/admin/dashboard/stats-live", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// KpisByDate fetches the collections KPIs for a single date (YYYY-MM-DD).
func (c *Client) KpisByDate(ctx context.Context, date string) (*DateKpis, error) {
	var kpis DateKpis
	path := "/api/admin/dashboard/kpis-by-date?date=" + url.QueryEscape(date)
	if err := c.get(ctx, path, &kpis); err != nil {
		return nil, err
	}
	return &kpis, nil
}

// RunEngine triggers an on-demand dunning engine pass and returns the
// backend's acknowledgement.
func (c *Client) RunEngine(ctx context.Context) (string, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/dashboard/run-engine", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// OverdueAging fetches the aging-bucket breakdown of overdue balances.
func (c *Client) OverdueAging(ctx context.Context) ([]AgingBucket, error) {
	var buckets []AgingBucket
	if err := c.get(ctx, "/api/admin/analytics/overdue-aging", &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// DunningActionBreakdown fetches executed action counts by type.
func (c *Client) DunningActionBreakdown(ctx context.Context) ([]ActionBreakdown, error) {
	var breakdown []ActionBreakdown
	if err := c.get(ctx, "/api/admin/analytics/dunning-actions", &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// CollectionPerformance fetches the daily collected-amount series.
func (c *Client) CollectionPerformance(ctx context.Context) ([]CollectionPoint, error) {
	var series []CollectionPoint
	if err := c.get(ctx, "/api/admin/analytics/collection-performance", &series); err != nil {
		return nil, err
	}
	return series, nil
}

// BpoStatusBreakdown fetches BPO task counts per status.
func (c *Client) BpoStatusBreakdown(ctx context.Context) ([]BpoStatusCount, error) {
	var counts []BpoStatusCount
	if err := c.get(ctx, "/api/admin/analytics/bpo-status", &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// ActionLogs fetches one page of the dunning-action execution log.
func (c *Client) ActionLogs(ctx context.Context, page, size int) (*Page[ActionLogEntry], error) {
	var result Page[ActionLogEntry]
	path := fmt.Sprintf("/api/admin/analytics/logs/dunning-actions?page=%d&size=%d", page, size)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// NotificationLogs fetches one page of the outbound notification log.
func (c *Client) NotificationLogs(ctx context.Context, page, size int) (*Page[NotificationLogEntry], error) {
	var result Page[NotificationLogEntry]
	path := fmt.Sprintf("/api/admin/analytics/logs/notifications?page=%d&size=%d", page, size)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
