package api

import (
	"context"
	"net/http"
	"net/url"

	"credflow-console/internal/dunning"
)

// BpoTaskStatus tracks a collections task through the agent workflow.
type BpoTaskStatus string

const (
	BpoTaskNew               BpoTaskStatus = "NEW"
	BpoTaskOpen              BpoTaskStatus = "OPEN"
	BpoTaskInProgress        BpoTaskStatus = "IN_PROGRESS"
	BpoTaskResolvedPaid      BpoTaskStatus = "RESOLVED_PAID"
	BpoTaskResolvedPromise   BpoTaskStatus = "RESOLVED_PROMISE_TO_PAY"
	BpoTaskResolvedNoContact BpoTaskStatus = "RESOLVED_NO_CONTACT"
	BpoTaskCompleted         BpoTaskStatus = "COMPLETED"
	BpoTaskClosed            BpoTaskStatus = "CLOSED"
)

// BpoTask is a manual collections task assigned to a BPO agent.
type BpoTask struct {
	TaskID        string              `json:"taskId"`
	AccountNumber string              `json:"accountNumber"`
	CustomerName  string              `json:"customerName"`
	AmountDue     float64             `json:"amountDue"`
	DaysOverdue   int                 `json:"daysOverdue"`
	Priority      dunning.BpoPriority `json:"priority"`
	Status        BpoTaskStatus       `json:"status"`
	AssignedTo    string              `json:"assignedTo,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     string              `json:"createdAt,omitempty"`
	UpdatedAt     string              `json:"updatedAt,omitempty"`
}

// TaskUpdateRequest changes a task's status with optional agent notes.
type TaskUpdateRequest struct {
	Status BpoTaskStatus `json:"status"`
	Notes  string        `json:"notes,omitempty"`
}

// CallLogRequest records the outcome of an agent call against a task.
type CallLogRequest struct {
	Outcome      string `json:"outcome"`
	Notes        string `json:"notes,omitempty"`
	CallDuration int    `json:"callDurationSeconds,omitempty"`
}

// CallLog is one recorded call against a BPO task.
type CallLog struct {
	CallLogID    string `json:"callLogId"`
	TaskID       string `json:"taskId"`
	AgentName    string `json:"agentName"`
	Outcome      string `json:"outcome"`
	Notes        string `json:"notes,omitempty"`
	CallDuration int    `json:"callDurationSeconds,omitempty"`
	LoggedAt     string `json:"loggedAt"`
}

// AgentPerformance summarizes one agent's resolution counts.
type AgentPerformance struct {
	TasksResolved  int     `json:"tasksResolved"`
	TasksOpen      int     `json:"tasksOpen"`
	CallsLogged    int     `json:"callsLogged"`
	TotalCollected float64 `json:"totalCollected"`
}

// MyQueue fetches the tasks assigned to or claimable by the current agent.
func (c *Client) MyQueue(ctx context.Context) ([]BpoTask, error) {
	var tasks []BpoTask
	if err := c.get(ctx, "/api/bpo/tasks/my-queue", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ClaimTask assigns an unclaimed task to the current agent.
func (c *Client) ClaimTask(ctx context.Context, taskID string) (*BpoTask, error) {
	var task BpoTask
	path := "/api/bpo/tasks/" + url.PathEscape(taskID) + "/claim"
	if err := c.do(ctx, http.MethodPut, path, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask changes a task's status.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req TaskUpdateRequest) (*BpoTask, error) {
	var task BpoTask
	path := "/api/bpo/tasks/" + url.PathEscape(taskID) + "/update"
	if err := c.do(ctx, http.MethodPut, path, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// LogCall records a call outcome against a task.
func (c *Client) LogCall(ctx context.Context, taskID string, req CallLogRequest) (*CallLog, error) {
	var entry CallLog
	path := "/api/bpo/tasks/" + url.PathEscape(taskID) + "/log-call"
	if err := c.do(ctx, http.MethodPost, path, req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// TaskCallLogs fetches the call history of one task.
func (c *Client) TaskCallLogs(ctx context.Context, taskID string) ([]CallLog, error) {
	var logs []CallLog
	path := "/api/bpo/tasks/" + url.PathEscape(taskID) + "/logs"
	if err := c.get(ctx, path, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// MyCallLogs fetches the current agent's recorded calls.
func (c *Client) MyCallLogs(ctx context.Context) ([]CallLog, error) {
	var logs []CallLog
	if err := c.get(ctx, "/api/bpo/my-call-logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// MyPerformance fetches the current agent's performance summary.
func (c *Client) MyPerformance(ctx context.Context) (*AgentPerformance, error) {
	var perf AgentPerformance
	if err := c.get(ctx, "/api/bpo/my-performance", &perf); err != nil {
		return nil, err
	}
	return &perf, nil
}
