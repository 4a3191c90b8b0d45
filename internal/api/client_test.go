package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"credflow-console/internal/dunning"
)

func newTestClient(server *httptest.Server, token string) *Client {
	client := NewClient(Session{BaseURL: server.URL, Token: token})
	client.SetRetryCount(0)
	return client
}

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(User{Username: "admin"})
	}))
	defer server.Close()

	client := newTestClient(server, "tok-123")
	if _, err := client.Profile(context.Background()); err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(AuthResponse{JwtToken: "new-token", User: User{Role: RoleAdmin}})
	}))
	defer server.Close()

	client := newTestClient(server, "")
	resp, err := client.Login(context.Background(), LoginRequest{Username: "admin", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("unauthenticated call sent Authorization header %q", gotAuth)
	}
	if resp.JwtToken != "new-token" {
		t.Errorf("JwtToken = %q, want %q", resp.JwtToken, "new-token")
	}
}

func TestClient_RetriesOnBadGateway(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]dunning.Rule{})
	}))
	defer server.Close()

	client := NewClient(Session{BaseURL: server.URL, Token: "tok"})
	if _, err := client.ListRules(context.Background()); err != nil {
		t.Fatalf("ListRules() error = %v after retries", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestClient_RetryResendsBody(t *testing.T) {
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		bodies = append(bodies, req.Username)
		if len(bodies) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(AuthResponse{JwtToken: "t"})
	}))
	defer server.Close()

	client := NewClient(Session{BaseURL: server.URL})
	if _, err := client.Login(context.Background(), LoginRequest{Username: "admin"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if len(bodies) != 2 || bodies[1] != "admin" {
		t.Errorf("retry body not resent, got %v", bodies)
	}
}

func TestClient_ErrorPrefersServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Rule name already exists"})
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	_, err := client.CreateRule(context.Background(), dunning.Rule{RuleName: "dup"})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "Rule name already exists" {
		t.Errorf("got %+v, want 409 with server message", apiErr)
	}
}

func TestClient_UnauthorizedFiresCallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Token expired"})
	}))
	defer server.Close()

	evicted := false
	client := newTestClient(server, "stale")
	client.OnUnauthorized(func() { evicted = true })

	_, err := client.Profile(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized(%v) = false, want true", err)
	}
	if !evicted {
		t.Error("onUnauthorized callback was not invoked")
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.DashboardStats(ctx); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestListRules_NormalizesTemplateName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"ruleName":"Nested","conditionType":"DAYS_OVERDUE","actionType":"SEND_EMAIL",
			 "template":{"templateId":"t-1","templateName":"Final Warning","channel":"EMAIL","body":"x"}},
			{"ruleName":"Flat","conditionType":"DAYS_OVERDUE","actionType":"SEND_EMAIL",
			 "templateName":"Soft Reminder"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	rules, err := client.ListRules(context.Background())
	if err != nil {
		t.Fatalf("ListRules() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].TemplateName != "Final Warning" || rules[0].Template != nil {
		t.Errorf("nested template not flattened: %+v", rules[0])
	}
	if rules[0].TemplateID == nil || *rules[0].TemplateID != "t-1" {
		t.Errorf("template id not lifted from nested object: %v", rules[0].TemplateID)
	}
	if rules[1].TemplateName != "Soft Reminder" {
		t.Errorf("flat name = %q, want %q", rules[1].TemplateName, "Soft Reminder")
	}
}

func TestGenerateTemplate_ValidatesBeforeDispatch(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	_, err := client.GenerateTemplate(context.Background(), dunning.GenerateRequest{Channel: dunning.ChannelEmail, Purpose: "short"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if called {
		t.Error("invalid request reached the backend")
	}
}

func TestActionLogs_PageEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		w.Write([]byte(`{"content":[{"logId":"l-1","ruleName":"Soft Reminder","actionType":"SEND_EMAIL","status":"SUCCESS"}],
			"totalPages":5,"number":2,"totalElements":42,"last":false}`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	page, err := client.ActionLogs(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ActionLogs() error = %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].RuleName != "Soft Reminder" {
		t.Errorf("content = %+v", page.Content)
	}
	if page.TotalPages != 5 || page.Number != 2 || page.TotalItems != 42 || page.Last {
		t.Errorf("envelope = %+v", page)
	}
}

func TestMarkInvoicePaid_MethodQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("method"); got != "MOBILE_MONEY" {
			t.Errorf("method = %q, want MOBILE_MONEY", got)
		}
		json.NewEncoder(w).Encode(MessageResponse{Message: "Payment recorded"})
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	msg, err := client.MarkInvoicePaid(context.Background(), "inv-1", PaymentMobileMoney)
	if err != nil {
		t.Fatalf("MarkInvoicePaid() error = %v", err)
	}
	if msg != "Payment recorded" {
		t.Errorf("message = %q", msg)
	}
}

func TestCustomerProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/customer/profile" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(User{Username: "jdoe", Email: "jdoe@example.com", Role: RoleCustomer})
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	user, err := client.CustomerProfile(context.Background())
	if err != nil {
		t.Fatalf("CustomerProfile() error = %v", err)
	}
	if user.Username != "jdoe" || user.Role != RoleCustomer {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestClaimTask_Put(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/api/bpo/tasks/task-7/claim" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(BpoTask{TaskID: "task-7", Status: BpoTaskInProgress})
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	task, err := client.ClaimTask(context.Background(), "task-7")
	if err != nil {
		t.Fatalf("ClaimTask() error = %v", err)
	}
	if task.Status != BpoTaskInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", task.Status)
	}
}

func TestDeleteRule_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	if err := client.DeleteRule(context.Background(), "r-1"); err != nil {
		t.Fatalf("DeleteRule() error = %v", err)
	}
}
