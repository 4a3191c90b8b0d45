package formatters_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"credflow-console/internal/dunning"
	"credflow-console/internal/formatters"
)

func intPtr(v int) *int                                  { return &v }
func floatPtr(v float64) *float64                        { return &v }
func prioPtr(v dunning.BpoPriority) *dunning.BpoPriority { return &v }

func sampleRules() []dunning.Rule {
	return []dunning.Rule{
		{
			RuleName:              "Soft Reminder",
			Priority:              1,
			IsActive:              true,
			ConditionType:         dunning.ConditionDaysOverdue,
			ConditionValueInteger: intPtr(3),
			ActionType:            dunning.ActionSendEmail,
			TemplateName:          "Gentle Nudge",
		},
		{
			RuleName:              "High Balance Escalation",
			Priority:              2,
			IsActive:              false,
			AppliesToPlanType:     dunning.PlanPostpaid,
			ConditionType:         dunning.ConditionMinAmountDue,
			ConditionValueDecimal: floatPtr(50),
			ActionType:            dunning.ActionCreateBpoTask,
			BpoTaskPriority:       prioPtr(dunning.BpoPriorityHigh),
		},
	}
}

func TestRulesText(t *testing.T) {
	var buf bytes.Buffer
	formatters.RulesText(&buf, sampleRules())
	output := buf.String()

	expectedLines := []string{
		"Total: 2 rules (1 active)",
		"Soft Reminder",
		"Days Overdue >= 3",
		"Send Email (Gentle Nudge...)",
		"Min Amount >= $50.00",
		"Create BPO (Prio: HIGH)",
		"POSTPAID",
	}
	for _, line := range expectedLines {
		if !strings.Contains(output, line) {
			t.Errorf("expected text output to contain %q\nGot:\n%s", line, output)
		}
	}
}

func TestRulesJSON(t *testing.T) {
	var buf bytes.Buffer
	formatters.RulesJSON(&buf, sampleRules())

	var output formatters.RulesOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if output.TotalRules != 2 || output.ActiveRules != 1 {
		t.Errorf("counts = %d/%d, want 2/1", output.TotalRules, output.ActiveRules)
	}
	if output.Rules[0].Condition != "Days Overdue >= 3" {
		t.Errorf("condition = %q", output.Rules[0].Condition)
	}
	if output.Rules[1].AppliesTo != "POSTPAID" {
		t.Errorf("applies_to = %q", output.Rules[1].AppliesTo)
	}
}

func TestTimelineText(t *testing.T) {
	timeline := dunning.DeriveTimeline(sampleRules())

	var buf bytes.Buffer
	formatters.TimelineText(&buf, timeline)
	output := buf.String()

	expectedLines := []string{
		"Dunning Timeline (day 0 to 15)",
		"Day   3  [Email]",
		"Soft Reminder",
		"Axis: 0 5 10 15",
	}
	for _, line := range expectedLines {
		if !strings.Contains(output, line) {
			t.Errorf("expected timeline output to contain %q\nGot:\n%s", line, output)
		}
	}
}

func TestTimelineText_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatters.TimelineText(&buf, dunning.DeriveTimeline(nil))

	if !strings.Contains(buf.String(), "No active day-based rules.") {
		t.Errorf("expected empty-state message, got:\n%s", buf.String())
	}
}

func TestTimelineHTML(t *testing.T) {
	rules := sampleRules()
	timeline := dunning.DeriveTimeline(rules)

	outputFile := filepath.Join(t.TempDir(), "report.html")
	formatters.TimelineHTML(timeline, rules, "2026-09-01 10:00", outputFile)

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	html := string(content)

	expectedFragments := []string{
		"<title>Dunning Timeline Report</title>",
		"Day 3: Email",
		"color-blue",
		"event-above",
		"Send Email (Gentle Nudge...)",
		"Create BPO (Prio: HIGH)",
		"Generated 2026-09-01 10:00",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected HTML to contain %q", fragment)
		}
	}

	// 2 + 3/15*96 = 21.2% along the axis.
	if !strings.Contains(html, "left: 21.20%") {
		t.Errorf("expected event positioned at 21.20%%")
	}
}
