// Package audit runs declarative consistency checks over a fetched rule
// collection, catching misconfigurations the backend accepts but the
// collections engine will trip over.
package audit

import (
	"fmt"
	"os"
	"sort"

	"credflow-console/internal/dunning"

	"gopkg.in/yaml.v3"
)

// CheckResult is the outcome of one audit check.
type CheckResult struct {
	CheckID     string   `json:"check_id"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Passed      bool     `json:"passed"`
	Findings    []string `json:"findings,omitempty"`
}

// Auditor evaluates audit checks against rules and templates.
type Auditor struct {
	checks []CheckDefinition
}

// NewAuditor builds an auditor from a YAML checks file, or from the built-in
// default configuration when checksFile is empty.
func NewAuditor(checksFile string) (*Auditor, error) {
	data := []byte(DefaultChecksYAML)
	if checksFile != "" {
		var err error
		data, err = os.ReadFile(checksFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read checks file: %w", err)
		}
	}

	var config ChecksConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checks: %w", err)
	}
	if len(config.Checks) == 0 {
		return nil, fmt.Errorf("checks configuration is empty")
	}

	return &Auditor{checks: config.Checks}, nil
}

// Run evaluates every configured check. Results come back in configuration
// order.
func (a *Auditor) Run(rules []dunning.Rule, templates []dunning.Template) ([]CheckResult, error) {
	var results []CheckResult
	for _, check := range a.checks {
		findings, err := a.evaluateCheck(check, rules, templates)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate check %s: %w", check.CheckID, err)
		}
		results = append(results, CheckResult{
			CheckID:     check.CheckID,
			Description: check.Description,
			Severity:    check.Severity,
			Passed:      len(findings) == 0,
			Findings:    findings,
		})
	}
	return results, nil
}

func (a *Auditor) evaluateCheck(check CheckDefinition, rules []dunning.Rule, templates []dunning.Template) ([]string, error) {
	switch check.Type {
	case "duplicate_priority":
		return checkDuplicatePriority(rules), nil
	case "missing_template":
		return checkMissingTemplate(rules, templates), nil
	case "channel_mismatch":
		return checkChannelMismatch(rules, templates), nil
	case "condition_value_missing":
		return checkConditionValue(rules), nil
	case "coverage_gap":
		return checkCoverageGap(rules, intParam(check.Parameters, "max_day", 7)), nil
	case "inactive_rules":
		return checkInactiveRules(rules, intParam(check.Parameters, "max_inactive", 5)), nil
	default:
		return nil, fmt.Errorf("unknown check type: %s", check.Type)
	}
}

func intParam(params map[string]interface{}, key string, fallback int) int {
	if v, ok := params[key]; ok {
		if intVal, ok := v.(int); ok {
			return intVal
		}
	}
	return fallback
}

func checkDuplicatePriority(rules []dunning.Rule) []string {
	byPriority := make(map[int][]string)
	for _, r := range rules {
		if r.IsActive {
			byPriority[r.Priority] = append(byPriority[r.Priority], r.RuleName)
		}
	}

	var priorities []int
	for prio, names := range byPriority {
		if len(names) > 1 {
			priorities = append(priorities, prio)
		}
	}
	sort.Ints(priorities)

	var findings []string
	for _, prio := range priorities {
		names := byPriority[prio]
		findings = append(findings, fmt.Sprintf("priority %d shared by %d rules: %v", prio, len(names), names))
	}
	return findings
}

func checkMissingTemplate(rules []dunning.Rule, templates []dunning.Template) []string {
	known := make(map[string]bool, len(templates))
	for _, t := range templates {
		known[t.TemplateID] = true
	}

	var findings []string
	for _, r := range rules {
		if r.ActionType != dunning.ActionSendEmail && r.ActionType != dunning.ActionSendSMS {
			continue
		}
		if r.TemplateID == nil || *r.TemplateID == "" {
			findings = append(findings, fmt.Sprintf("rule %q has no template reference", r.RuleName))
			continue
		}
		if !known[*r.TemplateID] {
			findings = append(findings, fmt.Sprintf("rule %q references unknown template %s", r.RuleName, *r.TemplateID))
		}
	}
	return findings
}

func checkChannelMismatch(rules []dunning.Rule, templates []dunning.Template) []string {
	channelByID := make(map[string]dunning.Channel, len(templates))
	for _, t := range templates {
		channelByID[t.TemplateID] = t.Channel
	}

	var findings []string
	for _, r := range rules {
		var want dunning.Channel
		switch r.ActionType {
		case dunning.ActionSendEmail:
			want = dunning.ChannelEmail
		case dunning.ActionSendSMS:
			want = dunning.ChannelSMS
		default:
			continue
		}
		if r.TemplateID == nil {
			continue
		}
		if got, ok := channelByID[*r.TemplateID]; ok && got != want {
			findings = append(findings, fmt.Sprintf("rule %q needs a %s template but %s is %s", r.RuleName, want, *r.TemplateID, got))
		}
	}
	return findings
}

func checkConditionValue(rules []dunning.Rule) []string {
	var findings []string
	for _, r := range rules {
		var missing bool
		switch r.ConditionType {
		case dunning.ConditionDaysOverdue, dunning.ConditionDaysUntilDue:
			missing = r.ConditionValueInteger == nil
		case dunning.ConditionMinAmountDue:
			missing = r.ConditionValueDecimal == nil
		case dunning.ConditionAccountType:
			missing = r.ConditionValueString == nil
		}
		if missing {
			findings = append(findings, fmt.Sprintf("rule %q declares %s but carries no value for it", r.RuleName, r.ConditionType))
		}
	}
	return findings
}

func checkCoverageGap(rules []dunning.Rule, maxDay int) []string {
	for _, r := range rules {
		if r.IsActive && r.ConditionType == dunning.ConditionDaysOverdue &&
			r.ConditionValueInteger != nil && *r.ConditionValueInteger <= maxDay {
			return nil
		}
	}
	return []string{fmt.Sprintf("no active rule fires within the first %d days overdue", maxDay)}
}

func checkInactiveRules(rules []dunning.Rule, maxInactive int) []string {
	inactive := 0
	for _, r := range rules {
		if !r.IsActive {
			inactive++
		}
	}
	if inactive > maxInactive {
		return []string{fmt.Sprintf("%d inactive rules (threshold %d)", inactive, maxInactive)}
	}
	return nil
}

// HealthScore condenses audit results into a 0-100 score, weighting failures
// by severity.
func HealthScore(results []CheckResult) float64 {
	severityWeights := map[string]float64{
		"critical": 40.0,
		"warning":  20.0,
		"info":     10.0,
	}

	var numerator float64
	var denominator float64
	for _, result := range results {
		weight, ok := severityWeights[result.Severity]
		if !ok {
			weight = severityWeights["warning"]
		}
		denominator += weight
		if result.Passed {
			numerator += weight
		}
	}

	if denominator == 0 {
		return 0.0
	}
	return (numerator / denominator) * 100
}
