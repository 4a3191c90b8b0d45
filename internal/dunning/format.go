package dunning

import (
	"fmt"
	"strings"
)

// FormatCondition renders a rule's condition as a short display string.
// Unknown condition types fall back to the raw type string.
func FormatCondition(r Rule) string {
	switch r.ConditionType {
	case ConditionDaysOverdue:
		if r.ConditionValueInteger == nil {
			return string(r.ConditionType)
		}
		return fmt.Sprintf("Days Overdue >= %d", *r.ConditionValueInteger)
	case ConditionDaysUntilDue:
		if r.ConditionValueInteger == nil {
			return string(r.ConditionType)
		}
		return fmt.Sprintf("Days Until Due <= %d", *r.ConditionValueInteger)
	case ConditionMinAmountDue:
		if r.ConditionValueDecimal == nil {
			return string(r.ConditionType)
		}
		return fmt.Sprintf("Min Amount >= $%.2f", *r.ConditionValueDecimal)
	case ConditionAccountType:
		if r.ConditionValueString == nil {
			return string(r.ConditionType)
		}
		return fmt.Sprintf("Acct Type = %s", *r.ConditionValueString)
	default:
		return string(r.ConditionType)
	}
}

// FormatAction renders a rule's action as a short display string. Template
// names are truncated to 15 characters; unknown action types are title-cased
// with underscores replaced by spaces.
func FormatAction(r Rule) string {
	switch r.ActionType {
	case ActionSendEmail:
		return fmt.Sprintf("Send Email (%s...)", truncateName(r.ResolvedTemplateName(), 15))
	case ActionSendSMS:
		return fmt.Sprintf("Send SMS (%s...)", truncateName(r.ResolvedTemplateName(), 15))
	case ActionCreateBpoTask:
		prio := "N/A"
		if r.BpoTaskPriority != nil {
			prio = string(*r.BpoTaskPriority)
		}
		return fmt.Sprintf("Create BPO (Prio: %s)", prio)
	case ActionThrottleSpeed:
		return "Throttle Speed"
	case ActionRestrictService:
		return "Restrict Service"
	default:
		return titleCase(string(r.ActionType))
	}
}

// ActionLabel returns the plain display label for an action type, used in
// timeline tooltips where the template/priority detail is rendered separately.
func ActionLabel(a ActionType) string {
	switch a {
	case ActionSendEmail:
		return "Send Email"
	case ActionSendSMS:
		return "Send SMS"
	case ActionCreateBpoTask:
		return "Create BPO Task"
	case ActionThrottleSpeed:
		return "Throttle Speed"
	case ActionRestrictService:
		return "Restrict Service"
	default:
		return titleCase(string(a))
	}
}

func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) > max {
		return string(runes[:max])
	}
	return name
}

// titleCase converts an enum string like "SOME_ACTION" to "Some Action".
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
