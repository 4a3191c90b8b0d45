package dunning

import (
	"strconv"
	"strings"
)

// RuleForm holds raw rule-form input before parsing. Numeric fields are kept
// as strings so that empty and malformed entries can be reported per field
// instead of failing at decode time.
type RuleForm struct {
	RuleName              string
	Description           string
	Priority              string
	IsActive              bool
	AppliesToPlanType     string
	ConditionType         ConditionType
	ConditionValueInteger string
	ConditionValueDecimal string
	ConditionValueString  string
	ActionType            ActionType
	TemplateID            string
	BpoTaskPriority       string
}

// Validate checks the form's field combination and returns a map of field
// name to message. An empty map means the form may be submitted.
//
// ACCOUNT_TYPE conditions and the CREATE_BPO_TASK/THROTTLE_SPEED/
// RESTRICT_SERVICE actions have no branch here: their inputs are selects
// whose defaults always produce a value.
func (f RuleForm) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(f.RuleName) == "" {
		errors["ruleName"] = "Rule Name is required."
	}

	if prio, err := strconv.Atoi(strings.TrimSpace(f.Priority)); err != nil || prio < 1 {
		errors["priority"] = "Priority is required and must be a positive number."
	}

	switch f.ConditionType {
	case ConditionDaysOverdue:
		if v, err := strconv.Atoi(strings.TrimSpace(f.ConditionValueInteger)); err != nil || v < 0 {
			errors["conditionValueInteger"] = "Days Overdue requires a number (0 or more)."
		}
	case ConditionDaysUntilDue:
		if v, err := strconv.Atoi(strings.TrimSpace(f.ConditionValueInteger)); err != nil || v < 0 {
			errors["conditionValueInteger"] = "Days Until Due requires a number (0 or more)."
		}
	case ConditionMinAmountDue:
		if v, err := strconv.ParseFloat(strings.TrimSpace(f.ConditionValueDecimal), 64); err != nil || v < 0 {
			errors["conditionValueDecimal"] = "Minimum Amount requires a number (0 or more)."
		}
	}

	if (f.ActionType == ActionSendEmail || f.ActionType == ActionSendSMS) && f.TemplateID == "" {
		errors["templateId"] = "Please select a notification template."
	}

	return errors
}

// Payload builds the save payload for a validated form. Condition and action
// fields not selected by the form's types are left nil so the tagged-union
// invariant holds on write. Call only after Validate returns an empty map.
func (f RuleForm) Payload() Rule {
	priority, _ := strconv.Atoi(strings.TrimSpace(f.Priority))

	rule := Rule{
		RuleName:          strings.TrimSpace(f.RuleName),
		Description:       f.Description,
		Priority:          priority,
		IsActive:          f.IsActive,
		AppliesToPlanType: PlanType(f.AppliesToPlanType),
		ConditionType:     f.ConditionType,
		ActionType:        f.ActionType,
	}
	if rule.AppliesToPlanType == "" {
		rule.AppliesToPlanType = PlanAll
	}

	switch f.ConditionType {
	case ConditionDaysOverdue, ConditionDaysUntilDue:
		if v, err := strconv.Atoi(strings.TrimSpace(f.ConditionValueInteger)); err == nil {
			rule.ConditionValueInteger = &v
		}
	case ConditionMinAmountDue:
		if v, err := strconv.ParseFloat(strings.TrimSpace(f.ConditionValueDecimal), 64); err == nil {
			rule.ConditionValueDecimal = &v
		}
	case ConditionAccountType:
		v := f.ConditionValueString
		rule.ConditionValueString = &v
	}

	switch f.ActionType {
	case ActionSendEmail, ActionSendSMS:
		id := f.TemplateID
		rule.TemplateID = &id
	case ActionCreateBpoTask:
		prio := BpoPriority(f.BpoTaskPriority)
		if prio == "" {
			prio = BpoPriorityMedium
		}
		rule.BpoTaskPriority = &prio
	}

	return rule
}

// FormFromRule pre-fills a form from an existing rule for editing. Defaults
// match the create form: MOBILE for account type, MEDIUM for BPO priority.
func FormFromRule(r Rule) RuleForm {
	f := RuleForm{
		RuleName:             r.RuleName,
		Description:          r.Description,
		Priority:             strconv.Itoa(r.Priority),
		IsActive:             r.IsActive,
		AppliesToPlanType:    string(r.AppliesToPlanType),
		ConditionType:        r.ConditionType,
		ConditionValueString: "MOBILE",
		ActionType:           r.ActionType,
		BpoTaskPriority:      string(BpoPriorityMedium),
	}
	if f.AppliesToPlanType == "" {
		f.AppliesToPlanType = string(PlanAll)
	}
	if r.ConditionValueInteger != nil {
		f.ConditionValueInteger = strconv.Itoa(*r.ConditionValueInteger)
	}
	if r.ConditionValueDecimal != nil {
		f.ConditionValueDecimal = strconv.FormatFloat(*r.ConditionValueDecimal, 'f', -1, 64)
	}
	if r.ConditionValueString != nil {
		f.ConditionValueString = *r.ConditionValueString
	}
	if r.TemplateID != nil {
		f.TemplateID = *r.TemplateID
	} else if r.Template != nil {
		f.TemplateID = r.Template.TemplateID
	}
	if r.BpoTaskPriority != nil {
		f.BpoTaskPriority = string(*r.BpoTaskPriority)
	}
	return f
}
