package dunning

// ConditionType selects which of the three condition value slots is populated
// on a rule. The slots form a tagged union: exactly one is non-nil per type.
type ConditionType string

const (
	ConditionDaysOverdue  ConditionType = "DAYS_OVERDUE"
	ConditionMinAmountDue ConditionType = "MIN_AMOUNT_DUE"
	ConditionAccountType  ConditionType = "ACCOUNT_TYPE"
	ConditionDaysUntilDue ConditionType = "DAYS_UNTIL_DUE" // prepaid expiry warnings
)

// ActionType selects the collections action a rule triggers, and which action
// reference field (templateId or bpoTaskPriority) must be populated.
type ActionType string

const (
	ActionSendEmail       ActionType = "SEND_EMAIL"
	ActionSendSMS         ActionType = "SEND_SMS"
	ActionCreateBpoTask   ActionType = "CREATE_BPO_TASK"
	ActionThrottleSpeed   ActionType = "THROTTLE_SPEED"
	ActionRestrictService ActionType = "RESTRICT_SERVICE"
)

// BpoPriority is the priority assigned to a BPO task created by a rule.
type BpoPriority string

const (
	BpoPriorityLow    BpoPriority = "LOW"
	BpoPriorityMedium BpoPriority = "MEDIUM"
	BpoPriorityHigh   BpoPriority = "HIGH"
)

// PlanType scopes a rule to a subset of customer plans.
type PlanType string

const (
	PlanAll      PlanType = "ALL"
	PlanPrepaid  PlanType = "PREPAID"
	PlanPostpaid PlanType = "POSTPAID"
)

// Rule is a dunning rule as served by the backend. Condition value fields are
// pointers so that absent slots stay null on the wire when writing.
type Rule struct {
	RuleID            string        `json:"ruleId,omitempty"`
	RuleName          string        `json:"ruleName"`
	Description       string        `json:"description,omitempty"`
	Priority          int           `json:"priority"`
	IsActive          bool          `json:"isActive"`
	AppliesToPlanType PlanType      `json:"appliesToPlanType,omitempty"`
	ConditionType     ConditionType `json:"conditionType"`

	ConditionValueInteger *int     `json:"conditionValueInteger"`
	ConditionValueDecimal *float64 `json:"conditionValueDecimal"`
	ConditionValueString  *string  `json:"conditionValueString"`

	ActionType      ActionType   `json:"actionType"`
	TemplateID      *string      `json:"templateId"`
	TemplateName    string       `json:"templateName,omitempty"`
	Template        *Template    `json:"template,omitempty"`
	BpoTaskPriority *BpoPriority `json:"bpoTaskPriority"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ResolvedTemplateName returns the template name for display, preferring the
// nested template object over the denormalized field. Returns "N/A" when the
// rule carries neither shape.
func (r *Rule) ResolvedTemplateName() string {
	if r.Template != nil && r.Template.TemplateName != "" {
		return r.Template.TemplateName
	}
	if r.TemplateName != "" {
		return r.TemplateName
	}
	return "N/A"
}

// Normalize flattens the nested template shape into the denormalized name so
// downstream formatting never re-runs the fallback chain. Call once on every
// rule received from the API.
func (r *Rule) Normalize() {
	r.TemplateName = r.ResolvedTemplateName()
	if r.TemplateName == "N/A" {
		r.TemplateName = ""
	}
	if r.Template != nil && r.TemplateID == nil {
		id := r.Template.TemplateID
		r.TemplateID = &id
	}
	r.Template = nil
}
