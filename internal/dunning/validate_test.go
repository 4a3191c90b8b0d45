package dunning

import "testing"

func validForm() RuleForm {
	return RuleForm{
		RuleName:              "Day 7 Reminder",
		Priority:              "10",
		IsActive:              true,
		AppliesToPlanType:     "ALL",
		ConditionType:         ConditionDaysOverdue,
		ConditionValueInteger: "7",
		ActionType:            ActionSendEmail,
		TemplateID:            "tpl-1",
	}
}

func TestRuleForm_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*RuleForm)
		wantKeys []string
	}{
		{
			name:     "valid form has no errors",
			mutate:   func(f *RuleForm) {},
			wantKeys: nil,
		},
		{
			name:     "blank rule name",
			mutate:   func(f *RuleForm) { f.RuleName = "   " },
			wantKeys: []string{"ruleName"},
		},
		{
			name:     "missing priority",
			mutate:   func(f *RuleForm) { f.Priority = "" },
			wantKeys: []string{"priority"},
		},
		{
			name:     "zero priority",
			mutate:   func(f *RuleForm) { f.Priority = "0" },
			wantKeys: []string{"priority"},
		},
		{
			name:     "days overdue needs a value",
			mutate:   func(f *RuleForm) { f.ConditionValueInteger = "" },
			wantKeys: []string{"conditionValueInteger"},
		},
		{
			name:     "negative days overdue",
			mutate:   func(f *RuleForm) { f.ConditionValueInteger = "-1" },
			wantKeys: []string{"conditionValueInteger"},
		},
		{
			name: "min amount needs a value",
			mutate: func(f *RuleForm) {
				f.ConditionType = ConditionMinAmountDue
				f.ConditionValueDecimal = "abc"
			},
			wantKeys: []string{"conditionValueDecimal"},
		},
		{
			name:     "send email needs a template",
			mutate:   func(f *RuleForm) { f.TemplateID = "" },
			wantKeys: []string{"templateId"},
		},
		{
			name: "send sms needs a template",
			mutate: func(f *RuleForm) {
				f.ActionType = ActionSendSMS
				f.TemplateID = ""
			},
			wantKeys: []string{"templateId"},
		},
		{
			name: "account type condition has no value check",
			mutate: func(f *RuleForm) {
				f.ConditionType = ConditionAccountType
				f.ConditionValueString = "MOBILE"
				f.ConditionValueInteger = ""
			},
			wantKeys: nil,
		},
		{
			name: "bpo action needs no template",
			mutate: func(f *RuleForm) {
				f.ActionType = ActionCreateBpoTask
				f.TemplateID = ""
				f.BpoTaskPriority = "MEDIUM"
			},
			wantKeys: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			errors := form.Validate()
			if len(errors) != len(tt.wantKeys) {
				t.Fatalf("got %d errors (%v), want %d", len(errors), errors, len(tt.wantKeys))
			}
			for _, key := range tt.wantKeys {
				if errors[key] == "" {
					t.Errorf("expected error for key %q, got %v", key, errors)
				}
			}
		})
	}
}

func TestRuleForm_PayloadTaggedUnion(t *testing.T) {
	form := validForm()
	rule := form.Payload()

	if rule.ConditionValueInteger == nil || *rule.ConditionValueInteger != 7 {
		t.Fatalf("ConditionValueInteger = %v, want 7", rule.ConditionValueInteger)
	}
	if rule.ConditionValueDecimal != nil {
		t.Errorf("ConditionValueDecimal should be nil, got %v", *rule.ConditionValueDecimal)
	}
	if rule.ConditionValueString != nil {
		t.Errorf("ConditionValueString should be nil, got %v", *rule.ConditionValueString)
	}
	if rule.TemplateID == nil || *rule.TemplateID != "tpl-1" {
		t.Errorf("TemplateID = %v, want tpl-1", rule.TemplateID)
	}
	if rule.BpoTaskPriority != nil {
		t.Errorf("BpoTaskPriority should be nil for email actions, got %v", *rule.BpoTaskPriority)
	}
}

func TestRuleForm_PayloadNullsStaleSlots(t *testing.T) {
	// Simulate editing an amount rule into a BPO rule: the stale template and
	// decimal inputs must not survive into the payload.
	form := validForm()
	form.ConditionType = ConditionMinAmountDue
	form.ConditionValueDecimal = "50.5"
	form.ActionType = ActionCreateBpoTask
	form.BpoTaskPriority = "HIGH"

	rule := form.Payload()

	if rule.ConditionValueDecimal == nil || *rule.ConditionValueDecimal != 50.5 {
		t.Fatalf("ConditionValueDecimal = %v, want 50.5", rule.ConditionValueDecimal)
	}
	if rule.ConditionValueInteger != nil {
		t.Errorf("ConditionValueInteger should be nil, got %v", *rule.ConditionValueInteger)
	}
	if rule.TemplateID != nil {
		t.Errorf("TemplateID should be nil for BPO actions, got %v", *rule.TemplateID)
	}
	if rule.BpoTaskPriority == nil || *rule.BpoTaskPriority != BpoPriorityHigh {
		t.Errorf("BpoTaskPriority = %v, want HIGH", rule.BpoTaskPriority)
	}
}

func TestFormFromRuleRoundTrip(t *testing.T) {
	prio := BpoPriorityLow
	orig := Rule{
		RuleName:          "Escalate",
		Priority:          20,
		IsActive:          true,
		AppliesToPlanType: PlanPrepaid,
		ConditionType:     ConditionDaysOverdue,
		ConditionValueInteger: intPtr(21),
		ActionType:            ActionCreateBpoTask,
		BpoTaskPriority:       &prio,
	}

	form := FormFromRule(orig)
	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("round-trip form should validate, got %v", errs)
	}

	rebuilt := form.Payload()
	if rebuilt.RuleName != orig.RuleName || rebuilt.Priority != orig.Priority {
		t.Errorf("rebuilt = %+v, want name/priority from %+v", rebuilt, orig)
	}
	if rebuilt.ConditionValueInteger == nil || *rebuilt.ConditionValueInteger != 21 {
		t.Errorf("ConditionValueInteger = %v, want 21", rebuilt.ConditionValueInteger)
	}
	if rebuilt.BpoTaskPriority == nil || *rebuilt.BpoTaskPriority != BpoPriorityLow {
		t.Errorf("BpoTaskPriority = %v, want LOW", rebuilt.BpoTaskPriority)
	}
}
