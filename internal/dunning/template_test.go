package dunning

import (
	"strings"
	"testing"
)

func TestGenerateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request GenerateRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: GenerateRequest{Channel: ChannelEmail, Purpose: "Remind customer about overdue invoice"},
			wantErr: false,
		},
		{
			name:    "empty purpose",
			request: GenerateRequest{Channel: ChannelEmail, Purpose: "   "},
			wantErr: true,
		},
		{
			name:    "purpose too short",
			request: GenerateRequest{Channel: ChannelSMS, Purpose: "short"},
			wantErr: true,
		},
		{
			name:    "purpose too long",
			request: GenerateRequest{Channel: ChannelSMS, Purpose: strings.Repeat("x", 501)},
			wantErr: true,
		},
		{
			name: "tone too long",
			request: GenerateRequest{
				Channel: ChannelEmail,
				Purpose: "Remind customer about overdue invoice",
				Tone:    strings.Repeat("x", 101),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTemplate_ApplyGenerated(t *testing.T) {
	t.Run("failure leaves template unchanged", func(t *testing.T) {
		tpl := Template{Channel: ChannelEmail, Subject: "Old Subject", Body: "Old Body"}

		err := tpl.ApplyGenerated(GenerateResult{GeneratedSubject: "New Subject"})
		if err == nil {
			t.Fatal("expected error for result without a body")
		}
		if tpl.Subject != "Old Subject" || tpl.Body != "Old Body" {
			t.Errorf("template mutated on failure: %+v", tpl)
		}
	})

	t.Run("email applies subject and body", func(t *testing.T) {
		tpl := Template{Channel: ChannelEmail, Subject: "Old", Body: "Old"}

		if err := tpl.ApplyGenerated(GenerateResult{GeneratedSubject: "New Subject", GeneratedBody: "New Body"}); err != nil {
			t.Fatalf("ApplyGenerated() error = %v", err)
		}
		if tpl.Subject != "New Subject" || tpl.Body != "New Body" {
			t.Errorf("got %+v, want new subject and body", tpl)
		}
	})

	t.Run("sms ignores subject", func(t *testing.T) {
		tpl := Template{Channel: ChannelSMS, Subject: "", Body: "Old"}

		if err := tpl.ApplyGenerated(GenerateResult{GeneratedSubject: "Ignored", GeneratedBody: "New Body"}); err != nil {
			t.Fatalf("ApplyGenerated() error = %v", err)
		}
		if tpl.Subject != "" {
			t.Errorf("sms template picked up a subject: %q", tpl.Subject)
		}
		if tpl.Body != "New Body" {
			t.Errorf("body = %q, want %q", tpl.Body, "New Body")
		}
	})
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template Template
		wantKeys []string
	}{
		{
			name:     "valid email template",
			template: Template{TemplateName: "Reminder", Channel: ChannelEmail, Subject: "Overdue", Body: "Hi {{customerName}}"},
			wantKeys: nil,
		},
		{
			name:     "sms needs no subject",
			template: Template{TemplateName: "Reminder", Channel: ChannelSMS, Body: "Pay up"},
			wantKeys: nil,
		},
		{
			name:     "email without subject",
			template: Template{TemplateName: "Reminder", Channel: ChannelEmail, Body: "Hi"},
			wantKeys: []string{"subject"},
		},
		{
			name:     "missing name and body",
			template: Template{Channel: ChannelSMS},
			wantKeys: []string{"templateName", "body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateTemplate(tt.template)
			if len(errors) != len(tt.wantKeys) {
				t.Fatalf("got %d errors (%v), want %d", len(errors), errors, len(tt.wantKeys))
			}
			for _, key := range tt.wantKeys {
				if errors[key] == "" {
					t.Errorf("expected error for %q, got %v", key, errors)
				}
			}
		})
	}
}

func TestFilterByChannel(t *testing.T) {
	templates := []Template{
		{TemplateID: "1", Channel: ChannelEmail},
		{TemplateID: "2", Channel: ChannelSMS},
		{TemplateID: "3", Channel: ChannelEmail},
	}

	email := FilterByChannel(templates, ActionSendEmail)
	if len(email) != 2 {
		t.Errorf("expected 2 email templates, got %d", len(email))
	}

	sms := FilterByChannel(templates, ActionSendSMS)
	if len(sms) != 1 || sms[0].TemplateID != "2" {
		t.Errorf("expected the single SMS template, got %v", sms)
	}

	if none := FilterByChannel(templates, ActionThrottleSpeed); none != nil {
		t.Errorf("non-notification actions should select no templates, got %v", none)
	}
}

func TestCheckTemplateSelection(t *testing.T) {
	templates := []Template{
		{TemplateID: "tpl-email", Channel: ChannelEmail},
		{TemplateID: "tpl-sms", Channel: ChannelSMS},
	}

	tests := []struct {
		name       string
		action     ActionType
		templateID string
		wantErr    string
	}{
		{"matching email", ActionSendEmail, "tpl-email", ""},
		{"matching sms", ActionSendSMS, "tpl-sms", ""},
		{"empty reference passes", ActionSendEmail, "", ""},
		{"non-notification action passes", ActionThrottleSpeed, "tpl-email", ""},
		{"wrong channel", ActionSendSMS, "tpl-email", "tpl-email is a EMAIL template; SEND_SMS needs SMS"},
		{"unknown template", ActionSendEmail, "tpl-gone", "template tpl-gone not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTemplateSelection(templates, tt.action, tt.templateID)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("CheckTemplateSelection() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
