package dunning

import (
	"fmt"
	"strings"
)

// Channel is the delivery channel of a notification template.
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
)

// Template is a reusable notification definition referenced by SEND_EMAIL and
// SEND_SMS rules. Body may contain {{placeholder}} tokens resolved by the
// backend at send time.
type Template struct {
	TemplateID   string  `json:"templateId,omitempty"`
	TemplateName string  `json:"templateName"`
	Channel      Channel `json:"channel"`
	Subject      string  `json:"subject,omitempty"`
	Body         string  `json:"body"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

// ValidateTemplate checks a template before submission. Subject is required
// only for the EMAIL channel.
func ValidateTemplate(t Template) map[string]string {
	errors := make(map[string]string)
	if strings.TrimSpace(t.TemplateName) == "" {
		errors["templateName"] = "Template name is required."
	}
	if t.Channel != ChannelEmail && t.Channel != ChannelSMS {
		errors["channel"] = "Channel must be EMAIL or SMS."
	}
	if t.Channel == ChannelEmail && strings.TrimSpace(t.Subject) == "" {
		errors["subject"] = "Subject is required for email templates."
	}
	if strings.TrimSpace(t.Body) == "" {
		errors["body"] = "Template body is required."
	}
	return errors
}

// FilterByChannel returns the templates selectable for the given rule action:
// EMAIL templates for SEND_EMAIL, SMS templates for SEND_SMS, none otherwise.
func FilterByChannel(templates []Template, action ActionType) []Template {
	var want Channel
	switch action {
	case ActionSendEmail:
		want = ChannelEmail
	case ActionSendSMS:
		want = ChannelSMS
	default:
		return nil
	}

	var filtered []Template
	for _, t := range templates {
		if t.Channel == want {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// CheckTemplateSelection verifies that a rule's template reference is
// selectable for its action: the template must exist and carry the channel
// the action sends on. Non-notification actions and empty references pass.
func CheckTemplateSelection(templates []Template, action ActionType, templateID string) error {
	if templateID == "" || (action != ActionSendEmail && action != ActionSendSMS) {
		return nil
	}

	for _, t := range FilterByChannel(templates, action) {
		if t.TemplateID == templateID {
			return nil
		}
	}

	for _, t := range templates {
		if t.TemplateID == templateID {
			return fmt.Errorf("template %s is a %s template; %s needs %s",
				templateID, t.Channel, action, channelFor(action))
		}
	}
	return fmt.Errorf("template %s not found", templateID)
}

func channelFor(action ActionType) Channel {
	if action == ActionSendSMS {
		return ChannelSMS
	}
	return ChannelEmail
}

// GenerateRequest asks the backend AI endpoint to draft template content.
type GenerateRequest struct {
	Channel    Channel `json:"channel"`
	Purpose    string  `json:"purpose"`
	Tone       string  `json:"tone,omitempty"`
	KeyDetails string  `json:"keyDetails,omitempty"`
}

// Validate enforces the client-side preconditions checked before dispatch.
// Bounds mirror the backend request constraints.
func (r GenerateRequest) Validate() error {
	purpose := strings.TrimSpace(r.Purpose)
	if purpose == "" {
		return fmt.Errorf("purpose is required: describe what the template should accomplish")
	}
	if len(purpose) < 10 || len(purpose) > 500 {
		return fmt.Errorf("purpose must be between 10 and 500 characters")
	}
	if len(r.Tone) > 100 {
		return fmt.Errorf("tone cannot exceed 100 characters")
	}
	if len(r.KeyDetails) > 500 {
		return fmt.Errorf("key details cannot exceed 500 characters")
	}
	return nil
}

// GenerateResult is the AI endpoint's response.
type GenerateResult struct {
	GeneratedSubject string `json:"generatedSubject"`
	GeneratedBody    string `json:"generatedBody"`
}

// ApplyGenerated copies AI-generated content into the template. A result
// lacking a body is rejected and the template is left untouched; the subject
// is applied only when the template's channel is EMAIL.
func (t *Template) ApplyGenerated(result GenerateResult) error {
	if result.GeneratedBody == "" {
		return fmt.Errorf("AI returned empty or invalid content")
	}
	t.Body = result.GeneratedBody
	if t.Channel == ChannelEmail && result.GeneratedSubject != "" {
		t.Subject = result.GeneratedSubject
	}
	return nil
}
