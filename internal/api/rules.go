package api

import (
	"context"
	"net/http"
	"net/url"

	"credflow-console/internal/dunning"
)

// ListRules fetches all dunning rules. Every rule is normalized so the
// denormalized template name is populated before the caller sees it.
func (c *Client) ListRules(ctx context.Context) ([]dunning.Rule, error) {
	var rules []dunning.Rule
	if err := c.get(ctx, "/api/admin/rules", &rules); err != nil {
		return nil, err
	}
	for i := range rules {
		rules[i].Normalize()
	}
	return rules, nil
}

// GetRule fetches a single rule by id.
func (c *Client) GetRule(ctx context.Context, ruleID string) (*dunning.Rule, error) {
	var rule dunning.Rule
	if err := c.get(ctx, "/api/admin/rules/"+url.PathEscape(ruleID), &rule); err != nil {
		return nil, err
	}
	rule.Normalize()
	return &rule, nil
}

// CreateRule submits a new rule and returns the stored version.
func (c *Client) CreateRule(ctx context.Context, rule dunning.Rule) (*dunning.Rule, error) {
	var created dunning.Rule
	if err := c.do(ctx, http.MethodPost, "/api/admin/rules", rule, &created); err != nil {
		return nil, err
	}
	created.Normalize()
	return &created, nil
}

// UpdateRule replaces an existing rule.
func (c *Client) UpdateRule(ctx context.Context, ruleID string, rule dunning.Rule) (*dunning.Rule, error) {
	var updated dunning.Rule
	if err := c.do(ctx, http.MethodPut, "/api/admin/rules/"+url.PathEscape(ruleID), rule, &updated); err != nil {
		return nil, err
	}
	updated.Normalize()
	return &updated, nil
}

// DeleteRule removes a rule.
func (c *Client) DeleteRule(ctx context.Context, ruleID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/rules/"+url.PathEscape(ruleID), nil, nil)
}
