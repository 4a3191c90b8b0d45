package api

import (
	"context"
	"net/http"
	"net/url"

	"credflow-console/internal/dunning"
)

// ListTemplates fetches all notification templates.
func (c *Client) ListTemplates(ctx context.Context) ([]dunning.Template, error) {
	var templates []dunning.Template
	if err := c.get(ctx, "/api/admin/templates", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// GetTemplate fetches a single template by id.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*dunning.Template, error) {
	var tpl dunning.Template
	if err := c.get(ctx, "/api/admin/templates/"+url.PathEscape(templateID), &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// CreateTemplate submits a new template.
func (c *Client) CreateTemplate(ctx context.Context, tpl dunning.Template) (*dunning.Template, error) {
	var created dunning.Template
	if err := c.do(ctx, http.MethodPost, "/api/admin/templates", tpl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTemplate replaces an existing template.
func (c *Client) UpdateTemplate(ctx context.Context, templateID string, tpl dunning.Template) (*dunning.Template, error) {
	var updated dunning.Template
	if err := c.do(ctx, http.MethodPut, "/api/admin/templates/"+url.PathEscape(templateID), tpl, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, templateID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/templates/"+url.PathEscape(templateID), nil, nil)
}

// GenerateTemplate asks the backend's AI endpoint to draft content for the
// given channel and purpose. The request is validated before dispatch.
func (c *Client) GenerateTemplate(ctx context.Context, req dunning.GenerateRequest) (*dunning.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var result dunning.GenerateResult
	if err := c.do(ctx, http.MethodPost, "/api/admin/templates/ai/generate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
