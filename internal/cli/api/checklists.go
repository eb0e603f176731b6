package api

import (
	"Checklister/internal/cli/model"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) ListChecklists(ctx context.Context) ([]model.Checklist, error) {
	var list []model.Checklist
	if err := c.doJSON(ctx, http.MethodGet, "/checklists", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetChecklist(ctx context.Context, id int64) (*model.Checklist, error) {
	var out model.Checklist
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/checklists/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateChecklist(ctx context.Context, in model.ChecklistInput) (*model.Checklist, error) {
	var out model.Checklist
	if err := c.PostJSON(ctx, "/checklists", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateChecklist(ctx context.Context, id int64, in model.ChecklistInput) (*model.Checklist, error) {
	var out model.Checklist
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/checklists/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteChecklist(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/checklists/%d", id), nil, nil)
}

func (c *Client) CloneChecklist(ctx context.Context, id int64) (*model.Checklist, error) {
	var out model.Checklist
	if err := c.PostJSON(ctx, fmt.Sprintf("/checklists/%d/clone", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MakePublic публикует чек-лист и возвращает public_url.
func (c *Client) MakePublic(ctx context.Context, id int64) (string, error) {
	var out struct {
		PublicURL string `json:"public_url"`
	}
	if err := c.PostJSON(ctx, fmt.Sprintf("/checklists/%d/make_public", id), nil, &out); err != nil {
		return "", err
	}
	return out.PublicURL, nil
}

// GetPublicChecklist читает опубликованный чек-лист по public_id.
func (c *Client) GetPublicChecklist(ctx context.Context, publicID string) (*model.Checklist, error) {
	var out model.Checklist
	if err := c.doJSON(ctx, http.MethodGet, "/public/"+url.PathEscape(publicID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublicLink ссылка на публичный просмотр чек-листа.
func (c *Client) PublicLink(publicID string) string {
	return c.baseURL + "/public/" + url.PathEscape(publicID)
}
