package api

import (
	"Checklister/internal/cli/model"
	"context"
	"net/http"
	"net/url"
)

// Login входит или регистрирует пользователя по имени: POST /users?username=...
func (c *Client) Login(ctx context.Context, username string) (*model.User, error) {
	var out model.User
	if err := c.PostJSON(ctx, "/users?username="+url.QueryEscape(username), nil, &out); err != nil {
		return nil, err
	}
	if out.Username == "" {
		out.Username = username
	}
	return &out, nil
}

// Status проверяет доступность сервера и возвращает его приветствие (GET /).
func (c *Client) Status(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
