package client

import (
	"context"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/api"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
)

// Login exchanges credentials for a signed token.
func (c *Client) Login(ctx context.Context, id, password string) (*api.LoginResponse, string, error) {
	payload := api.LoginPayload{
		ID:       id,
		Password: password,
	}

	var result api.LoginResponse
	correlation, err := c.post(ctx, c.url().
		setPath(api.LoginRoute).
		build(), payload, &result)
	if err != nil {
		return nil, correlation, err
	}
	return &result, correlation, nil
}

// Me returns the principal the server resolves for the configured token.
func (c *Client) Me(ctx context.Context) (*core.Principal, string, error) {
	var principal core.Principal
	correlation, err := c.get(ctx, c.url().
		setPath(api.MeRoute).
		build(), &principal)
	if err != nil {
		return nil, correlation, err
	}
	return &principal, correlation, nil
}
