package client

import (
	"context"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/api"
)

// ListIdentities returns all stored identities (without password hashes).
// Requires a token whose role passes the admin policy entries.
func (c *Client) ListIdentities(ctx context.Context) ([]api.IdentityView, string, error) {
	var resp []api.IdentityView
	correlation, err := c.get(ctx, c.url().
		setPath(api.ListIdentitiesRoute).
		build(), &resp)
	return resp, correlation, err
}

// Policy returns the policy table loaded by the server.
func (c *Client) Policy(ctx context.Context) ([]api.PolicyEntryView, string, error) {
	var resp []api.PolicyEntryView
	correlation, err := c.get(ctx, c.url().
		setPath(api.PolicyRoute).
		build(), &resp)
	return resp, correlation, err
}
