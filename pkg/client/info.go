package client

import (
	"context"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/api"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/buildinfo"
)

func (c *Client) Info(
	ctx context.Context,
) (*buildinfo.Info, string, error) {
	var info buildinfo.Info
	correlation, err := c.get(ctx, c.url().
		setPath(api.AboutRoute).
		build(), &info)
	if err != nil {
		return nil, correlation, err
	}
	return &info, correlation, nil
}
