package otpravka

import (
	"context"
	"net/http"
)

// UsageStats reports how many requests the account has made against its limit.
func (c *Client) UsageStats(ctx context.Context) (*UsageStats, error) {
	var stats UsageStats
	if err := c.do(ctx, call{op: "UsageStats", method: http.MethodGet, path: "/1.0/counter"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
