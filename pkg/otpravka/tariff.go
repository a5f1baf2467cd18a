package otpravka

import (
	"context"
	"net/http"
)

// CalculateTariff asks the service to price a shipment. The quote is
// returned as computed remotely; nothing is derived locally.
func (c *Client) CalculateTariff(ctx context.Context, req TariffRequest) (*TariffResponse, error) {
	const op = "CalculateTariff"
	if err := c.checkStruct(op, req); err != nil {
		return nil, c.reject(err)
	}

	var quote TariffResponse
	if err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/1.0/tariff", body: req}, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
