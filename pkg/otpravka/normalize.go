package otpravka

import "context"

// NormalizeAddress cleans a free-text address.
func (c *Client) NormalizeAddress(ctx context.Context, req NormalizationRequest) (*NormalizationResponse, error) {
	return c.normalize(ctx, "NormalizeAddress", "/1.0/clean/address", req)
}

// NormalizeFIO cleans a full name (surname, name, patronymic).
func (c *Client) NormalizeFIO(ctx context.Context, req NormalizationRequest) (*NormalizationResponse, error) {
	return c.normalize(ctx, "NormalizeFIO", "/1.0/clean/fio", req)
}

// NormalizePhone cleans a phone number.
func (c *Client) NormalizePhone(ctx context.Context, req NormalizationRequest) (*NormalizationResponse, error) {
	return c.normalize(ctx, "NormalizePhone", "/1.0/clean/phone", req)
}

// The clean endpoints only accept batches; one record goes out, one comes back.
func (c *Client) normalize(ctx context.Context, op, path string, req NormalizationRequest) (*NormalizationResponse, error) {
	if err := c.checkStruct(op, req); err != nil {
		return nil, c.reject(err)
	}
	return postOne[NormalizationRequest, NormalizationResponse](ctx, c, op, path, req)
}
