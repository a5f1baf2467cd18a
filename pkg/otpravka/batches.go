package otpravka

import (
	"context"
	"net/http"
	"net/url"
)

// CreateBatch creates a named shipment batch.
func (c *Client) CreateBatch(ctx context.Context, batch Batch) (*Batch, error) {
	const op = "CreateBatch"
	if err := c.checkStruct(op, batch); err != nil {
		return nil, c.reject(err)
	}

	var created Batch
	err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/1.0/user/shipment", body: batch}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListBatches returns all batches.
func (c *Client) ListBatches(ctx context.Context) ([]Batch, error) {
	var batches []Batch
	if err := c.do(ctx, call{op: "ListBatches", method: http.MethodGet, path: "/1.0/shipment"}, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

// SearchBatches finds batches whose name matches query.
func (c *Client) SearchBatches(ctx context.Context, query string) ([]Batch, error) {
	const op = "SearchBatches"
	if err := c.checkVar(op, "query", query, "required"); err != nil {
		return nil, c.reject(err)
	}

	var batches []Batch
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodGet,
		path:   "/1.0/shipment/search",
		query:  url.Values{"query": {query}},
	}, &batches)
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// UpdateBatchSendingDate moves a batch to a new sending date (YYYY-MM-DD).
func (c *Client) UpdateBatchSendingDate(ctx context.Context, batchID, sendingDate string) error {
	const op = "UpdateBatchSendingDate"
	if err := c.checkVar(op, "batch id", batchID, "required"); err != nil {
		return c.reject(err)
	}
	if err := c.checkVar(op, "sending date", sendingDate, "required,datetime=2006-01-02"); err != nil {
		return c.reject(err)
	}
	return c.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   pathf("/1.0/shipment/%s/sending-date", batchID),
		body:   sendingDateBody{SendingDate: sendingDate},
	}, nil)
}

// AddOrdersToBatch attaches backlog orders to a batch.
func (c *Client) AddOrdersToBatch(ctx context.Context, batchID string, orderIDs []string) error {
	const op = "AddOrdersToBatch"
	if err := c.checkBatchOrders(op, batchID, orderIDs); err != nil {
		return c.reject(err)
	}
	return c.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   pathf("/1.0/shipment/%s/orders", batchID),
		body:   orderIDs,
	}, nil)
}

// RemoveOrdersFromBatch detaches orders from a batch.
func (c *Client) RemoveOrdersFromBatch(ctx context.Context, batchID string, orderIDs []string) error {
	const op = "RemoveOrdersFromBatch"
	if err := c.checkBatchOrders(op, batchID, orderIDs); err != nil {
		return c.reject(err)
	}
	return c.do(ctx, call{
		op:     op,
		method: http.MethodDelete,
		path:   pathf("/1.0/shipment/%s/orders", batchID),
		body:   orderIDs,
	}, nil)
}

// ListBatchOrders returns the orders inside a batch.
func (c *Client) ListBatchOrders(ctx context.Context, batchID string) ([]Order, error) {
	const op = "ListBatchOrders"
	if err := c.checkVar(op, "batch id", batchID, "required"); err != nil {
		return nil, c.reject(err)
	}

	var orders []Order
	if err := c.do(ctx, call{op: op, method: http.MethodGet, path: pathf("/1.0/shipment/%s/orders", batchID)}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) checkBatchOrders(op, batchID string, orderIDs []string) error {
	if err := c.checkVar(op, "batch id", batchID, "required"); err != nil {
		return err
	}
	return c.checkVar(op, "order ids", orderIDs, "required,min=1,dive,required")
}
